package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chronostore/chronostore/pkg/timeline"
)

const helpText = `Commands:
  UPLOAD <timestamp> <name> <size> [ttl]   Record a version of a file
  GET <timestamp> <name>                   Size of the version visible at an instant
  COPY <timestamp> <source> <dest>         Copy the visible version to another name
  SEARCH <timestamp> [prefix]              Top files by size at an instant
  ROLLBACK <timestamp>                     Discard every record after an instant
  HISTORY <name>                           List all records for a name
  STATS                                    Store counters
  HELP                                     Show this help
  QUIT                                     Exit`

// shell is the interactive command loop around a timeline.Store.
//
// Commands read from in, results write to out. Timestamps, sizes and
// TTLs are passed to the store as given, so the store's own validation
// answers for out-of-range values.
type shell struct {
	store timeline.Store
	in    io.Reader
	out   io.Writer
}

func newShell(store timeline.Store, in io.Reader, out io.Writer) *shell {
	return &shell{store: store, in: in, out: out}
}

// run reads commands until QUIT, EOF, or context cancellation.
func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Type HELP for available commands.")

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		command := strings.ToUpper(fields[0])
		if command == "QUIT" || command == "EXIT" {
			return nil
		}

		s.dispatch(ctx, command, fields[1:])
	}
}

func (s *shell) dispatch(ctx context.Context, command string, args []string) {
	switch command {
	case "UPLOAD":
		s.upload(ctx, args)
	case "GET":
		s.get(ctx, args)
	case "COPY":
		s.copy(ctx, args)
	case "SEARCH":
		s.search(ctx, args)
	case "ROLLBACK":
		s.rollback(ctx, args)
	case "HISTORY":
		s.history(ctx, args)
	case "STATS":
		s.stats(ctx)
	case "HELP":
		fmt.Fprintln(s.out, helpText)
	default:
		fmt.Fprintf(s.out, "unknown command %q (try HELP)\n", command)
	}
}

func (s *shell) upload(ctx context.Context, args []string) {
	if len(args) < 3 || len(args) > 4 {
		fmt.Fprintln(s.out, "usage: UPLOAD <timestamp> <name> <size> [ttl]")
		return
	}

	t, ok := s.parseInt(args[0], "timestamp")
	if !ok {
		return
	}
	size, ok := s.parseInt(args[2], "size")
	if !ok {
		return
	}

	ttl := timeline.NoTTL()
	if len(args) == 4 {
		seconds, ok := s.parseInt(args[3], "ttl")
		if !ok {
			return
		}
		ttl = timeline.TTLSeconds(seconds)
	}

	if err := s.store.UploadAt(ctx, timeline.Timestamp(t), args[1], size, ttl); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}

func (s *shell) get(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: GET <timestamp> <name>")
		return
	}

	t, ok := s.parseInt(args[0], "timestamp")
	if !ok {
		return
	}

	size, err := s.store.GetAt(ctx, timeline.Timestamp(t), args[1])
	if err != nil {
		if timeline.IsNotFound(err) {
			fmt.Fprintln(s.out, "(not found)")
			return
		}
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, size)
}

func (s *shell) copy(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.out, "usage: COPY <timestamp> <source> <dest>")
		return
	}

	t, ok := s.parseInt(args[0], "timestamp")
	if !ok {
		return
	}

	if err := s.store.CopyAt(ctx, timeline.Timestamp(t), args[1], args[2]); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}

func (s *shell) search(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(s.out, "usage: SEARCH <timestamp> [prefix]")
		return
	}

	t, ok := s.parseInt(args[0], "timestamp")
	if !ok {
		return
	}
	prefix := ""
	if len(args) == 2 {
		prefix = args[1]
	}

	names, err := s.store.SearchAt(ctx, timeline.Timestamp(t), prefix)
	if err != nil {
		s.printError(err)
		return
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "(no matches)")
		return
	}
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
}

func (s *shell) rollback(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: ROLLBACK <timestamp>")
		return
	}

	t, ok := s.parseInt(args[0], "timestamp")
	if !ok {
		return
	}

	if err := s.store.Rollback(ctx, timeline.Timestamp(t)); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}

func (s *shell) history(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: HISTORY <name>")
		return
	}

	versions, err := s.store.Versions(ctx, args[0])
	if err != nil {
		s.printError(err)
		return
	}
	if len(versions) == 0 {
		fmt.Fprintln(s.out, "(no versions)")
		return
	}
	for _, version := range versions {
		fmt.Fprintf(s.out, "created=%d size=%d ttl=%s id=%s\n",
			version.CreatedAt, version.Size, version.TTL, version.ID)
	}
}

func (s *shell) stats(ctx context.Context) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "names=%d versions=%d\n", stats.Names, stats.Versions)
}

// parseInt parses a signed decimal argument. Range errors surface here;
// semantic errors (negative timestamps and sizes) are left to the store.
func (s *shell) parseInt(arg, what string) (int64, bool) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "invalid %s %q\n", what, arg)
		return 0, false
	}
	return n, true
}

func (s *shell) printError(err error) {
	if storeErr, ok := timeline.AsStoreError(err); ok {
		fmt.Fprintf(s.out, "ERROR [%s]: %s\n", storeErr.Code, storeErr.Error())
		return
	}
	fmt.Fprintf(s.out, "ERROR: %v\n", err)
}
