package testing

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
)

func (suite *StoreTestSuite) RunSearchTests(test *testing.T) {
	test.Run("Search_Validation", suite.TestSearch_Validation)
	test.Run("Search_Empty", suite.TestSearch_Empty)
	test.Run("Search_OrdersBySize", suite.TestSearch_OrdersBySize)
	test.Run("Search_CapsResults", suite.TestSearch_CapsResults)
	test.Run("Search_PrefixFilters", suite.TestSearch_PrefixFilters)
	test.Run("Search_RespectsTTL", suite.TestSearch_RespectsTTL)
	test.Run("Search_IncludesCopies", suite.TestSearch_IncludesCopies)
}

// TestSearch_Validation verifies that a negative timestamp is rejected.
func (suite *StoreTestSuite) TestSearch_Validation(test *testing.T) {
	store := suite.NewStore()

	// Act
	_, err := store.SearchAt(context.Background(), -10, "prefix")

	// Assert
	AssertErrorCode(test, timeline.ErrInvalidArgument, err)
	AssertErrorMessage(test, "timestamp must be non-negative", err)
}

// TestSearch_Empty verifies that searching an empty store, or an instant
// before anything was uploaded, yields no names.
func (suite *StoreTestSuite) TestSearch_Empty(test *testing.T) {
	store := suite.NewStore()

	AssertSearchAt(test, store, 0, "", []string{})

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())

	AssertSearchAt(test, store, 0, "", []string{})
	AssertSearchAt(test, store, 1, "zzz", []string{})
}

// TestSearch_OrdersBySize verifies that results come back ordered by size
// descending regardless of upload order.
func (suite *StoreTestSuite) TestSearch_OrdersBySize(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 2, "b.txt", 500, timeline.NoTTL())
	MustUploadAt(test, store, 3, "c.txt", 400, timeline.NoTTL())
	MustUploadAt(test, store, 4, "d.txt", 200, timeline.NoTTL())
	MustUploadAt(test, store, 5, "e.txt", 300, timeline.NoTTL())

	AssertSearchAt(test, store, 5, "", []string{
		"b.txt",
		"c.txt",
		"e.txt",
		"d.txt",
		"a.txt",
	})

	AssertSearchAt(test, store, 0, "", []string{})
}

// TestSearch_CapsResults verifies the result cap: with more matches than
// the limit, the smallest entries fall out and equal sizes rank by name.
func (suite *StoreTestSuite) TestSearch_CapsResults(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 2, "b.txt", 500, timeline.NoTTL())
	MustUploadAt(test, store, 3, "c.txt", 400, timeline.NoTTL())
	MustUploadAt(test, store, 4, "d.txt", 200, timeline.NoTTL())
	MustUploadAt(test, store, 5, "e.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 5, "f.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 6, "g.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 7, "h.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 8, "i.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 9, "j.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 10, "k.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 11, "l.txt", 300, timeline.NoTTL())

	AssertSearchAt(test, store, 12, "", []string{
		"b.txt",
		"c.txt",
		"e.txt",
		"f.txt",
		"g.txt",
		"h.txt",
		"i.txt",
		"j.txt",
		"k.txt",
		"l.txt",
	})
}

// TestSearch_PrefixFilters verifies prefix matching against the versions
// active at the query instant.
func (suite *StoreTestSuite) TestSearch_PrefixFilters(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 10, "ab.txt", 500, timeline.NoTTL())
	MustUploadAt(test, store, 10, "ac.txt", 300, timeline.NoTTL())
	MustUploadAt(test, store, 10, "ad.txt", 400, timeline.NoTTL())
	MustUploadAt(test, store, 10, "ae.txt", 200, timeline.NoTTL())

	AssertSearchAt(test, store, 9, "a", []string{"a.txt"})
	AssertSearchAt(test, store, 10, "a", []string{
		"ab.txt",
		"ad.txt",
		"ac.txt",
		"ae.txt",
		"a.txt",
	})
}

// TestSearch_RespectsTTL verifies that names drop out of search results as
// their active versions expire; equal sizes rank alphabetically.
func (suite *StoreTestSuite) TestSearch_RespectsTTL(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 2, "dir/a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 3, "dir/b.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 4, "dir/c.txt", 100, timeline.TTLSeconds(96))
	MustUploadAt(test, store, 5, "dir/d.txt", 100, timeline.TTLSeconds(95))
	MustUploadAt(test, store, 6, "dir/e.txt", 100, timeline.TTLSeconds(150))

	AssertSearchAt(test, store, 10, "a", []string{"a.txt"})
	AssertSearchAt(test, store, 3, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
	})
	AssertSearchAt(test, store, 10, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
		"dir/c.txt",
		"dir/d.txt",
		"dir/e.txt",
	})

	// dir/c and dir/d share the last valid instant 100.
	AssertSearchAt(test, store, 100, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
		"dir/c.txt",
		"dir/d.txt",
		"dir/e.txt",
	})
	AssertSearchAt(test, store, 101, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
		"dir/e.txt",
	})
	AssertSearchAt(test, store, 1000, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
	})
}

// TestSearch_IncludesCopies verifies that copies rank like uploads and keep
// their inherited expiry in search results.
func (suite *StoreTestSuite) TestSearch_IncludesCopies(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 2, "dir/a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 3, "dir/b.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 4, "dir/c.txt", 100, timeline.TTLSeconds(96))
	MustCopyAt(test, store, 5, "dir/c.txt", "dir/d.txt")
	MustCopyAt(test, store, 6, "dir/a.txt", "dir/e.txt")

	AssertSearchAt(test, store, 10, "a", []string{"a.txt"})
	AssertSearchAt(test, store, 3, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
	})
	AssertSearchAt(test, store, 10, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
		"dir/c.txt",
		"dir/d.txt",
		"dir/e.txt",
	})

	// dir/d inherited dir/c's absolute expiry; dir/e inherited unbounded.
	AssertSearchAt(test, store, 100, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
		"dir/c.txt",
		"dir/d.txt",
		"dir/e.txt",
	})
	AssertSearchAt(test, store, 101, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
		"dir/e.txt",
	})
	AssertSearchAt(test, store, 1000, "dir/", []string{
		"dir/a.txt",
		"dir/b.txt",
		"dir/e.txt",
	})
}
