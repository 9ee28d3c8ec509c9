package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertErrorCode fails the test unless err is a CatalogError carrying
// the expected code.
func assertErrorCode(test *testing.T, err error, code ErrorCode) {
	test.Helper()

	require.Error(test, err)
	catalogErr, ok := AsCatalogError(err)
	require.True(test, ok, "expected a CatalogError, got %T: %v", err, err)
	assert.Equal(test, code, catalogErr.Code)
}

func TestCatalogUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidatesArguments", func(test *testing.T) {
		tests := []struct {
			name        string
			description string
			fileName    string
			size        int64
			wantMessage string
		}{
			{
				name:        "empty_name",
				description: "an empty file name is rejected",
				fileName:    "",
				size:        100,
				wantMessage: "file name must be non-empty",
			},
			{
				name:        "negative_size",
				description: "a negative size is rejected",
				fileName:    "file.txt",
				size:        -100,
				wantMessage: "file size must be non-negative",
			},
		}

		for _, tt := range tests {
			test.Run(tt.name, func(test *testing.T) {
				c := NewCatalogWithDefaults()

				// Act
				err := c.Upload(ctx, tt.fileName, tt.size)

				// Assert
				assertErrorCode(test, err, ErrInvalidArgument)
				catalogErr, _ := AsCatalogError(err)
				assert.Equal(test, tt.wantMessage, catalogErr.Message, tt.description)
				assert.Equal(test, 0, c.Len())
			})
		}
	})

	t.Run("RejectsDuplicateNames", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		require.NoError(test, c.Upload(ctx, "file.txt", 100))

		// Act
		err := c.Upload(ctx, "file.txt", 200)

		// Assert
		assertErrorCode(test, err, ErrConflict)

		size, err := c.Get(ctx, "file.txt")
		require.NoError(test, err)
		assert.Equal(test, int64(100), size, "the original entry survives the rejected upload")
	})

	t.Run("AcceptsZeroSize", func(test *testing.T) {
		c := NewCatalogWithDefaults()

		require.NoError(test, c.Upload(ctx, "empty.txt", 0))

		size, err := c.Get(ctx, "empty.txt")
		require.NoError(test, err)
		assert.Equal(test, int64(0), size)
	})
}

func TestCatalogGet(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingNames", func(test *testing.T) {
		c := NewCatalogWithDefaults()

		_, err := c.Get(ctx, "file.txt")
		assertErrorCode(test, err, ErrNotFound)

		_, err = c.Get(ctx, "")
		assertErrorCode(test, err, ErrNotFound)

		require.NoError(test, c.Upload(ctx, "file.txt", 100))

		_, err = c.Get(ctx, "not_found.txt")
		assertErrorCode(test, err, ErrNotFound)
	})

	t.Run("ReturnsSize", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		require.NoError(test, c.Upload(ctx, "file.txt", 100))

		size, err := c.Get(ctx, "file.txt")

		require.NoError(test, err)
		assert.Equal(test, int64(100), size)
	})
}

func TestCatalogCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresSource", func(test *testing.T) {
		c := NewCatalogWithDefaults()

		// Act
		err := c.Copy(ctx, "source.txt", "dest.txt")

		// Assert
		assertErrorCode(test, err, ErrNotFound)
		_, err = c.Get(ctx, "dest.txt")
		assertErrorCode(test, err, ErrNotFound)
	})

	t.Run("CopiesAndCopiesCopies", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		require.NoError(test, c.Upload(ctx, "source.txt", 100))

		// Act
		require.NoError(test, c.Copy(ctx, "source.txt", "dest.txt"))
		require.NoError(test, c.Copy(ctx, "dest.txt", "third.txt"))

		// Assert
		size, err := c.Get(ctx, "dest.txt")
		require.NoError(test, err)
		assert.Equal(test, int64(100), size)

		size, err = c.Get(ctx, "third.txt")
		require.NoError(test, err)
		assert.Equal(test, int64(100), size)
	})

	t.Run("SupportsSelfCopy", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		require.NoError(test, c.Upload(ctx, "source.txt", 100))

		require.NoError(test, c.Copy(ctx, "source.txt", "source.txt"))

		size, err := c.Get(ctx, "source.txt")
		require.NoError(test, err)
		assert.Equal(test, int64(100), size)
		assert.Equal(test, 1, c.Len())
	})

	t.Run("OverwritesDestination", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		require.NoError(test, c.Upload(ctx, "source.txt", 100))
		require.NoError(test, c.Upload(ctx, "file.txt", 200))

		// Act
		require.NoError(test, c.Copy(ctx, "source.txt", "file.txt"))

		// Assert
		size, err := c.Get(ctx, "file.txt")
		require.NoError(test, err)
		assert.Equal(test, int64(100), size)
	})

	t.Run("DestinationKeepsItsOwnName", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		require.NoError(test, c.Upload(ctx, "a.txt", 100))

		require.NoError(test, c.Copy(ctx, "a.txt", "b.txt"))

		names, err := c.Search(ctx, "b")
		require.NoError(test, err)
		assert.Equal(test, []string{"b.txt"}, names)
	})
}

func TestCatalogSearch(t *testing.T) {
	ctx := context.Background()

	upload := func(test *testing.T, c *Catalog, name string, size int64) {
		test.Helper()
		require.NoError(test, c.Upload(ctx, name, size))
	}

	t.Run("OrdersBySizeThenName", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		upload(test, c, "a.txt", 100)
		upload(test, c, "b.txt", 500)
		upload(test, c, "c.txt", 400)
		upload(test, c, "d.txt", 200)
		upload(test, c, "e.txt", 300)

		names, err := c.Search(ctx, "")

		require.NoError(test, err)
		assert.Equal(test, []string{"b.txt", "c.txt", "e.txt", "d.txt", "a.txt"}, names)
	})

	t.Run("CapsResults", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		upload(test, c, "a.txt", 100)
		upload(test, c, "b.txt", 500)
		upload(test, c, "c.txt", 400)
		upload(test, c, "d.txt", 200)
		for _, name := range []string{"e.txt", "f.txt", "g.txt", "h.txt", "i.txt", "j.txt", "k.txt", "l.txt"} {
			upload(test, c, name, 300)
		}

		names, err := c.Search(ctx, "")

		require.NoError(test, err)
		assert.Equal(test, []string{
			"b.txt", "c.txt", "e.txt", "f.txt", "g.txt",
			"h.txt", "i.txt", "j.txt", "k.txt", "l.txt",
		}, names)
	})

	t.Run("FiltersByPrefix", func(test *testing.T) {
		c := NewCatalogWithDefaults()
		upload(test, c, "a.txt", 100)
		upload(test, c, "b.txt", 500)
		upload(test, c, "ab.txt", 500)
		upload(test, c, "ac.txt", 300)
		upload(test, c, "ad.txt", 400)
		upload(test, c, "ae.txt", 200)

		names, err := c.Search(ctx, "a")

		require.NoError(test, err)
		assert.Equal(test, []string{"ab.txt", "ad.txt", "ac.txt", "ae.txt", "a.txt"}, names)
	})

	t.Run("EmptyCatalog", func(test *testing.T) {
		c := NewCatalogWithDefaults()

		names, err := c.Search(ctx, "")

		require.NoError(test, err)
		assert.Empty(test, names)
	})

	t.Run("HonoursConfiguredLimit", func(test *testing.T) {
		c := NewCatalog(CatalogConfig{SearchLimit: 2}, nil)
		upload(test, c, "a.txt", 100)
		upload(test, c, "b.txt", 300)
		upload(test, c, "c.txt", 200)

		names, err := c.Search(ctx, "")

		require.NoError(test, err)
		assert.Equal(test, []string{"b.txt", "c.txt"}, names)
	})
}

func TestCatalogContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCatalogWithDefaults()

	err := c.Upload(ctx, "file.txt", 100)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = c.Get(ctx, "file.txt")
	assert.ErrorIs(t, err, context.Canceled)

	err = c.Copy(ctx, "file.txt", "copy.txt")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = c.Search(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 0, c.Len(), "no operation took effect under a cancelled context")
}
