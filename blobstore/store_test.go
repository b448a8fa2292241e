package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("open missing", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put open round trip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "fields/0", []byte("hello")))

		blob, err := store.Open(ctx, "fields/0")
		require.NoError(t, err)
		defer blob.Close()

		assert.Equal(t, int64(5), blob.Size())
		data, err := io.ReadAll(BlobReader(blob))
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("streaming create", func(t *testing.T) {
		w, err := store.Create(ctx, "segments/1")
		require.NoError(t, err)
		_, err = w.Write([]byte("part1-"))
		require.NoError(t, err)
		_, err = w.Write([]byte("part2"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		blob, err := store.Open(ctx, "segments/1")
		require.NoError(t, err)
		defer blob.Close()

		data, err := io.ReadAll(BlobReader(blob))
		require.NoError(t, err)
		assert.Equal(t, "part1-part2", string(data))
	})

	t.Run("read at", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "ra", []byte("0123456789")))

		blob, err := store.Open(ctx, "ra")
		require.NoError(t, err)
		defer blob.Close()

		p := make([]byte, 4)
		n, err := blob.ReadAt(p, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "3456", string(p))
	})

	t.Run("list with prefix", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "list/a", []byte("a")))
		require.NoError(t, store.Put(ctx, "list/b", []byte("b")))

		names, err := store.List(ctx, "list/")
		require.NoError(t, err)
		assert.Equal(t, []string{"list/a", "list/b"}, names)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", []byte("x")))
		require.NoError(t, store.Delete(ctx, "gone"))
		require.NoError(t, store.Delete(ctx, "gone")) // idempotent

		_, err := store.Open(ctx, "gone")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "ow", []byte("old")))
		require.NoError(t, store.Put(ctx, "ow", []byte("newer")))

		blob, err := store.Open(ctx, "ow")
		require.NoError(t, err)
		defer blob.Close()
		assert.Equal(t, int64(5), blob.Size())
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}
