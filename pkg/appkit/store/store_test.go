package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velodash/appkit/pkg/appkit/store"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) store.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		data := []byte(`{"user":{"name":"alice"}}`)
		require.NoError(t, s.Save("appstate", data))

		loaded, err := s.Load("appstate")
		require.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Load("nonexistent")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run(name+"/Save_Overwrite", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save("theme", []byte("dark")))
		require.NoError(t, s.Save("theme", []byte("light")))

		loaded, err := s.Load("theme")
		require.NoError(t, err)
		assert.Equal(t, []byte("light"), loaded)
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		infos, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run(name+"/List_OrderedByKey", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save("theme", []byte("dark")))
		require.NoError(t, s.Save("appstate", []byte("{}")))
		require.NoError(t, s.Save("settings", []byte("abc")))

		infos, err := s.List()
		require.NoError(t, err)
		require.Len(t, infos, 3)

		assert.Equal(t, "appstate", infos[0].Key)
		assert.Equal(t, "settings", infos[1].Key)
		assert.Equal(t, "theme", infos[2].Key)

		assert.Equal(t, int64(2), infos[0].Size)
		assert.Equal(t, int64(3), infos[1].Size)
		assert.Equal(t, int64(4), infos[2].Size)
		assert.False(t, infos[0].UpdatedAt.IsZero())
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save("appstate", []byte("{}")))
		require.NoError(t, s.Delete("appstate"))

		_, err := s.Load("appstate")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run(name+"/Delete_Nonexistent", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		assert.NoError(t, s.Delete("nonexistent"))
	})

	t.Run(name+"/Clear", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save("appstate", []byte("{}")))
		require.NoError(t, s.Save("theme", []byte("dark")))

		require.NoError(t, s.Clear())

		infos, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run(name+"/DataCopy", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		original := []byte("original data")
		require.NoError(t, s.Save("appstate", original))

		// Modify original slice after save
		original[0] = 'X'

		loaded, err := s.Load("appstate")
		require.NoError(t, err)
		assert.Equal(t, []byte("original data"), loaded)
	})

	t.Run(name+"/Close_ThenError", func(t *testing.T) {
		s := factory(t)
		require.NoError(t, s.Close())

		err := s.Save("appstate", []byte("{}"))
		assert.ErrorIs(t, err, store.ErrStoreClosed)

		_, err = s.Load("appstate")
		assert.ErrorIs(t, err, store.ErrStoreClosed)

		_, err = s.List()
		assert.ErrorIs(t, err, store.ErrStoreClosed)

		err = s.Clear()
		assert.ErrorIs(t, err, store.ErrStoreClosed)
	})
}

// TestMemoryStore runs contract tests against MemoryStore.
func TestMemoryStore(t *testing.T) {
	storeContractTest(t, "memory", func(t *testing.T) store.Store {
		return store.NewMemoryStore()
	})
}

// TestSQLiteStore runs contract tests against SQLiteStore.
func TestSQLiteStore(t *testing.T) {
	storeContractTest(t, "sqlite", func(t *testing.T) store.Store {
		s, err := store.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return s
	})
}
