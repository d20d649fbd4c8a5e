package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, s Storage) {
	t.Helper()

	_, ok, err := s.Get(UserKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(UserKey, `{"name":"Admin"}`))
	v, ok, err := s.Get(UserKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Admin"}`, v)

	require.NoError(t, s.Set(UserKey, `{"name":"Root"}`))
	v, _, err = s.Get(UserKey)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Root"}`, v)

	require.NoError(t, s.Remove(UserKey))
	require.NoError(t, s.Remove(UserKey), "removing a missing key is fine")
	_, ok, err = s.Get(UserKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exercise(t, s)
}

func TestSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(UserKey, "kept"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, ok, err := s.Get(UserKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", v)
}
