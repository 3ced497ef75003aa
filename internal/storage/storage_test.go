package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/storage/sqlite"
	"github.com/stretchr/testify/require"
)

func TestNewForPathOpensSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)

	s, err := NewForPath(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*sqlite.SQLiteStorage)
	require.True(t, ok)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestNewForPathFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The parent "directory" is a regular file, so the database cannot be created.
	s, err := NewForPath(filepath.Join(blocker, DBFileName))
	require.NoError(t, err)
	_, ok := s.(*MemoryStorage)
	require.True(t, ok)
}

func TestNewFromConfigUsesStorePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AUTOMUTE_CONFIG_DIR", dir)
	t.Setenv("AUTOMUTE_STATE_DIR", dir)
	t.Setenv("AUTOMUTE_STORE_PATH", "")

	s, err := NewFromConfig()
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, DBFileName))
	require.NoError(t, err)
}

func TestMemoryStorage(t *testing.T) {
	m := NewMemoryStorage()

	_, ok, err := m.GetAction("A")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.SetAction("A", action.Mute))
	require.ErrorIs(t, m.SetAction("A", action.Action(9)), sqlite.ErrInvalidAction)

	got, ok, err := m.GetAction("A")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, action.Mute, got)

	all, err := m.ListActions()
	require.NoError(t, err)
	all["B"] = action.Unmute
	again, _ := m.ListActions()
	require.Len(t, again, 1, "ListActions must return a copy")

	_, ok, _ = m.LastSSID()
	require.False(t, ok)
	require.NoError(t, m.SetLastSSID(""))
	ssid, ok, _ := m.LastSSID()
	require.True(t, ok)
	require.Empty(t, ssid)

	n, err := m.ClearActions()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
