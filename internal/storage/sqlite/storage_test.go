package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "automute.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.Error(t, err)
}

func TestSetAndGetAction(t *testing.T) {
	s := newTestStorage(t)

	_, ok, err := s.GetAction("Home")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetAction("Home", action.Unmute))
	got, ok, err := s.GetAction("Home")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, action.Unmute, got)

	require.NoError(t, s.SetAction("Home", action.Mute))
	got, _, err = s.GetAction("Home")
	require.NoError(t, err)
	require.Equal(t, action.Mute, got)
}

func TestSetActionRejectsInvalidCode(t *testing.T) {
	s := newTestStorage(t)

	err := s.SetAction("Office", action.Action(7))
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestEmptySSIDIsAValidKey(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SetAction("", action.Mute))
	got, ok, err := s.GetAction("")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, action.Mute, got)
}

func TestListDeleteAndClearActions(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SetAction("A", action.Mute))
	require.NoError(t, s.SetAction("B", action.Unmute))
	require.NoError(t, s.SetAction("", action.DoNothing))

	all, err := s.ListActions()
	require.NoError(t, err)
	require.Equal(t, map[string]action.Action{
		"A": action.Mute,
		"B": action.Unmute,
		"":  action.DoNothing,
	}, all)

	require.NoError(t, s.DeleteAction("A"))
	require.NoError(t, s.DeleteAction("missing"))
	all, err = s.ListActions()
	require.NoError(t, err)
	require.Len(t, all, 2)

	n, err := s.ClearActions()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	all, err = s.ListActions()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestUnknownStoredCodeReadsAsDoNothing(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.db.Exec(`INSERT INTO network_actions (ssid, action, updated_at) VALUES ('Legacy', -1, '')`)
	require.NoError(t, err)

	got, ok, err := s.GetAction("Legacy")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, action.DoNothing, got)
}

func TestLastSSID(t *testing.T) {
	s := newTestStorage(t)

	_, ok, err := s.LastSSID()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetLastSSID("Cafe"))
	ssid, ok, err := s.LastSSID()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Cafe", ssid)

	require.NoError(t, s.SetLastSSID(""))
	ssid, ok, err = s.LastSSID()
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, ssid)
}

func TestLaunchedBefore(t *testing.T) {
	s := newTestStorage(t)

	launched, err := s.LaunchedBefore()
	require.NoError(t, err)
	require.False(t, launched)

	require.NoError(t, s.MarkLaunched())
	launched, err = s.LaunchedBefore()
	require.NoError(t, err)
	require.True(t, launched)
}

func TestLastActionRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	_, ok, err := s.LastAction()
	require.NoError(t, err)
	require.False(t, ok)

	at := time.Date(2026, 3, 4, 15, 4, 5, 123, time.UTC)
	require.NoError(t, s.SetLastAction(action.Record{Action: action.Unmute, At: at}))

	rec, ok, err := s.LastAction()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, action.Unmute, rec.Action)
	require.True(t, at.Equal(rec.At))
}

func TestDataSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "automute.db")

	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.SetAction("Home", action.Unmute))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.GetAction("Home")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, action.Unmute, got)
}

func TestClosedStorageReturnsErrClosed(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "automute.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, _, err = s.GetAction("x")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.SetLastSSID("x"), ErrClosed)
}

func TestMigrationSetsUserVersion(t *testing.T) {
	s := newTestStorage(t)

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	require.Equal(t, SchemaVersion, version)

	// Migrating an up-to-date database is a no-op.
	require.NoError(t, migrate(s.db))
}

func TestMigrateRejectsNewerSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "future.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.Error(t, migrate(db))
}
