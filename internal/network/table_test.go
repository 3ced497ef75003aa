package network

import (
	"errors"
	"testing"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	networks []KnownNetwork
	err      error
}

func (s *staticSource) KnownNetworks() ([]KnownNetwork, error) {
	return s.networks, s.err
}

type failingStore struct {
	storage.Storage
	err error
}

func (f *failingStore) SetAction(string, action.Action) error          { return f.err }
func (f *failingStore) DeleteAction(string) error                      { return f.err }
func (f *failingStore) ListActions() (map[string]action.Action, error) { return nil, f.err }

func day(d int) time.Time {
	return time.Date(2026, 1, d, 12, 0, 0, 0, time.UTC)
}

func newTable(t *testing.T, known ...KnownNetwork) (*Table, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	table := NewTable(&staticSource{networks: known}, store)
	require.NoError(t, table.Load())
	return table, store
}

func ssids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.SSID)
	}
	return out
}

func TestLoadOrdersNotConnectedThenMostRecent(t *testing.T) {
	table, _ := newTable(t,
		KnownNetwork{SSID: "A", LastConnected: day(1)},
		KnownNetwork{SSID: "B", LastConnected: day(2)},
	)

	entries := table.Networks()
	require.Equal(t, []string{NotConnectedSSID, "B", "A"}, ssids(entries))
	assert.True(t, entries[0].IsNotConnected())
	assert.Equal(t, NotConnectedName, entries[0].DisplayName())
	for _, e := range entries {
		assert.Equal(t, action.DoNothing, e.Action)
	}
}

func TestLoadSkipsNeverConnected(t *testing.T) {
	table, _ := newTable(t,
		KnownNetwork{SSID: "A", LastConnected: day(1)},
		KnownNetwork{SSID: "Ghost"},
	)

	require.Equal(t, []string{NotConnectedSSID, "A"}, ssids(table.Networks()))
}

func TestLoadBreaksTiesBySSID(t *testing.T) {
	table, _ := newTable(t,
		KnownNetwork{SSID: "Zed", LastConnected: day(3)},
		KnownNetwork{SSID: "Alpha", LastConnected: day(3)},
	)

	require.Equal(t, []string{NotConnectedSSID, "Alpha", "Zed"}, ssids(table.Networks()))
}

func TestLoadWithMissingSourceHasOnlySyntheticEntry(t *testing.T) {
	table := NewTable(&staticSource{err: ErrSourceUnavailable}, storage.NewMemoryStorage())
	require.NoError(t, table.Load())

	entries := table.Networks()
	require.Len(t, entries, 1)
	require.True(t, entries[0].IsNotConnected())
}

func TestSetActionPersistsAcrossLoad(t *testing.T) {
	known := []KnownNetwork{
		{SSID: "A", LastConnected: day(1)},
		{SSID: "B", LastConnected: day(2)},
	}
	table, store := newTable(t, known...)

	require.NoError(t, table.SetAction("B", action.Mute))
	assert.Equal(t, action.Mute, table.Lookup("B"))

	fresh := NewTable(&staticSource{networks: known}, store)
	require.NoError(t, fresh.Load())
	assert.Equal(t, action.Mute, fresh.Lookup("B"))
	entry, ok := fresh.Find("B")
	require.True(t, ok)
	assert.Equal(t, action.Mute, entry.Action)
}

func TestLookupUnknownIsDoNothing(t *testing.T) {
	table, _ := newTable(t, KnownNetwork{SSID: "A", LastConnected: day(1)})

	assert.Equal(t, action.DoNothing, table.Lookup("nobody"))
	assert.Equal(t, action.DoNothing, table.Lookup("A"))
}

func TestLookupUsesStoredActionForNetworkNotInTable(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.SetAction("Hidden", action.Unmute))

	table := NewTable(&staticSource{}, store)
	require.NoError(t, table.Load())

	assert.Equal(t, action.Unmute, table.Lookup("Hidden"))
	_, ok := table.Find("Hidden")
	assert.False(t, ok)
}

func TestDisconnectedAction(t *testing.T) {
	table, _ := newTable(t)

	require.NoError(t, table.SetAction(NotConnectedSSID, action.Mute))
	assert.Equal(t, action.Mute, table.Lookup(NotConnectedSSID))
	assert.Equal(t, action.Mute, table.Networks()[0].Action)
}

func TestSetActionAt(t *testing.T) {
	table, _ := newTable(t,
		KnownNetwork{SSID: "A", LastConnected: day(1)},
		KnownNetwork{SSID: "B", LastConnected: day(2)},
	)

	require.NoError(t, table.SetActionAt(2, action.Unmute))
	assert.Equal(t, action.Unmute, table.Lookup("A"))

	err := table.SetActionAt(3, action.Mute)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.ErrorIs(t, table.SetActionAt(-1, action.Mute), ErrIndexOutOfRange)
}

func TestSetActionRejectsInvalid(t *testing.T) {
	table, _ := newTable(t)

	err := table.SetAction("A", action.Action(42))
	require.ErrorIs(t, err, action.ErrUnknownAction)
}

func TestSetActionStoreFailureKeepsMemoryUnchanged(t *testing.T) {
	boom := errors.New("disk full")
	table := NewTable(&staticSource{networks: []KnownNetwork{{SSID: "A", LastConnected: day(1)}}}, &failingStore{err: boom})

	require.ErrorIs(t, table.Load(), boom)
	require.Len(t, table.Networks(), 2)

	require.ErrorIs(t, table.SetAction("A", action.Mute), boom)
	assert.Equal(t, action.DoNothing, table.Lookup("A"))
}

func TestClearActionRevertsToDoNothing(t *testing.T) {
	table, store := newTable(t, KnownNetwork{SSID: "Office", LastConnected: day(1)})
	require.NoError(t, table.SetAction("Office", action.Mute))

	require.NoError(t, table.ClearAction("Office"))

	assert.Equal(t, action.DoNothing, table.Lookup("Office"))
	e, ok := table.Find("Office")
	require.True(t, ok)
	assert.Equal(t, action.DoNothing, e.Action)
	_, stored, err := store.GetAction("Office")
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestClearActionStoreFailure(t *testing.T) {
	table, _ := newTable(t, KnownNetwork{SSID: "Office", LastConnected: day(1)})
	require.NoError(t, table.SetAction("Office", action.Mute))
	table.store = &failingStore{err: errors.New("disk full")}

	err := table.ClearAction("Office")
	require.Error(t, err)
	assert.Equal(t, action.Mute, table.Lookup("Office"))
}

func TestNetworksReturnsCopy(t *testing.T) {
	table, _ := newTable(t, KnownNetwork{SSID: "A", LastConnected: day(1)})

	entries := table.Networks()
	entries[1].Action = action.Mute
	assert.Equal(t, action.DoNothing, table.Networks()[1].Action)
	assert.Equal(t, 2, table.Len())
}

func TestNewTablePanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewTable(nil, storage.NewMemoryStorage()) })
	assert.Panics(t, func() { NewTable(&staticSource{}, nil) })
}
