// Package network holds the action table: every known wireless network
// and the action to take when the machine joins it.
package network

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/colors"
)

// NotConnectedSSID identifies the synthetic entry used when no network
// is associated.
const NotConnectedSSID = ""

// NotConnectedName is how the synthetic entry is displayed.
const NotConnectedName = "Not connected"

// ErrIndexOutOfRange is returned by SetActionAt for a bad row.
var ErrIndexOutOfRange = errors.New("network index out of range")

// Entry is one row of the table.
type Entry struct {
	SSID          string        `json:"ssid"`
	LastConnected time.Time     `json:"last_connected"`
	Action        action.Action `json:"action"`
}

// IsNotConnected reports whether e is the synthetic "not connected" row.
func (e Entry) IsNotConnected() bool {
	return e.SSID == NotConnectedSSID
}

// DisplayName is the label shown for the entry.
func (e Entry) DisplayName() string {
	return DisplayName(e.SSID)
}

// DisplayName returns the label for ssid.
func DisplayName(ssid string) string {
	if ssid == NotConnectedSSID {
		return NotConnectedName
	}
	return ssid
}

// ActionStore persists per-network actions.
type ActionStore interface {
	SetAction(ssid string, a action.Action) error
	DeleteAction(ssid string) error
	ListActions() (map[string]action.Action, error)
}

// Table is the ordered list of networks with their actions. The synthetic
// "not connected" entry always comes first, followed by networks in
// most-recently-connected order.
type Table struct {
	mu      sync.RWMutex
	source  Source
	store   ActionStore
	entries []Entry
	actions map[string]action.Action
}

// NewTable creates an empty table. Call Load to populate it.
func NewTable(source Source, store ActionStore) *Table {
	if source == nil {
		panic("NewTable: source dependency cannot be nil")
	}
	if store == nil {
		panic("NewTable: store dependency cannot be nil")
	}
	return &Table{
		source:  source,
		store:   store,
		entries: []Entry{{SSID: NotConnectedSSID, Action: action.DoNothing}},
		actions: map[string]action.Action{},
	}
}

// Load rebuilds the table from the known-networks source and the stored
// actions. Missing data falls back to defaults: the table is always
// usable afterwards. The returned error reports a store failure.
func (t *Table) Load() error {
	known, err := t.source.KnownNetworks()
	if err != nil {
		colors.Debug(fmt.Sprintf("known networks: %v", err))
		known = nil
	}

	stored, storeErr := t.store.ListActions()
	if storeErr != nil {
		colors.StructuredError("network", "load", "failed", storeErr, nil)
		stored = map[string]action.Action{}
	}

	sort.SliceStable(known, func(i, j int) bool {
		if known[i].LastConnected.Equal(known[j].LastConnected) {
			return known[i].SSID < known[j].SSID
		}
		return known[i].LastConnected.After(known[j].LastConnected)
	})

	entries := make([]Entry, 0, len(known)+1)
	entries = append(entries, Entry{SSID: NotConnectedSSID, Action: actionFor(stored, NotConnectedSSID)})
	for _, k := range known {
		if k.SSID == NotConnectedSSID || k.LastConnected.IsZero() {
			continue
		}
		entries = append(entries, Entry{
			SSID:          k.SSID,
			LastConnected: k.LastConnected,
			Action:        actionFor(stored, k.SSID),
		})
	}

	t.mu.Lock()
	t.entries = entries
	t.actions = stored
	t.mu.Unlock()

	colors.StructuredDebug("network", "load", "completed", nil, map[string]any{"networks": len(entries)})
	if storeErr != nil {
		return fmt.Errorf("load actions: %w", storeErr)
	}
	return nil
}

func actionFor(stored map[string]action.Action, ssid string) action.Action {
	if a, ok := stored[ssid]; ok && a.Valid() {
		return a
	}
	return action.DoNothing
}

// Lookup returns the action for ssid. Networks without a stored action,
// including ones that are not in the table, map to DoNothing.
func (t *Table) Lookup(ssid string) action.Action {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return actionFor(t.actions, ssid)
}

// SetAction persists a for ssid and updates the in-memory entry.
func (t *Table) SetAction(ssid string, a action.Action) error {
	if !a.Valid() {
		return fmt.Errorf("set action for %q: %w", DisplayName(ssid), action.ErrUnknownAction)
	}
	if err := t.store.SetAction(ssid, a); err != nil {
		return fmt.Errorf("set action for %q: %w", DisplayName(ssid), err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions[ssid] = a
	for i := range t.entries {
		if t.entries[i].SSID == ssid {
			t.entries[i].Action = a
			break
		}
	}
	return nil
}

// ClearAction forgets the stored action for ssid, which reverts to DoNothing.
func (t *Table) ClearAction(ssid string) error {
	if err := t.store.DeleteAction(ssid); err != nil {
		return fmt.Errorf("clear action for %q: %w", DisplayName(ssid), err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.actions, ssid)
	for i := range t.entries {
		if t.entries[i].SSID == ssid {
			t.entries[i].Action = action.DoNothing
			break
		}
	}
	return nil
}

// SetActionAt sets the action of the entry at index.
func (t *Table) SetActionAt(index int, a action.Action) error {
	t.mu.RLock()
	if index < 0 || index >= len(t.entries) {
		t.mu.RUnlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	ssid := t.entries[index].SSID
	t.mu.RUnlock()
	return t.SetAction(ssid, a)
}

// Networks returns a copy of the ordered entries.
func (t *Table) Networks() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Find returns the entry for ssid.
func (t *Table) Find(ssid string) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.entries {
		if e.SSID == ssid {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of entries, including the synthetic one.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
