package storage

import (
	"fmt"
	"sync"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/storage/sqlite"
)

// MemoryStorage is an in-process Storage. It is used when the database
// cannot be opened and in tests.
type MemoryStorage struct {
	mu       sync.Mutex
	actions  map[string]action.Action
	lastSSID *string
	launched bool
	last     *action.Record
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{actions: make(map[string]action.Action)}
}

func (m *MemoryStorage) GetAction(ssid string) (action.Action, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actions[ssid]
	if !ok {
		return action.DoNothing, false, nil
	}
	return a, true, nil
}

func (m *MemoryStorage) SetAction(ssid string, a action.Action) error {
	if !a.Valid() {
		return fmt.Errorf("memory storage: set action: %w: %d", sqlite.ErrInvalidAction, int(a))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions[ssid] = a
	return nil
}

func (m *MemoryStorage) DeleteAction(ssid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.actions, ssid)
	return nil
}

func (m *MemoryStorage) ListActions() (map[string]action.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]action.Action, len(m.actions))
	for k, v := range m.actions {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStorage) ClearActions() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.actions)
	m.actions = make(map[string]action.Action)
	return n, nil
}

func (m *MemoryStorage) LastSSID() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastSSID == nil {
		return "", false, nil
	}
	return *m.lastSSID, true, nil
}

func (m *MemoryStorage) SetLastSSID(ssid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSSID = &ssid
	return nil
}

func (m *MemoryStorage) LaunchedBefore() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.launched, nil
}

func (m *MemoryStorage) MarkLaunched() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launched = true
	return nil
}

func (m *MemoryStorage) LastAction() (action.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return action.Record{}, false, nil
	}
	return *m.last, true, nil
}

func (m *MemoryStorage) SetLastAction(rec action.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = &rec
	return nil
}

func (m *MemoryStorage) Close() error { return nil }
