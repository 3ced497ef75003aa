// Package storage provides the persistence interface for automute.
package storage

import "github.com/MrJer/automute/internal/action"

// Storage persists per-network actions and the daemon's preferences.
// The empty SSID is a valid key and stands for "not connected".
type Storage interface {
	GetAction(ssid string) (action.Action, bool, error)
	SetAction(ssid string, a action.Action) error
	DeleteAction(ssid string) error
	ListActions() (map[string]action.Action, error)
	ClearActions() (int, error)

	LastSSID() (string, bool, error)
	SetLastSSID(ssid string) error
	LaunchedBefore() (bool, error)
	MarkLaunched() error
	LastAction() (action.Record, bool, error)
	SetLastAction(rec action.Record) error

	Close() error
}
