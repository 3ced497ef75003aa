package storage

import (
	"fmt"
	"path/filepath"

	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/config"
	"github.com/MrJer/automute/internal/storage/sqlite"
)

// DBFileName is the database file name inside the state directory.
const DBFileName = "automute.db"

var (
	_ Storage = (*sqlite.SQLiteStorage)(nil)
	_ Storage = (*MemoryStorage)(nil)
)

// NewFromConfig opens the store at the configured store_path.
func NewFromConfig() (Storage, error) {
	config.Load()
	path := config.Get("store_path", "")
	if path == "" {
		path = filepath.Join(config.Get("state_dir", ""), DBFileName)
	}
	return NewForPath(path)
}

// NewForPath opens a SQLite store at path. If the database cannot be
// opened it warns and falls back to a MemoryStorage, so settings made
// during this run are not persisted.
func NewForPath(path string) (Storage, error) {
	s, err := sqlite.NewSQLiteStorage(path)
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to open preferences database, settings will not persist: %v", err))
		return NewMemoryStorage(), nil
	}
	return s, nil
}
