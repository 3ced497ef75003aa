// Package sqlite provides a SQLite-backed store for per-network actions
// and the few preferences automute persists between runs.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/colors"
	_ "modernc.org/sqlite"
)

// Preference keys.
const (
	KeyLastSSID       = "last_ssid"
	KeyLaunchedBefore = "launched_before"
	KeyLastAction     = "last_action"
	KeyLastActionAt   = "last_action_at"
)

// SQLiteStorage persists actions and preferences in a single SQLite file.
type SQLiteStorage struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	closed bool
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath and
// migrates it to the current schema.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	// One writer at a time; the daemon and a prefs editor may share the file.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db, path: dbPath}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	colors.StructuredDebug("storage", "open", "completed", nil, map[string]any{"path": dbPath})
	return s, nil
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	return migrate(s.db)
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.db == nil {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *SQLiteStorage) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.db, nil
}

// GetAction returns the stored action for ssid and whether one was stored.
func (s *SQLiteStorage) GetAction(ssid string) (action.Action, bool, error) {
	db, err := s.conn()
	if err != nil {
		return action.DoNothing, false, err
	}
	var code int
	err = db.QueryRow(`SELECT action FROM network_actions WHERE ssid = ?`, ssid).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return action.DoNothing, false, nil
	}
	if err != nil {
		return action.DoNothing, false, fmt.Errorf("sqlite storage: get action: %w", err)
	}
	return action.FromCode(code), true, nil
}

// SetAction stores a for ssid, replacing any previous value.
func (s *SQLiteStorage) SetAction(ssid string, a action.Action) error {
	if !a.Valid() {
		return fmt.Errorf("sqlite storage: set action: %w: %d", ErrInvalidAction, int(a))
	}
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO network_actions (ssid, action, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(ssid) DO UPDATE SET action = excluded.action, updated_at = excluded.updated_at`,
		ssid, a.Code(), utcNow())
	if err != nil {
		return fmt.Errorf("sqlite storage: set action: %w", err)
	}
	return nil
}

// DeleteAction forgets the stored action for ssid. Missing rows are not an error.
func (s *SQLiteStorage) DeleteAction(ssid string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM network_actions WHERE ssid = ?`, ssid); err != nil {
		return fmt.Errorf("sqlite storage: delete action: %w", err)
	}
	return nil
}

// ListActions returns every stored action keyed by SSID.
func (s *SQLiteStorage) ListActions() (map[string]action.Action, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`SELECT ssid, action FROM network_actions`)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list actions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]action.Action)
	for rows.Next() {
		var ssid string
		var code int
		if err := rows.Scan(&ssid, &code); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan action: %w", err)
		}
		out[ssid] = action.FromCode(code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list actions: %w", err)
	}
	return out, nil
}

// ClearActions deletes every stored action and returns how many were removed.
func (s *SQLiteStorage) ClearActions() (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(`DELETE FROM network_actions`)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: clear actions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: clear actions: %w", err)
	}
	return int(n), nil
}

// LastSSID returns the last stable SSID the daemon saw ("" means disconnected).
func (s *SQLiteStorage) LastSSID() (string, bool, error) {
	return s.getPreference(KeyLastSSID)
}

// SetLastSSID records the last stable SSID.
func (s *SQLiteStorage) SetLastSSID(ssid string) error {
	return s.setPreferences(map[string]string{KeyLastSSID: ssid})
}

// LaunchedBefore reports whether MarkLaunched has ever been called.
func (s *SQLiteStorage) LaunchedBefore() (bool, error) {
	v, ok, err := s.getPreference(KeyLaunchedBefore)
	if err != nil || !ok {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}

// MarkLaunched records that the first-launch hint has been shown.
func (s *SQLiteStorage) MarkLaunched() error {
	return s.setPreferences(map[string]string{KeyLaunchedBefore: "true"})
}

// LastAction returns the most recently applied action, if any.
func (s *SQLiteStorage) LastAction() (action.Record, bool, error) {
	code, ok, err := s.getPreference(KeyLastAction)
	if err != nil || !ok {
		return action.Record{}, false, err
	}
	at, ok, err := s.getPreference(KeyLastActionAt)
	if err != nil || !ok {
		return action.Record{}, false, err
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return action.Record{}, false, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return action.Record{}, false, nil
	}
	return action.Record{Action: action.FromCode(n), At: ts}, true, nil
}

// SetLastAction stores rec; both fields are written in one transaction.
func (s *SQLiteStorage) SetLastAction(rec action.Record) error {
	return s.setPreferences(map[string]string{
		KeyLastAction:   strconv.Itoa(rec.Action.Code()),
		KeyLastActionAt: rec.At.UTC().Format(time.RFC3339Nano),
	})
}

func (s *SQLiteStorage) getPreference(key string) (string, bool, error) {
	db, err := s.conn()
	if err != nil {
		return "", false, err
	}
	var value string
	err = db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite storage: get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStorage) setPreferences(values map[string]string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite storage: begin: %w", err)
	}
	now := utcNow()
	for key, value := range values {
		_, err := tx.Exec(`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, now)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite storage: set preference %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite storage: commit preferences: %w", err)
	}
	return nil
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
