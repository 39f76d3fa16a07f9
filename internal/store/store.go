package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store owns the two durable collections (shifts, clicks), assigns every
// record timestamp itself, and pushes realtime snapshots to subscribers on
// each committed write. Clients never supply their own clock values, so
// record ordering does not depend on synchronized client clocks.
type Store struct {
	db *sql.DB

	mu        sync.Mutex
	lastStamp int64 // unix seconds of the last assigned timestamp
	nextSubID int
	shiftSubs map[int]*ShiftSubscription
	clickSubs map[int]*ClickSubscription
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{
		db:        db,
		shiftSubs: make(map[int]*ShiftSubscription),
		clickSubs: make(map[int]*ClickSubscription),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// serverNow assigns the next record timestamp: wall-clock seconds, clamped so
// consecutive assignments from this store never decrease even if the host
// clock steps backwards. Writers in other processes are outside the clamp.
func (s *Store) serverNow() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := time.Now().Unix()
	if ts < s.lastStamp {
		ts = s.lastStamp
	}
	s.lastStamp = ts
	return time.Unix(ts, 0).UTC()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS shifts (
		id          TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		check_in    TEXT NOT NULL,
		check_out   TEXT,
		is_active   INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_check_in ON shifts(check_in);
	CREATE INDEX IF NOT EXISTS idx_shifts_employee ON shifts(employee_id);

	-- One open shift per employee, enforced by the schema itself so no pair
	-- of writers can slip past the transactional check in StartShift.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_active
		ON shifts(employee_id) WHERE is_active = 1;

	CREATE TABLE IF NOT EXISTS clicks (
		id          TEXT PRIMARY KEY,
		shift_id    TEXT NOT NULL REFERENCES shifts(id),
		employee_id TEXT NOT NULL,
		timestamp   TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_clicks_shift     ON clicks(shift_id);
	CREATE INDEX IF NOT EXISTS idx_clicks_timestamp ON clicks(timestamp);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('admin_passcode', 'admin');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/shiftwatch/shiftwatch.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "shiftwatch", "shiftwatch.db"), nil
}
