// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     zonestore
// Description: SQLite catalog of named POSIX TZ rules
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package zonestore persists named POSIX TZ rule sets so the CLI can
// resolve zones that are neither in the configuration nor in the system
// timezone database.
package zonestore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/msto63/chronos/pkg/config"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/logging"
	"github.com/msto63/chronos/pkg/zone"
)

// ErrNotFound is returned when no zone is stored under a name.
var ErrNotFound = errors.Wrap(errors.ErrNotFound, "zone")

// Record is a stored zone definition.
type Record struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	POSIX     string           `json:"posix"`
	UpdatedAt format.Timestamp `json:"updated_at"`
}

// Rules parses the stored POSIX string.
func (r Record) Rules() (zone.Rules, error) {
	return zone.ParsePOSIX(r.POSIX)
}

// Store defines the interface for zone persistence
type Store interface {
	Save(ctx context.Context, name, posix string) (*Record, error)
	Import(ctx context.Context, zones []config.ZoneConfig) (int, int, error)
	Get(ctx context.Context, name string) (*Record, error)
	Load(ctx context.Context, name string) (zone.Rules, error)
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	clock instant.Clock
	log   *zap.Logger
}

// Open creates the database at cfg.Path if needed and returns a store on it.
func Open(cfg config.StoreConfig) (*SQLiteStore, error) {
	return OpenWithClock(cfg, instant.SystemClock{})
}

// OpenWithClock is like Open but stamps records using clock.
func OpenWithClock(cfg config.StoreConfig, clock instant.Clock) (*SQLiteStore, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create directory")
		}
	}

	timeout := cfg.BusyTimeout.Duration
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	dsn := cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=" +
		strconv.FormatInt(timeout.Milliseconds(), 10)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if cfg.Path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{db: db, clock: clock, log: logging.Named("zonestore")}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}
	s.log.Debug("zone store opened", zap.String(logging.FieldPath, cfg.Path))
	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS zones (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		posix TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_zones_name ON zones(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) now() format.Timestamp {
	return format.NewTimestamp(instant.Now(s.clock, zone.UTC))
}

func validate(name, posix string) error {
	if name == "" {
		return errors.WithHint(errors.New("zone name is empty"), "pass a name such as Europe/Berlin")
	}
	if _, err := zone.ParsePOSIX(posix); err != nil {
		return errors.Wrapf(err, "zone %q", name)
	}
	return nil
}

const upsert = `
	INSERT INTO zones (id, name, posix, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET posix = excluded.posix, updated_at = excluded.updated_at
`

// Save stores posix under name, replacing any earlier definition.
func (s *SQLiteStore) Save(ctx context.Context, name, posix string) (*Record, error) {
	if err := validate(name, posix); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &Record{ID: uuid.New().String(), Name: name, POSIX: posix, UpdatedAt: s.now()}
	stamp, err := rec.UpdatedAt.MarshalText()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, upsert, rec.ID, rec.Name, rec.POSIX, string(stamp)); err != nil {
		return nil, errors.Wrap(err, "failed to save zone")
	}
	s.log.Debug("zone saved", zap.String(logging.FieldZone, name))
	return s.getLocked(ctx, name)
}

// Import saves every zone in a single transaction. Entries that fail
// validation are counted as rejected and skipped.
func (s *SQLiteStore) Import(ctx context.Context, zones []config.ZoneConfig) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, len(zones), errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return 0, len(zones), errors.Wrap(err, "failed to prepare statement")
	}
	defer stmt.Close()

	stamp, err := s.now().MarshalText()
	if err != nil {
		return 0, len(zones), err
	}

	var accepted, rejected int
	for _, z := range zones {
		if err := validate(z.Name, z.POSIX); err != nil {
			s.log.Warn("zone rejected", zap.String(logging.FieldZone, z.Name), zap.Error(err))
			rejected++
			continue
		}
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), z.Name, z.POSIX, string(stamp)); err != nil {
			s.log.Warn("zone not stored", zap.String(logging.FieldZone, z.Name), zap.Error(err))
			rejected++
			continue
		}
		accepted++
	}

	if err := tx.Commit(); err != nil {
		return 0, len(zones), errors.Wrap(err, "failed to commit transaction")
	}
	s.log.Info("zones imported", zap.Int(logging.FieldCount, accepted), zap.Int("rejected", rejected))
	return accepted, rejected, nil
}

// Get returns the record stored under name.
func (s *SQLiteStore) Get(ctx context.Context, name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(ctx, name)
}

func (s *SQLiteStore) getLocked(ctx context.Context, name string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, posix, updated_at FROM zones WHERE name = ?`, name)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	return rec, err
}

// Load returns the parsed rules stored under name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (zone.Rules, error) {
	rec, err := s.Get(ctx, name)
	if err != nil {
		return zone.Rules{}, err
	}
	return rec.Rules()
}

// List returns every stored zone ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, posix, updated_at FROM zones ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query zones")
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes the zone stored under name.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM zones WHERE name = ?`, name)
	if err != nil {
		return errors.Wrap(err, "failed to delete zone")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	s.log.Debug("zone deleted", zap.String(logging.FieldZone, name))
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var rec Record
	var stamp string
	if err := sc.Scan(&rec.ID, &rec.Name, &rec.POSIX, &stamp); err != nil {
		return nil, err
	}
	if err := rec.UpdatedAt.UnmarshalText([]byte(stamp)); err != nil {
		return nil, errors.Wrapf(err, "zone %q has a corrupt timestamp", rec.Name)
	}
	return &rec, nil
}

// MemoryStore is an in-memory implementation for testing
type MemoryStore struct {
	mu    sync.RWMutex
	zones map[string]*Record
	clock instant.Clock
}

// NewMemoryStore creates a new in-memory zone store
func NewMemoryStore(clock instant.Clock) *MemoryStore {
	return &MemoryStore{zones: make(map[string]*Record), clock: clock}
}

// Save stores posix under name.
func (s *MemoryStore) Save(ctx context.Context, name, posix string) (*Record, error) {
	if err := validate(name, posix); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.zones[name]
	if !ok {
		rec = &Record{ID: uuid.New().String(), Name: name}
		s.zones[name] = rec
	}
	rec.POSIX = posix
	rec.UpdatedAt = format.NewTimestamp(instant.Now(s.clock, zone.UTC))
	cp := *rec
	return &cp, nil
}

// Import saves every valid zone.
func (s *MemoryStore) Import(ctx context.Context, zones []config.ZoneConfig) (int, int, error) {
	var accepted, rejected int
	for _, z := range zones {
		if _, err := s.Save(ctx, z.Name, z.POSIX); err != nil {
			rejected++
			continue
		}
		accepted++
	}
	return accepted, rejected, nil
}

// Get returns the record stored under name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.zones[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	cp := *rec
	return &cp, nil
}

// Load returns the parsed rules stored under name.
func (s *MemoryStore) Load(ctx context.Context, name string) (zone.Rules, error) {
	rec, err := s.Get(ctx, name)
	if err != nil {
		return zone.Rules{}, err
	}
	return rec.Rules()
}

// List returns every stored zone ordered by name.
func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.zones))
	for _, rec := range s.zones {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the zone stored under name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[name]; !ok {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	delete(s.zones, name)
	return nil
}

// Close is a no-op for memory store
func (s *MemoryStore) Close() error { return nil }

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
