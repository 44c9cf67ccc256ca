// Package presetstore persists user presets in SQLite.
//
// Built-in presets live in the bentpixel package and are merged in by All;
// the store only ever holds user presets, and refuses names that shadow a
// built-in.
//
//	import _ "modernc.org/sqlite"
//	st, err := presetstore.Open("presets.db", presetstore.WithMkdirAll())
package presetstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gogpu/bentpixel"
)

// Store errors.
var (
	// ErrNotFound is returned when no user preset has the given name.
	ErrNotFound = errors.New("presetstore: preset not found")

	// ErrBuiltin is returned when a write targets a built-in preset name.
	ErrBuiltin = errors.New("presetstore: built-in preset is read-only")

	// ErrInvalidName is returned for empty or over-long names.
	ErrInvalidName = errors.New("presetstore: invalid preset name")
)

// maxNameLen bounds preset names.
const maxNameLen = 64

const schema = `
CREATE TABLE IF NOT EXISTS presets (
	name        TEXT PRIMARY KEY,
	bit_shift   INTEGER NOT NULL DEFAULT 0,
	data_offset INTEGER NOT NULL DEFAULT 0,
	rgb_split   INTEGER NOT NULL DEFAULT 0,
	scanlines   INTEGER NOT NULL DEFAULT 0,
	path_sort   INTEGER NOT NULL DEFAULT 0,
	seed_growth INTEGER NOT NULL DEFAULT 0,
	pixel_sort  INTEGER NOT NULL DEFAULT 0,
	updated_at  INTEGER NOT NULL DEFAULT (unixepoch())
);`

type config struct {
	busyTimeout int
	mkdirAll    bool
	logger      *slog.Logger
}

func defaults() config {
	return config{
		busyTimeout: 10_000,
		logger:      bentpixel.Logger(),
	}
}

// Option customises Open behaviour.
type Option func(*config)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) Option { return func(c *config) { c.busyTimeout = ms } }

// WithMkdirAll creates parent directories of the database path before opening.
func WithMkdirAll() Option { return func(c *config) { c.mkdirAll = true } }

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Store is a SQLite-backed preset store. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the preset database at path.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := defaults()
	for _, o := range opts {
		o(&cfg)
	}

	memory := path == ":memory:"
	if cfg.mkdirAll && !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("presetstore: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("presetstore: open: %w", err)
	}
	if memory {
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("presetstore: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("presetstore: exec schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("presetstore: ping: %w", err)
	}

	cfg.logger.Debug("presetstore: opened", "path", path)
	return &Store{db: db, logger: cfg.logger}, nil
}

// OpenMemory opens an in-memory store for testing.
// It registers t.Cleanup to close the store automatically.
func OpenMemory(t testing.TB, opts ...Option) *Store {
	t.Helper()
	s, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("presetstore.OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" || len(name) > maxNameLen {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if bentpixel.IsBuiltinPreset(name) {
		return fmt.Errorf("%w: %q", ErrBuiltin, name)
	}
	return nil
}

// Save inserts or replaces a user preset. Params are clamped to the slider
// ranges before they are stored.
func (s *Store) Save(ctx context.Context, p bentpixel.Preset) error {
	if err := checkName(p.Name); err != nil {
		return err
	}
	v := p.Params.Clamp()
	_, err := s.exec(ctx, `
		INSERT INTO presets
			(name, bit_shift, data_offset, rgb_split, scanlines, path_sort, seed_growth, pixel_sort, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, unixepoch())
		ON CONFLICT(name) DO UPDATE SET
			bit_shift = excluded.bit_shift,
			data_offset = excluded.data_offset,
			rgb_split = excluded.rgb_split,
			scanlines = excluded.scanlines,
			path_sort = excluded.path_sort,
			seed_growth = excluded.seed_growth,
			pixel_sort = excluded.pixel_sort,
			updated_at = excluded.updated_at`,
		p.Name, v.BitShift, v.DataOffset, v.RGBSplit, v.Scanlines, v.PathSort, v.SeedGrowth, v.PixelSort)
	if err != nil {
		return fmt.Errorf("presetstore: save %q: %w", p.Name, err)
	}
	s.logger.Debug("presetstore: saved", "name", p.Name)
	return nil
}

const selectColumns = `name, bit_shift, data_offset, rgb_split, scanlines, path_sort, seed_growth, pixel_sort`

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (bentpixel.Preset, error) {
	var p bentpixel.Preset
	v := &p.Params
	err := row.Scan(&p.Name, &v.BitShift, &v.DataOffset, &v.RGBSplit, &v.Scanlines, &v.PathSort, &v.SeedGrowth, &v.PixelSort)
	return p, err
}

// Get returns the user preset with the given name.
func (s *Store) Get(ctx context.Context, name string) (bentpixel.Preset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM presets WHERE name = ?`, name)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return bentpixel.Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return bentpixel.Preset{}, fmt.Errorf("presetstore: get %q: %w", name, err)
	}
	return p, nil
}

// List returns the user presets sorted by name.
func (s *Store) List(ctx context.Context) ([]bentpixel.Preset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("presetstore: list: %w", err)
	}
	defer rows.Close()

	var out []bentpixel.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("presetstore: list: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("presetstore: list: %w", err)
	}
	return out, nil
}

// Delete removes a user preset.
func (s *Store) Delete(ctx context.Context, name string) error {
	if bentpixel.IsBuiltinPreset(name) {
		return fmt.Errorf("%w: %q", ErrBuiltin, name)
	}
	res, err := s.exec(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("presetstore: delete %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.logger.Debug("presetstore: deleted", "name", name)
	return nil
}

// All returns built-in and user presets together, sorted by name.
func (s *Store) All(ctx context.Context) ([]bentpixel.Preset, error) {
	user, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := append(bentpixel.Presets(), user...)
	slices.SortFunc(out, func(a, b bentpixel.Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Lookup resolves a built-in or user preset by name.
func (s *Store) Lookup(ctx context.Context, name string) (bentpixel.Preset, error) {
	if p, err := bentpixel.LookupPreset(name); err == nil {
		return p, nil
	}
	return s.Get(ctx, name)
}

const maxRetries = 3

// isBusy reports whether err indicates an SQLite BUSY condition.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// exec runs a statement, retrying up to 3 times with 100/200/300 ms backoff
// while SQLite reports BUSY.
func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	for i := range maxRetries {
		res, err := s.db.ExecContext(ctx, query, args...)
		if err == nil {
			return res, nil
		}
		if !isBusy(err) || i == maxRetries-1 {
			return nil, err
		}
		s.logger.Warn("presetstore: database busy, retrying", "attempt", i+1)
		timer := time.NewTimer(time.Duration(100*(i+1)) * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, errors.New("presetstore: exec: max retries exceeded")
}
