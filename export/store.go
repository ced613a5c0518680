package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/katalvlaran/timbretag/format"
	"github.com/katalvlaran/timbretag/patch"
)

// ErrUnknownRun indicates a run id with no row in the database.
var ErrUnknownRun = errors.New("export: unknown run")

// Run describes how a stored dataset was produced.
type Run struct {
	ID          string
	Mode        string
	ScaleFactor int
	Seed        int64
	Source      string // library directory the patches came from
	CreatedAt   time.Time
}

// Part is one split of one domain's dataset.
type Part struct {
	Split   format.Split
	Dataset format.Dataset
}

// Store is a SQLite-backed dataset store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("export: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("export: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("export: initialise schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// WriteRun stores run and every sample of parts in one transaction and
// returns the run id. A fresh id is generated when run.ID is empty, and
// CreatedAt defaults to now.
func (s *Store) WriteRun(ctx context.Context, run Run, parts ...Part) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("export: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, scale_factor, seed, source, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.ScaleFactor, run.Seed, run.Source, run.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return "", fmt.Errorf("export: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (run_id, domain, split, position, category, features, label) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("export: prepare sample insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range parts {
		for i, smp := range p.Dataset.Samples {
			features, err := json.Marshal([]float64(smp.Features))
			if err != nil {
				return "", fmt.Errorf("export: encode features: %w", err)
			}
			label, err := json.Marshal(smp.Label)
			if err != nil {
				return "", fmt.Errorf("export: encode label: %w", err)
			}
			if _, err := stmt.ExecContext(ctx,
				run.ID, p.Dataset.Domain.String(), string(p.Split), i, smp.Category.String(),
				string(features), string(label),
			); err != nil {
				return "", fmt.Errorf("export: insert sample %s/%s/%d: %w", p.Dataset.Domain, p.Split, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("export: commit: %w", err)
	}
	return run.ID, nil
}

// Run loads the run row with the given id.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	var (
		r       Run
		created string
		source  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, mode, scale_factor, seed, source, created_at FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Mode, &r.ScaleFactor, &r.Seed, &source, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrUnknownRun, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("export: load run: %w", err)
	}
	r.Source = source.String
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, fmt.Errorf("export: run %s: bad timestamp: %w", id, err)
	}
	return r, nil
}

// Runs lists every run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("export: list runs: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("export: scan run: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("export: list runs: %w", err)
	}
	_ = rows.Close()

	out := make([]Run, 0, len(ids))
	for _, id := range ids {
		r, err := s.Run(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// CountSamples returns the number of samples stored for a run.
func (s *Store) CountSamples(ctx context.Context, runID string) (int, error) {
	if _, err := s.Run(ctx, runID); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM samples WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("export: count samples: %w", err)
	}
	return n, nil
}

// Samples returns one stored split of one domain, in stored position order.
func (s *Store) Samples(ctx context.Context, runID string, d patch.Domain, split format.Split) (format.Dataset, error) {
	if _, err := s.Run(ctx, runID); err != nil {
		return format.Dataset{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, features, label FROM samples
		 WHERE run_id = ? AND domain = ? AND split = ?
		 ORDER BY position`,
		runID, d.String(), string(split))
	if err != nil {
		return format.Dataset{}, fmt.Errorf("export: query samples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ds := format.Dataset{Domain: d}
	for rows.Next() {
		var category, features, label string
		if err := rows.Scan(&category, &features, &label); err != nil {
			return format.Dataset{}, fmt.Errorf("export: scan sample: %w", err)
		}
		var smp format.Sample
		if smp.Category, err = patch.ParseCategory(category); err != nil {
			return format.Dataset{}, fmt.Errorf("export: stored sample: %w", err)
		}
		if err := json.Unmarshal([]byte(features), &smp.Features); err != nil {
			return format.Dataset{}, fmt.Errorf("export: decode features: %w", err)
		}
		if err := json.Unmarshal([]byte(label), &smp.Label); err != nil {
			return format.Dataset{}, fmt.Errorf("export: decode label: %w", err)
		}
		ds.Samples = append(ds.Samples, smp)
	}
	if err := rows.Err(); err != nil {
		return format.Dataset{}, fmt.Errorf("export: query samples: %w", err)
	}
	return ds, nil
}
