// Package export persists augmentation runs and their datasets in SQLite.
//
// One database holds any number of runs. Each run row records how the
// dataset was produced; each sample row holds one labelled feature vector
// together with its domain, split and position inside that split.
package export

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    scale_factor INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    source TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS samples (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    domain TEXT NOT NULL,
    split TEXT NOT NULL,
    position INTEGER NOT NULL,
    category TEXT NOT NULL,
    features TEXT NOT NULL, -- JSON array
    label TEXT NOT NULL,    -- JSON array
    PRIMARY KEY (run_id, domain, split, position)
);

CREATE INDEX IF NOT EXISTS idx_samples_category ON samples(run_id, category);
`

// initSchema creates the schema on a fresh database and is a no-op otherwise.
func initSchema(ctx context.Context, db *sql.DB) error {
	var version int
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err == nil && version >= SchemaVersion {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}
