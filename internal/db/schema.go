package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Transactions are append-only and
// carry both jobId and date indexes for the activity feed and monthly
// reports. Job item lines live in their own table so partial returns
// can update single rows; deleting a job cascades to its lines.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL UNIQUE,
    current_stock INTEGER NOT NULL CHECK (current_stock >= 0),
    unit          TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS transactions (
    id          INTEGER PRIMARY KEY,
    job_id      TEXT NOT NULL,
    person_name TEXT NOT NULL,
    item_id     INTEGER NOT NULL REFERENCES items(id),
    item_name   TEXT NOT NULL,
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    action      TEXT NOT NULL CHECK (action IN ('issue', 'return')),
    task        TEXT NOT NULL DEFAULT '',
    date        DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_job_id ON transactions(job_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_item_id ON transactions(item_id);

CREATE TABLE IF NOT EXISTS active_jobs (
    job_id      TEXT PRIMARY KEY,
    person_name TEXT NOT NULL,
    task        TEXT NOT NULL DEFAULT '',
    date        DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_active_jobs_date ON active_jobs(date);

CREATE TABLE IF NOT EXISTS job_items (
    job_id    TEXT NOT NULL REFERENCES active_jobs(job_id) ON DELETE CASCADE,
    item_id   INTEGER NOT NULL REFERENCES items(id),
    item_name TEXT NOT NULL,
    quantity  INTEGER NOT NULL CHECK (quantity >= 0),
    unit      TEXT NOT NULL,
    position  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (job_id, item_id)
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
