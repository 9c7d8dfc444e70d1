package database

// schemaSQL is portable between Postgres and SQLite. Dates are stored as
// YYYY-MM-DD text so both drivers scan them into a string.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS contribution_snapshots (
	username           TEXT      NOT NULL,
	date               TEXT      NOT NULL,
	contribution_count INTEGER   NOT NULL,
	intensity          INTEGER   NOT NULL,
	fetched_at         TIMESTAMP NOT NULL,
	PRIMARY KEY (username, date)
);
CREATE INDEX IF NOT EXISTS idx_contribution_snapshots_fetched_at ON contribution_snapshots (fetched_at);
`
