package storage

// SchemaVersion is the current usage index schema version.
const SchemaVersion = 1

// Schema creates the usage index tables and indexes.
const Schema = `
CREATE TABLE IF NOT EXISTS usage_records (
	id         TEXT PRIMARY KEY,
	reference  TEXT NOT NULL,
	mapping    TEXT NOT NULL,
	kind       TEXT NOT NULL,
	instrument TEXT NOT NULL DEFAULT '',
	filekind   TEXT NOT NULL DEFAULT '',
	indexed_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_usage_reference ON usage_records(reference);
CREATE INDEX IF NOT EXISTS idx_usage_mapping ON usage_records(mapping);

CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER PRIMARY KEY
);
`

// InsertSchemaVersion records the schema version, ignoring duplicates.
const InsertSchemaVersion = `INSERT OR IGNORE INTO schema_info (version) VALUES (?);`

// GetSchemaVersion reads the highest recorded schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_info;`
