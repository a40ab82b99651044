package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"calpipe/refmatch/pkg/usage"
)

// SQLiteConfig contains configuration for the SQLite usage index.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/usage.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the usage.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite usage index.
// It initializes the schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "usage.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, usage.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite usage index initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets up the schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return usage.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return usage.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return usage.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return usage.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return usage.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return usage.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a batch of usage records in one transaction.
func (s *SQLiteStorage) Store(ctx context.Context, records []*usage.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return usage.NewStorageError("sqlite", "store", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO usage_records (id, reference, mapping, kind, instrument, filekind, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return usage.NewStorageError("sqlite", "store", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.ExecContext(ctx,
			record.ID, record.Reference, record.Mapping, record.Kind,
			record.Instrument, record.Filekind, record.IndexedAt,
		)
		if err != nil {
			return usage.NewStorageError("sqlite", "store", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return usage.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// ByReference returns the records mentioning the given file basename,
// ordered by mapping name.
func (s *SQLiteStorage) ByReference(ctx context.Context, reference string) ([]*usage.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reference, mapping, kind, instrument, filekind, indexed_at
		FROM usage_records
		WHERE reference = ?
		ORDER BY mapping
	`, reference)
	if err != nil {
		return nil, usage.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*usage.Record{}
	for rows.Next() {
		var record usage.Record
		err := rows.Scan(
			&record.ID, &record.Reference, &record.Mapping, &record.Kind,
			&record.Instrument, &record.Filekind, &record.IndexedAt,
		)
		if err != nil {
			return nil, usage.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, usage.NewStorageError("sqlite", "query", err)
	}
	return records, nil
}

// Count returns the total number of records in the index.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM usage_records").Scan(&count)
	if err != nil {
		return 0, usage.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Clear removes all records.
func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM usage_records"); err != nil {
		return usage.NewStorageError("sqlite", "clear", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return usage.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite usage index closed")
	return nil
}
