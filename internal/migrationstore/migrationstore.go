// Package migrationstore persists an audit trail of legacy-to-ethr
// identifier bindings published by the migration demo. It is a
// property of cmd/migrate, not of the core VDR client: the core stays
// transport/encoding-only and never writes to a database.
package migrationstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
)

var log = logger.New("internal.migrationstore")

// MappingType distinguishes the two legacy-mapping registry bindings
// a migration record can describe.
type MappingType string

const (
	MappingTypeDid      MappingType = "did"
	MappingTypeResource MappingType = "resource"
)

// MigrationRecord is one audited (legacy_id, new_id) binding.
type MigrationRecord struct {
	LegacyID    string
	NewID       string
	MappingType MappingType
	RecordedAt  time.Time
}

// Store records and retrieves MigrationRecord rows in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open creates the connection pool and verifies it against dsn. The
// caller must call Close when done.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("migrationstore: unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrationstore: unable to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate creates the migration_records table if it does not already
// exist. Demo-only schema management; no versioned migrations.
func (s *Store) Migrate(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS migration_records (
			id           BIGSERIAL PRIMARY KEY,
			legacy_id    TEXT NOT NULL,
			new_id       TEXT NOT NULL,
			mapping_type TEXT NOT NULL,
			recorded_at  TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrationstore: unable to create schema: %w", err)
	}
	return nil
}

// Record inserts a MigrationRecord row. RecordedAt is set to recordedAt
// as given by the caller rather than server time, so callers can stamp
// it deterministically in tests.
func (s *Store) Record(ctx context.Context, rec MigrationRecord) error {
	const query = `
		INSERT INTO migration_records (legacy_id, new_id, mapping_type, recorded_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.pool.Exec(ctx, query, rec.LegacyID, rec.NewID, string(rec.MappingType), rec.RecordedAt)
	if err != nil {
		return fmt.Errorf("migrationstore: unable to record mapping %s -> %s: %w", rec.LegacyID, rec.NewID, err)
	}
	log.Info("migration mapping recorded",
		logger.String("legacyId", rec.LegacyID),
		logger.String("newId", rec.NewID),
		logger.String("mappingType", string(rec.MappingType)))
	return nil
}

// ByLegacyID returns every recorded binding for a legacy identifier,
// most recent first.
func (s *Store) ByLegacyID(ctx context.Context, legacyID string) ([]MigrationRecord, error) {
	const query = `
		SELECT legacy_id, new_id, mapping_type, recorded_at
		FROM migration_records
		WHERE legacy_id = $1
		ORDER BY recorded_at DESC
	`
	rows, err := s.pool.Query(ctx, query, legacyID)
	if err != nil {
		return nil, fmt.Errorf("migrationstore: unable to query %s: %w", legacyID, err)
	}
	defer rows.Close()

	var records []MigrationRecord
	for rows.Next() {
		var rec MigrationRecord
		var mappingType string
		if err := rows.Scan(&rec.LegacyID, &rec.NewID, &mappingType, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("migrationstore: unable to scan row: %w", err)
		}
		rec.MappingType = MappingType(mappingType)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("migrationstore: error iterating rows: %w", err)
	}
	return records, nil
}

// Latest returns the most recent binding recorded for a legacy
// identifier, or pgx.ErrNoRows if none exists.
func (s *Store) Latest(ctx context.Context, legacyID string) (MigrationRecord, error) {
	const query = `
		SELECT legacy_id, new_id, mapping_type, recorded_at
		FROM migration_records
		WHERE legacy_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	var rec MigrationRecord
	var mappingType string
	err := s.pool.QueryRow(ctx, query, legacyID).Scan(&rec.LegacyID, &rec.NewID, &mappingType, &rec.RecordedAt)
	if err == pgx.ErrNoRows {
		return MigrationRecord{}, fmt.Errorf("migrationstore: no record for %s: %w", legacyID, err)
	}
	if err != nil {
		return MigrationRecord{}, fmt.Errorf("migrationstore: unable to query %s: %w", legacyID, err)
	}
	rec.MappingType = MappingType(mappingType)
	return rec, nil
}
