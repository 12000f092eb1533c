package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenacity/erp/internal/pkg/dberrors"
	"github.com/tenacity/erp/internal/pkg/logger"
)

const collectionsTable = "collections"

// PostgresStore keeps each collection as a JSONB row of the collections table
type PostgresStore struct {
	db  *pgxpool.Pool
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewPostgresStore creates a PostgresStore over an open pool
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db:  db,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		now: time.Now,
	}
}

func (s *PostgresStore) loadQuery(name string) (string, []interface{}, error) {
	return s.sb.Select("payload").
		From(collectionsTable).
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
}

func (s *PostgresStore) saveQuery(name string, payload []byte) (string, []interface{}, error) {
	return s.sb.Insert(collectionsTable).
		Columns("name", "payload", "updated_at").
		Values(name, payload, s.now().UTC()).
		Suffix("ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
}

// Load reads the payload of one collection
func (s *PostgresStore) Load(ctx context.Context, name string) ([]byte, error) {
	sql, args, err := s.loadQuery(name)
	if err != nil {
		logger.Error().Err(err).Msg("Error building load collection SQL")
		return nil, fmt.Errorf("failed to build load collection query: %w", err)
	}

	var payload []byte
	err = s.db.QueryRow(ctx, sql, args...).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("load %s: %w", name, ErrCollectionNotFound)
		}
		if dberrors.IsUndefinedTable(err) {
			return nil, fmt.Errorf("load %s: %s table is missing, run the migrations: %w", name, collectionsTable, err)
		}
		logger.Error().Err(err).Str("collection", name).Msg("Error scanning collection row")
		return nil, fmt.Errorf("error loading collection %s: %w", name, err)
	}
	return payload, nil
}

// Save upserts the payload of one collection
func (s *PostgresStore) Save(ctx context.Context, name string, payload []byte) error {
	sql, args, err := s.saveQuery(name, payload)
	if err != nil {
		logger.Error().Err(err).Msg("Error building save collection SQL")
		return fmt.Errorf("failed to build save collection query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("collection", name).Msg("Error executing save collection query")
		return fmt.Errorf("error saving collection %s: %w", name, err)
	}
	return nil
}

// Ping checks the pool
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the pool
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
