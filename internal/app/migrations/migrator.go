package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/tenacity/erp/internal/db"
	"github.com/tenacity/erp/internal/pkg/dberrors"
	"github.com/tenacity/erp/internal/pkg/logger"
)

const migrationsTable = "schema_migrations"

// Migration is one SQL file of the migrations directory
type Migration struct {
	Version string
	Path    string
}

// Migrator applies SQL migrations to the collection store database
type Migrator struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMigrator creates a new migrator
func NewMigrator(database *db.PostgresDB) *Migrator {
	return &Migrator{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedQuery(version string) (string, []interface{}, error) {
	return m.sb.Select("1").
		Prefix("SELECT EXISTS(").
		From(migrationsTable).
		Where(squirrel.Eq{"version": version}).
		Suffix(")").
		ToSql()
}

func (m *Migrator) recordQuery(version string, at time.Time) (string, []interface{}, error) {
	return m.sb.Insert(migrationsTable).
		Columns("version", "applied_at").
		Values(version, at).
		ToSql()
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	sql, args, err := m.appliedQuery(version)
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}

	var exists bool
	if err := m.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Apply runs one migration inside a transaction unless it was applied before
func (m *Migrator) Apply(ctx context.Context, mig Migration) error {
	applied, err := m.isMigrationApplied(ctx, mig.Version)
	if err != nil {
		return err
	}
	if applied {
		logger.Debug().Str("version", mig.Version).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := os.ReadFile(mig.Path)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration execution: %w", err)
		}
		sql, args, err := m.recordQuery(mig.Version, time.Now())
		if err != nil {
			return fmt.Errorf("failed to build record migration query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if dberrors.IsDuplicateConstraintError(err, migrationsTable+"_pkey") {
		// Another instance applied it concurrently; its transaction won
		logger.Info().Str("version", mig.Version).Msg("Migration applied by another instance")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info().Str("version", mig.Version).Str("file", mig.Path).Msg("Migration applied")
	return nil
}

// MigrateFromDirectory applies every pending SQL file in dirPath in version order
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	migrations, err := Discover(dirPath)
	if err != nil {
		return err
	}

	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	for _, mig := range migrations {
		if err := m.Apply(ctx, mig); err != nil {
			return fmt.Errorf("migration %s: %w", mig.Version, err)
		}
	}
	return nil
}

// Discover lists the SQL files of dirPath sorted by name. The version is the
// file name prefix before the first underscore ("001_init.sql" => "001").
func Discover(dirPath string) ([]Migration, error) {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		migrations = append(migrations, Migration{
			Version: strings.Split(name, "_")[0],
			Path:    filepath.Join(dirPath, name),
		})
	}
	return migrations, nil
}
