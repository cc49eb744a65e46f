package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/signbridge/internal/gesture"
	sqlitemigrate "github.com/louisbranch/signbridge/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/signbridge/internal/services/phrases/storage"
	"github.com/louisbranch/signbridge/internal/services/phrases/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for the phrase catalog.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a phrase SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(context.Background(), s.sqlDB, migrations.FS, "")
}

// PutPhrase upserts one phrase catalog row keyed by the canonical phrase key.
func (s *Store) PutPhrase(ctx context.Context, record storage.PhraseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizePhraseRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO phrases (
		key, display_name, steps_json, notes, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		display_name = excluded.display_name,
		steps_json = excluded.steps_json,
		notes = excluded.notes,
		updated_at = excluded.updated_at
	`,
		normalized.Key,
		normalized.DisplayName,
		normalized.StepsJSON,
		normalized.Notes,
		toMillis(normalized.CreatedAt),
		toMillis(normalized.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put phrase: %w", err)
	}
	return nil
}

// GetPhraseByKey loads one phrase row by canonical key.
func (s *Store) GetPhraseByKey(ctx context.Context, key string) (storage.PhraseRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.PhraseRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PhraseRecord{}, fmt.Errorf("storage is not configured")
	}
	canonical := gesture.CanonicalKey(key)
	if canonical == "" {
		return storage.PhraseRecord{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT key, display_name, steps_json, notes, created_at, updated_at
FROM phrases
WHERE key = ?
`, canonical)
	record, err := scanPhrase(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PhraseRecord{}, storage.ErrNotFound
		}
		return storage.PhraseRecord{}, fmt.Errorf("get phrase by key: %w", err)
	}
	return record, nil
}

// ListPhrases lists every phrase row sorted by key.
func (s *Store) ListPhrases(ctx context.Context) ([]storage.PhraseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT key, display_name, steps_json, notes, created_at, updated_at
FROM phrases
ORDER BY key ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	defer rows.Close()

	var records []storage.PhraseRecord
	for rows.Next() {
		record, scanErr := scanPhrase(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan phrase row: %w", scanErr)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phrase rows: %w", err)
	}
	return records, nil
}

// CountPhrases returns how many phrase rows the store holds.
func (s *Store) CountPhrases(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(1) FROM phrases").Scan(&count); err != nil {
		return 0, fmt.Errorf("count phrases: %w", err)
	}
	return count, nil
}

type scanner func(dest ...any) error

func normalizePhraseRecord(record storage.PhraseRecord) (storage.PhraseRecord, error) {
	record.Key = gesture.CanonicalKey(record.Key)
	record.DisplayName = strings.TrimSpace(record.DisplayName)
	record.StepsJSON = strings.TrimSpace(record.StepsJSON)
	record.Notes = strings.TrimSpace(record.Notes)
	if record.Key == "" {
		return storage.PhraseRecord{}, fmt.Errorf("phrase key is required")
	}
	if record.DisplayName == "" {
		return storage.PhraseRecord{}, fmt.Errorf("phrase display name is required")
	}
	if record.StepsJSON == "" {
		return storage.PhraseRecord{}, fmt.Errorf("phrase steps are required")
	}
	if record.CreatedAt.IsZero() {
		return storage.PhraseRecord{}, fmt.Errorf("created_at is required")
	}
	if record.UpdatedAt.IsZero() {
		return storage.PhraseRecord{}, fmt.Errorf("updated_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return record, nil
}

func scanPhrase(scan scanner) (storage.PhraseRecord, error) {
	var record storage.PhraseRecord
	var createdAt int64
	var updatedAt int64
	if err := scan(
		&record.Key,
		&record.DisplayName,
		&record.StepsJSON,
		&record.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.PhraseRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "unique constraint failed")
}
