// Package sqlite сохраняет выгрузку журнала доступа в локальный файл SQLite
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Storage - файл выгрузки
type Storage struct {
	db *sql.DB
}

// New открывает (или создает) файл выгрузки и применяет миграции.
// ":memory:" подходит для тестов.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Один писатель: выгрузка однопоточная, а :memory: живет в одном соединении
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Storage{db: db}
	if err := s.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func (s *Storage) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}

// SaveAccessRecords записывает записи журнала. Повторная выгрузка обновляет строки по record_id.
func (s *Storage) SaveAccessRecords(ctx context.Context, records []pkgapi.AccessRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO access_records
			(record_id, user_id, username, resource, ip_address, device_info, access_time, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(record_id) DO UPDATE SET
			user_id = excluded.user_id,
			username = excluded.username,
			resource = excluded.resource,
			ip_address = excluded.ip_address,
			device_info = excluded.device_info,
			access_time = excluded.access_time,
			exported_at = excluded.exported_at`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	exportedAt := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		username := ""
		if r.User != nil {
			username = r.User.Username
		}
		if _, err := stmt.ExecContext(ctx,
			r.RecordID, r.UserID, username, r.Resource, r.IPAddress, r.DeviceInfo,
			r.AccessTime.UTC().Format(time.RFC3339), exportedAt,
		); err != nil {
			return 0, fmt.Errorf("failed to save record %d: %w", r.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return len(records), nil
}

// Count возвращает число записей в выгрузке
func (s *Storage) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM access_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Resources возвращает число обращений по разделам, по убыванию
func (s *Storage) Resources(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT resource, COUNT(*) FROM access_records GROUP BY resource ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			resource string
			n        int64
		)
		if err := rows.Scan(&resource, &n); err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		out[resource] = n
	}
	return out, rows.Err()
}
