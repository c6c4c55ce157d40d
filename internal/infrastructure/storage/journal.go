package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"HomeworkWatcher/internal/ports"
)

const deliveriesTable = "deliveries"

const schema = `CREATE TABLE IF NOT EXISTS deliveries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    cycle_id TEXT NOT NULL,
    message TEXT NOT NULL,
    delivered INTEGER NOT NULL,
    error TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
)`

// SQLiteJournal appends delivery attempts to a local SQLite file.
type SQLiteJournal struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.Journal = (*SQLiteJournal)(nil)

// OpenJournal creates the database file and schema when missing.
func OpenJournal(ctx context.Context, path string) (*SQLiteJournal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteJournal{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Record inserts one delivery attempt.
func (j *SQLiteJournal) Record(ctx context.Context, d ports.Delivery) error {
	if j == nil || j.db == nil {
		return nil
	}

	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := j.builder.
		Insert(deliveriesTable).
		Columns("cycle_id", "message", "delivered", "error", "created_at").
		Values(d.CycleID, d.Message, d.Delivered, d.Error, createdAt.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Count returns the number of recorded attempts, optionally only the delivered ones.
func (j *SQLiteJournal) Count(ctx context.Context, deliveredOnly bool) (int, error) {
	if j == nil || j.db == nil {
		return 0, nil
	}

	stmt := j.builder.Select("COUNT(*)").From(deliveriesTable)
	if deliveredOnly {
		stmt = stmt.Where(sq.Eq{"delivered": true})
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := j.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count deliveries: %w", err)
	}
	return n, nil
}

// Recent returns the newest attempts first, at most limit rows.
func (j *SQLiteJournal) Recent(ctx context.Context, limit uint64) ([]ports.Delivery, error) {
	if j == nil || j.db == nil {
		return nil, nil
	}

	query, args, err := j.builder.
		Select("cycle_id", "message", "delivered", "error", "created_at").
		From(deliveriesTable).
		OrderBy("id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}

	var result []ports.Delivery
	for rows.Next() {
		var (
			d         ports.Delivery
			createdAt string
		)
		if err := rows.Scan(&d.CycleID, &d.Message, &d.Delivered, &d.Error, &createdAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			d.CreatedAt = parsed
		}
		result = append(result, d)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// Close closes the underlying database connection.
func (j *SQLiteJournal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
