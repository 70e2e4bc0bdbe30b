// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// Ensure PostgresStore implements storage.Store
var _ storage.Store = (*PostgresStore)(nil)

const driverName = "pgx"

const schema = `
CREATE TABLE IF NOT EXISTS todo_items (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    checked BOOLEAN NOT NULL DEFAULT FALSE,
    status TEXT NOT NULL DEFAULT 'TODO',
    due_date TIMESTAMPTZ,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todo_items_title ON todo_items(title);
`

const selectColumns = `SELECT id, title, description, checked, status, due_date, created_at, updated_at FROM todo_items`

// PostgresStore implements storage.Store on top of pgx's database/sql driver.
type PostgresStore struct {
	db *sql.DB
}

// New connects to dsn, verifies the connection and applies the schema.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying pool for test setup and teardown.
func (s *PostgresStore) DB() *sql.DB { return s.db }

// Get retrieves a todo item by ID.
func (s *PostgresStore) Get(ctx context.Context, id int64) (*models.TodoItem, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo item: %w", err)
	}
	return item, nil
}

// GetByTitle retrieves all todo items with the given title.
func (s *PostgresStore) GetByTitle(ctx context.Context, title string) ([]*models.TodoItem, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE title = $1 ORDER BY id", title)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo items by title: %w", err)
	}
	return collect(rows)
}

// List retrieves all todo items in insertion order.
func (s *PostgresStore) List(ctx context.Context) ([]*models.TodoItem, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list todo items: %w", err)
	}
	return collect(rows)
}

// Put inserts a new item or replaces an existing one.
func (s *PostgresStore) Put(ctx context.Context, item *models.TodoItem) error {
	now := time.Now().Unix()
	item.UpdatedAt = now

	if item.ID == 0 {
		if item.CreatedAt == 0 {
			item.CreatedAt = now
		}
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO todo_items (title, description, checked, status, due_date, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			item.Title, item.Description, item.Checked, string(item.Status), dueDateValue(item.DueDate),
			item.CreatedAt, item.UpdatedAt,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert todo item: %w", err)
		}
		return nil
	}

	err := s.db.QueryRowContext(ctx,
		`UPDATE todo_items SET title = $1, description = $2, checked = $3, status = $4, due_date = $5, updated_at = $6
		 WHERE id = $7 RETURNING created_at`,
		item.Title, item.Description, item.Checked, string(item.Status), dueDateValue(item.DueDate),
		item.UpdatedAt, item.ID,
	).Scan(&item.CreatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("todo item not found: %d", item.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update todo item: %w", err)
	}
	return nil
}

// DeleteByID removes a todo item by ID.
func (s *PostgresStore) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todo_items WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete todo item: %w", err)
	}
	return nil
}

// DeleteByTitle removes all todo items with the given title.
func (s *PostgresStore) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todo_items WHERE title = $1", title)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todo items by title: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}
	return n, nil
}

func scanItem(row interface{ Scan(dest ...any) error }) (*models.TodoItem, error) {
	item := &models.TodoItem{}
	var status string
	var due sql.NullTime
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Checked, &status, &due,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Status = models.Status(status)
	if due.Valid {
		t := due.Time.UTC()
		item.DueDate = &t
	}
	return item, nil
}

func collect(rows *sql.Rows) ([]*models.TodoItem, error) {
	defer rows.Close()

	var items []*models.TodoItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todo items: %w", err)
	}
	return items, nil
}

func dueDateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
