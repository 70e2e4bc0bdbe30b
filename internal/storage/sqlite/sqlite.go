// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver. The pragma is applied to every pooled
	// connection so concurrent writers wait on a locked database instead of failing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = `SELECT id, title, description, checked, status, due_date, created_at, updated_at FROM todo_items`

// Get retrieves a todo item by ID.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*models.TodoItem, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil // Item not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo item: %w", err)
	}
	return item, nil
}

// GetByTitle retrieves all todo items with the given title.
func (s *SQLiteStore) GetByTitle(ctx context.Context, title string) ([]*models.TodoItem, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE title = ? ORDER BY id", title)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo items by title: %w", err)
	}
	return collect(rows)
}

// List retrieves all todo items in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]*models.TodoItem, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list todo items: %w", err)
	}
	return collect(rows)
}

// Put inserts a new item or replaces an existing one.
func (s *SQLiteStore) Put(ctx context.Context, item *models.TodoItem) error {
	now := time.Now().Unix()
	item.UpdatedAt = now

	if item.ID == 0 {
		if item.CreatedAt == 0 {
			item.CreatedAt = now
		}
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO todo_items (title, description, checked, status, due_date, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.Title, item.Description, item.Checked, string(item.Status), dueDateValue(item.DueDate),
			item.CreatedAt, item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert todo item: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted id: %w", err)
		}
		item.ID = id
		return nil
	}

	// created_at is owned by the row; reflect it back to the caller
	err := s.db.QueryRowContext(ctx,
		`UPDATE todo_items SET title = ?, description = ?, checked = ?, status = ?, due_date = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING created_at`,
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
func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todo_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete todo item: %w", err)
	}
	return nil
}

// DeleteByTitle removes all todo items with the given title.
func (s *SQLiteStore) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todo_items WHERE title = ?", title)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todo items by title: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.TodoItem, error) {
	item := &models.TodoItem{}
	var status string
	var due sql.NullString
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Checked, &status, &due,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Status = models.Status(status)
	if due.Valid {
		t, err := time.Parse(time.RFC3339Nano, due.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse due date %q: %w", due.String, err)
		}
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
	return t.UTC().Format(time.RFC3339Nano)
}
