package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	todosdomain "todo-app-go/internal/domain/todos"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	entryid TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0
);`

// SQLiteTable stores tasks in a single SQLite table. Rows come back in insertion order.
type SQLiteTable struct {
	db *sql.DB
}

var _ todosdomain.Table = (*SQLiteTable)(nil)

func NewSQLite(db *sql.DB) (*SQLiteTable, error) {
	if _, err := db.Exec(createTasksTable); err != nil {
		return nil, fmt.Errorf("create tasks table: %w", err)
	}
	return &SQLiteTable{db: db}, nil
}

func (t *SQLiteTable) SelectAll(ctx context.Context) ([]todosdomain.Item, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT entryid, title, description, completed FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var items []todosdomain.Item
	for rows.Next() {
		var (
			item      todosdomain.Item
			completed int
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		item.Completed = completed == 1
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return items, nil
}

func (t *SQLiteTable) SelectByID(ctx context.Context, itemID string) (*todosdomain.Item, error) {
	var (
		item      todosdomain.Item
		completed int
	)
	err := t.db.QueryRowContext(ctx,
		`SELECT entryid, title, description, completed FROM tasks WHERE entryid = ?`, itemID,
	).Scan(&item.ID, &item.Title, &item.Description, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, todosdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query task: %w", err)
	}
	item.Completed = completed == 1
	return &item, nil
}

// Upsert replaces the whole row. The row keeps its position when it already exists.
func (t *SQLiteTable) Upsert(ctx context.Context, item todosdomain.Item) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO tasks (entryid, title, description, completed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entryid) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			completed = excluded.completed`,
		item.ID, item.Title, item.Description, boolToInt(item.Completed),
	)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

func (t *SQLiteTable) UpdateCompleted(ctx context.Context, itemID string, completed bool) error {
	if _, err := t.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE entryid = ?`, boolToInt(completed), itemID); err != nil {
		return fmt.Errorf("update task completion: %w", err)
	}
	return nil
}

func (t *SQLiteTable) DeleteByID(ctx context.Context, itemID string) (bool, error) {
	result, err := t.db.ExecContext(ctx, `DELETE FROM tasks WHERE entryid = ?`, itemID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (t *SQLiteTable) DeleteAll(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

func (t *SQLiteTable) DeleteCompleted(ctx context.Context) (int64, error) {
	result, err := t.db.ExecContext(ctx, `DELETE FROM tasks WHERE completed = 1`)
	if err != nil {
		return 0, fmt.Errorf("delete completed tasks: %w", err)
	}
	return result.RowsAffected()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
