package todos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	todosdomain "todo-app-go/internal/domain/todos"
)

type PostgresTable struct {
	db *gorm.DB
}

var _ todosdomain.Table = (*PostgresTable)(nil)

func NewPostgres(db *gorm.DB) *PostgresTable {
	return &PostgresTable{db: db}
}

func (r *PostgresTable) SelectAll(ctx context.Context) ([]todosdomain.Item, error) {
	var items []todosdomain.Item
	if err := r.db.WithContext(ctx).
		Order("created_seq asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresTable) SelectByID(ctx context.Context, itemID string) (*todosdomain.Item, error) {
	var item todosdomain.Item
	if err := r.db.WithContext(ctx).
		Where("entryid = ?", itemID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, todosdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresTable) Upsert(ctx context.Context, item todosdomain.Item) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entryid"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "completed"}),
		}).
		Create(&item).Error
}

func (r *PostgresTable) UpdateCompleted(ctx context.Context, itemID string, completed bool) error {
	return r.db.WithContext(ctx).
		Model(&todosdomain.Item{}).
		Where("entryid = ?", itemID).
		Update("completed", completed).Error
}

func (r *PostgresTable) DeleteByID(ctx context.Context, itemID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&todosdomain.Item{}, "entryid = ?", itemID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresTable) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&todosdomain.Item{}).Error
}

func (r *PostgresTable) DeleteCompleted(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&todosdomain.Item{}, "completed = ?", true)
	return result.RowsAffected, result.Error
}
