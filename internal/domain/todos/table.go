package todos

import "context"

// Table is the durable query surface behind the local store, keyed by item id.
type Table interface {
	SelectAll(ctx context.Context) ([]Item, error)
	// SelectByID returns ErrItemNotFound when the row is absent.
	SelectByID(ctx context.Context, itemID string) (*Item, error)
	Upsert(ctx context.Context, item Item) error
	UpdateCompleted(ctx context.Context, itemID string, completed bool) error
	DeleteByID(ctx context.Context, itemID string) (bool, error)
	DeleteAll(ctx context.Context) error
	DeleteCompleted(ctx context.Context) (int64, error)
}
