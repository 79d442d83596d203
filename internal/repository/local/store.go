package local

import (
	"context"
	"errors"

	todosdomain "todo-app-go/internal/domain/todos"
	"todo-app-go/internal/executor"
	"todo-app-go/pkg/logger"
)

// Store serves durable state from a Table. Reads and writes run on the disk lane and
// results are delivered on the main lane. An empty table or a missing row is reported
// as ErrDataNotAvailable; the store cannot tell "absent" from "not loaded yet".
type Store struct {
	table todosdomain.Table
	lanes *executor.Lanes
	log   logger.Logger
}

var _ todosdomain.Store = (*Store)(nil)

func New(table todosdomain.Table, lanes *executor.Lanes, log logger.Logger) *Store {
	return &Store{
		table: table,
		lanes: lanes,
		log:   logger.Component(log, "local_store"),
	}
}

func (s *Store) ListItems(callback todosdomain.LoadItemsCallback) {
	s.lanes.DiskIO.Execute(func() {
		items, err := s.table.SelectAll(context.Background())
		if err != nil {
			s.log.InternalError("local: select all failed", err)
		}

		s.lanes.MainThread.Execute(func() {
			if err != nil || len(items) == 0 {
				callback(nil, todosdomain.ErrDataNotAvailable)
				return
			}
			callback(items, nil)
		})
	})
}

func (s *Store) GetItem(itemID string, callback todosdomain.GetItemCallback) {
	s.lanes.DiskIO.Execute(func() {
		item, err := s.table.SelectByID(context.Background(), itemID)
		if err != nil && !errors.Is(err, todosdomain.ErrItemNotFound) {
			s.log.InternalError("local: select by id failed", err, "task_id", itemID)
		}

		s.lanes.MainThread.Execute(func() {
			if err != nil || item == nil {
				callback(todosdomain.Item{}, todosdomain.ErrDataNotAvailable)
				return
			}
			callback(*item, nil)
		})
	})
}

func (s *Store) SaveItem(item todosdomain.Item) {
	s.write("local: upsert failed", func(ctx context.Context) error {
		return s.table.Upsert(ctx, item)
	}, "task_id", item.ID)
}

func (s *Store) CompleteItem(item todosdomain.Item) {
	s.write("local: complete failed", func(ctx context.Context) error {
		return s.table.UpdateCompleted(ctx, item.ID, true)
	}, "task_id", item.ID)
}

// CompleteItemByID is a no-op: the Repository resolves ids to items.
func (s *Store) CompleteItemByID(string) {}

func (s *Store) ActivateItem(item todosdomain.Item) {
	s.write("local: activate failed", func(ctx context.Context) error {
		return s.table.UpdateCompleted(ctx, item.ID, false)
	}, "task_id", item.ID)
}

// ActivateItemByID is a no-op: the Repository resolves ids to items.
func (s *Store) ActivateItemByID(string) {}

func (s *Store) ClearCompleted() {
	s.write("local: delete completed failed", func(ctx context.Context) error {
		removed, err := s.table.DeleteCompleted(ctx)
		if err == nil {
			s.log.Debug("local: completed tasks cleared", "count", removed)
		}
		return err
	})
}

// Refresh is a no-op: refreshing is the Repository's concern.
func (s *Store) Refresh() {}

func (s *Store) DeleteAll() {
	s.write("local: delete all failed", s.table.DeleteAll)
}

func (s *Store) DeleteItem(itemID string) {
	s.write("local: delete failed", func(ctx context.Context) error {
		_, err := s.table.DeleteByID(ctx, itemID)
		return err
	}, "task_id", itemID)
}

// write runs a mutation on the disk lane. Failures are logged and otherwise lost.
func (s *Store) write(message string, op func(ctx context.Context) error, args ...any) {
	s.lanes.DiskIO.Execute(func() {
		if err := op(context.Background()); err != nil {
			s.log.InternalError(message, err, args...)
		}
	})
}
