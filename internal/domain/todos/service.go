package todos

import (
	"context"
	"errors"
	"strings"
)

// Dispatcher runs work on the lane that owns the Repository.
type Dispatcher interface {
	Execute(task func())
}

// Service exposes the Repository to callers that live outside the main lane, such as
// HTTP handlers. Reads block until the repository delivers or ctx is done; a delivery
// that arrives after ctx is done is discarded.
type Service struct {
	repo Store
	main Dispatcher
}

func NewService(repo Store, main Dispatcher) *Service {
	return &Service{repo: repo, main: main}
}

type outcome[T any] struct {
	value T
	err   error
}

func await[T any](ctx context.Context, main Dispatcher, run func(deliver func(T, error))) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	results := make(chan outcome[T], 1)
	main.Execute(func() {
		run(func(value T, err error) {
			results <- outcome[T]{value: value, err: err}
		})
	})

	select {
	case res := <-results:
		return res.value, res.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (s *Service) dispatch(ctx context.Context, task func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.main.Execute(task)
	return nil
}

// ListItems returns ErrDataNotAvailable when neither store has anything.
func (s *Service) ListItems(ctx context.Context, filter Filter) ([]Item, error) {
	items, err := await(ctx, s.main, func(deliver func([]Item, error)) {
		s.repo.ListItems(LoadItemsCallback(deliver))
	})
	if err != nil {
		return nil, err
	}

	result := make([]Item, 0, len(items))
	for _, item := range items {
		if filter.Match(item) {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *Service) GetItem(ctx context.Context, itemID string) (*Item, error) {
	item, err := await(ctx, s.main, func(deliver func(Item, error)) {
		s.repo.GetItem(itemID, GetItemCallback(deliver))
	})
	if err != nil {
		if errors.Is(err, ErrDataNotAvailable) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*Item, error) {
	item := NewItem(strings.TrimSpace(input.Title), strings.TrimSpace(input.Description))
	if item.IsEmpty() {
		return nil, ErrEmptyItem
	}

	if err := s.dispatch(ctx, func() { s.repo.SaveItem(item) }); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces title and description of an existing item and keeps its
// completion flag.
func (s *Service) UpdateItem(ctx context.Context, itemID string, input UpdateItemInput) (*Item, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" && description == "" {
		return nil, ErrEmptyItem
	}

	return s.mutate(ctx, itemID, func(existing Item) Item {
		updated := Item{
			ID:          existing.ID,
			Title:       title,
			Description: description,
			Completed:   existing.Completed,
		}
		s.repo.SaveItem(updated)
		return updated
	})
}

func (s *Service) CompleteItem(ctx context.Context, itemID string) (*Item, error) {
	return s.mutate(ctx, itemID, func(existing Item) Item {
		s.repo.CompleteItemByID(existing.ID)
		return existing.WithCompleted(true)
	})
}

func (s *Service) ActivateItem(ctx context.Context, itemID string) (*Item, error) {
	return s.mutate(ctx, itemID, func(existing Item) Item {
		s.repo.ActivateItemByID(existing.ID)
		return existing.WithCompleted(false)
	})
}

// mutate resolves the item first so the by-id repository calls find it in the cache.
func (s *Service) mutate(ctx context.Context, itemID string, apply func(Item) Item) (*Item, error) {
	item, err := await(ctx, s.main, func(deliver func(Item, error)) {
		s.repo.GetItem(itemID, func(existing Item, err error) {
			if err != nil {
				deliver(Item{}, ErrItemNotFound)
				return
			}
			deliver(apply(existing), nil)
		})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) ClearCompleted(ctx context.Context) error {
	return s.dispatch(ctx, s.repo.ClearCompleted)
}

func (s *Service) Refresh(ctx context.Context) error {
	return s.dispatch(ctx, s.repo.Refresh)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.dispatch(ctx, s.repo.DeleteAll)
}

func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	return s.dispatch(ctx, func() { s.repo.DeleteItem(itemID) })
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.ListItems(ctx, FilterAll)
	if err != nil {
		if errors.Is(err, ErrDataNotAvailable) {
			return Stats{}, nil
		}
		return Stats{}, err
	}

	var stats Stats
	for _, item := range items {
		if item.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
	}
	return stats, nil
}
