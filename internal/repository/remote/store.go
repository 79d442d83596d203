package remote

import (
	"sync"
	"time"

	todosdomain "todo-app-go/internal/domain/todos"
	"todo-app-go/internal/executor"
	"todo-app-go/pkg/logger"
	"todo-app-go/pkg/ordered"
)

// DefaultLatency emulates a network round trip.
const DefaultLatency = 5 * time.Second

// Store stands in for a server-side task API. Writes change the server state
// immediately; reads are answered after a fixed latency on the network lane and
// delivered on the main lane. It never reports a full list as unavailable; a real
// backend would do so when the server cannot be reached.
type Store struct {
	lanes   *executor.Lanes
	latency time.Duration
	log     logger.Logger

	mu    sync.Mutex
	tasks *ordered.Map[string, todosdomain.Item]
}

var _ todosdomain.Store = (*Store)(nil)

func New(lanes *executor.Lanes, latency time.Duration, log logger.Logger) *Store {
	if latency < 0 {
		latency = 0
	}
	return &Store{
		lanes:   lanes,
		latency: latency,
		log:     logger.Component(log, "remote_store"),
		tasks:   ordered.NewMap[string, todosdomain.Item](),
	}
}

// Seed preloads server state.
func (s *Store) Seed(items ...todosdomain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.tasks.Set(item.ID, item)
	}
	s.log.Info("remote: seeded", "count", len(items))
}

func (s *Store) ListItems(callback todosdomain.LoadItemsCallback) {
	s.mu.Lock()
	items := s.tasks.Values()
	s.mu.Unlock()

	s.respond(func() {
		callback(items, nil)
	})
}

func (s *Store) GetItem(itemID string, callback todosdomain.GetItemCallback) {
	s.mu.Lock()
	item, ok := s.tasks.Get(itemID)
	s.mu.Unlock()

	s.respond(func() {
		if !ok {
			callback(todosdomain.Item{}, todosdomain.ErrDataNotAvailable)
			return
		}
		callback(item, nil)
	})
}

func (s *Store) SaveItem(item todosdomain.Item) {
	s.put(item)
}

func (s *Store) CompleteItem(item todosdomain.Item) {
	s.put(item.WithCompleted(true))
}

// CompleteItemByID is a no-op: the Repository resolves ids to items.
func (s *Store) CompleteItemByID(string) {}

func (s *Store) ActivateItem(item todosdomain.Item) {
	s.put(item.WithCompleted(false))
}

// ActivateItemByID is a no-op: the Repository resolves ids to items.
func (s *Store) ActivateItemByID(string) {}

func (s *Store) ClearCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Filter(todosdomain.Item.Active)
}

// Refresh is a no-op: refreshing is the Repository's concern.
func (s *Store) Refresh() {}

func (s *Store) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Clear()
}

func (s *Store) DeleteItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Delete(itemID)
}

// Len reports how many tasks the server holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Len()
}

func (s *Store) put(item todosdomain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Set(item.ID, item)
}

func (s *Store) respond(deliver func()) {
	s.lanes.NetworkIO.Execute(func() {
		if s.latency > 0 {
			time.Sleep(s.latency)
		}
		s.lanes.MainThread.Execute(deliver)
	})
}
