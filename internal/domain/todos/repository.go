package todos

import (
	"todo-app-go/pkg/idling"
	"todo-app-go/pkg/logger"
)

// Repository keeps an in-memory cache coherent with a local and a remote Store. Reads
// are served from the cache when it is trusted, then from the local store, then from the
// remote store. Writes are reflected in the cache first and then written through to both
// stores.
//
// A Repository is confined to the main lane: every method and every callback it receives
// runs there, which is why the cache needs no lock. Cache hits are delivered
// synchronously.
type Repository struct {
	remote Store
	local  Store
	idle   *idling.Resource
	log    logger.Logger

	cache *itemCache
}

var _ Store = (*Repository)(nil)

func NewRepository(remote, local Store, idle *idling.Resource, log logger.Logger) *Repository {
	if idle == nil {
		idle = idling.New("GLOBAL")
	}
	return &Repository{
		remote: remote,
		local:  local,
		idle:   idle,
		log:    logger.Component(log, "todos_repository"),
		cache:  newItemCache(),
	}
}

// ListItems reports ErrDataNotAvailable only when both stores have nothing.
func (r *Repository) ListItems(callback LoadItemsCallback) {
	if r.cache.usable() {
		callback(r.cache.snapshot(), nil)
		return
	}

	r.idle.Increment()

	if r.cache.dirty {
		r.listFromRemote(callback)
		return
	}

	r.local.ListItems(func(items []Item, err error) {
		if err != nil {
			r.log.Debug("todos: local list unavailable, querying remote")
			r.listFromRemote(callback)
			return
		}

		r.cache.replace(items)
		r.idle.Decrement()
		callback(r.cache.snapshot(), nil)
	})
}

func (r *Repository) GetItem(itemID string, callback GetItemCallback) {
	if cached, ok := r.cache.get(itemID); ok {
		callback(cached, nil)
		return
	}

	r.idle.Increment()

	r.local.GetItem(itemID, func(item Item, err error) {
		if err == nil {
			cached := r.cache.put(item)
			r.idle.Decrement()
			callback(cached, nil)
			return
		}

		r.remote.GetItem(itemID, func(item Item, err error) {
			if err != nil {
				r.idle.Decrement()
				callback(Item{}, ErrDataNotAvailable)
				return
			}

			cached := r.cache.put(item)
			r.idle.Decrement()
			callback(cached, nil)
		})
	})
}

func (r *Repository) SaveItem(item Item) {
	cached := r.cache.put(item)
	r.local.SaveItem(cached)
	r.remote.SaveItem(cached)
}

func (r *Repository) CompleteItem(item Item) {
	cached := r.cache.put(item.WithCompleted(true))
	r.local.CompleteItem(cached)
	r.remote.CompleteItem(cached)
}

// CompleteItemByID only acts on ids already seen through a list or get.
func (r *Repository) CompleteItemByID(itemID string) {
	if item, ok := r.cache.get(itemID); ok {
		r.CompleteItem(item)
	}
}

func (r *Repository) ActivateItem(item Item) {
	cached := r.cache.put(item.WithCompleted(false))
	r.local.ActivateItem(cached)
	r.remote.ActivateItem(cached)
}

// ActivateItemByID only acts on ids already seen through a list or get.
func (r *Repository) ActivateItemByID(itemID string) {
	if item, ok := r.cache.get(itemID); ok {
		r.ActivateItem(item)
	}
}

func (r *Repository) ClearCompleted() {
	r.local.ClearCompleted()
	r.remote.ClearCompleted()
	r.cache.dropCompleted()
}

// Refresh marks the cache stale so the next ListItems goes to the remote store.
func (r *Repository) Refresh() {
	r.cache.dirty = true
}

func (r *Repository) DeleteAll() {
	r.local.DeleteAll()
	r.remote.DeleteAll()
	r.cache.clear()
}

func (r *Repository) DeleteItem(itemID string) {
	r.local.DeleteItem(itemID)
	r.remote.DeleteItem(itemID)
	r.cache.remove(itemID)
}

// CacheSize and IsDirty expose cache state for diagnostics; call them on the main lane.
func (r *Repository) CacheSize() int {
	return r.cache.items.Len()
}

func (r *Repository) IsDirty() bool {
	return r.cache.dirty
}

func (r *Repository) listFromRemote(callback LoadItemsCallback) {
	r.remote.ListItems(func(items []Item, err error) {
		if err != nil {
			r.idle.Decrement()
			callback(nil, ErrDataNotAvailable)
			return
		}

		r.cache.replace(items)
		r.refreshLocal(items)
		r.idle.Decrement()
		callback(r.cache.snapshot(), nil)
	})
}

// refreshLocal makes the local store mirror what the remote store returned.
func (r *Repository) refreshLocal(items []Item) {
	r.local.DeleteAll()
	for _, item := range items {
		r.local.SaveItem(item)
	}
}
