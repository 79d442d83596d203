package todos

import "todo-app-go/pkg/ordered"

// itemCache is only touched from the main lane and therefore carries no lock.
type itemCache struct {
	items *ordered.Map[string, Item]
	// dirty marks the whole set as stale; the next full read goes to the remote store.
	dirty bool
}

func newItemCache() *itemCache {
	return &itemCache{items: ordered.NewMap[string, Item]()}
}

func (c *itemCache) usable() bool {
	return c.items.Len() > 0 && !c.dirty
}

func (c *itemCache) get(itemID string) (Item, bool) {
	return c.items.Get(itemID)
}

// put stores a copy of item and returns that copy.
func (c *itemCache) put(item Item) Item {
	cached := Item{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Completed:   item.Completed,
	}
	c.items.Set(cached.ID, cached)
	return cached
}

func (c *itemCache) replace(items []Item) {
	c.items.Clear()
	for _, item := range items {
		c.put(item)
	}
	c.dirty = false
}

func (c *itemCache) remove(itemID string) {
	c.items.Delete(itemID)
}

func (c *itemCache) dropCompleted() int {
	return c.items.Filter(Item.Active)
}

// clear returns the cache to its initial empty, clean state.
func (c *itemCache) clear() {
	c.items.Clear()
	c.dirty = false
}

func (c *itemCache) snapshot() []Item {
	return c.items.Values()
}
