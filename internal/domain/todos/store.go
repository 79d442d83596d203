package todos

// LoadItemsCallback receives either the items or ErrDataNotAvailable. It is called
// exactly once per ListItems call.
type LoadItemsCallback func(items []Item, err error)

// GetItemCallback receives either the item or ErrDataNotAvailable. It is called exactly
// once per GetItem call.
type GetItemCallback func(item Item, err error)

// Store is implemented by the local store, the remote store and the Repository that
// composes them. Mutations are fire-and-forget.
type Store interface {
	ListItems(callback LoadItemsCallback)
	GetItem(itemID string, callback GetItemCallback)
	SaveItem(item Item)
	CompleteItem(item Item)
	CompleteItemByID(itemID string)
	ActivateItem(item Item)
	ActivateItemByID(itemID string)
	ClearCompleted()
	Refresh()
	DeleteAll()
	DeleteItem(itemID string)
}
