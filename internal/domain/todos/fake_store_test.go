package todos

// fakeStore answers synchronously and records every call.
type fakeStore struct {
	items     []Item
	available bool

	calls []string

	listCalls     int
	getCalls      int
	saved         []Item
	completed     []Item
	activated     []Item
	byIDCalls     int
	clearCalls    int
	deleteAll     int
	deletedIDs    []string
	refreshCalls  int
	pendingList   []LoadItemsCallback
	holdCallbacks bool
}

func newFakeStore(items ...Item) *fakeStore {
	return &fakeStore{items: items, available: len(items) > 0}
}

func (s *fakeStore) totalCalls() int {
	return len(s.calls)
}

func (s *fakeStore) ListItems(callback LoadItemsCallback) {
	s.calls = append(s.calls, "list")
	s.listCalls++
	if s.holdCallbacks {
		s.pendingList = append(s.pendingList, callback)
		return
	}
	s.deliverList(callback)
}

func (s *fakeStore) deliverList(callback LoadItemsCallback) {
	if !s.available || len(s.items) == 0 {
		callback(nil, ErrDataNotAvailable)
		return
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	callback(out, nil)
}

func (s *fakeStore) release() {
	pending := s.pendingList
	s.pendingList = nil
	s.holdCallbacks = false
	for _, callback := range pending {
		s.deliverList(callback)
	}
}

func (s *fakeStore) GetItem(itemID string, callback GetItemCallback) {
	s.calls = append(s.calls, "get")
	s.getCalls++
	for _, item := range s.items {
		if item.ID == itemID {
			callback(item, nil)
			return
		}
	}
	callback(Item{}, ErrDataNotAvailable)
}

func (s *fakeStore) SaveItem(item Item) {
	s.calls = append(s.calls, "save")
	s.saved = append(s.saved, item)
	s.upsert(item)
}

func (s *fakeStore) CompleteItem(item Item) {
	s.calls = append(s.calls, "complete")
	s.completed = append(s.completed, item)
	s.upsert(item.WithCompleted(true))
}

func (s *fakeStore) CompleteItemByID(string) {
	s.calls = append(s.calls, "complete_by_id")
	s.byIDCalls++
}

func (s *fakeStore) ActivateItem(item Item) {
	s.calls = append(s.calls, "activate")
	s.activated = append(s.activated, item)
	s.upsert(item.WithCompleted(false))
}

func (s *fakeStore) ActivateItemByID(string) {
	s.calls = append(s.calls, "activate_by_id")
	s.byIDCalls++
}

func (s *fakeStore) ClearCompleted() {
	s.calls = append(s.calls, "clear_completed")
	s.clearCalls++
	kept := s.items[:0]
	for _, item := range s.items {
		if item.Active() {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

func (s *fakeStore) Refresh() {
	s.calls = append(s.calls, "refresh")
	s.refreshCalls++
}

func (s *fakeStore) DeleteAll() {
	s.calls = append(s.calls, "delete_all")
	s.deleteAll++
	s.items = nil
}

func (s *fakeStore) DeleteItem(itemID string) {
	s.calls = append(s.calls, "delete")
	s.deletedIDs = append(s.deletedIDs, itemID)
	for i, item := range s.items {
		if item.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *fakeStore) upsert(item Item) {
	s.available = true
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}
