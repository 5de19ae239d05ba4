package memory

import "github.com/sarchlab/vmsim/mem/vm"

// A BackingStore keeps the content of virtual pages that are not resident in
// the physical memory.
type BackingStore interface {
	// Load returns the content of the virtual page. The bool return value
	// indicates if the page has ever been stored.
	Load(vpn uint64) ([]vm.Word, bool)

	// Store saves the content of the virtual page.
	Store(vpn uint64, words []vm.Word)

	// Delete drops the saved content of the virtual page, if any.
	Delete(vpn uint64)

	// NumPages returns the number of pages saved.
	NumPages() int
}

// MapBackingStore is a BackingStore that keeps the pages in a map.
type MapBackingStore struct {
	pages map[uint64][]vm.Word
}

// NewMapBackingStore creates an empty MapBackingStore.
func NewMapBackingStore() *MapBackingStore {
	return &MapBackingStore{
		pages: make(map[uint64][]vm.Word),
	}
}

// Load returns a copy of the saved page.
func (s *MapBackingStore) Load(vpn uint64) ([]vm.Word, bool) {
	page, found := s.pages[vpn]
	if !found {
		return nil, false
	}

	words := make([]vm.Word, len(page))
	copy(words, page)

	return words, true
}

// Store saves a copy of the page.
func (s *MapBackingStore) Store(vpn uint64, words []vm.Word) {
	page := make([]vm.Word, len(words))
	copy(page, words)
	s.pages[vpn] = page
}

// Delete drops the saved page.
func (s *MapBackingStore) Delete(vpn uint64) {
	delete(s.pages, vpn)
}

// NumPages returns the number of pages saved.
func (s *MapBackingStore) NumPages() int {
	return len(s.pages)
}
