// Package memory provides the in-memory cell store for CheckGrid.
package memory

import (
	"sync"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
)

// CellStore is the process-wide array of checkbox cells.
//
// The zero value is not usable; create stores with NewCellStore.
type CellStore struct {
	mu sync.RWMutex

	// cells is allocated once; its length never changes.
	cells []bool

	// checked counts true cells, version counts successful toggles.
	// Both change only together with cells, under mu.
	checked int
	version uint64
}

// NewCellStore creates a store of n cells, all unchecked.
// A negative n is treated as zero.
func NewCellStore(n int) *CellStore {
	if n < 0 {
		n = 0
	}
	return &CellStore{
		cells: make([]bool, n),
	}
}

// Len returns the number of cells. It never changes.
func (s *CellStore) Len() int {
	return len(s.cells)
}

// Toggle flips the cell at index and returns its new value.
//
// Concurrent toggles of the same cell are serialized, so K toggles always
// amount to K flips. Out-of-range indices return ErrIndexOutOfRange and
// leave the grid untouched.
func (s *CellStore) Toggle(index domain.CellIndex) (bool, error) {
	if !index.Valid(len(s.cells)) {
		return false, domain.ErrIndexOutOfRange.WithDetails(index.String())
	}

	s.mu.Lock()
	v := !s.cells[index]
	s.cells[index] = v
	if v {
		s.checked++
	} else {
		s.checked--
	}
	s.version++
	s.mu.Unlock()

	return v, nil
}

// Get returns the current value of the cell at index.
func (s *CellStore) Get(index domain.CellIndex) (bool, error) {
	if !index.Valid(len(s.cells)) {
		return false, domain.ErrIndexOutOfRange.WithDetails(index.String())
	}

	s.mu.RLock()
	v := s.cells[index]
	s.mu.RUnlock()

	return v, nil
}

// Snapshot copies the whole grid under the read lock.
//
// The returned slice is owned by the caller and is never touched by
// later toggles.
func (s *CellStore) Snapshot() domain.Snapshot {
	// Allocate before locking so the critical section is a plain copy.
	cells := make([]bool, len(s.cells))

	s.mu.RLock()
	copy(cells, s.cells)
	checked, version := s.checked, s.version
	s.mu.RUnlock()

	return domain.Snapshot{
		Cells:   cells,
		Checked: checked,
		Version: version,
	}
}

// Stats returns the grid size, checked count and version.
func (s *CellStore) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Stats{
		Total:   len(s.cells),
		Checked: s.checked,
		Version: s.version,
	}
}
