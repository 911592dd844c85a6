// Package domain defines the core domain models for CheckGrid.
package domain

import "strings"

// Snapshot is an independent copy of the whole grid taken at one instant.
//
// Cells is owned by whoever holds the Snapshot; later toggles never
// change it. Checked and Version were read together with Cells.
type Snapshot struct {
	Cells   []bool
	Checked int
	Version uint64
}

// Bits encodes the cells as a string of '0' and '1', index 0 first.
func (s Snapshot) Bits() string {
	var b strings.Builder
	b.Grow(len(s.Cells))
	for _, v := range s.Cells {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Stats summarises the grid without copying it.
type Stats struct {
	Total   int
	Checked int
	Version uint64
}
