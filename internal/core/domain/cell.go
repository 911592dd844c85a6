// Package domain defines the core domain models for CheckGrid.
package domain

import (
	"strconv"
	"strings"
)

// CellIndex is the position of a cell in the grid.
//
// A CellIndex produced by ParseIndex is only known to be non-negative;
// the upper bound depends on the grid size and is checked by the store.
type CellIndex int

// ParseIndex parses a raw path segment into a CellIndex.
//
// Only plain decimal digits are accepted: signs, whitespace, hex prefixes
// and empty strings are rejected with ErrInvalidIndex.
func ParseIndex(raw string) (CellIndex, error) {
	if raw == "" {
		return 0, ErrInvalidIndex.WithDetails("empty id")
	}
	if strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, ErrInvalidIndex.WithDetails(raw)
	}

	n, err := strconv.ParseUint(raw, 10, strconv.IntSize-1)
	if err != nil {
		// Digits only, so this is an overflow: the value is far beyond any grid.
		return 0, ErrIndexOutOfRange.WithDetails(raw).WithCause(err)
	}
	return CellIndex(n), nil
}

// Valid reports whether the index addresses a cell in a grid of size n.
func (i CellIndex) Valid(n int) bool {
	return i >= 0 && int(i) < n
}

// String returns the decimal form of the index.
func (i CellIndex) String() string {
	return strconv.Itoa(int(i))
}
