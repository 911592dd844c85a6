package output

import (
	"fmt"
	"io"
	"strconv"
)

// Grid cell glyphs.
const (
	CheckedGlyph   = '#'
	UncheckedGlyph = '.'
)

// RenderGrid writes bits ('0'/'1' per cell) as rows of width cells, each
// row prefixed with the index of its first cell.
func RenderGrid(w io.Writer, bits string, width int) error {
	if width <= 0 {
		width = 50
	}
	pad := len(strconv.Itoa(max(len(bits)-1, 0)))

	row := make([]byte, 0, width)
	for start := 0; start < len(bits); start += width {
		end := min(start+width, len(bits))
		row = row[:0]
		for i := start; i < end; i++ {
			if bits[i] == '1' {
				row = append(row, CheckedGlyph)
			} else {
				row = append(row, UncheckedGlyph)
			}
		}
		if _, err := fmt.Fprintf(w, "%*d  %s\n", pad, start, row); err != nil {
			return err
		}
	}
	return nil
}
