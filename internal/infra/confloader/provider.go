package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

var errOverridesBytes = errors.New("confloader: overrides provide a map, not bytes")

// overrides feeds values keyed by dotted path (grid.cells) into koanf.
// Nested maps are accepted as well.
type overrides map[string]any

func (o overrides) ReadBytes() ([]byte, error) {
	return nil, errOverridesBytes
}

// Read expands dotted keys into the nested form koanf merges and
// unmarshals from.
func (o overrides) Read() (map[string]any, error) {
	return maps.Unflatten(o, "."), nil
}
