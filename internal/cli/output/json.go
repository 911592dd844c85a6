package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes data as JSON. Page titles and messages may contain
// markup, so HTML characters are written as-is rather than < escapes.
type JSONFormatter struct {
	// Compact writes one object per line, for streams piped into jq.
	Compact bool
}

func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !f.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}
