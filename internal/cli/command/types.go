package command

// cellResult is a single cell as reported by the server.
type cellResult struct {
	ID      int  `json:"id" yaml:"id"`
	Checked bool `json:"checked" yaml:"checked"`
}

// snapshotResult is the full grid. Cells holds one '0' or '1' per cell.
type snapshotResult struct {
	Total   int    `json:"total" yaml:"total"`
	Checked int    `json:"checked" yaml:"checked"`
	Version uint64 `json:"version" yaml:"version"`
	Cells   string `json:"cells" yaml:"cells" table:"-"`
}

type statsResult struct {
	Total   int    `json:"total" yaml:"total"`
	Checked int    `json:"checked" yaml:"checked"`
	Version uint64 `json:"version" yaml:"version"`
}

type healthResult struct {
	Status string `json:"status" yaml:"status"`
	Time   string `json:"time,omitempty" yaml:"time,omitempty"`
	Cells  int    `json:"cells,omitempty" yaml:"cells,omitempty"`
}
