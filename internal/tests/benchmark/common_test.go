package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"testing"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
	"github.com/yndnr/checkgrid-go/internal/storage/memory"
)

// GridSizes defines the grid sizes for benchmarking.
var GridSizes = []int{1_000, 100_000, 1_000_000}

// SmallGridSizes for quick benchmarks.
var SmallGridSizes = []int{1_000, 10_000}

// discardLogger drops all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// prefillGrid checks roughly a fraction of the cells.
func prefillGrid(store *memory.CellStore, fraction float64) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < store.Len(); i++ {
		if r.Float64() < fraction {
			store.Toggle(domain.CellIndex(i))
		}
	}
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithGridSizes runs a benchmark function with various grid sizes.
func runWithGridSizes(b *testing.B, sizes []int, benchFn func(b *testing.B, size int)) {
	for _, size := range sizes {
		b.Run(fmt.Sprintf("cells_%d", size), func(b *testing.B) {
			benchFn(b, size)
		})
	}
}
