// Package benchmark provides performance benchmarks for CheckGrid.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run with a larger benchtime for stable numbers on big grids:
//
//	go test -bench=BenchmarkSnapshot -benchmem -benchtime=10s ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
