// Package service provides domain services for CheckGrid.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
)

// CellRepository defines the storage interface for grid operations.
//
// Implementations must make each call atomic with respect to the others.
type CellRepository interface {
	// Len returns the fixed number of cells.
	Len() int

	// Toggle flips one cell and returns its new value.
	Toggle(index domain.CellIndex) (bool, error)

	// Get returns the value of one cell.
	Get(index domain.CellIndex) (bool, error)

	// Snapshot returns an independent copy of all cells.
	Snapshot() domain.Snapshot

	// Stats returns size, checked count and version.
	Stats() domain.Stats
}

// Observer receives notifications about grid operations, typically to
// feed metrics. Methods are called after the store lock is released.
type Observer interface {
	CellToggled(checked bool)
	ToggleRejected(code string)
	SnapshotTaken(cells int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) CellToggled(bool) {}
func (nopObserver) ToggleRejected(string) {}
func (nopObserver) SnapshotTaken(int, time.Duration) {}

// CellService handles grid operations.
type CellService struct {
	repo     CellRepository
	observer Observer
	logger   *slog.Logger
}

// CellOption configures a CellService.
type CellOption func(*CellService)

// WithObserver sets the operation observer.
func WithObserver(o Observer) CellOption {
	return func(s *CellService) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CellOption {
	return func(s *CellService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewCellService creates a new CellService.
func NewCellService(repo CellRepository, opts ...CellOption) *CellService {
	s := &CellService{
		repo:     repo,
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the number of cells in the grid.
func (s *CellService) Size() int {
	return s.repo.Len()
}

// Toggle flips the cell at index and returns its new value.
func (s *CellService) Toggle(ctx context.Context, index domain.CellIndex) (bool, error) {
	checked, err := s.repo.Toggle(index)
	if err != nil {
		s.observer.ToggleRejected(domain.GetErrorCode(err))
		s.logger.DebugContext(ctx, "toggle rejected", "id", int(index), "error", err)
		return false, err
	}

	s.observer.CellToggled(checked)
	s.logger.DebugContext(ctx, "cell toggled", "id", int(index), "checked", checked)
	return checked, nil
}

// ToggleRaw parses a raw id and toggles that cell.
func (s *CellService) ToggleRaw(ctx context.Context, raw string) (domain.CellIndex, bool, error) {
	index, err := domain.ParseIndex(raw)
	if err != nil {
		s.observer.ToggleRejected(domain.GetErrorCode(err))
		return 0, false, err
	}

	checked, err := s.Toggle(ctx, index)
	return index, checked, err
}

// Get returns the value of the cell at index.
func (s *CellService) Get(_ context.Context, index domain.CellIndex) (bool, error) {
	return s.repo.Get(index)
}

// Snapshot returns a consistent copy of the whole grid.
func (s *CellService) Snapshot(ctx context.Context) domain.Snapshot {
	start := time.Now()
	snap := s.repo.Snapshot()
	elapsed := time.Since(start)

	s.observer.SnapshotTaken(len(snap.Cells), elapsed)
	s.logger.DebugContext(ctx, "snapshot taken",
		"cells", len(snap.Cells),
		"checked", snap.Checked,
		"version", snap.Version,
		"duration", elapsed)
	return snap
}

// Stats returns the grid summary.
func (s *CellService) Stats(_ context.Context) domain.Stats {
	return s.repo.Stats()
}
