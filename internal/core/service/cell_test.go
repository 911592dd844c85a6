package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
	"github.com/yndnr/checkgrid-go/internal/storage/memory"
	"github.com/yndnr/checkgrid-go/internal/telemetry/logger"
)

// recordingObserver captures observer calls for assertions.
type recordingObserver struct {
	mu        sync.Mutex
	toggled   []bool
	rejected  []string
	snapshots int
}

func (o *recordingObserver) CellToggled(checked bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.toggled = append(o.toggled, checked)
}

func (o *recordingObserver) ToggleRejected(code string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected = append(o.rejected, code)
}

func (o *recordingObserver) SnapshotTaken(int, time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snapshots++
}

func newTestCellService(n int) (*CellService, *recordingObserver) {
	obs := &recordingObserver{}
	return NewCellService(memory.NewCellStore(n), WithObserver(obs)), obs
}

func TestCellService_Toggle(t *testing.T) {
	svc, obs := newTestCellService(10)
	ctx := context.Background()

	checked, err := svc.Toggle(ctx, 3)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !checked {
		t.Error("Toggle should return true for an unchecked cell")
	}

	got, err := svc.Get(ctx, 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got {
		t.Error("Get should see the toggled value")
	}

	if len(obs.toggled) != 1 || !obs.toggled[0] {
		t.Errorf("observer toggled = %v, want [true]", obs.toggled)
	}
}

func TestCellService_ToggleRaw(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  error
		wantCode string
	}{
		{name: "valid", raw: "4"},
		{name: "out of range", raw: "10", wantErr: domain.ErrIndexOutOfRange, wantCode: "CG-CELL-4040"},
		{name: "negative", raw: "-1", wantErr: domain.ErrInvalidIndex, wantCode: "CG-CELL-4000"},
		{name: "garbage", raw: "abc", wantErr: domain.ErrInvalidIndex, wantCode: "CG-CELL-4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, obs := newTestCellService(10)

			idx, checked, err := svc.ToggleRaw(context.Background(), tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ToggleRaw(%q) err = %v, want %v", tt.raw, err, tt.wantErr)
				}
				if len(obs.rejected) != 1 || obs.rejected[0] != tt.wantCode {
					t.Errorf("observer rejected = %v, want [%s]", obs.rejected, tt.wantCode)
				}
				if st := svc.Stats(context.Background()); st.Version != 0 {
					t.Errorf("rejected toggle changed version to %d", st.Version)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToggleRaw(%q): %v", tt.raw, err)
			}
			if idx != 4 || !checked {
				t.Errorf("ToggleRaw = (%d, %v), want (4, true)", idx, checked)
			}
		})
	}
}

func TestCellService_Snapshot(t *testing.T) {
	svc, obs := newTestCellService(5)
	ctx := context.Background()

	svc.Toggle(ctx, 0)
	svc.Toggle(ctx, 4)

	snap := svc.Snapshot(ctx)
	if got := snap.Bits(); got != "10001" {
		t.Errorf("Bits = %q, want %q", got, "10001")
	}
	if snap.Checked != 2 {
		t.Errorf("Checked = %d, want 2", snap.Checked)
	}
	if obs.snapshots != 1 {
		t.Errorf("observer snapshots = %d, want 1", obs.snapshots)
	}
}

func TestCellService_Stats(t *testing.T) {
	svc, _ := newTestCellService(7)
	ctx := context.Background()

	svc.Toggle(ctx, 1)
	svc.Toggle(ctx, 1)
	svc.Toggle(ctx, 2)

	st := svc.Stats(ctx)
	if st.Total != 7 || st.Checked != 1 || st.Version != 3 {
		t.Errorf("Stats = %+v, want {Total:7 Checked:1 Version:3}", st)
	}
	if svc.Size() != 7 {
		t.Errorf("Size = %d, want 7", svc.Size())
	}
}

func TestNewCellService_NilOptions(t *testing.T) {
	svc := NewCellService(memory.NewCellStore(1), WithObserver(nil), WithLogger(nil))
	if svc.observer == nil {
		t.Error("nil observer should keep the no-op default")
	}
	if svc.logger == nil {
		t.Error("nil logger should keep the default logger")
	}
	if _, err := svc.Toggle(context.Background(), 0); err != nil {
		t.Errorf("Toggle with defaults: %v", err)
	}
}

func TestCellService_LogsCarryRequestID(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	defer logger.SetLevel("info")

	svc := NewCellService(memory.NewCellStore(4), WithLogger(log.Slog()))
	ctx := logger.WithRequestID(context.Background(), "req-toggle-1")

	if _, err := svc.Toggle(ctx, 2); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "cell toggled" {
		t.Errorf("msg = %v, want cell toggled", entry["msg"])
	}
	if entry["request_id"] != "req-toggle-1" {
		t.Errorf("request_id = %v, want req-toggle-1", entry["request_id"])
	}
}
