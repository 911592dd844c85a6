package redisserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
	"github.com/yndnr/checkgrid-go/internal/core/service"
	"github.com/yndnr/checkgrid-go/pkg/ratelimit"
)

// formatError converts an error to a RESP error line.
// DomainErrors become "ERR <code> <message>".
func formatError(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return "ERR " + de.Code + " " + de.Message
	}
	return "ERR " + err.Error()
}

func wrongArgs(cmd string) string {
	return "ERR wrong number of arguments for '" + strings.ToLower(cmd) + "' command"
}

// CommandHandler executes grid commands against a CellService.
type CommandHandler struct {
	cells   *service.CellService
	logger  *slog.Logger
	limiter *ratelimit.Limiter
}

// NewCommandHandler creates a CommandHandler. rateLimit is the per-IP
// command rate for grid commands (0 = unlimited).
func NewCommandHandler(cells *service.CellService, rateLimit int, logger *slog.Logger) *CommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &CommandHandler{cells: cells, logger: logger}
	if rateLimit > 0 {
		h.limiter = ratelimit.New(rateLimit, 0)
	}
	return h
}

// Handle runs one command and writes its reply to w. It reports whether
// the client asked to close the connection.
func (h *CommandHandler) Handle(ctx context.Context, w *Writer, clientIP string, args [][]byte) (quit bool) {
	if len(args) == 0 {
		w.Error("ERR no command")
		return false
	}

	cmd := commandName(args[0])

	// Connection commands are never rate limited.
	switch cmd {
	case "PING":
		h.handlePing(w, args)
		return false
	case "ECHO":
		if len(args) != 2 {
			w.Error(wrongArgs(cmd))
			return false
		}
		w.Bulk(args[1])
		return false
	case "QUIT":
		w.SimpleString("OK")
		return true
	case "COMMAND":
		// redis-cli asks for command docs on connect; an empty reply is fine.
		w.ArrayHeader(0)
		return false
	}

	if h.limiter != nil && !h.limiter.Allow(clientIP, time.Now()) {
		w.Error(formatError(domain.ErrRateLimited))
		return false
	}

	switch cmd {
	case "CG.GET":
		h.handleGet(ctx, w, args)
	case "CG.TOGGLE":
		h.handleToggle(ctx, w, args)
	case "CG.STATS":
		h.handleStats(ctx, w, args)
	case "CG.SNAPSHOT":
		h.handleSnapshot(ctx, w, args)
	default:
		w.Error("ERR unknown command '" + string(args[0]) + "'")
	}
	return false
}

func (h *CommandHandler) handlePing(w *Writer, args [][]byte) {
	switch len(args) {
	case 1:
		w.SimpleString("PONG")
	case 2:
		w.Bulk(args[1])
	default:
		w.Error(wrongArgs("ping"))
	}
}

func (h *CommandHandler) handleGet(ctx context.Context, w *Writer, args [][]byte) {
	if len(args) != 2 {
		w.Error(wrongArgs("cg.get"))
		return
	}
	index, err := domain.ParseIndex(string(args[1]))
	if err != nil {
		w.Error(formatError(err))
		return
	}
	checked, err := h.cells.Get(ctx, index)
	if err != nil {
		w.Error(formatError(err))
		return
	}
	w.Integer(boolInt(checked))
}

func (h *CommandHandler) handleToggle(ctx context.Context, w *Writer, args [][]byte) {
	if len(args) != 2 {
		w.Error(wrongArgs("cg.toggle"))
		return
	}
	_, checked, err := h.cells.ToggleRaw(ctx, string(args[1]))
	if err != nil {
		w.Error(formatError(err))
		return
	}
	w.Integer(boolInt(checked))
}

func (h *CommandHandler) handleStats(ctx context.Context, w *Writer, args [][]byte) {
	if len(args) != 1 {
		w.Error(wrongArgs("cg.stats"))
		return
	}
	st := h.cells.Stats(ctx)
	w.ArrayHeader(6)
	w.BulkString("total")
	w.Integer(int64(st.Total))
	w.BulkString("checked")
	w.Integer(int64(st.Checked))
	w.BulkString("version")
	w.Integer(int64(st.Version))
}

func (h *CommandHandler) handleSnapshot(ctx context.Context, w *Writer, args [][]byte) {
	if len(args) != 1 {
		w.Error(wrongArgs("cg.snapshot"))
		return
	}
	w.BulkString(h.cells.Snapshot(ctx).Bits())
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
