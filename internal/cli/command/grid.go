package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/checkgrid-go/internal/cli/connection"
	"github.com/yndnr/checkgrid-go/internal/cli/output"
	"github.com/yndnr/checkgrid-go/internal/core/domain"
)

// ViewCommand prints the whole grid.
func ViewCommand() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Show every cell in the grid",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "width",
				Aliases: []string{"w"},
				Usage:   "Cells per row",
				Value:   50,
			},
		},
		Action: gridView,
	}
}

// GetCommand prints one cell.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one cell",
		ArgsUsage: "<id>",
		Action:    cellGet,
	}
}

// ToggleCommand flips one cell.
func ToggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"t"},
		Usage:     "Flip one cell",
		ArgsUsage: "<id>",
		Action:    cellToggle,
	}
}

// StatsCommand prints grid counters.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show cell counts and grid version",
		Action: gridStats,
	}
}

func gridView(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	resp, err := client.Get(c.Context, "/api/v1/cells")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var snap snapshotResult
	if err := connection.ParseResponse(resp, &snap); err != nil {
		return err
	}

	if ParseGlobalFlags(c).Output != output.FormatTable {
		return render(c, snap)
	}

	w := writer(c)
	fmt.Fprintf(w, "Cells: %d  Checked: %d  Version: %d\n\n", snap.Total, snap.Checked, snap.Version)
	return output.RenderGrid(w, snap.Cells, c.Int("width"))
}

func cellGet(c *cli.Context) error {
	return cellRequest(c, func(ctx context.Context, client *connection.HTTPClient, id domain.CellIndex) (*cellResult, error) {
		resp, err := client.Get(ctx, "/api/v1/cells/"+id.String())
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		var cell cellResult
		return &cell, connection.ParseResponse(resp, &cell)
	})
}

func cellToggle(c *cli.Context) error {
	return cellRequest(c, func(ctx context.Context, client *connection.HTTPClient, id domain.CellIndex) (*cellResult, error) {
		resp, err := client.Post(ctx, "/api/v1/cells/"+id.String()+"/toggle")
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		var cell cellResult
		return &cell, connection.ParseResponse(resp, &cell)
	})
}

type cellCall func(ctx context.Context, client *connection.HTTPClient, id domain.CellIndex) (*cellResult, error)

// cellRequest validates the <id> argument, runs call and prints the cell.
func cellRequest(c *cli.Context, call cellCall) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one cell id")
	}
	id, err := domain.ParseIndex(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid cell id %q", c.Args().First())
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	cell, err := call(c.Context, client, id)
	if err != nil {
		return err
	}

	if ParseGlobalFlags(c).Output != output.FormatTable {
		return render(c, cell)
	}

	state := "unchecked"
	if cell.Checked {
		state = "checked"
	}
	_, err = fmt.Fprintf(writer(c), "cell %d: %s\n", cell.ID, state)
	return err
}

func gridStats(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	resp, err := client.Get(c.Context, "/api/v1/stats")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var stats statsResult
	if err := connection.ParseResponse(resp, &stats); err != nil {
		return err
	}
	return render(c, stats)
}
