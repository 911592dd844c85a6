package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/checkgrid-go/internal/cli/connection"
	"github.com/yndnr/checkgrid-go/internal/cli/output"
	"github.com/yndnr/checkgrid-go/internal/infra/buildinfo"
)

// HealthCommand checks server liveness or readiness.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check server health",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ready",
				Usage: "Check readiness instead of liveness",
			},
		},
		Action: systemHealth,
	}
}

// VersionCommand prints the CLI build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show CLI build information",
		Action: func(c *cli.Context) error {
			return render(c, buildinfo.Get())
		},
	}
}

func systemHealth(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	path := "/health"
	if c.Bool("ready") {
		path = "/ready"
	}

	resp, err := client.Get(c.Context, path)
	if err != nil {
		PrintError("Health check failed: %v", err)
		return fmt.Errorf("server unreachable")
	}

	var result healthResult
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if ParseGlobalFlags(c).Output != output.FormatTable {
		return render(c, result)
	}

	w := writer(c)
	switch result.Status {
	case "healthy", "ready":
		fmt.Fprintf(w, "✓ Server is %s\n", result.Status)
		fmt.Fprintf(w, "  Target: %s\n", client.BaseURL())
		if result.Cells > 0 {
			fmt.Fprintf(w, "  Cells:  %d\n", result.Cells)
		}
	default:
		fmt.Fprintf(w, "✗ Server is unhealthy: %s\n", result.Status)
	}
	return nil
}
