package command

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/checkgrid-go/internal/cli/connection"
	"github.com/yndnr/checkgrid-go/internal/cli/output"
	"github.com/yndnr/checkgrid-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "checkgrid-cli",
		Usage:   "Inspect and toggle a CheckGrid server",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ViewCommand(),
			GetCommand(),
			ToggleCommand(),
			StatsCommand(),
			WatchCommand(),
			HealthCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "CheckGrid server address (e.g., localhost:3000)",
			EnvVars: []string{"CHECKGRID_SERVER"},
			Value:   "localhost:3000",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Request timeout",
			Value: connection.DefaultTimeout,
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server  string
	Output  output.Format
	Timeout time.Duration
}

// ParseGlobalFlags extracts global flags from context. An unknown output
// format falls back to table; App rejects it before any action runs.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		format = output.FormatTable
	}
	return &GlobalFlags{
		Server:  c.String("server"),
		Output:  format,
		Timeout: c.Duration("timeout"),
	}
}

// EnsureConnected returns an HTTP client for the configured server.
func EnsureConnected(c *cli.Context) (*connection.HTTPClient, error) {
	flags := ParseGlobalFlags(c)
	if flags.Server == "" {
		return nil, fmt.Errorf("no server address (use --server or CHECKGRID_SERVER)")
	}
	return connection.NewHTTPClient(flags.Server, flags.Timeout), nil
}

// writer returns the output destination for a command.
func writer(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// render writes data in the selected output format.
func render(c *cli.Context, data any) error {
	return output.NewFormatter(ParseGlobalFlags(c).Output).Format(writer(c), data)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
