package command

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/checkgrid-go/internal/cli/connection"
	"github.com/yndnr/checkgrid-go/internal/cli/output"
)

// counterEvent is one counter value in -o json mode.
type counterEvent struct {
	Seq   int    `json:"seq"`
	Value string `json:"value"`
}

// WatchCommand follows the server's counter stream.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Print the live counter stream (-o json prints one object per line)",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Stop after this many events (0 = until interrupted)",
			},
		},
		Action: watchCounter,
	}
}

func watchCounter(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	limit := c.Int("count")
	if limit < 0 {
		return fmt.Errorf("--count must not be negative")
	}

	// Events carry an HTML fragment; only its text is printed.
	strip := bluemonday.StrictPolicy()
	w := writer(c)
	asJSON := ParseGlobalFlags(c).Output == output.FormatJSON
	lines := &output.JSONFormatter{Compact: true}
	seen := 0

	return client.Stream(c.Context, "/sse-counter", func(data string) error {
		text := strings.TrimSpace(html.UnescapeString(strip.Sanitize(data)))
		seen++

		var err error
		if asJSON {
			err = lines.Format(w, counterEvent{Seq: seen, Value: text})
		} else {
			_, err = fmt.Fprintln(w, text)
		}
		if err != nil {
			return err
		}
		if limit > 0 && seen >= limit {
			return connection.ErrStopStream
		}
		return nil
	})
}
