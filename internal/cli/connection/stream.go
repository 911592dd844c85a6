package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrStopStream can be returned by a Stream callback to end the stream
// without error.
var ErrStopStream = errors.New("stop stream")

// Stream reads server-sent events from path and calls fn with the data of
// each event. Multi-line data is joined with newlines. Stream returns nil
// when the server ends the stream, ctx is cancelled or fn returns
// ErrStopStream.
func (c *HTTPClient) Stream(ctx context.Context, path string, fn func(data string) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode}
	}

	var data []string
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if len(data) == 0 {
				continue
			}
			err := fn(strings.Join(data, "\n"))
			data = data[:0]
			if errors.Is(err, ErrStopStream) {
				return nil
			}
			if err != nil {
				return err
			}
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
		// Comments, event names and ids are not used.
	}

	if err := sc.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}
