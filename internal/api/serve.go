package api

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/stickpad/stickpad/internal/logger"
)

// Serve runs the line-delimited request loop: one JSON request per input
// line, one JSON response per output line. Blank lines are skipped. Runs
// until the input is exhausted or the context is cancelled; a malformed
// request produces an error response, not a loop exit.
func Serve(ctx context.Context, d *Dispatcher, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		resp := d.HandleJSON(ctx, line)
		if _, err := w.Write(append(resp, '\n')); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	logger.Debug("Request loop finished")
	return nil
}
