package touch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Feed reads sample lines from r into c until EOF or until ctx is done.
// Malformed lines are logged and skipped, serial lines pick up noise.
// The contact is released when Feed returns.
func Feed(ctx context.Context, r io.Reader, c *Contact) error {
	defer c.Release()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Apply(scanner.Text()); err != nil {
			slog.Warn("skipping touch sample", "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading touch samples: %w", err)
	}
	return ctx.Err()
}
