package internal

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iksnae/kiro-session/internal/schema"
)

// maxStreamLine bounds a single frame; tool output can be large.
const maxStreamLine = 16 * 1024 * 1024

// Consume reads newline-delimited canonical messages from r and appends them
// in order. Malformed and unsupported frames are skipped. It returns the
// number of messages appended; reading stops at EOF, on a read error, or as
// soon as ctx is done, even while a read is blocked.
//
// A read blocked in r when ctx is cancelled is abandoned: its goroutine exits
// once r returns, and whatever it read is discarded.
func (c *Conversation) Consume(ctx context.Context, r io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go scanLines(r, lines, scanErr, done)

	appended := 0
	line := 0
	for {
		// Prefer cancellation over a line that is already waiting.
		if err := ctx.Err(); err != nil {
			return appended, err
		}

		var data []byte
		select {
		case <-ctx.Done():
			return appended, ctx.Err()
		case next, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return appended, fmt.Errorf("failed to read stream: %w", err)
				}
				return appended, nil
			}
			data = next
		}
		line++

		data = bytes.TrimSpace(data)
		if len(data) == 0 {
			continue
		}

		msg, err := schema.DecodeMessage(data)
		if errors.Is(err, schema.ErrUnsupportedMessage) {
			LogDebug("Skipping frame: %v", &StreamError{Line: line, Err: err})
			continue
		}
		if err != nil {
			LogWarn("Skipping frame: %v", &StreamError{Line: line, Err: err})
			continue
		}

		c.Append(msg)
		appended++
	}
}

// scanLines sends each line of r on lines until EOF, a read error, or done
// is closed. It closes lines after reporting the scan error on errc.
func scanLines(r io.Reader, lines chan<- []byte, errc chan<- error, done <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxStreamLine)
	for scanner.Scan() {
		select {
		case lines <- bytes.Clone(scanner.Bytes()):
		case <-done:
			errc <- nil
			return
		}
	}
	errc <- scanner.Err()
}
