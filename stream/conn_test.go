package stream

import (
	"bytes"
	"context"
	"errors"
	"time"
)

var errBrokenPipe = errors.New("broken pipe")

// fakeConn records every write separately so tests can see fragment boundaries.
type fakeConn struct {
	writes     [][]byte
	flushes    int
	failOnNext int // if > 0, the Nth write fails
}

func (c *fakeConn) Write(p []byte) (int, error) {
	if c.failOnNext > 0 && len(c.writes)+1 >= c.failOnNext {
		return 0, errBrokenPipe
	}
	c.writes = append(c.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (c *fakeConn) Flush() error {
	c.flushes++
	return nil
}

func (c *fakeConn) joined() string {
	return string(bytes.Join(c.writes, nil))
}

// cancellingClock cancels its context the first time it is asked to pause.
type cancellingClock struct {
	cancel context.CancelFunc
}

func (c cancellingClock) Pause(ctx context.Context, d time.Duration) error {
	c.cancel()
	return ctx.Err()
}

// observingConn calls onWrite before accepting each write.
type observingConn struct {
	fakeConn
	onWrite func()
}

func (c *observingConn) Write(p []byte) (int, error) {
	c.onWrite()
	return c.fakeConn.Write(p)
}
