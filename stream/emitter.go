package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/launchdarkly/sse-fragment-harness/framework"
)

// Conn is the writable side of a stream connection. Flush must push everything written so
// far to the transport.
type Conn interface {
	io.Writer
	Flush() error
}

// Chunk is one fragment to be written, plus how long to wait after it has been flushed.
type Chunk struct {
	Data       []byte
	DelayAfter time.Duration
}

// Pace turns a plan into chunks. Every fragment but the last is followed by between; the
// last is followed by after.
func Pace(plan FragmentPlan, between, after time.Duration) []Chunk {
	fragments := plan.Fragments()
	chunks := make([]Chunk, 0, len(fragments))
	for i, f := range fragments {
		c := Chunk{Data: f, DelayAfter: between}
		if i == len(fragments)-1 {
			c.DelayAfter = after
		}
		chunks = append(chunks, c)
	}
	return chunks
}

// Emitter writes chunks to a connection one at a time, flushing after each write.
type Emitter struct {
	Pacer  Pacer
	Logger framework.Logger
}

// NewEmitter creates an Emitter. A nil pacer means WallClock; a nil logger discards output.
func NewEmitter(pacer Pacer, logger framework.Logger) *Emitter {
	if pacer == nil {
		pacer = WallClock{}
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Emitter{Pacer: pacer, Logger: logger}
}

// Send writes and flushes a single chunk, then waits for its delay.
func (e *Emitter) Send(ctx context.Context, conn Conn, c Chunk) error {
	jsonStr, _ := json.Marshal(string(c.Data))
	e.Logger.Printf("<< sending: %s", jsonStr)
	if _, err := conn.Write(c.Data); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if err := conn.Flush(); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}
	if c.DelayAfter > 0 {
		return e.Pacer.Pause(ctx, c.DelayAfter)
	}
	return nil
}
