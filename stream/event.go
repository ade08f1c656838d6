package stream

import (
	"bytes"
	"errors"
)

// Delimiter is the byte sequence that completes one SSE frame.
const Delimiter = "\n\n"

const dataFieldPrefix = "data: "

// ErrNotTerminated is returned by NewEvent for input that does not end with Delimiter.
var ErrNotTerminated = errors.New("event is not terminated by a blank line")

// Event is one complete SSE frame, including its terminating Delimiter. Its contents cannot
// be changed once it has been constructed.
type Event struct {
	raw []byte
}

// NewDataEvent frames payload as a single "data:" line.
func NewDataEvent(payload string) Event {
	raw := make([]byte, 0, len(dataFieldPrefix)+len(payload)+len(Delimiter))
	raw = append(raw, dataFieldPrefix...)
	raw = append(raw, payload...)
	raw = append(raw, Delimiter...)
	return Event{raw: raw}
}

// NewEvent wraps an already-framed event. The input is copied.
func NewEvent(raw []byte) (Event, error) {
	if len(raw) == 0 || !bytes.HasSuffix(raw, []byte(Delimiter)) {
		return Event{}, ErrNotTerminated
	}
	return Event{raw: append([]byte(nil), raw...)}, nil
}

// Len returns the total size of the frame in bytes.
func (e Event) Len() int {
	return len(e.raw)
}

// BodyLen returns the number of bytes that precede the Delimiter.
func (e Event) BodyLen() int {
	if len(e.raw) < len(Delimiter) {
		return 0
	}
	return len(e.raw) - len(Delimiter)
}

// Bytes returns a copy of the frame.
func (e Event) Bytes() []byte {
	return append([]byte(nil), e.raw...)
}

func (e Event) String() string {
	return string(e.raw)
}

func (e Event) slice(r Range) []byte {
	return e.raw[r.Start:r.End]
}
