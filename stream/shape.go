package stream

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultFragmentDelay = 10 * time.Millisecond
	DefaultEventDelay    = 20 * time.Millisecond
	DefaultSentinel      = "[DONE]"
)

// ErrInvalidShape is wrapped by every error from Shape.Validate.
var ErrInvalidShape = errors.New("invalid stream shape")

// Shape is the fixed configuration of one stream: which events are sent, how each kind of
// event is split, and how long to wait between writes. Sessions only read from it.
type Shape struct {
	payloads      []string
	sentinel      string
	eventSplit    SplitPolicy
	sentinelSplit SplitPolicy
	fragmentDelay time.Duration
	eventDelay    time.Duration
}

// ShapeParams holds the values used to build a Shape.
type ShapeParams struct {
	Payloads      []string
	Sentinel      string
	EventSplit    SplitPolicy
	SentinelSplit SplitPolicy
	FragmentDelay time.Duration
	EventDelay    time.Duration
}

// NewShape validates params and copies them into a Shape.
func NewShape(params ShapeParams) (Shape, error) {
	s := Shape{
		payloads:      append([]string(nil), params.Payloads...),
		sentinel:      params.Sentinel,
		eventSplit:    params.EventSplit.clone(),
		sentinelSplit: params.SentinelSplit.clone(),
		fragmentDelay: params.FragmentDelay,
		eventDelay:    params.EventDelay,
	}
	if err := s.Validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

// DefaultPayloads are the three 43-byte payloads that frame into 51-byte events.
func DefaultPayloads() []string {
	return []string{
		"Event 1 - padding to make exactly 50 bytes!",
		"Event 2 - padding to make exactly 50 bytes!",
		"Event 3 - padding to make exactly 50 bytes!",
	}
}

// DefaultShape is three 51-byte events split 10/20/21 followed by "data: [DONE]" split 7/7.
func DefaultShape() Shape {
	return Shape{
		payloads:      DefaultPayloads(),
		sentinel:      DefaultSentinel,
		eventSplit:    PrimarySplit.clone(),
		sentinelSplit: SentinelSplit.clone(),
		fragmentDelay: DefaultFragmentDelay,
		eventDelay:    DefaultEventDelay,
	}
}

func (s Shape) Validate() error {
	if s.sentinel == "" {
		return fmt.Errorf("%w: sentinel must not be empty", ErrInvalidShape)
	}
	if s.fragmentDelay < 0 || s.eventDelay < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidShape)
	}
	for _, p := range []SplitPolicy{s.eventSplit, s.sentinelSplit} {
		for _, n := range p.Lengths {
			if n < 0 {
				return fmt.Errorf("%w: split %s has a negative length", ErrInvalidShape, p)
			}
		}
	}
	return nil
}

func (s Shape) Payloads() []string {
	return append([]string(nil), s.payloads...)
}

func (s Shape) Sentinel() string {
	return s.sentinel
}

func (s Shape) EventSplit() SplitPolicy {
	return s.eventSplit.clone()
}

func (s Shape) SentinelSplit() SplitPolicy {
	return s.sentinelSplit.clone()
}

func (s Shape) FragmentDelay() time.Duration {
	return s.fragmentDelay
}

func (s Shape) EventDelay() time.Duration {
	return s.eventDelay
}

// Events builds the ordered events for this shape, not including the sentinel.
func (s Shape) Events() []Event {
	ret := make([]Event, 0, len(s.payloads))
	for _, p := range s.payloads {
		ret = append(ret, NewDataEvent(p))
	}
	return ret
}

// SentinelEvent builds the terminal event.
func (s Shape) SentinelEvent() Event {
	return NewDataEvent(s.sentinel)
}
