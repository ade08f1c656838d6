package stream

import (
	"context"
	"errors"
	"sync"

	"github.com/eapache/queue"

	"github.com/launchdarkly/sse-fragment-harness/framework"
)

// SessionState is a step in the lifecycle of one stream connection.
type SessionState int

const (
	Idle SessionState = iota
	Streaming
	Draining
	Closed
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	case Draining:
		return "draining"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

var errSessionStarted = errors.New("stream session was already started")

// scheduledChunk is one entry in a session's schedule.
type scheduledChunk struct {
	Chunk
	event    int
	fragment int
	final    bool
}

// Session sends one Shape over one connection: every event in order, then the sentinel.
// A Session is used for a single request and then thrown away.
//
// The whole schedule is queued when Run starts. A chunk leaves the queue only once it has
// been written, flushed and paced, so after a failure the queue holds everything that did not
// complete.
type Session struct {
	shape   Shape
	emitter *Emitter
	logger  framework.Logger
	plans   []FragmentPlan
	pending *queue.Queue
	sent    int
	state   SessionState
	lock    sync.Mutex
}

func NewSession(shape Shape, emitter *Emitter, logger framework.Logger) *Session {
	if emitter == nil {
		emitter = NewEmitter(nil, logger)
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Session{
		shape:   shape,
		emitter: emitter,
		logger:  logger,
		pending: queue.New(),
	}
}

// Run streams the whole shape to conn. It returns when the sentinel has been flushed, or as
// soon as a write fails or ctx is done; either way the session ends up Closed. Nothing is
// retried.
func (s *Session) Run(ctx context.Context, conn Conn) error {
	s.lock.Lock()
	if s.state != Idle {
		s.lock.Unlock()
		return errSessionStarted
	}
	s.state = Streaming
	s.schedule()
	s.lock.Unlock()
	defer s.setState(Closed)

	for {
		c, ok := s.next()
		if !ok {
			return nil
		}
		if c.fragment == 0 {
			s.logPlan(c.event)
		}
		if err := s.emitter.Send(ctx, conn, c.Chunk); err != nil {
			return err
		}
		s.lock.Lock()
		s.pending.Remove()
		if c.final {
			s.sent++
		}
		s.lock.Unlock()
	}
}

// schedule queues every fragment of every event, then the sentinel. Must hold lock.
func (s *Session) schedule() {
	events := append(s.shape.Events(), s.shape.SentinelEvent())
	for i, ev := range events {
		split, after := s.shape.eventSplit, s.shape.eventDelay
		if i == len(events)-1 {
			split, after = s.shape.sentinelSplit, 0
		}
		plan := Plan(ev, split)
		s.plans = append(s.plans, plan)
		chunks := Pace(plan, s.shape.fragmentDelay, after)
		for j, c := range chunks {
			s.pending.Add(scheduledChunk{Chunk: c, event: i, fragment: j, final: j == len(chunks)-1})
		}
	}
}

// next returns the chunk at the head of the queue without removing it.
func (s *Session) next() (scheduledChunk, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.pending.Length() == 0 {
		return scheduledChunk{}, false
	}
	c := s.pending.Peek().(scheduledChunk)
	if c.event == len(s.plans)-1 {
		s.state = Draining
	}
	return c, true
}

func (s *Session) logPlan(event int) {
	plan := s.plans[event]
	if event == len(s.plans)-1 {
		s.logger.Printf("Sending sentinel (%d bytes total) as fragments %v", plan.Event.Len(), plan.Lengths())
		return
	}
	s.logger.Printf("Sending event %d (%d bytes total) as fragments %v", event+1, plan.Event.Len(), plan.Lengths())
}

func (s *Session) setState(state SessionState) {
	s.lock.Lock()
	s.state = state
	s.lock.Unlock()
}

// State returns the current lifecycle step.
func (s *Session) State() SessionState {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state
}

// Sent returns how many events, including the sentinel, have been completely written.
func (s *Session) Sent() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.sent
}

// Remaining returns how many fragments have not completed. It is zero after a successful Run;
// after a failed one it includes the fragment that was in progress.
func (s *Session) Remaining() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pending.Length()
}
