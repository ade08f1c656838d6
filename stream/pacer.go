package stream

import (
	"context"
	"sync"
	"time"
)

// Pacer suspends the calling goroutine between writes. Pause returns early with the
// context's error if ctx is done first.
type Pacer interface {
	Pause(ctx context.Context, d time.Duration) error
}

// WallClock is a Pacer that really waits.
type WallClock struct{}

func (WallClock) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// VirtualClock is a Pacer that never waits. It records every requested pause so tests can
// check the schedule.
type VirtualClock struct {
	pauses []time.Duration
	lock   sync.Mutex
}

func (v *VirtualClock) Pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.lock.Lock()
	v.pauses = append(v.pauses, d)
	v.lock.Unlock()
	return nil
}

// Pauses returns every duration passed to Pause so far.
func (v *VirtualClock) Pauses() []time.Duration {
	v.lock.Lock()
	defer v.lock.Unlock()
	return append([]time.Duration(nil), v.pauses...)
}

// Elapsed is the sum of all recorded pauses.
func (v *VirtualClock) Elapsed() time.Duration {
	var total time.Duration
	for _, d := range v.Pauses() {
		total += d
	}
	return total
}
