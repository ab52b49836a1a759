// Package timer implements a countdown that measures elapsed time against a
// Clock every time it is ticked instead of relying on a fixed-rate scheduler.
//
// Tick is meant to be called from a render loop, once per frame. Remaining
// time is always recomputed from the clock, so jitter in the call cadence
// does not accumulate; the only cost is that expiry is noticed on the first
// tick after the deadline.
package timer

import (
	"fmt"
	"time"

	"mondaymadness/internal/core/model"
)

// Timer counts down a single interval.
type Timer struct {
	total     time.Duration
	remaining time.Duration
	startedAt time.Duration
	state     State
	clock     Clock

	subscriptions []subscription
	nextID        uint64
}

// New creates a timer for total. Listeners passed here are subscribed before
// anything else happens, so a zero-length timer, which is born finished,
// still delivers its finished transition to them before New returns.
func New(total time.Duration, clock Clock, listeners ...Listener) (*Timer, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: timer duration must not be negative, got %s", model.ErrInvalidArgument, total)
	}
	if clock == nil {
		return nil, fmt.Errorf("%w: clock is required", model.ErrInvalidArgument)
	}

	timer := &Timer{
		total:     total,
		remaining: total,
		state:     StateInitialized,
		clock:     clock,
	}
	for _, listener := range listeners {
		timer.Subscribe(listener)
	}

	if total == 0 {
		timer.finish()
	}
	return timer, nil
}

// Subscribe registers a listener and returns a function that removes it.
func (timer *Timer) Subscribe(listener Listener) func() {
	if listener == nil {
		return func() {}
	}
	timer.nextID++
	id := timer.nextID
	timer.subscriptions = append(timer.subscriptions, subscription{id: id, listener: listener})
	return func() {
		for i, sub := range timer.subscriptions {
			if sub.id == id {
				timer.subscriptions = append(timer.subscriptions[:i:i], timer.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// Start begins or resumes the countdown. Starting a running timer does
// nothing; starting a finished one fails.
func (timer *Timer) Start() error {
	switch timer.state {
	case StateRunning:
		return nil
	case StateFinished:
		return fmt.Errorf("%w: timer already finished", model.ErrInvalidState)
	}

	timer.startedAt = timer.clock.Now()
	if timer.state == StatePaused {
		timer.startedAt -= timer.total - timer.remaining
	}
	timer.transition(StateRunning)
	return nil
}

// Pause freezes the countdown. Pausing a timer that never started or is
// already paused does nothing; pausing a finished one fails.
func (timer *Timer) Pause() error {
	switch timer.state {
	case StateInitialized, StatePaused:
		return nil
	case StateFinished:
		return fmt.Errorf("%w: timer already finished", model.ErrInvalidState)
	}

	timer.startedAt = 0
	timer.transition(StatePaused)
	return nil
}

// Tick recomputes the remaining time and finishes the timer once it is
// exhausted. It does nothing unless the timer is running.
func (timer *Timer) Tick() {
	if timer.state != StateRunning {
		return
	}
	timer.remaining = timer.total - (timer.clock.Now() - timer.startedAt)
	if timer.remaining <= 0 {
		timer.finish()
	}
}

// State returns the current state.
func (timer *Timer) State() State {
	return timer.state
}

// IsRunning reports whether the timer is counting down.
func (timer *Timer) IsRunning() bool {
	return timer.state == StateRunning
}

// IsFinished reports whether the timer reached its terminal state.
func (timer *Timer) IsFinished() bool {
	return timer.state == StateFinished
}

// Total returns the configured duration.
func (timer *Timer) Total() time.Duration {
	return timer.total
}

// Remaining returns the time left as of the last tick.
func (timer *Timer) Remaining() time.Duration {
	return timer.remaining
}

// Fraction returns the remaining share of the total in [0, 1].
func (timer *Timer) Fraction() float64 {
	if timer.total <= 0 {
		return 0
	}
	fraction := float64(timer.remaining) / float64(timer.total)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// DisplayText renders the remaining time in seconds with one truncated
// decimal, e.g. 1234ms becomes "1.2".
func (timer *Timer) DisplayText() string {
	return FormatTenths(timer.remaining)
}

// FormatTenths formats a duration as seconds with a single truncated decimal.
func FormatTenths(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	tenths := remaining.Milliseconds() / 100
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

func (timer *Timer) finish() {
	timer.startedAt = 0
	timer.remaining = 0
	timer.transition(StateFinished)
}

func (timer *Timer) transition(state State) {
	timer.state = state
	subscriptions := append([]subscription(nil), timer.subscriptions...)
	for _, sub := range subscriptions {
		sub.listener(state)
	}
}
