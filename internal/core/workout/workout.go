package workout

import (
	"fmt"
	"time"

	"mondaymadness/internal/core/interval"
	"mondaymadness/internal/core/model"
	"mondaymadness/internal/core/timer"
)

// Workout runs one timer at a time over an interval sequence and chains
// to the next interval as soon as the current one finishes.
type Workout struct {
	sequence *interval.Sequence
	clock    timer.Clock
	timer    *timer.Timer
	finished bool

	subscriptions []subscription
	nextID        uint64
}

// New creates a workout positioned on the sequence's current interval.
func New(sequence *interval.Sequence, clock timer.Clock) (*Workout, error) {
	if sequence == nil {
		return nil, fmt.Errorf("%w: sequence is required", model.ErrInvalidArgument)
	}

	workout := &Workout{
		sequence: sequence,
		clock:    clock,
	}
	if err := workout.spawnTimer(); err != nil {
		return nil, err
	}
	return workout, nil
}

// Subscribe registers a handler and returns a function that removes it.
func (workout *Workout) Subscribe(handler Handler) func() {
	if handler == nil {
		return func() {}
	}
	workout.nextID++
	id := workout.nextID
	workout.subscriptions = append(workout.subscriptions, subscription{id: id, handler: handler})
	return func() {
		for i, sub := range workout.subscriptions {
			if sub.id == id {
				workout.subscriptions = append(workout.subscriptions[:i:i], workout.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// Start starts or resumes the current interval.
func (workout *Workout) Start() error {
	return workout.timer.Start()
}

// Pause pauses the current interval.
func (workout *Workout) Pause() error {
	return workout.timer.Pause()
}

// Tick advances the countdown of the current interval. Call it once per
// rendered frame.
func (workout *Workout) Tick() {
	workout.timer.Tick()
}

// IsRunning reports whether the current interval is counting down.
func (workout *Workout) IsRunning() bool {
	return workout.timer.IsRunning()
}

// IsFinished reports whether the last interval has finished.
func (workout *Workout) IsFinished() bool {
	return workout.finished
}

// Kind returns the kind of the current interval.
func (workout *Workout) Kind() interval.Kind {
	return workout.sequence.Kind()
}

// Repetition returns the 1-based repetition of the current interval.
func (workout *Workout) Repetition() int {
	return workout.sequence.Repetition()
}

// Repetitions returns the total number of repetitions.
func (workout *Workout) Repetitions() int {
	return workout.sequence.Repetitions()
}

// Fraction returns the remaining share of the current interval.
func (workout *Workout) Fraction() float64 {
	return workout.timer.Fraction()
}

// DisplayText returns the remaining time of the current interval.
func (workout *Workout) DisplayText() string {
	return workout.timer.DisplayText()
}

// Remaining returns the time left in the current interval.
func (workout *Workout) Remaining() time.Duration {
	return workout.timer.Remaining()
}

func (workout *Workout) spawnTimer() error {
	next, err := timer.New(workout.sequence.Duration(), workout.clock)
	if err != nil {
		return fmt.Errorf("create interval timer: %w", err)
	}
	workout.timer = next
	next.Subscribe(workout.handleTimer)
	return nil
}

func (workout *Workout) handleTimer(state timer.State) {
	work := workout.sequence.Kind() == interval.Work

	switch state {
	case timer.StateRunning:
		workout.emit(pick(work, EventWorkRunning, EventRestRunning))
	case timer.StatePaused:
		workout.emit(pick(work, EventWorkPaused, EventRestPaused))
	case timer.StateFinished:
		workout.emit(pick(work, EventWorkFinished, EventRestFinished))
		workout.advance()
	}
}

func (workout *Workout) advance() {
	if !workout.sequence.HasNext() {
		workout.finished = true
		workout.emit(EventWorkoutFinished)
		return
	}

	// HasNext was checked and every interval has a positive duration, so
	// an error here means the sequence is broken.
	if err := workout.sequence.Advance(); err != nil {
		panic(fmt.Sprintf("workout: advance after HasNext: %v", err))
	}
	if err := workout.spawnTimer(); err != nil {
		panic(fmt.Sprintf("workout: next interval: %v", err))
	}
	if err := workout.timer.Start(); err != nil {
		panic(fmt.Sprintf("workout: start next interval: %v", err))
	}
}

func (workout *Workout) emit(event Event) {
	subscriptions := append([]subscription(nil), workout.subscriptions...)
	for _, sub := range subscriptions {
		sub.handler(event)
	}
}

func pick(work bool, workEvent, restEvent Event) Event {
	if work {
		return workEvent
	}
	return restEvent
}
