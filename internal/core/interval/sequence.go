package interval

import (
	"fmt"
	"time"

	"mondaymadness/internal/core/model"
)

// Kind tells whether an interval is for working or resting.
type Kind int

const (
	Work Kind = iota
	Rest
)

func (kind Kind) String() string {
	switch kind {
	case Work:
		return "work"
	case Rest:
		return "rest"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// MaxRepetitions caps how many work intervals a sequence may hold.
const MaxRepetitions = 999

// Interval is a single typed countdown.
type Interval struct {
	Kind     Kind
	Duration time.Duration
}

// Sequence is the precomputed playback order of a workout with a cursor
// that only moves forward.
type Sequence struct {
	items       []Interval
	cursor      int
	repetitions int
	restSkipped bool
}

// New builds the sequence work, rest, work, rest... for the given number of
// repetitions. A zero rest is only accepted for a single repetition and then
// yields a lone work interval.
func New(work, rest time.Duration, repetitions int) (*Sequence, error) {
	if work <= 0 {
		return nil, fmt.Errorf("%w: work time must be positive, got %s", model.ErrInvalidArgument, work)
	}
	if rest < 0 {
		return nil, fmt.Errorf("%w: rest time cannot be negative, got %s", model.ErrInvalidArgument, rest)
	}
	if rest == 0 && repetitions != 1 {
		return nil, fmt.Errorf("%w: skipping rest only allowed for a single interval", model.ErrInvalidArgument)
	}
	if repetitions <= 0 {
		return nil, fmt.Errorf("%w: repetitions must be positive, got %d", model.ErrInvalidArgument, repetitions)
	}
	if repetitions > MaxRepetitions {
		return nil, fmt.Errorf("%w: at most %d repetitions, got %d", model.ErrInvalidArgument, MaxRepetitions, repetitions)
	}

	items := make([]Interval, 0, 2*repetitions)
	for i := 0; i < repetitions; i++ {
		items = append(items, Interval{Kind: Work, Duration: work})
		if rest > 0 {
			items = append(items, Interval{Kind: Rest, Duration: rest})
		}
	}

	return &Sequence{
		items:       items,
		repetitions: repetitions,
		restSkipped: rest == 0,
	}, nil
}

// Count returns the total number of intervals.
func (sequence *Sequence) Count() int {
	return len(sequence.items)
}

// Kind returns the kind of the current interval.
func (sequence *Sequence) Kind() Kind {
	return sequence.items[sequence.cursor].Kind
}

// Duration returns the length of the current interval.
func (sequence *Sequence) Duration() time.Duration {
	return sequence.items[sequence.cursor].Duration
}

// Current returns the current interval.
func (sequence *Sequence) Current() Interval {
	return sequence.items[sequence.cursor]
}

// Index returns the zero-based position of the cursor.
func (sequence *Sequence) Index() int {
	return sequence.cursor
}

// Repetition returns the 1-based repetition the cursor is in.
func (sequence *Sequence) Repetition() int {
	if sequence.restSkipped {
		return sequence.cursor + 1
	}
	return sequence.cursor/2 + 1
}

// Repetitions returns how many work intervals the sequence holds.
func (sequence *Sequence) Repetitions() int {
	return sequence.repetitions
}

// HasNext reports whether Advance can move the cursor.
func (sequence *Sequence) HasNext() bool {
	return sequence.cursor < len(sequence.items)-1
}

// Advance moves to the next interval.
func (sequence *Sequence) Advance() error {
	if !sequence.HasNext() {
		return fmt.Errorf("%w: no interval after %d of %d", model.ErrOutOfRange, sequence.cursor+1, len(sequence.items))
	}
	sequence.cursor++
	return nil
}
