// Package session binds a workout to the application: it builds the workout
// from the stored preset, decides what the music does on each workout event
// and hands the renderer a snapshot per frame.
package session

import (
	"fmt"
	"log"

	"mondaymadness/internal/core/interval"
	"mondaymadness/internal/core/model"
	"mondaymadness/internal/core/timer"
	"mondaymadness/internal/core/workout"
)

// Player is the music facade driven by workout events.
type Player interface {
	Resume()
	Pause()
	Stop()
}

// PresetStore remembers the last configured preset.
type PresetStore interface {
	LoadPreset() (model.Preset, error)
	SavePreset(model.Preset) error
}

// Snapshot is what the countdown view renders for one frame.
type Snapshot struct {
	Kind        interval.Kind
	Fraction    float64
	Text        string
	Running     bool
	Started     bool
	Repetition  int
	Repetitions int
}

// Controller owns the current workout. It is not safe for concurrent use;
// call it from the UI goroutine only.
type Controller struct {
	store  PresetStore
	player Player
	clock  timer.Clock

	preset      model.Preset
	workout     *workout.Workout
	unsubscribe func()
	started     bool

	observers []observer
	nextID    uint64
}

type observer struct {
	id      uint64
	handler workout.Handler
}

// New loads the last preset and prepares a workout for it. An unreadable or
// invalid preset falls back to the default one.
func New(store PresetStore, player Player, clock timer.Clock) (*Controller, error) {
	controller := &Controller{
		store:  store,
		player: player,
		clock:  clock,
		preset: model.DefaultPreset(),
	}

	if store != nil {
		preset, err := store.LoadPreset()
		if err != nil {
			log.Printf("session: load preset: %v", err)
		} else if _, err := Validate(preset); err != nil {
			log.Printf("session: stored preset rejected: %v", err)
		} else {
			controller.preset = preset
		}
	}

	if err := controller.rebuild(); err != nil {
		return nil, err
	}
	return controller, nil
}

// Validate checks preset the same way the workout will.
func Validate(preset model.Preset) (*interval.Sequence, error) {
	return interval.New(preset.Work, preset.Rest, preset.Repetitions)
}

// Preset returns the preset the current workout was built from.
func (controller *Controller) Preset() model.Preset {
	return controller.preset
}

// Subscribe forwards workout events to handler, across resets.
func (controller *Controller) Subscribe(handler workout.Handler) func() {
	if handler == nil {
		return func() {}
	}
	controller.nextID++
	id := controller.nextID
	controller.observers = append(controller.observers, observer{id: id, handler: handler})
	return func() {
		for i, item := range controller.observers {
			if item.id == id {
				controller.observers = append(controller.observers[:i:i], controller.observers[i+1:]...)
				return
			}
		}
	}
}

// Toggle pauses a running workout and starts or resumes any other.
func (controller *Controller) Toggle() error {
	if controller.workout.IsRunning() {
		return controller.workout.Pause()
	}
	if err := controller.workout.Start(); err != nil {
		return err
	}
	controller.started = true
	return nil
}

// IsRunning reports whether the current interval is counting down.
func (controller *Controller) IsRunning() bool {
	return controller.workout.IsRunning()
}

// Reset silences the music and replaces the workout with a fresh one.
func (controller *Controller) Reset() error {
	controller.player.Stop()
	return controller.rebuild()
}

// Apply validates preset, stores it and resets onto it.
func (controller *Controller) Apply(preset model.Preset) error {
	if _, err := Validate(preset); err != nil {
		return err
	}
	if controller.store != nil {
		if err := controller.store.SavePreset(preset); err != nil {
			return fmt.Errorf("save preset: %w", err)
		}
	}
	controller.preset = preset
	return controller.Reset()
}

// Frame advances the countdown and reports what to draw.
func (controller *Controller) Frame() Snapshot {
	current := controller.workout
	current.Tick()
	// A finishing tick may have swapped in a fresh workout.
	current = controller.workout
	return Snapshot{
		Kind:        current.Kind(),
		Fraction:    current.Fraction(),
		Text:        current.DisplayText(),
		Running:     current.IsRunning(),
		Started:     controller.started,
		Repetition:  current.Repetition(),
		Repetitions: current.Repetitions(),
	}
}

// Close drops the workout subscription and stops the music.
func (controller *Controller) Close() {
	if controller.unsubscribe != nil {
		controller.unsubscribe()
		controller.unsubscribe = nil
	}
	controller.observers = nil
	controller.player.Stop()
}

func (controller *Controller) rebuild() error {
	sequence, err := Validate(controller.preset)
	if err != nil {
		return err
	}
	next, err := workout.New(sequence, controller.clock)
	if err != nil {
		return err
	}

	if controller.unsubscribe != nil {
		controller.unsubscribe()
	}
	controller.workout = next
	controller.unsubscribe = next.Subscribe(controller.handle)
	controller.started = false
	return nil
}

func (controller *Controller) handle(event workout.Event) {
	switch event {
	case workout.EventWorkRunning:
		controller.player.Resume()
	case workout.EventWorkPaused, workout.EventWorkFinished:
		controller.player.Pause()
	case workout.EventWorkoutFinished:
		controller.player.Stop()
	}

	observers := append([]observer(nil), controller.observers...)
	for _, item := range observers {
		item.handler(event)
	}

	if event == workout.EventWorkoutFinished {
		if err := controller.rebuild(); err != nil {
			log.Printf("session: prepare next workout: %v", err)
		}
	}
}
