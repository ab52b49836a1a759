package workout

// Event is a workout lifecycle notification. Events carry no payload.
type Event string

const (
	EventWorkRunning     Event = "work_running"
	EventWorkPaused      Event = "work_paused"
	EventWorkFinished    Event = "work_finished"
	EventRestRunning     Event = "rest_running"
	EventRestPaused      Event = "rest_paused"
	EventRestFinished    Event = "rest_finished"
	EventWorkoutFinished Event = "workout_finished"
)

// Handler receives workout events synchronously, in emission order.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}
