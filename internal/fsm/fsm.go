// Package fsm defines the dictation session lifecycle as a small explicit
// state machine.
package fsm

import "fmt"

type State string

type Event string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
	StateError      State = "error"
)

const (
	EventStart     Event = "start"
	EventStop      Event = "stop"
	EventDelivered Event = "delivered"
	EventFail      Event = "fail"
	EventReset     Event = "reset"
)

// transitions maps each state to the events it accepts. EventFail is handled
// outside the table: every state may fail into StateError.
var transitions = map[State]map[Event]State{
	StateIdle:       {EventStart: StateRecording},
	StateRecording:  {EventStop: StateProcessing},
	StateProcessing: {EventDelivered: StateIdle},
	StateError:      {EventReset: StateIdle},
}

// Transition applies event to current and returns the next state. An invalid
// pair leaves the state unchanged and returns an error naming both.
func Transition(current State, event Event) (State, error) {
	if event == EventFail {
		return StateError, nil
	}

	accepted, ok := transitions[current]
	if !ok {
		return current, fmt.Errorf("unknown state %q", current)
	}
	next, ok := accepted[event]
	if !ok {
		return current, fmt.Errorf("invalid transition: %s --(%s)--> ?", current, event)
	}
	return next, nil
}
