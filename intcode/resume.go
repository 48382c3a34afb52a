package intcode

import "errors"

// EventKind describes why Resume returned.
type EventKind int

const (
	OutputEvent EventKind = iota
	InputEvent
	HaltEvent
)

func (k EventKind) String() string {
	switch k {
	case OutputEvent:
		return "output"
	case InputEvent:
		return "need input"
	case HaltEvent:
		return "halted"
	}
	return "unknown"
}

// Event is the result of resuming a machine.
type Event struct {
	Kind  EventKind
	Value int64 // for OutputEvent
}

type yield struct{ v int64 }

func (y *yield) WriteInt(v int64) error {
	y.v = v
	return ErrYield
}

// Resume runs m until it emits a value, needs input that is not
// available, or halts. Input is taken from m.In, or from values queued
// with Send. m.Out is not used while the machine is being resumed.
//
// A machine can be driven as a coroutine by calling Resume in a loop,
// calling Send whenever it reports InputEvent.
func (m *Machine) Resume() (Event, error) {
	var (
		out = m.Out
		y   yield
	)
	m.Out = &y
	defer func() { m.Out = out }()

	switch err := m.Run(); {
	case err == nil:
		return Event{Kind: HaltEvent}, nil
	case errors.Is(err, ErrYield):
		return Event{Kind: OutputEvent, Value: y.v}, nil
	case errors.Is(err, ErrNeedInput):
		return Event{Kind: InputEvent}, nil
	default:
		return Event{}, err
	}
}

// Collect sends inputs to m, runs it until it halts or needs more input
// and returns everything it emitted.
func (m *Machine) Collect(inputs ...int64) ([]int64, error) {
	m.Send(inputs...)
	var out []int64
	for {
		ev, err := m.Resume()
		if err != nil {
			return out, err
		}
		if ev.Kind != OutputEvent {
			return out, nil
		}
		out = append(out, ev.Value)
	}
}

// RunProgram runs a fresh copy of prog with the given inputs until it halts
// and returns its output. Running out of input is an error.
func RunProgram(prog []int64, inputs ...int64) ([]int64, error) {
	m := New(prog)
	out, err := m.Collect(inputs...)
	if err != nil {
		return out, err
	}
	if !m.Halted() {
		return out, ErrNeedInput
	}
	return out, nil
}
