// Package y2019 solves the 2019 Advent of Code puzzles that run on the
// Intcode computer.
package y2019

import (
	"context"
	"fmt"
	"sort"

	"github.com/nf/intcode/intcode"
)

// Answer holds the answers to both parts of a puzzle.
type Answer struct {
	Part1, Part2 string
}

// Solver solves one day's puzzle given its Intcode program.
type Solver func(ctx context.Context, prog []int64) (Answer, error)

var solvers = map[int]Solver{}

func register(day int, s Solver) {
	if _, dup := solvers[day]; dup {
		panic(fmt.Sprintf("day %d registered twice", day))
	}
	solvers[day] = s
}

// Days returns the days that have solvers, in order.
func Days() []int {
	var ds []int
	for d := range solvers {
		ds = append(ds, d)
	}
	sort.Ints(ds)
	return ds
}

// Solve runs the solver for day.
func Solve(ctx context.Context, day int, prog []int64) (Answer, error) {
	s, ok := solvers[day]
	if !ok {
		return Answer{}, fmt.Errorf("no solver for day %d", day)
	}
	a, err := s(ctx, prog)
	if err != nil {
		return a, fmt.Errorf("day %d: %w", day, err)
	}
	return a, nil
}

// proc is a machine driven as a coroutine.
// It is implemented by *intcode.Machine.
type proc interface {
	Resume() (intcode.Event, error)
	Send(vs ...int64)
}

var _ proc = (*intcode.Machine)(nil)

// await resumes p until it emits a value.
func await(p proc) (int64, error) {
	ev, err := p.Resume()
	if err != nil {
		return 0, err
	}
	if ev.Kind != intcode.OutputEvent {
		return 0, fmt.Errorf("expected output, machine reported %v", ev.Kind)
	}
	return ev.Value, nil
}

// drain resumes p until it halts and returns everything it emitted.
func drain(p proc) ([]int64, error) {
	var out []int64
	for {
		ev, err := p.Resume()
		if err != nil {
			return out, err
		}
		switch ev.Kind {
		case intcode.OutputEvent:
			out = append(out, ev.Value)
		case intcode.HaltEvent:
			return out, nil
		default:
			return out, fmt.Errorf("unexpected %v", ev.Kind)
		}
	}
}

// diagnostic runs prog with input and returns its final output. Earlier
// outputs are test results that must all be zero.
func diagnostic(prog []int64, input int64) (int64, error) {
	out, err := intcode.RunProgram(prog, input)
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, intcode.ErrNoOutput
	}
	for i, v := range out[:len(out)-1] {
		if v != 0 {
			return 0, fmt.Errorf("test %d failed: %d", i, v)
		}
	}
	return out[len(out)-1], nil
}
