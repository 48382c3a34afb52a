package main

import (
	"context"
	"errors"

	"github.com/nf/intcode/intcode"
)

// runner runs a program until it stops, and restarts from scratch
// whenever it is handed a new program.
type runner struct {
	newMachine func(prog []int64) *intcode.Machine
	done       func(m *intcode.Machine, err error) // called when a run ends by itself

	swap     chan []int64
	swapDone chan bool
}

func newRunner(newMachine func([]int64) *intcode.Machine, done func(*intcode.Machine, error)) *runner {
	return &runner{
		newMachine: newMachine,
		done:       done,
		swap:       make(chan []int64),
		swapDone:   make(chan bool),
	}
}

// Swap stops the running program and starts prog in its place.
func (r *runner) Swap(ctx context.Context, prog []int64) error {
	select {
	case r.swap <- prog:
	case <-ctx.Done():
		return ctx.Err()
	}
	<-r.swapDone
	return nil
}

var errStopped = errors.New("stopped")

type result struct {
	m   *intcode.Machine
	err error
}

// Run runs prog, and each program passed to Swap, until ctx is done.
func (r *runner) Run(ctx context.Context, prog []int64) error {
	var (
		stop    chan bool
		execErr = make(chan result)
		running bool
	)
	start := func(prog []int64) {
		stop = make(chan bool)
		m := r.newMachine(prog)
		go func(stop <-chan bool) { execErr <- result{m, exec(m, stop)} }(stop)
		running = true
	}
	halt := func() {
		if running {
			close(stop)
			<-execErr
			running = false
		}
	}
	start(prog)
	for {
		select {
		case prog := <-r.swap:
			halt()
			start(prog)
			r.swapDone <- true
		case res := <-execErr:
			running = false
			if r.done != nil {
				r.done(res.m, res.err)
			}
		case <-ctx.Done():
			halt()
			return ctx.Err()
		}
	}
}

// exec runs m until it stops or stop is closed. A normal halt is not
// an error.
func exec(m *intcode.Machine, stop <-chan bool) error {
	for n := 0; ; n++ {
		if n%1024 == 0 {
			select {
			case <-stop:
				return errStopped
			default:
			}
		}
		if err := m.Exec(); err != nil {
			if errors.Is(err, intcode.ErrHalted) {
				return nil
			}
			return err
		}
	}
}
