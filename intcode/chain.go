package intcode

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrNoOutput is returned by Chain if the last machine never emits.
var ErrNoOutput = errors.New("no output")

// Chain runs one machine per seed, concurrently, with the output of each
// machine connected to the input of the next. Machine i first reads
// seeds[i], and the first machine then reads inputs. If loop is true the
// last machine's output is connected back to the first machine's input.
//
// Chain returns the last value emitted by the last machine once all
// machines have halted.
func Chain(ctx context.Context, prog []int64, seeds []int64, loop bool, inputs ...int64) (int64, error) {
	n := len(seeds)
	if n == 0 {
		return 0, fmt.Errorf("chain: no machines")
	}
	g, ctx := errgroup.WithContext(ctx)

	// links[i] feeds machine i. Buffers hold a seed plus the inputs, so
	// seeding never blocks, and leave room for the feedback value.
	links := make([]chan int64, n)
	for i := range links {
		links[i] = make(chan int64, len(inputs)+2)
		links[i] <- seeds[i]
	}
	for _, v := range inputs {
		links[0] <- v
	}

	stop := make(chan struct{})
	defer close(stop)

	var (
		last int64
		seen bool
	)
	for i := 0; i < n; i++ {
		m := New(prog)
		m.In = ChanInput(ctx, links[i])
		switch {
		case i < n-1:
			m.Out = ChanOutput(ctx, links[i+1])
		case loop:
			out := ChanOutput(ctx, links[0])
			m.Out = OutputFunc(func(v int64) error {
				last, seen = v, true
				// The first machine may already have halted, in which
				// case nothing will read the value.
				select {
				case links[0] <- v:
					return nil
				default:
				}
				return out.WriteInt(v)
			})
		default:
			m.Out = OutputFunc(func(v int64) error {
				last, seen = v, true
				return nil
			})
		}
		i := i
		g.Go(func() error {
			err := m.Run()
			// Machine i reads nothing more. Discard whatever is sent
			// to it so that the machine before it can finish.
			go drain(links[i], stop)
			if errors.Is(err, ErrNeedInput) && ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				return fmt.Errorf("machine %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if !seen {
		return 0, ErrNoOutput
	}
	return last, nil
}

func drain(ch <-chan int64, stop <-chan struct{}) {
	for {
		select {
		case <-ch:
		case <-stop:
			return
		}
	}
}
