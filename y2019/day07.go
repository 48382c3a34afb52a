package y2019

import (
	"context"
	"strconv"

	"github.com/nf/intcode/aoc"
	"github.com/nf/intcode/intcode"
)

func init() { register(7, day7) }

func day7(ctx context.Context, prog []int64) (Answer, error) {
	p1, err := maxThrust(ctx, prog, []int64{0, 1, 2, 3, 4}, false)
	if err != nil {
		return Answer{}, err
	}
	p2, err := maxThrust(ctx, prog, []int64{5, 6, 7, 8, 9}, true)
	if err != nil {
		return Answer{}, err
	}
	return Answer{strconv.FormatInt(p1, 10), strconv.FormatInt(p2, 10)}, nil
}

// maxThrust tries every ordering of phases on a chain of amplifiers
// and returns the highest signal sent to the thrusters.
func maxThrust(ctx context.Context, prog, phases []int64, feedback bool) (int64, error) {
	var (
		best     int64
		found    bool
		firstErr error
	)
	aoc.Permutations(phases, func(p []int64) {
		if firstErr != nil {
			return
		}
		v, err := intcode.Chain(ctx, prog, p, feedback, 0)
		if err != nil {
			firstErr = err
			return
		}
		if !found || v > best {
			best, found = v, true
		}
	})
	return best, firstErr
}
