package y2019

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nf/intcode/intcode"
)

func init() { register(9, day9) }

func day9(_ context.Context, prog []int64) (Answer, error) {
	// Input 1 runs the BOOST self test, input 2 runs in sensor boost mode.
	var a Answer
	for _, mode := range []int64{1, 2} {
		out, err := intcode.RunProgram(prog, mode)
		if err != nil {
			return Answer{}, err
		}
		if len(out) != 1 {
			// Multiple outputs list the opcodes that are malfunctioning.
			return Answer{}, fmt.Errorf("mode %d: self test reported %v", mode, out)
		}
		s := strconv.FormatInt(out[0], 10)
		if mode == 1 {
			a.Part1 = s
		} else {
			a.Part2 = s
		}
	}
	return a, nil
}
