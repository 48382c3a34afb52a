package y2019

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nf/intcode/intcode"
)

func init() { register(2, day2) }

const gravityTarget = 19690720

func day2(ctx context.Context, prog []int64) (Answer, error) {
	p1, err := nounVerb(prog, 12, 2)
	if err != nil {
		return Answer{}, err
	}
	p2, err := findNounVerb(ctx, prog, gravityTarget)
	if err != nil {
		return Answer{}, err
	}
	return Answer{strconv.FormatInt(p1, 10), strconv.FormatInt(p2, 10)}, nil
}

// nounVerb runs prog with addresses 1 and 2 replaced by noun and verb
// and returns the value left at address 0.
func nounVerb(prog []int64, noun, verb int64) (int64, error) {
	m := intcode.New(prog)
	if err := m.Poke(1, noun); err != nil {
		return 0, err
	}
	if err := m.Poke(2, verb); err != nil {
		return 0, err
	}
	if err := m.Run(); err != nil {
		return 0, err
	}
	return m.Peek(0), nil
}

func findNounVerb(ctx context.Context, prog []int64, target int64) (int64, error) {
	for noun := int64(0); noun < 100; noun++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for verb := int64(0); verb < 100; verb++ {
			v, err := nounVerb(prog, noun, verb)
			if err != nil {
				// Many combinations crash the program.
				continue
			}
			if v == target {
				return 100*noun + verb, nil
			}
		}
	}
	return 0, fmt.Errorf("no noun and verb produce %d", target)
}
