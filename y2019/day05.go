package y2019

import (
	"context"
	"strconv"
)

func init() { register(5, day5) }

func day5(_ context.Context, prog []int64) (Answer, error) {
	// System ID 1 is the air conditioner unit, 5 the thermal radiators.
	p1, err := diagnostic(prog, 1)
	if err != nil {
		return Answer{}, err
	}
	p2, err := diagnostic(prog, 5)
	if err != nil {
		return Answer{}, err
	}
	return Answer{strconv.FormatInt(p1, 10), strconv.FormatInt(p2, 10)}, nil
}
