package y2019

import (
	"math"

	"github.com/nf/intcode/intcode"
)

// read marks the points in a script where the machine reads input.
const read = math.MinInt64

// script is a fake machine that emits a fixed sequence of values,
// pausing for input wherever the sequence holds read.
type script struct {
	seq   []int64
	got   []int64 // everything sent
	avail int     // sent but not yet read
}

func newScript(seq ...int64) *script { return &script{seq: seq} }

func (s *script) Send(vs ...int64) {
	s.got = append(s.got, vs...)
	s.avail += len(vs)
}

func (s *script) Resume() (intcode.Event, error) {
	for len(s.seq) > 0 {
		v := s.seq[0]
		if v == read {
			if s.avail == 0 {
				return intcode.Event{Kind: intcode.InputEvent}, nil
			}
			s.avail--
			s.seq = s.seq[1:]
			continue
		}
		s.seq = s.seq[1:]
		return intcode.Event{Kind: intcode.OutputEvent, Value: v}, nil
	}
	return intcode.Event{Kind: intcode.HaltEvent}, nil
}

func mustParse(s string) []int64 {
	p, err := intcode.Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return p
}
