package y2019

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nf/intcode/aoc"
	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/screen"
)

func init() { register(11, day11) }

// Panel colours.
const (
	Black int64 = 0
	White int64 = 1
)

// Hull is the set of panels a robot painted, and their colours.
type Hull map[aoc.Pt]int64

func day11(_ context.Context, prog []int64) (Answer, error) {
	h, err := paint(intcode.New(prog), Black)
	if err != nil {
		return Answer{}, err
	}
	p1 := len(h)
	h, err = paint(intcode.New(prog), White)
	if err != nil {
		return Answer{}, err
	}
	return Answer{strconv.Itoa(p1), "\n" + h.String()}, nil
}

// PaintHull runs the painting robot with prog as its brain, starting on a
// panel of colour start.
func PaintHull(prog []int64, start int64) (Hull, error) {
	return paint(intcode.New(prog), start)
}

// paint drives the robot. The brain reads the colour under the robot and
// emits the colour to paint followed by the direction to turn (0 left,
// 1 right), after which the robot moves forward one panel.
func paint(brain proc, start int64) (Hull, error) {
	var (
		hull = Hull{}
		pos  aoc.Pt
		dir  = aoc.Up
		out  []int64
	)
	colour := func(p aoc.Pt) int64 {
		if c, ok := hull[p]; ok {
			return c
		}
		if p == (aoc.Pt{}) {
			return start
		}
		return Black
	}
	for {
		ev, err := brain.Resume()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case intcode.HaltEvent:
			return hull, nil
		case intcode.InputEvent:
			brain.Send(colour(pos))
			continue
		}
		out = append(out, ev.Value)
		if len(out) < 2 {
			continue
		}
		c, turn := out[0], out[1]
		out = out[:0]
		if c != Black && c != White {
			return nil, fmt.Errorf("bad colour %d", c)
		}
		hull[pos] = c
		switch turn {
		case 0:
			dir = aoc.TurnLeft(dir)
		case 1:
			dir = aoc.TurnRight(dir)
		default:
			return nil, fmt.Errorf("bad turn %d", turn)
		}
		pos = pos.Add(dir)
	}
}

// String renders the white panels.
func (h Hull) String() string {
	g := aoc.Grid{}
	for p, c := range h {
		if c == White {
			g[p] = '#'
		}
	}
	return g.String()
}

// Screen returns the hull as a tile screen, for rendering as an image.
func (h Hull) Screen() *screen.Screen {
	s := screen.New()
	for p, c := range h {
		s.SetTile(p, c)
	}
	return s
}

// HullPalette shows painted panels as they look on the ship.
var HullPalette = screen.Palette{
	Black: {R: 0x10, G: 0x10, B: 0x18, A: 0xff},
	White: {R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
}
