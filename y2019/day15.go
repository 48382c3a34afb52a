package y2019

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nf/intcode/aoc"
	"github.com/nf/intcode/intcode"
)

func init() { register(15, day15) }

// Droid movement commands.
const (
	north int64 = 1
	south int64 = 2
	west  int64 = 3
	east  int64 = 4
)

// Droid status codes.
const (
	hitWall int64 = 0
	moved   int64 = 1
	oxygen  int64 = 2
)

var steps = map[int64]aoc.Dir{
	north: aoc.Up,
	south: aoc.Down,
	west:  aoc.Left,
	east:  aoc.Right,
}

var reverse = map[int64]int64{north: south, south: north, west: east, east: west}

func day15(ctx context.Context, prog []int64) (Answer, error) {
	ship, err := explore(ctx, intcode.New(prog))
	if err != nil {
		return Answer{}, err
	}
	if !ship.found {
		return Answer{}, fmt.Errorf("oxygen system not found")
	}
	d := ship.distances(aoc.Pt{})
	p1, ok := d[ship.oxygen]
	if !ok {
		return Answer{}, fmt.Errorf("oxygen system unreachable")
	}
	fill := 0
	for _, n := range ship.distances(ship.oxygen) {
		fill = max(fill, n)
	}
	return Answer{strconv.Itoa(p1), strconv.Itoa(fill)}, nil
}

// shipMap is the area explored by the repair droid.
type shipMap struct {
	open   map[aoc.Pt]bool // false for walls
	oxygen aoc.Pt
	found  bool
}

// explore maps every reachable location with a depth first search,
// walking the droid back after each branch.
func explore(ctx context.Context, droid proc) (*shipMap, error) {
	m := &shipMap{open: map[aoc.Pt]bool{{}: true}}
	move := func(cmd int64) (int64, error) {
		droid.Send(cmd)
		return await(droid)
	}
	var walk func(p aoc.Pt) error
	walk = func(p aoc.Pt) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, cmd := range []int64{north, south, west, east} {
			np := p.Add(steps[cmd])
			if _, seen := m.open[np]; seen {
				continue
			}
			st, err := move(cmd)
			if err != nil {
				return err
			}
			switch st {
			case hitWall:
				m.open[np] = false
				continue
			case oxygen:
				m.oxygen, m.found = np, true
			case moved:
			default:
				return fmt.Errorf("bad status %d", st)
			}
			m.open[np] = true
			if err := walk(np); err != nil {
				return err
			}
			if st, err := move(reverse[cmd]); err != nil {
				return err
			} else if st == hitWall {
				return fmt.Errorf("droid could not retrace its steps at %v", np)
			}
		}
		return nil
	}
	if err := walk(aoc.Pt{}); err != nil {
		return nil, err
	}
	return m, nil
}

// distances returns the number of steps from p to every reachable
// open location.
func (m *shipMap) distances(p aoc.Pt) map[aoc.Pt]int {
	d := map[aoc.Pt]int{p: 0}
	q := []aoc.Pt{p}
	for len(q) > 0 {
		c := q[0]
		q = q[1:]
		for _, n := range c.Neighbors4() {
			if _, ok := d[n]; ok || !m.open[n] {
				continue
			}
			d[n] = d[c] + 1
			q = append(q, n)
		}
	}
	return d
}
