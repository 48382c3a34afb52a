// Package aoc holds small helpers shared by the puzzle solvers:
// points, grids, and the usual must-style error shortcuts.
package aoc

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/exp/constraints"
)

type Pt2[T constraints.Signed] struct {
	X, Y T
}

type Pt = Pt2[int]

func (p Pt2[T]) Add(q Pt2[T]) Pt2[T] { return Pt2[T]{p.X + q.X, p.Y + q.Y} }

func (p Pt2[T]) North() Pt2[T] { return Pt2[T]{p.X, p.Y - 1} }
func (p Pt2[T]) South() Pt2[T] { return Pt2[T]{p.X, p.Y + 1} }
func (p Pt2[T]) West() Pt2[T]  { return Pt2[T]{p.X - 1, p.Y} }
func (p Pt2[T]) East() Pt2[T]  { return Pt2[T]{p.X + 1, p.Y} }

// Neighbors4 returns the points north, south, west and east of p,
// in that order.
func (p Pt2[T]) Neighbors4() [4]Pt2[T] {
	return [4]Pt2[T]{p.North(), p.South(), p.West(), p.East()}
}

func AbsInt[T constraints.Signed](x, y T) T {
	v := x - y
	if v < 0 {
		v = -v
	}
	return v
}

// MDist returns the manhattan distance between a and b.
func (a Pt2[T]) MDist(b Pt2[T]) T {
	return AbsInt[T](a.X, b.X) + AbsInt[T](a.Y, b.Y)
}

// Dir is a unit step, with up (north) being negative Y.
type Dir = Pt

var (
	Up    = Dir{0, -1}
	Right = Dir{1, 0}
	Down  = Dir{0, 1}
	Left  = Dir{-1, 0}
)

// TurnRight returns d rotated 90 degrees clockwise.
func TurnRight(d Dir) Dir { return Dir{-d.Y, d.X} }

// TurnLeft returns d rotated 90 degrees counter-clockwise.
func TurnLeft(d Dir) Dir { return Dir{d.Y, -d.X} }

type Grid map[Pt]rune

func (g Grid) Bounds() (minX, minY, maxX, maxY int) {
	n := 0
	for p := range g {
		if n == 0 {
			minX = p.X
			maxX = p.X
			minY = p.Y
			maxY = p.Y
		}
		n++
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return
}

// String renders g row by row, using blank for missing points.
// Trailing blanks are trimmed from each row.
func (g Grid) String() string {
	if len(g) == 0 {
		return ""
	}
	minX, minY, maxX, maxY := g.Bounds()
	var b strings.Builder
	for y := minY; y <= maxY; y++ {
		var row strings.Builder
		for x := minX; x <= maxX; x++ {
			r, ok := g[Pt{x, y}]
			if !ok {
				r = ' '
			}
			row.WriteRune(r)
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// GridFromString parses s into a grid, skipping white space.
func GridFromString(s string) Grid {
	g := Grid{}
	for y, line := range strings.Split(s, "\n") {
		for x, r := range line {
			if r == ' ' || r == '\t' || r == '\r' {
				continue
			}
			g[Pt{x, y}] = r
		}
	}
	return g
}

// Lines returns the lines read from r.
func Lines(r io.Reader) ([]string, error) {
	var ls []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		ls = append(ls, s.Text())
	}
	return ls, s.Err()
}

// MustDo panics if err is non-nil.
func MustDo(err error) {
	if err != nil {
		panic(err)
	}
}

// MustGet returns v as is. It panics if err is non-nil.
func MustGet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Permutations calls f with every ordering of vs. The slice passed to f
// is reused between calls.
func Permutations[T any](vs []T, f func([]T)) {
	p := append([]T(nil), vs...)
	var rec func(int)
	rec = func(k int) {
		if k == len(p) {
			f(p)
			return
		}
		for i := k; i < len(p); i++ {
			p[k], p[i] = p[i], p[k]
			rec(k + 1)
			p[k], p[i] = p[i], p[k]
		}
	}
	rec(0)
}
