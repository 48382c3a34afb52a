// Package screen implements the tile display that Intcode programs draw on
// by emitting (x, y, tile) triples.
package screen

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nf/intcode/aoc"
)

// Screen holds the tiles drawn so far and the last reported score.
// It is safe for concurrent use.
type Screen struct {
	mu       sync.Mutex
	tiles    map[aoc.Pt]int64
	score    int64
	hasScore bool
	ops      int // total count of draw operations

	partial []int64
}

func New() *Screen {
	return &Screen{tiles: make(map[aoc.Pt]int64)}
}

// Apply draws tile v at (x, y). The position (-1, 0) is not a tile;
// it sets the score instead.
func (s *Screen) Apply(x, y, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops++
	if x == -1 && y == 0 {
		s.score, s.hasScore = v, true
		return
	}
	s.tiles[aoc.Pt{X: int(x), Y: int(y)}] = v
}

// SetTile draws tile v at p. Unlike Apply, every position is a tile.
func (s *Screen) SetTile(p aoc.Pt, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops++
	s.tiles[p] = v
}

// WriteInt buffers output values, applying each complete triple,
// so a Screen can be used directly as a machine's Output.
func (s *Screen) WriteInt(v int64) error {
	s.partial = append(s.partial, v)
	if len(s.partial) == 3 {
		s.Apply(s.partial[0], s.partial[1], s.partial[2])
		s.partial = s.partial[:0]
	}
	return nil
}

// Feed applies out as a sequence of triples. A trailing partial triple is
// kept until the remaining values arrive.
func (s *Screen) Feed(out []int64) {
	for _, v := range out {
		s.WriteInt(v)
	}
}

func (s *Screen) Score() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score, s.hasScore
}

// Ops returns the number of draw operations applied so far.
func (s *Screen) Ops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops
}

// Tile returns the tile at p.
func (s *Screen) Tile(p aoc.Pt) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tiles[p]
}

// Count returns the number of positions showing tile.
func (s *Screen) Count(tile int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tiles {
		if t == tile {
			n++
		}
	}
	return n
}

// Find returns a position showing tile.
func (s *Screen) Find(tile int64) (aoc.Pt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p, t := range s.tiles {
		if t == tile {
			return p, true
		}
	}
	return aoc.Pt{}, false
}

// Grid returns the tiles as a grid of glyphs. Tiles without a glyph
// are rendered as '?'.
func (s *Screen) Grid(glyphs map[int64]rune) aoc.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := aoc.Grid{}
	for p, t := range s.tiles {
		r, ok := glyphs[t]
		if !ok {
			r = '?'
		}
		g[p] = r
	}
	return g
}

// Text renders the screen as lines of glyphs followed, if a score
// has been reported, by a score line.
func (s *Screen) Text(glyphs map[int64]rune) string {
	var b strings.Builder
	b.WriteString(s.Grid(glyphs).String())
	if v, ok := s.Score(); ok {
		fmt.Fprintf(&b, "score: %d\n", v)
	}
	return b.String()
}

// Palette maps tiles to colours. Tiles missing from the palette are black.
type Palette map[int64]color.RGBA

// Bounds returns the rectangle covering every tile drawn so far.
func (s *Screen) Bounds() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var r image.Rectangle
	first := true
	for p := range s.tiles {
		tr := image.Rect(p.X, p.Y, p.X+1, p.Y+1)
		if first {
			r, first = tr, false
		} else {
			r = r.Union(tr)
		}
	}
	return r
}

const scoreHeight = 16

// Image renders the screen with each tile scale pixels square. If a score
// has been reported it is written in a strip below the tiles.
func (s *Screen) Image(pal Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	bounds := s.Bounds()
	small := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	s.mu.Lock()
	for p, t := range s.tiles {
		c, ok := pal[t]
		if !ok {
			c = color.RGBA{A: 0xff}
		}
		small.SetRGBA(p.X-bounds.Min.X, p.Y-bounds.Min.Y, c)
	}
	s.mu.Unlock()

	score, hasScore := s.Score()
	h := bounds.Dy() * scale
	if hasScore {
		h += scoreHeight
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	tiles := image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale)
	draw.NearestNeighbor.Scale(dst, tiles, small, small.Bounds(), draw.Src, nil)

	if hasScore {
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(color.White),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(2, tiles.Max.Y+scoreHeight-3),
		}
		d.DrawString(fmt.Sprintf("score %d", score))
	}
	return dst
}

// WritePNG encodes the screen image to w.
func (s *Screen) WritePNG(w io.Writer, pal Palette, scale int) error {
	return png.Encode(w, s.Image(pal, scale))
}
