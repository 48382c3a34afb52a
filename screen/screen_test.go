package screen

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nf/intcode/aoc"
)

var glyphs = map[int64]rune{0: ' ', 1: '#', 2: 'x'}

func TestFeed(t *testing.T) {
	s := New()
	s.Feed([]int64{1, 2, 3, 6, 5, 4})
	assert.Equal(t, int64(3), s.Tile(aoc.Pt{X: 1, Y: 2}))
	assert.Equal(t, int64(4), s.Tile(aoc.Pt{X: 6, Y: 5}))
	assert.Equal(t, 2, s.Ops())

	// Partial triples wait for the rest.
	s.Feed([]int64{0, 0})
	assert.Equal(t, 2, s.Ops())
	s.Feed([]int64{2})
	assert.Equal(t, int64(2), s.Tile(aoc.Pt{}))

	_, ok := s.Score()
	assert.False(t, ok)
	s.Feed([]int64{-1, 0, 12345})
	score, ok := s.Score()
	assert.True(t, ok)
	assert.Equal(t, int64(12345), score)
	assert.Zero(t, s.Tile(aoc.Pt{X: -1, Y: 0}))
}

func TestCountFind(t *testing.T) {
	s := New()
	s.Feed([]int64{0, 0, 2, 1, 0, 2, 2, 0, 1, 3, 3, 4})
	assert.Equal(t, 2, s.Count(2))
	assert.Equal(t, 0, s.Count(9))
	p, ok := s.Find(4)
	require.True(t, ok)
	assert.Equal(t, aoc.Pt{X: 3, Y: 3}, p)
	_, ok = s.Find(9)
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	s := New()
	s.Feed([]int64{0, 0, 1, 1, 0, 1, 2, 0, 1, 1, 1, 2, 0, 1, 7, -1, 0, 42})
	assert.Equal(t, "###\n?x\nscore: 42\n", s.Text(glyphs))
}

func TestImage(t *testing.T) {
	s := New()
	red := color.RGBA{R: 0xff, A: 0xff}
	s.Feed([]int64{2, 3, 1, 3, 3, 0})
	m := s.Image(Palette{1: red}, 4)
	assert.Equal(t, 8, m.Bounds().Dx())
	assert.Equal(t, 4, m.Bounds().Dy())
	assert.Equal(t, red, m.RGBAAt(1, 1))
	assert.Equal(t, red, m.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{A: 0xff}, m.RGBAAt(5, 1))

	s.Apply(-1, 0, 7)
	m = s.Image(Palette{1: red}, 4)
	assert.Equal(t, 4+scoreHeight, m.Bounds().Dy())

	var b bytes.Buffer
	require.NoError(t, s.WritePNG(&b, Palette{1: red}, 2))
	dec, err := png.Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, 4, dec.Bounds().Dx())
}

func TestSetTile(t *testing.T) {
	s := New()
	s.SetTile(aoc.Pt{X: -1, Y: 0}, 1)
	s.SetTile(aoc.Pt{X: 0, Y: 0}, 1)
	assert.Equal(t, int64(1), s.Tile(aoc.Pt{X: -1, Y: 0}))
	assert.Equal(t, 2, s.Count(1))
	assert.Equal(t, 2, s.Ops())
	_, ok := s.Score()
	assert.False(t, ok)

	m := s.Image(Palette{1: color.RGBA{R: 0xff, A: 0xff}}, 4)
	assert.Equal(t, 8, m.Bounds().Dx())
	assert.Equal(t, 4, m.Bounds().Dy())
}
