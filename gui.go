package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/shiny/driver"
	shiny "golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/screen"
)

const (
	tileScale = 8
	frameRate = 60
)

// gui shows a tile screen in a window and turns the arrow keys into
// joystick input.
type gui struct {
	pal screen.Palette
	joy atomic.Int64 // -1 left, 0 neutral, 1 right

	mu  sync.Mutex
	scr *screen.Screen

	size  image.Point
	buf   shiny.Buffer
	tex   shiny.Texture
	ops   int // scr.Ops when buf was last drawn
	dirty bool
}

func newGUI(pal screen.Palette) *gui {
	return &gui{pal: pal, ops: -1}
}

// show switches the window to s.
func (g *gui) show(s *screen.Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.scr != s {
		g.scr, g.ops = s, -1
	}
}

func (g *gui) current() *screen.Screen {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scr
}

// joystick returns an Input that reports the arrow keys held down,
// paced to the frame rate so that games run at a playable speed.
func (g *gui) joystick() intcode.Input {
	return intcode.InputFunc(func() (int64, bool) {
		time.Sleep(time.Second / frameRate)
		return g.joy.Load(), true
	})
}

// Run shows the window until it is closed or exit is closed.
// It must be called from the main goroutine.
func (g *gui) Run(title string, exit <-chan struct{}) (err error) {
	driver.Main(func(s shiny.Screen) {
		w, werr := s.NewWindow(&shiny.NewWindowOptions{Title: title})
		if werr != nil {
			err = werr
			return
		}
		defer w.Release()

		type update struct{}
		go func() {
			t := time.NewTicker(time.Second / frameRate)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-exit:
					return
				}
			}
		}()

		defer g.release()

		var sz size.Event
		for {
			e := w.NextEvent()

			select {
			case <-exit:
				return
			default:
			}

			switch e := e.(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}
				g.dirty = true

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case paint.Event:
				g.dirty = true

			case key.Event:
				if e.Code == key.CodeEscape {
					return
				}
				g.key(e)

			case update:
				if uerr := g.update(s); uerr != nil {
					err = fmt.Errorf("gui: %w", uerr)
					return
				}
				if g.dirty && g.tex != nil {
					g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
					w.Fill(sz.Bounds(), color.Black, draw.Src)
					w.Scale(fit(sz.Bounds(), g.size), g.tex, g.tex.Bounds(), draw.Src, nil)
					w.Publish()
					g.dirty = false
				}

			case error:
				log.Print(e)
			}
		}
	})
	return err
}

func (g *gui) key(e key.Event) {
	var v int64
	switch e.Code {
	case key.CodeLeftArrow:
		v = -1
	case key.CodeRightArrow:
		v = 1
	default:
		return
	}
	switch e.Direction {
	case key.DirPress:
		g.joy.Store(v)
	case key.DirRelease:
		g.joy.CompareAndSwap(v, 0)
	}
}

// update copies the screen into the window's buffer if it has changed.
func (g *gui) update(s shiny.Screen) (err error) {
	scr := g.current()
	if scr == nil {
		return nil
	}
	o := scr.Ops()
	if o == g.ops {
		return nil
	}
	m := scr.Image(g.pal, tileScale)
	dim := m.Bounds().Size()
	if dim.X == 0 || dim.Y == 0 {
		return nil
	}
	if g.tex == nil || g.size != dim {
		g.release()
		g.buf, err = s.NewBuffer(dim)
		if err != nil {
			return
		}
		g.tex, err = s.NewTexture(dim)
		if err != nil {
			return
		}
		g.size = dim
	}
	draw.Draw(g.buf.RGBA(), g.buf.Bounds(), m, image.Point{}, draw.Src)
	g.ops = o
	g.dirty = true
	return nil
}

func (g *gui) release() {
	if g.tex != nil {
		g.tex.Release()
		g.tex = nil
	}
	if g.buf != nil {
		g.buf.Release()
		g.buf = nil
	}
}

// fit returns the largest rectangle with the proportions of dim that
// fits centred in r.
func fit(r image.Rectangle, dim image.Point) image.Rectangle {
	if dim.X == 0 || dim.Y == 0 || r.Empty() {
		return r
	}
	w, h := r.Dx(), r.Dy()
	if w*dim.Y > h*dim.X {
		w = h * dim.X / dim.Y
	} else {
		h = w * dim.Y / dim.X
	}
	p := r.Min.Add(image.Pt((r.Dx()-w)/2, (r.Dy()-h)/2))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(w, h))}
}
