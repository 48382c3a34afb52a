package y2019

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/screen"
)

func init() { register(13, day13) }

// Arcade tiles.
const (
	Empty  int64 = 0
	Wall   int64 = 1
	Block  int64 = 2
	Paddle int64 = 3
	Ball   int64 = 4
)

// ArcadeGlyphs renders arcade tiles as text.
var ArcadeGlyphs = map[int64]rune{
	Empty:  ' ',
	Wall:   '#',
	Block:  'x',
	Paddle: '=',
	Ball:   'o',
}

// ArcadePalette renders arcade tiles as colours.
var ArcadePalette = screen.Palette{
	Empty:  {A: 0xff},
	Wall:   {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	Block:  {R: 0xd0, G: 0x60, B: 0x20, A: 0xff},
	Paddle: {R: 0x40, G: 0xa0, B: 0xff, A: 0xff},
	Ball:   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

func day13(ctx context.Context, prog []int64) (Answer, error) {
	n, err := countBlocks(intcode.New(prog))
	if err != nil {
		return Answer{}, err
	}
	score, err := PlayArcade(ctx, prog, nil)
	if err != nil {
		return Answer{}, err
	}
	return Answer{strconv.Itoa(n), strconv.FormatInt(score, 10)}, nil
}

func countBlocks(game proc) (int, error) {
	out, err := drain(game)
	if err != nil {
		return 0, err
	}
	s := screen.New()
	s.Feed(out)
	return s.Count(Block), nil
}

// PlayArcade inserts quarters into the arcade game in prog and plays it
// until it halts, returning the final score. If frame is not nil it is
// called with the screen each time the game waits for the joystick.
func PlayArcade(ctx context.Context, prog []int64, frame func(*screen.Screen)) (int64, error) {
	m := intcode.New(prog)
	if err := m.Poke(0, 2); err != nil {
		return 0, err
	}
	return play(ctx, m, screen.New(), frame)
}

// play moves the paddle towards the ball whenever the game reads the
// joystick (-1 left, 0 neutral, 1 right).
func play(ctx context.Context, game proc, s *screen.Screen, frame func(*screen.Screen)) (int64, error) {
	for {
		ev, err := game.Resume()
		if err != nil {
			return 0, err
		}
		switch ev.Kind {
		case intcode.OutputEvent:
			s.WriteInt(ev.Value)
		case intcode.InputEvent:
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			if frame != nil {
				frame(s)
			}
			game.Send(joystick(s))
		case intcode.HaltEvent:
			if frame != nil {
				frame(s)
			}
			if n := s.Count(Block); n > 0 {
				return 0, fmt.Errorf("game over with %d blocks left", n)
			}
			score, _ := s.Score()
			return score, nil
		}
	}
}

func joystick(s *screen.Screen) int64 {
	ball, ok1 := s.Find(Ball)
	paddle, ok2 := s.Find(Paddle)
	switch {
	case !ok1 || !ok2:
		return 0
	case ball.X < paddle.X:
		return -1
	case ball.X > paddle.X:
		return 1
	}
	return 0
}
