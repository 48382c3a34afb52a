package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/screen"
	"github.com/nf/intcode/y2019"
)

func newSolveCmd() *cobra.Command {
	var (
		showGUI bool
		pngFile string
	)
	c := &cobra.Command{
		Use:   "solve [--gui] [--png FILE] DAY INPUT",
		Short: "Solve an Advent of Code 2019 puzzle",
		Long: fmt.Sprintf(`Solve runs the solver for DAY on the Intcode program in INPUT and prints
the answers to both parts. Days %v have solvers.

Days 11 and 13 draw on a screen, which --gui shows in a window and --png
writes to a file.`, y2019.Days()),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day %q", args[0])
			}
			prog, err := intcode.ReadFile(args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if showGUI || pngFile != "" {
				return solveScreen(cmd.Context(), day, prog, showGUI, pngFile, w)
			}
			a, err := y2019.Solve(cmd.Context(), day, prog)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Part 1: %s\nPart 2: %s\n", a.Part1, a.Part2)
			return nil
		},
	}
	c.Flags().BoolVar(&showGUI, "gui", false, "show the puzzle's screen in a window")
	c.Flags().StringVar(&pngFile, "png", "", "write the puzzle's final screen to `FILE`")
	return c
}

// A display draws a puzzle's screen, calling frame with it as it changes,
// and returns the final screen and a description of the result.
type display func(frame func(*screen.Screen)) (*screen.Screen, string, error)

func displayFor(ctx context.Context, day int, prog []int64) (display, screen.Palette, error) {
	switch day {
	case 11:
		return func(frame func(*screen.Screen)) (*screen.Screen, string, error) {
			h, err := y2019.PaintHull(prog, y2019.White)
			if err != nil {
				return nil, "", err
			}
			s := h.Screen()
			frame(s)
			return s, "registration identifier:\n" + h.String(), nil
		}, y2019.HullPalette, nil
	case 13:
		return func(frame func(*screen.Screen)) (*screen.Screen, string, error) {
			var last *screen.Screen
			score, err := y2019.PlayArcade(ctx, prog, func(s *screen.Screen) {
				last = s
				frame(s)
			})
			return last, fmt.Sprintf("score: %d", score), err
		}, y2019.ArcadePalette, nil
	}
	return nil, nil, fmt.Errorf("day %d has no screen", day)
}

func solveScreen(ctx context.Context, day int, prog []int64, showGUI bool, pngFile string, w io.Writer) error {
	disp, pal, err := displayFor(ctx, day, prog)
	if err != nil {
		return err
	}
	finish := func(s *screen.Screen, msg string, err error) error {
		if err != nil {
			return err
		}
		fmt.Fprintln(w, msg)
		if pngFile == "" || s == nil {
			return nil
		}
		f, err := os.Create(pngFile)
		if err != nil {
			return err
		}
		if err := s.WritePNG(f, pal, tileScale); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if !showGUI {
		return finish(disp(func(*screen.Screen) {}))
	}

	g := newGUI(pal)
	done := make(chan error, 1)
	go func() {
		err := finish(disp(func(s *screen.Screen) {
			g.show(s)
			time.Sleep(time.Millisecond)
		}))
		if err != nil {
			log.Print(err)
		}
		done <- err
	}()
	if err := g.Run(fmt.Sprintf("day %d", day), ctx.Done()); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	default:
		return fmt.Errorf("day %d: window closed before the puzzle finished", day)
	}
}
