// Command intcode runs, debugs and disassembles Intcode programs, and
// solves the Advent of Code 2019 puzzles that run on them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/screen"
	"github.com/nf/intcode/y2019"
)

func main() {
	log.SetPrefix("intcode: ")
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

type runConfig struct {
	program    string
	ascii      bool
	debug      bool
	breaks     []string
	dump       bool
	inputs     string
	symFile    string
	watch      bool
	gui        bool
	cpuProfile string
}

func newRootCmd() *cobra.Command {
	var cfg runConfig
	cmd := &cobra.Command{
		Use:   "intcode [flags] PROGRAM",
		Short: "Run an Intcode program",
		Long: `Intcode runs the Intcode program in PROGRAM, a file of comma separated
integers. Input is read from stdin and output written to stdout, as decimal
numbers or, with --ascii, as characters.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.program = args[0]
			if len(cfg.breaks) > 0 {
				cfg.debug = true
			}
			return run(cmd.Context(), &cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&cfg.ascii, "ascii", "A", false, "ASCII I/O: read bytes, write characters")
	f.BoolVarP(&cfg.debug, "debug", "d", false, "start in the interactive debugger")
	f.StringArrayVarP(&cfg.breaks, "break", "B", nil, "break at `ADDR`, a number or label (implies --debug)")
	f.BoolVarP(&cfg.dump, "dump", "D", false, "dump memory when the machine stops")
	f.StringVarP(&cfg.inputs, "input", "i", "", "comma separated `LIST` of inputs to read before stdin")
	f.StringVar(&cfg.symFile, "sym", "", "YAML symbol table `file` (default PROGRAM.sym.yaml)")
	f.BoolVar(&cfg.watch, "watch", false, "re-run whenever PROGRAM changes")
	f.BoolVar(&cfg.gui, "gui", false, "show output as a tile screen; arrow keys are the joystick")
	f.StringVar(&cfg.cpuProfile, "cpu_profile", "", "write CPU profile to `file`")

	cmd.AddCommand(newSolveCmd(), newDisCmd())
	return cmd
}

func run(ctx context.Context, cfg *runConfig, stdin io.Reader, stdout io.Writer) error {
	if prof := cfg.cpuProfile; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			return fmt.Errorf("creating CPU profile file: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return err
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	inputs, err := intcode.ParseInputs(cfg.inputs)
	if err != nil {
		return fmt.Errorf("--input: %w", err)
	}
	if cfg.watch {
		return watchMode(ctx, cfg, inputs, stdout)
	}

	prog, err := intcode.ReadFile(cfg.program)
	if err != nil {
		return err
	}
	switch {
	case cfg.debug:
		syms, err := loadSymbols(cfg.symFile, cfg.program)
		if err != nil {
			return err
		}
		d, err := newDebugger(prog, syms, inputs, cfg)
		if err != nil {
			return err
		}
		return d.Run(stdout, cfg.dump)
	case cfg.gui:
		return guiMode(cfg, prog, inputs, stdout)
	}

	c := newConsole(stdin, stdout, cfg.ascii, inputs)
	m := intcode.New(prog)
	c.attach(m)
	runErr := m.Run()
	if err := c.Flush(); err != nil {
		return err
	}
	if cfg.dump {
		if err := intcode.Dump(stdout, m.Mem); err != nil {
			return err
		}
	}
	if err := c.Err(); err != nil && errors.Is(runErr, intcode.ErrNeedInput) {
		return err
	}
	return stopError(m, runErr)
}

// stopError describes why m stopped, or returns nil if it halted.
func stopError(m *intcode.Machine, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, intcode.ErrNeedInput):
		return fmt.Errorf("out of input at %d after %d steps", m.PC, m.Steps)
	}
	return err
}

// guiMode runs the program with its output drawn as tiles in a window.
// Inputs come from the input list and then the joystick.
func guiMode(cfg *runConfig, prog, inputs []int64, stdout io.Writer) error {
	var (
		g    = newGUI(y2019.ArcadePalette)
		scr  = screen.New()
		m    = intcode.New(prog)
		done = make(chan error, 1)
	)
	g.show(scr)
	m.In = chainInput(inputs, g.joystick())
	m.Out = scr
	go func() {
		err := stopError(m, m.Run())
		if err != nil {
			log.Print(err)
		} else {
			log.Printf("halted after %d steps", m.Steps)
		}
		if v, ok := scr.Score(); ok {
			fmt.Fprintf(stdout, "score: %d\n", v)
		}
		done <- err
	}()
	if err := g.Run(filepath.Base(cfg.program), nil); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	default:
		return nil
	}
}
