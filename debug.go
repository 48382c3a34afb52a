package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/intcode/intcode"
)

type debugger struct {
	smu sync.Mutex // guards s
	s   *session

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu     sync.Mutex
	syms   intcode.Symbols
	cancel context.CancelFunc // interrupts the running command
}

func newDebugger(prog []int64, syms intcode.Symbols, inputs []int64, cfg *runConfig) (*debugger, error) {
	d := &debugger{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app:  tview.NewApplication(),
		syms: syms,
	}
	d.s = newSession(d.log, prog, syms, inputs, cfg.ascii)
	for _, b := range cfg.breaks {
		addr, err := resolveAddr(syms, b, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("--break: %w", err)
		}
		d.s.breaks[addr] = true
	}

	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 2, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		cmd, arg, ok := strings.Cut(t, " ")
		if !ok || strings.Contains(arg, " ") {
			return
		}
		switch cmd {
		case "b", "break", "d", "delete", "w", "watch", "m", "mem", "l", "list", "set":
			for _, l := range withLabelPrefix(d.symbols(), arg) {
				entries = append(entries, cmd+" "+l)
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEscape:
			d.interrupt()
			return
		case tcell.KeyEnter:
		default:
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		if cmd == "exit" {
			d.interrupt()
			d.app.Stop()
			return
		}
		log.Printf("> %s", cmd)
		d.exec(cmd)
	})
	return d, nil
}

func (d *debugger) symbols() intcode.Symbols {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.syms
}

// Run shows the debugger until the user exits, then dumps memory to w
// if asked to. The log package writes to the log pane while it runs.
func (d *debugger) Run(w io.Writer, dump bool) error {
	log.SetPrefix("")
	log.SetOutput(d.log)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("intcode: ")
	}()
	log.Print("Esc interrupts a running command; exit quits")
	d.refresh()
	if err := d.app.Run(); err != nil {
		return err
	}
	if dump {
		d.smu.Lock()
		defer d.smu.Unlock()
		return intcode.Dump(w, d.s.m.Mem)
	}
	return nil
}

// exec runs a command in the background. Only one command runs at a time.
func (d *debugger) exec(line string) {
	ctx, cancel := context.WithCancel(context.Background())
	d.mu.Lock()
	if d.cancel != nil {
		d.mu.Unlock()
		cancel()
		log.Print("busy")
		return
	}
	d.cancel = cancel
	d.mu.Unlock()

	go func() {
		defer func() {
			d.mu.Lock()
			d.cancel = nil
			d.mu.Unlock()
			cancel()
		}()
		d.app.QueueUpdateDraw(func() {
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGreen)
			d.state.SetText("running: " + line)
		})
		d.smu.Lock()
		quit, err := d.s.exec(ctx, line)
		d.smu.Unlock()
		if err != nil {
			log.Print(err)
		}
		if quit {
			d.app.Stop()
			return
		}
		d.refresh()
	}()
}

func (d *debugger) interrupt() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
}

// reload replaces the program, keeping breakpoints and watches.
func (d *debugger) reload(prog []int64, syms intcode.Symbols) {
	d.interrupt()
	d.smu.Lock()
	d.s.load(prog, syms)
	d.smu.Unlock()
	d.mu.Lock()
	d.syms = syms
	d.mu.Unlock()
	log.Printf("reloaded %d words", len(prog))
	d.refresh()
}

// refresh redraws the state and watch panes.
func (d *debugger) refresh() {
	d.smu.Lock()
	var (
		k     = d.s.state
		state = d.s.status()
		watch = d.s.watchText()
	)
	d.smu.Unlock()
	d.app.QueueUpdateDraw(func() {
		switch k {
		case pauseState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case breakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case inputState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case haltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkCyan)
		case faultState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		d.state.SetText(state)
	})
}
