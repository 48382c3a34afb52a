package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nf/intcode/intcode"
)

type stateKind int

const (
	pauseState stateKind = iota
	breakState
	inputState
	haltState
	faultState
)

func (k stateKind) String() string {
	switch k {
	case pauseState:
		return "pause"
	case breakState:
		return "break"
	case inputState:
		return "need input"
	case haltState:
		return "halt"
	case faultState:
		return "fault"
	}
	return "state" + strconv.Itoa(int(k))
}

// session is a machine under the control of debugger commands.
// Program output and command replies are written to w.
type session struct {
	w     io.Writer
	ascii bool

	prog   []int64
	inputs []int64 // queued on every reset
	syms   intcode.Symbols

	m     *intcode.Machine
	state stateKind
	fault error

	breaks  map[int64]bool
	watches []int64
}

func newSession(w io.Writer, prog []int64, syms intcode.Symbols, inputs []int64, ascii bool) *session {
	s := &session{
		w:      w,
		ascii:  ascii,
		inputs: inputs,
		breaks: map[int64]bool{},
	}
	s.load(prog, syms)
	return s
}

// load replaces the program and symbols and resets the machine.
// Breakpoints and watches are kept.
func (s *session) load(prog []int64, syms intcode.Symbols) {
	s.prog, s.syms = prog, syms
	s.reset()
}

func (s *session) reset() {
	s.m = intcode.New(s.prog)
	s.m.Send(s.inputs...)
	if s.ascii {
		s.m.Out = intcode.ASCIIOutput(s.w)
	} else {
		s.m.Out = intcode.OutputFunc(func(v int64) error {
			_, err := fmt.Fprintf(s.w, "out: %d\n", v)
			return err
		})
	}
	s.state, s.fault = pauseState, nil
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.w, format, args...)
}

func (s *session) addr(arg string) (int64, error) {
	return resolveAddr(s.syms, arg, s.m.PC, s.m.Base)
}

var errUsage = errors.New("usage")

// exec runs one command line. It reports whether the session should end.
// Long runs stop early when ctx is done.
func (s *session) exec(ctx context.Context, line string) (quit bool, err error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return false, nil
	}
	cmd, args := f[0], f[1:]
	switch cmd {
	case "s", "step":
		n := 1
		if len(args) > 0 {
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return false, fmt.Errorf("invalid step count %q", args[0])
			}
		}
		s.run(ctx, n)
		s.printf("%s\n", s.status())

	case "c", "continue":
		s.run(ctx, -1)
		s.printf("%s\n", s.status())

	case "b", "break":
		if len(args) == 0 {
			s.breaks = map[int64]bool{}
			s.printf("cleared breakpoints\n")
			break
		}
		for _, a := range args {
			addr, err := s.addr(a)
			if err != nil {
				return false, err
			}
			s.breaks[addr] = true
			s.printf("break at %s\n", describeAddr(s.syms, addr))
		}

	case "d", "delete":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: delete ADDR", errUsage)
		}
		addr, err := s.addr(args[0])
		if err != nil {
			return false, err
		}
		if !s.breaks[addr] {
			return false, fmt.Errorf("no breakpoint at %s", describeAddr(s.syms, addr))
		}
		delete(s.breaks, addr)
		s.printf("deleted break at %s\n", describeAddr(s.syms, addr))

	case "w", "watch":
		if len(args) == 0 {
			s.watches = nil
			s.printf("cleared watches\n")
			break
		}
		for _, a := range args {
			addr, err := s.addr(a)
			if err != nil {
				return false, err
			}
			s.watches = append(s.watches, addr)
			s.printf("watching %s\n", describeAddr(s.syms, addr))
		}

	case "m", "mem":
		if len(args) < 1 || len(args) > 2 {
			return false, fmt.Errorf("%w: mem ADDR [N]", errUsage)
		}
		addr, err := s.addr(args[0])
		if err != nil {
			return false, err
		}
		n, err := count(args[1:], 10)
		if err != nil {
			return false, err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%6d:", addr)
		for i := int64(0); i < int64(n); i++ {
			fmt.Fprintf(&b, " %d", s.m.Peek(addr+i))
		}
		s.printf("%s\n", b.String())

	case "l", "list":
		addr := s.m.PC
		if len(args) > 0 {
			if addr, err = s.addr(args[0]); err != nil {
				return false, err
			}
			args = args[1:]
		}
		n, err := count(args, 10)
		if err != nil {
			return false, err
		}
		for i := 0; i < n; i++ {
			if l, ok := s.syms[addr]; ok {
				s.printf("%s:\n", l)
			}
			l := intcode.Disasm(s.m.Mem, addr, s.syms)
			mark := " "
			if addr == s.m.PC {
				mark = ">"
			}
			s.printf("%s%s\n", mark, l)
			addr += int64(len(l.Words))
		}

	case "i", "input":
		vs, err := intcode.ParseInputs(strings.Join(args, " "))
		if err != nil {
			return false, err
		}
		if len(vs) == 0 {
			return false, fmt.Errorf("%w: input V...", errUsage)
		}
		s.m.Send(vs...)
		s.printf("queued %d inputs (%d pending)\n", len(vs), s.m.Pending())

	case "set":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: set ADDR V", errUsage)
		}
		addr, err := s.addr(args[0])
		if err != nil {
			return false, err
		}
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid value %q", args[1])
		}
		if err := s.m.Poke(addr, v); err != nil {
			return false, err
		}
		s.printf("%s = %d\n", describeAddr(s.syms, addr), v)

	case "r", "regs":
		s.printf("%s\n", s.status())

	case "reset":
		s.reset()
		s.printf("reset\n")

	case "q", "quit", "exit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

func count(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return n, nil
}

// run executes up to n instructions, or until the machine stops if n is
// negative. It stops after an instruction that lands on a breakpoint.
func (s *session) run(ctx context.Context, n int) {
	for i := 0; n < 0 || i < n; i++ {
		if i%4096 == 0 && ctx.Err() != nil {
			break
		}
		err := s.m.Exec()
		switch {
		case err == nil:
		case errors.Is(err, intcode.ErrHalted):
			s.state = haltState
			return
		case errors.Is(err, intcode.ErrNeedInput):
			s.state = inputState
			return
		default:
			s.state, s.fault = faultState, err
			return
		}
		if s.breaks[s.m.PC] {
			s.state = breakState
			return
		}
	}
	s.state = pauseState
}

// status describes the machine registers and the instruction at PC.
func (s *session) status() string {
	l := intcode.Disasm(s.m.Mem, s.m.PC, s.syms)
	msg := fmt.Sprintf("[%s] pc %s  rb %d  steps %d  %s",
		s.state, describeAddr(s.syms, s.m.PC), s.m.Base, s.m.Steps, l.Text)
	if s.state == faultState && s.fault != nil {
		msg += "\n" + s.fault.Error()
	}
	return msg
}

// watchText lists the breakpoints and the watched memory.
func (s *session) watchText() string {
	var b strings.Builder
	addrs := make([]int64, 0, len(s.breaks))
	for a := range s.breaks {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, a := range addrs {
		fmt.Fprintf(&b, "%s brk!\n", describeAddr(s.syms, a))
	}
	for _, a := range s.watches {
		fmt.Fprintf(&b, "%s = %d\n", describeAddr(s.syms, a), s.m.Peek(a))
	}
	return b.String()
}
