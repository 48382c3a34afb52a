// Package intcode provides an implementation of an Intcode computer, called
// Machine, that can be used to execute Intcode programs.
package intcode

import (
	"errors"
	"fmt"
)

// Machine is an implementation of an Intcode computer.
type Machine struct {
	Mem   []int64
	PC    int64
	Base  int64
	Steps uint64

	// In and Out connect the machine to the outside world.
	// If In is nil, values queued with Send are read instead.
	// If Out is nil, output is discarded.
	In  Input
	Out Output

	inbox Queue
}

// New returns a Machine loaded with a copy of prog.
func New(prog []int64) *Machine {
	m := &Machine{Mem: make([]int64, len(prog))}
	copy(m.Mem, prog)
	return m
}

// Clone returns a deep copy of m. The copy shares m's In and Out.
func (m *Machine) Clone() *Machine {
	c := *m
	c.Mem = append([]int64(nil), m.Mem...)
	c.inbox = Queue{vals: append([]int64(nil), m.inbox.vals...)}
	return &c
}

// Send queues values to be read by the machine when it has no Input.
func (m *Machine) Send(vs ...int64) { m.inbox.Push(vs...) }

// Pending reports the number of queued values not yet read.
func (m *Machine) Pending() int { return m.inbox.Len() }

var (
	// ErrHalted is returned by Exec when the machine executes HLT.
	ErrHalted = errors.New("halted")

	// ErrNeedInput is returned by Exec when the machine executes IN and
	// no input is available. The instruction is not consumed, so Exec
	// may be called again once input has been provided.
	ErrNeedInput = errors.New("need input")

	// ErrYield may be returned by an Output to suspend execution after
	// the OUT instruction has completed.
	ErrYield = errors.New("yield")
)

// Exec executes the instruction at m.PC. It returns ErrHalted if that
// instruction is HLT, ErrNeedInput if it is IN and there is no input, any
// error returned by m.Out, and a HaltError if execution faults.
func (m *Machine) Exec() (err error) {
	var (
		opPC = m.PC
		in   Instr
	)
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(HaltCode); ok {
				m.PC = opPC
				err = HaltError{
					HaltCode: code,
					Instr:    in,
					Addr:     opPC,
				}
			} else {
				panic(e)
			}
		}
	}()

	in = Instr(m.read(opPC))
	if code, ok := in.Check(); !ok {
		panic(code)
	}
	op := in.Op()
	if op == HLT {
		return ErrHalted
	}

	arg := func(n int) int64 {
		p := m.read(opPC + 1 + int64(n))
		switch in.Mode(n) {
		case Immediate:
			return p
		case Relative:
			return m.read(m.Base + p)
		default:
			return m.read(p)
		}
	}
	dst := func(n int) int64 {
		p := m.read(opPC + 1 + int64(n))
		if in.Mode(n) == Relative {
			p += m.Base
		}
		if p < 0 {
			panic(BadAddress)
		}
		return p
	}

	next := opPC + int64(in.Size())
	switch op {
	case ADD:
		m.write(dst(2), arg(0)+arg(1))
	case MUL:
		m.write(dst(2), arg(0)*arg(1))
	case IN:
		addr := dst(0)
		v, ok := m.input().ReadInt()
		if !ok {
			return ErrNeedInput
		}
		m.write(addr, v)
	case OUT:
		v := arg(0)
		m.PC = next
		m.Steps++
		if m.Out != nil {
			return m.Out.WriteInt(v)
		}
		return nil
	case JT:
		if arg(0) != 0 {
			next = arg(1)
		}
	case JF:
		if arg(0) == 0 {
			next = arg(1)
		}
	case LT:
		m.write(dst(2), b2i(arg(0) < arg(1)))
	case EQ:
		m.write(dst(2), b2i(arg(0) == arg(1)))
	case ARB:
		m.Base += arg(0)
	default:
		panic(fmt.Errorf("internal error: %v not implemented", op))
	}
	m.PC = next
	m.Steps++
	return nil
}

// Run calls Exec until it returns an error. It returns nil if the machine
// halted normally.
func (m *Machine) Run() error {
	for {
		if err := m.Exec(); err != nil {
			if err == ErrHalted {
				return nil
			}
			return err
		}
	}
}

// Halted reports whether the instruction at m.PC is HLT.
func (m *Machine) Halted() bool { return Instr(m.Peek(m.PC)).Op() == HLT }

// Peek returns the word at addr, or zero if addr is out of range.
func (m *Machine) Peek(addr int64) int64 {
	if addr < 0 || addr >= int64(len(m.Mem)) {
		return 0
	}
	return m.Mem[addr]
}

// Poke sets the word at addr, growing memory if needed.
func (m *Machine) Poke(addr, v int64) error {
	if addr < 0 {
		return fmt.Errorf("%w: %d", errNegativeAddr, addr)
	}
	m.grow(addr)
	m.Mem[addr] = v
	return nil
}

var errNegativeAddr = errors.New("negative address")

func (m *Machine) input() Input {
	if m.In != nil {
		return m.In
	}
	return &m.inbox
}

func (m *Machine) read(addr int64) int64 {
	if addr < 0 {
		panic(BadAddress)
	}
	if addr >= int64(len(m.Mem)) {
		return 0
	}
	return m.Mem[addr]
}

func (m *Machine) write(addr, v int64) {
	if addr < 0 {
		panic(BadAddress)
	}
	m.grow(addr)
	m.Mem[addr] = v
}

func (m *Machine) grow(addr int64) {
	if addr < int64(len(m.Mem)) {
		return
	}
	n := int64(cap(m.Mem))
	if n < 64 {
		n = 64
	}
	for n <= addr {
		n *= 2
	}
	mem := make([]int64, addr+1, n)
	copy(mem, m.Mem)
	m.Mem = mem
}

// HaltError is returned by Exec if execution is halted by
// the program for some reason.
type HaltError struct {
	HaltCode
	Instr Instr
	Addr  int64
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s executing %d at %d", e.HaltCode, int64(e.Instr), e.Addr)
}

// HaltCode signifies the type of condition that halted execution.
type HaltCode byte

const (
	BadOpcode      HaltCode = 0x01
	BadMode        HaltCode = 0x02
	ImmediateWrite HaltCode = 0x03
	BadAddress     HaltCode = 0x04
)

func (c HaltCode) String() string {
	if s, ok := map[HaltCode]string{
		BadOpcode:      "invalid opcode",
		BadMode:        "invalid parameter mode",
		ImmediateWrite: "write to immediate parameter",
		BadAddress:     "negative address",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
