package intcode

import "fmt"

// Op represents an Intcode opcode.
type Op int64

const (
	ADD Op = 1
	MUL Op = 2
	IN  Op = 3
	OUT Op = 4
	JT  Op = 5
	JF  Op = 6
	LT  Op = 7
	EQ  Op = 8
	ARB Op = 9
	HLT Op = 99
)

var opNames = map[Op]string{
	ADD: "add",
	MUL: "mul",
	IN:  "in",
	OUT: "out",
	JT:  "jt",
	JF:  "jf",
	LT:  "lt",
	EQ:  "eq",
	ARB: "arb",
	HLT: "hlt",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("op%d", int64(o))
}

// Valid reports whether o is a known opcode.
func (o Op) Valid() bool {
	_, ok := opNames[o]
	return ok
}

// Params reports the number of parameters taken by o.
func (o Op) Params() int {
	switch o {
	case ADD, MUL, LT, EQ:
		return 3
	case JT, JF:
		return 2
	case IN, OUT, ARB:
		return 1
	}
	return 0
}

// Writes reports the index of the parameter written by o, if any.
func (o Op) Writes() (int, bool) {
	switch o {
	case ADD, MUL, LT, EQ:
		return 2, true
	case IN:
		return 0, true
	}
	return 0, false
}

// Mode is a parameter addressing mode.
type Mode byte

const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) Valid() bool { return m <= Relative }

// Instr is an instruction word: an opcode plus one mode digit per parameter.
type Instr int64

// Op returns the opcode without any modes.
func (i Instr) Op() Op { return Op(i % 100) }

// Mode returns the addressing mode of the n'th (0-based) parameter.
func (i Instr) Mode(n int) Mode {
	w := int64(i) / 100
	for ; n > 0; n-- {
		w /= 10
	}
	return Mode(w % 10)
}

// Check reports the halt condition that executing i would trigger
// because of its encoding alone, or zero and true if i is well formed.
func (i Instr) Check() (HaltCode, bool) {
	if i < 0 || !i.Op().Valid() {
		return BadOpcode, false
	}
	op := i.Op()
	for n := 0; n < op.Params(); n++ {
		if !i.Mode(n).Valid() {
			return BadMode, false
		}
	}
	if n, ok := op.Writes(); ok && i.Mode(n) == Immediate {
		return ImmediateWrite, false
	}
	return 0, true
}

// Size returns the number of words occupied by i, including the
// instruction word itself.
func (i Instr) Size() int { return 1 + i.Op().Params() }
