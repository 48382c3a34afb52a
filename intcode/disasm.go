package intcode

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Symbols maps addresses to labels.
type Symbols map[int64]string

// Addr returns the address of label.
func (s Symbols) Addr(label string) (int64, bool) {
	for a, l := range s {
		if l == label {
			return a, true
		}
	}
	return 0, false
}

// Labels returns the labels in address order.
func (s Symbols) Labels() []string {
	addrs := make([]int64, 0, len(s))
	for a := range s {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	ls := make([]string, len(addrs))
	for i, a := range addrs {
		ls[i] = s[a]
	}
	return ls
}

// Line is one disassembled instruction.
type Line struct {
	Addr  int64
	Words []int64
	Text  string
}

func (l Line) String() string {
	ws := make([]string, len(l.Words))
	for i, w := range l.Words {
		ws[i] = fmt.Sprint(w)
	}
	return fmt.Sprintf("%6d: %-28s %s", l.Addr, strings.Join(ws, " "), l.Text)
}

// Disasm decodes the instruction at addr in mem. Words that do not decode
// to a valid instruction are rendered as data.
func Disasm(mem []int64, addr int64, syms Symbols) Line {
	word := func(a int64) int64 {
		if a < 0 || a >= int64(len(mem)) {
			return 0
		}
		return mem[a]
	}
	in := Instr(word(addr))
	if _, ok := in.Check(); !ok {
		return Line{Addr: addr, Words: []int64{int64(in)}, Text: fmt.Sprintf("data %d", int64(in))}
	}
	var (
		op    = in.Op()
		words = []int64{int64(in)}
		args  []string
	)
	for n := 0; n < op.Params(); n++ {
		p := word(addr + 1 + int64(n))
		words = append(words, p)
		args = append(args, param(op, n, in.Mode(n), p, syms))
	}
	text := op.String()
	if w, ok := op.Writes(); ok && len(args) > 1 {
		text += " " + strings.Join(args[:w], ", ") + " -> " + args[w]
	} else if len(args) > 0 {
		text += " " + strings.Join(args, ", ")
	}
	return Line{Addr: addr, Words: words, Text: text}
}

func param(op Op, n int, m Mode, p int64, syms Symbols) string {
	switch m {
	case Immediate:
		if (op == JT || op == JF) && n == 1 {
			if l, ok := syms[p]; ok {
				return l
			}
		}
		return fmt.Sprint(p)
	case Relative:
		if p < 0 {
			return fmt.Sprintf("[rb%d]", p)
		}
		return fmt.Sprintf("[rb+%d]", p)
	default:
		if l, ok := syms[p]; ok {
			return "[" + l + "]"
		}
		return fmt.Sprintf("[%d]", p)
	}
}

// Disassemble writes the disassembly of mem, starting at from, to w.
// Labelled addresses are preceded by their label.
func Disassemble(w io.Writer, mem []int64, from int64, syms Symbols) error {
	for a := from; a < int64(len(mem)); {
		if l, ok := syms[a]; ok {
			if _, err := fmt.Fprintf(w, "%s:\n", l); err != nil {
				return err
			}
		}
		l := Disasm(mem, a, syms)
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
		a += int64(len(l.Words))
	}
	return nil
}

// Dump writes mem to w, ten words per line, each line prefixed by the
// address of its first word.
func Dump(w io.Writer, mem []int64) error {
	const perLine = 10
	for a := 0; a < len(mem); a += perLine {
		end := a + perLine
		if end > len(mem) {
			end = len(mem)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%6d:", a)
		for _, v := range mem[a:end] {
			fmt.Fprintf(&b, " %d", v)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
