package main

import (
	"bufio"
	"io"

	"github.com/nf/intcode/intcode"
)

// console connects a machine to the standard streams.
type console struct {
	w    *bufio.Writer
	in   intcode.Input
	out  intcode.Output
	nums *intcode.NumberReader // nil in ASCII mode
}

// newConsole returns a console that feeds queued to the machine before
// reading r, and writes output to w. In ASCII mode bytes are read and
// characters written; otherwise both are decimal integers.
func newConsole(r io.Reader, w io.Writer, ascii bool, queued []int64) *console {
	c := &console{w: bufio.NewWriter(w)}
	var stdin intcode.Input
	if ascii {
		stdin = intcode.ASCIIInput(r)
		c.out = intcode.ASCIIOutput(c.w)
	} else {
		c.nums = intcode.NumberInput(r)
		stdin = c.nums
		c.out = intcode.NumberOutput(c.w)
	}
	c.in = chainInput(queued, intcode.InputFunc(func() (int64, bool) {
		// Show any prompt before blocking on the reader.
		c.w.Flush()
		return stdin.ReadInt()
	}))
	return c
}

func (c *console) attach(m *intcode.Machine) {
	m.In, m.Out = c.in, c.out
}

func (c *console) Flush() error { return c.w.Flush() }

// Err returns the error that stopped reading the input, if any.
func (c *console) Err() error {
	if c.nums == nil {
		return nil
	}
	return c.nums.Err()
}

// chainInput returns an Input that reads vs and then next.
func chainInput(vs []int64, next intcode.Input) intcode.Input {
	q := &intcode.Queue{}
	q.Push(vs...)
	return intcode.InputFunc(func() (int64, bool) {
		if v, ok := q.Pop(); ok {
			return v, true
		}
		if next == nil {
			return 0, false
		}
		return next.ReadInt()
	})
}
