package intcode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Input provides values to IN instructions.
type Input interface {
	// ReadInt returns the next input value. It returns false if no value
	// is available, in which case the machine suspends with ErrNeedInput.
	ReadInt() (v int64, ok bool)
}

// Output consumes values produced by OUT instructions.
type Output interface {
	// WriteInt consumes v. A non-nil error is returned from Exec
	// after the OUT instruction has completed.
	WriteInt(v int64) error
}

// InputFunc adapts a function to the Input interface.
type InputFunc func() (int64, bool)

func (f InputFunc) ReadInt() (int64, bool) { return f() }

// OutputFunc adapts a function to the Output interface.
type OutputFunc func(int64) error

func (f OutputFunc) WriteInt(v int64) error { return f(v) }

// Queue is a FIFO of values. It implements both Input and Output,
// so one machine's output can be another machine's input.
type Queue struct {
	vals []int64
}

func (q *Queue) Push(vs ...int64) { q.vals = append(q.vals, vs...) }

func (q *Queue) Pop() (int64, bool) {
	if len(q.vals) == 0 {
		return 0, false
	}
	v := q.vals[0]
	q.vals = q.vals[1:]
	if len(q.vals) == 0 {
		q.vals = nil
	}
	return v, true
}

func (q *Queue) Len() int { return len(q.vals) }

// Drain removes and returns all queued values.
func (q *Queue) Drain() []int64 {
	vs := q.vals
	q.vals = nil
	return vs
}

func (q *Queue) ReadInt() (int64, bool) { return q.Pop() }

func (q *Queue) WriteInt(v int64) error {
	q.Push(v)
	return nil
}

// ChanInput returns an Input that blocks receiving from ch. It reports no
// input once ch is closed or ctx is done.
func ChanInput(ctx context.Context, ch <-chan int64) Input {
	return InputFunc(func() (int64, bool) {
		select {
		case v, ok := <-ch:
			return v, ok
		case <-ctx.Done():
			return 0, false
		}
	})
}

// ChanOutput returns an Output that blocks sending to ch.
// It returns ctx's error if ctx is done first.
func ChanOutput(ctx context.Context, ch chan<- int64) Output {
	return OutputFunc(func(v int64) error {
		select {
		case ch <- v:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// ASCIIInput returns an Input that feeds the bytes read from r.
// Carriage returns are dropped so that input typed on any platform ends
// lines with a single newline.
func ASCIIInput(r io.Reader) Input {
	br := bufio.NewReader(r)
	return InputFunc(func() (int64, bool) {
		for {
			b, err := br.ReadByte()
			if err != nil {
				return 0, false
			}
			if b != '\r' {
				return int64(b), true
			}
		}
	})
}

// ASCIIOutput returns an Output that writes values in the ASCII range as
// characters and any other value as a decimal number on its own line.
func ASCIIOutput(w io.Writer) Output {
	return OutputFunc(func(v int64) error {
		var err error
		if v >= 0 && v < 0x80 {
			_, err = w.Write([]byte{byte(v)})
		} else {
			_, err = fmt.Fprintf(w, "%d\n", v)
		}
		return err
	})
}

// NumberReader is an Input that reads integers separated by white space
// or commas. It stops at the first token that is not an integer.
type NumberReader struct {
	s   *bufio.Scanner
	err error
}

func NumberInput(r io.Reader) *NumberReader {
	s := bufio.NewScanner(r)
	s.Split(scanNumbers)
	return &NumberReader{s: s}
}

func (n *NumberReader) ReadInt() (int64, bool) {
	if n.err != nil {
		return 0, false
	}
	if !n.s.Scan() {
		n.err = n.s.Err()
		return 0, false
	}
	v, err := strconv.ParseInt(n.s.Text(), 10, 64)
	if err != nil {
		n.err = fmt.Errorf("invalid input %q", n.s.Text())
		return 0, false
	}
	return v, true
}

// Err returns the error that stopped the reader, if any.
// End of input is not an error.
func (n *NumberReader) Err() error { return n.err }

// NumberOutput returns an Output that writes each value on its own line.
func NumberOutput(w io.Writer) Output {
	return OutputFunc(func(v int64) error {
		_, err := fmt.Fprintln(w, v)
		return err
	})
}

// ParseInputs parses a comma or space separated list of integers.
func ParseInputs(s string) ([]int64, error) {
	var vs []int64
	for i, f := range strings.FieldsFunc(s, isSep) {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func isSep(r rune) bool { return r == ',' || unicode.IsSpace(r) }

func scanNumbers(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSep(rune(data[start])) {
		start++
	}
	for i := start; i < len(data); i++ {
		if isSep(rune(data[i])) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
