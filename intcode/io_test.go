package intcode

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestQueue(t *testing.T) {
	var q Queue
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop from empty queue succeeded")
	}
	q.Push(1, 2)
	q.WriteInt(3)
	if v, ok := q.ReadInt(); !ok || v != 1 {
		t.Errorf("ReadInt() = %d, %v; want 1, true", v, ok)
	}
	if g := q.Drain(); !valsEq(g, []int64{2, 3}) {
		t.Errorf("Drain() = %v, want [2 3]", g)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after Drain", q.Len())
	}
}

func TestASCII(t *testing.T) {
	// Echo two characters, then print a large number.
	m := New([]int64{3, 100, 4, 100, 3, 100, 4, 100, 104, 1000, 99})
	m.In = ASCIIInput(strings.NewReader("a\r\n"))
	var b bytes.Buffer
	m.Out = ASCIIOutput(&b)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if g, w := b.String(), "a\n1000\n"; g != w {
		t.Errorf("output %q, want %q", g, w)
	}
}

func TestNumbers(t *testing.T) {
	// Add two inputs.
	m := New([]int64{3, 20, 3, 21, 1, 20, 21, 22, 4, 22, 99})
	m.In = NumberInput(strings.NewReader("  40,\n2 "))
	var b bytes.Buffer
	m.Out = NumberOutput(&b)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if g, w := b.String(), "42\n"; g != w {
		t.Errorf("output %q, want %q", g, w)
	}
}

func TestNumbersInvalid(t *testing.T) {
	in := NumberInput(strings.NewReader("1 x 2"))
	if v, ok := in.ReadInt(); !ok || v != 1 {
		t.Fatalf("ReadInt() = %d, %v; want 1, true", v, ok)
	}
	if _, ok := in.ReadInt(); ok {
		t.Fatal("ReadInt succeeded reading x")
	}
	if _, ok := in.ReadInt(); ok {
		t.Error("ReadInt succeeded after invalid input")
	}
	if err := in.Err(); err == nil || err.Error() != `invalid input "x"` {
		t.Errorf("Err() = %v, want invalid input \"x\"", err)
	}

	in = NumberInput(strings.NewReader("3"))
	in.ReadInt()
	in.ReadInt()
	if err := in.Err(); err != nil {
		t.Errorf("Err() at end of input = %v", err)
	}
}

func TestParseInputs(t *testing.T) {
	got, err := ParseInputs("1, 2 -3,,4")
	if err != nil {
		t.Fatal(err)
	}
	if w := []int64{1, 2, -3, 4}; !valsEq(got, w) {
		t.Errorf("ParseInputs = %v, want %v", got, w)
	}
	if _, err := ParseInputs("1,two"); err == nil {
		t.Error("ParseInputs(1,two) succeeded")
	}
}

func TestChanInputDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := ChanInput(ctx, make(chan int64))
	if _, ok := in.ReadInt(); ok {
		t.Error("ReadInt succeeded after cancel")
	}
	out := ChanOutput(ctx, make(chan int64))
	if err := out.WriteInt(1); err != context.Canceled {
		t.Errorf("WriteInt error = %v, want %v", err, context.Canceled)
	}
}
