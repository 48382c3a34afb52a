package intcode

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisasm(t *testing.T) {
	syms := Symbols{9: "counter", 0: "start"}
	for _, c := range []struct {
		mem  []int64
		want string
		size int
	}{
		{[]int64{1, 9, 10, 3}, "add [counter], [10] -> [3]", 4},
		{[]int64{1002, 4, 3, 4}, "mul [4], 3 -> [4]", 4},
		{[]int64{21101, 1, -2, 3}, "add 1, -2 -> [rb+3]", 4},
		{[]int64{203, -1}, "in [rb-1]", 2},
		{[]int64{104, 7}, "out 7", 2},
		{[]int64{1105, 1, 0}, "jt 1, start", 3},
		{[]int64{1106, 0, 42}, "jf 0, 42", 3},
		{[]int64{109, 19}, "arb 19", 2},
		{[]int64{99}, "hlt", 1},
		{[]int64{42}, "data 42", 1},
		{[]int64{11101, 1, 1, 1}, "data 11101", 1},
		{[]int64{1}, "add [start], [start] -> [start]", 4},
	} {
		l := Disasm(c.mem, 0, syms)
		if l.Text != c.want || len(l.Words) != c.size {
			t.Errorf("Disasm(%v) = %q (%d words), want %q (%d words)",
				c.mem, l.Text, len(l.Words), c.want, c.size)
		}
	}
}

func TestDisassemble(t *testing.T) {
	var b bytes.Buffer
	mem := []int64{1101, 1, 2, 7, 4, 7, 99, 0}
	if err := Disassemble(&b, mem, 0, Symbols{7: "sum"}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	want := []string{"add 1, 2 -> [sum]", "out [sum]", "hlt", "sum:", "data 0"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), b.String())
	}
	for i, w := range want {
		if !strings.HasSuffix(lines[i], w) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], w)
		}
	}
}

func TestDump(t *testing.T) {
	var b bytes.Buffer
	mem := make([]int64, 12)
	mem[11] = -1
	if err := Dump(&b, mem); err != nil {
		t.Fatal(err)
	}
	want := "     0: 0 0 0 0 0 0 0 0 0 0\n    10: 0 -1\n"
	if g := b.String(); g != want {
		t.Errorf("Dump = %q, want %q", g, want)
	}
}

func TestSymbols(t *testing.T) {
	s := Symbols{30: "b", 10: "a"}
	if a, ok := s.Addr("b"); !ok || a != 30 {
		t.Errorf("Addr(b) = %d, %v", a, ok)
	}
	if _, ok := s.Addr("c"); ok {
		t.Error("Addr(c) found")
	}
	if g := strings.Join(s.Labels(), ","); g != "a,b" {
		t.Errorf("Labels() = %s, want a,b", g)
	}
}
