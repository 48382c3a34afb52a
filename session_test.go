package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nf/intcode/intcode"
)

// doubler reads x, stores x+x in y and outputs it.
const doubler = "3,9,1,9,9,10,4,10,99,0,0"

var doublerSyms = intcode.Symbols{0: "start", 9: "x", 10: "y"}

func newTestSession(t *testing.T, prog string, inputs ...int64) (*session, *bytes.Buffer, func(string)) {
	t.Helper()
	p, err := intcode.Parse([]byte(prog))
	require.NoError(t, err)
	var out bytes.Buffer
	s := newSession(&out, p, doublerSyms, inputs, false)
	exec := func(line string) {
		t.Helper()
		quit, err := s.exec(context.Background(), line)
		require.NoError(t, err, line)
		require.False(t, quit, line)
	}
	return s, &out, exec
}

func TestSessionRun(t *testing.T) {
	s, out, exec := newTestSession(t, doubler)

	exec("step")
	assert.Equal(t, inputState, s.state)
	assert.Equal(t, int64(0), s.m.PC)

	exec("i 21")
	exec("b 6")
	exec("c")
	assert.Equal(t, breakState, s.state)
	assert.Equal(t, int64(6), s.m.PC)
	assert.Equal(t, int64(42), s.m.Peek(10))
	assert.Equal(t, uint64(2), s.m.Steps)
	assert.Contains(t, out.String(), "[break] pc 6  rb 0  steps 2  out [y]")

	exec("c")
	assert.Equal(t, haltState, s.state)
	assert.Contains(t, out.String(), "out: 42\n")

	// Halted machines stay halted until reset.
	exec("s")
	assert.Equal(t, haltState, s.state)

	exec("reset")
	assert.Equal(t, pauseState, s.state)
	assert.Equal(t, int64(0), s.m.PC)
	assert.Zero(t, s.m.Peek(10))
	assert.True(t, s.breaks[6], "breakpoints survive reset")
}

func TestSessionInputsOnReset(t *testing.T) {
	s, out, exec := newTestSession(t, doubler, 5)
	exec("c")
	assert.Equal(t, haltState, s.state)
	exec("reset")
	exec("continue")
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("out: 10\n")))
}

func TestSessionStepCount(t *testing.T) {
	s, _, exec := newTestSession(t, doubler, 1)
	exec("s 2")
	assert.Equal(t, int64(6), s.m.PC)
	assert.Equal(t, pauseState, s.state)
	exec("step 10")
	assert.Equal(t, haltState, s.state)
}

func TestSessionMemory(t *testing.T) {
	s, out, exec := newTestSession(t, doubler)
	exec("set x 7")
	assert.Equal(t, int64(7), s.m.Peek(9))
	assert.Contains(t, out.String(), "x (9) = 7\n")

	out.Reset()
	exec("m 8 3")
	assert.Equal(t, "     8: 99 7 0\n", out.String())

	exec("w y")
	exec("w x")
	exec("b start")
	assert.Equal(t, "start (0) brk!\ny (10) = 0\nx (9) = 7\n", s.watchText())

	exec("d 0")
	exec("w")
	assert.Empty(t, s.watchText())

	exec("set rb+20 3")
	assert.Equal(t, int64(3), s.m.Peek(20))
}

func TestSessionList(t *testing.T) {
	_, out, exec := newTestSession(t, doubler)
	exec("l start 2")
	assert.Equal(t,
		"start:\n>     0: 3 9                          in [x]\n      2: 1 9 9 10                     add [x], [x] -> [y]\n",
		out.String())
}

func TestSessionFault(t *testing.T) {
	s, out, exec := newTestSession(t, "1,0,0,0,42")
	exec("c")
	assert.Equal(t, faultState, s.state)
	var h intcode.HaltError
	require.ErrorAs(t, s.fault, &h)
	assert.Equal(t, intcode.BadOpcode, h.HaltCode)
	assert.Contains(t, out.String(), "[fault]")
}

func TestSessionErrors(t *testing.T) {
	s, _, _ := newTestSession(t, doubler)
	ctx := context.Background()
	for _, line := range []string{
		"bogus",
		"s 0",
		"b nowhere",
		"d 3",
		"d",
		"m",
		"set 1",
		"set x y",
		"set -1 0",
		"i",
		"i z",
		"l 0 -2",
	} {
		_, err := s.exec(ctx, line)
		assert.Error(t, err, line)
	}
	quit, err := s.exec(ctx, "exit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestSessionCancel(t *testing.T) {
	s, _, _ := newTestSession(t, "1105,1,0")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.exec(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, pauseState, s.state)
}
