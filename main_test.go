package main

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nf/intcode/intcode"
)

func mustParse(t *testing.T, s string) []int64 {
	t.Helper()
	p, err := intcode.Parse([]byte(s))
	require.NoError(t, err)
	return p
}

// writeFile writes content to name in a fresh temporary directory and
// returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	prog := writeFile(t, "doubler.txt", doubler+"\n")
	for _, c := range []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"stdin", "4\n", nil, "8\n"},
		{"inputs", "", []string{"-i", "21"}, "42\n"},
		{"inputs before stdin", "9", []string{"--input", "-3"}, "-6\n"},
		{"dump", "1", []string{"-D"}, "2\n     0: 3 9 1 9 9 10 4 10 99 1\n    10: 2\n"},
	} {
		t.Run(c.name, func(t *testing.T) {
			out, err := execute(t, c.stdin, append(c.args, prog)...)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestRunASCII(t *testing.T) {
	hi := writeFile(t, "hi.txt", "104,104,104,105,104,10,104,1000,99")
	out, err := execute(t, "", "-A", hi)
	require.NoError(t, err)
	assert.Equal(t, "hi\n1000\n", out)

	echo := writeFile(t, "echo.txt", "3,100,4,100,3,100,4,100,99")
	out, err = execute(t, "ok", "--ascii", echo)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestRunErrors(t *testing.T) {
	prog := writeFile(t, "doubler.txt", doubler)

	_, err := execute(t, "", prog)
	assert.EqualError(t, err, "out of input at 0 after 0 steps")

	_, err = execute(t, "x\n", prog)
	assert.EqualError(t, err, `invalid input "x"`)

	_, err = execute(t, "", "-i", "x", prog)
	assert.ErrorContains(t, err, "--input")

	bad := writeFile(t, "bad.txt", "1,0,0,0,42")
	_, err = execute(t, "", bad)
	var h intcode.HaltError
	require.ErrorAs(t, err, &h)
	assert.EqualError(t, err, "invalid opcode executing 42 at 4")

	_, err = execute(t, "", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = execute(t, "")
	assert.Error(t, err)
}

func TestSolve(t *testing.T) {
	prog := writeFile(t, "day9.txt", "3,0,4,0,99")
	out, err := execute(t, "", "solve", "9", prog)
	require.NoError(t, err)
	assert.Equal(t, "Part 1: 1\nPart 2: 2\n", out)

	_, err = execute(t, "", "solve", "nine", prog)
	assert.ErrorContains(t, err, `invalid day "nine"`)

	_, err = execute(t, "", "solve", "4", prog)
	assert.ErrorContains(t, err, "no solver for day 4")

	_, err = execute(t, "", "solve", "--png", filepath.Join(t.TempDir(), "x.png"), "9", prog)
	assert.ErrorContains(t, err, "day 9 has no screen")
}

func TestSolvePNG(t *testing.T) {
	// A robot brain that paints two panels white, turning left each time.
	prog := writeFile(t, "day11.txt", "3,100,104,1,104,0,3,100,104,1,104,0,99")
	img := filepath.Join(t.TempDir(), "hull.png")
	out, err := execute(t, "", "solve", "--png", img, "11", prog)
	require.NoError(t, err)
	assert.Equal(t, "registration identifier:\n##\n\n", out)

	f, err := os.Open(img)
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2*tileScale, m.Bounds().Dx())
	assert.Equal(t, tileScale, m.Bounds().Dy())
}

func TestDis(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "sum.txt")
	require.NoError(t, os.WriteFile(prog, []byte("1101,1,2,7,4,7,99,0"), 0o644))

	out, err := execute(t, "", "dis", prog)
	require.NoError(t, err)
	assert.Contains(t, out, "out [7]")

	require.NoError(t, os.WriteFile(prog+".sym.yaml", []byte("labels:\n  sum: 7\n"), 0o644))
	out, err = execute(t, "", "dis", prog)
	require.NoError(t, err)
	assert.Contains(t, out, "sum:\n")
	assert.Contains(t, out, "out [sum]")

	out, err = execute(t, "", "dis", "--from", "4", prog)
	require.NoError(t, err)
	assert.NotContains(t, out, "add")

	_, err = execute(t, "", "dis", "--sym", filepath.Join(dir, "none.yaml"), prog)
	assert.Error(t, err)
}
