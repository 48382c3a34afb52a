package intcode

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Parse parses an Intcode program: comma-separated integers,
// optionally surrounded by white space.
func Parse(b []byte) ([]int64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("empty program")
	}
	fields := strings.Split(string(b), ",")
	prog := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		prog[i] = v
	}
	return prog, nil
}

// ReadFile reads and parses the program in the named file.
func ReadFile(name string) ([]int64, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	prog, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return prog, nil
}

// Format returns prog in the form accepted by Parse.
func Format(prog []int64) string {
	var b strings.Builder
	for i, v := range prog {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}
