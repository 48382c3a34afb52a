package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nf/intcode/intcode"
)

// symFile is the YAML form of a symbol table:
//
//	labels:
//	  start: 0
//	  loop: 12
type symFile struct {
	Labels map[string]int64 `yaml:"labels"`
}

func parseSymbols(name string) (intcode.Symbols, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var f symFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	labels := make([]string, 0, len(f.Labels))
	for l := range f.Labels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	syms := intcode.Symbols{}
	for _, l := range labels {
		addr := f.Labels[l]
		if addr < 0 {
			return nil, fmt.Errorf("%s: label %q has negative address %d", name, l, addr)
		}
		if other, dup := syms[addr]; dup {
			return nil, fmt.Errorf("%s: labels %q and %q both at %d", name, other, l, addr)
		}
		syms[addr] = l
	}
	return syms, nil
}

// symPath returns the symbol file to use for program: symFile if set,
// otherwise program.sym.yaml.
func symPath(symFile, program string) string {
	if symFile != "" {
		return symFile
	}
	return program + ".sym.yaml"
}

// loadSymbols reads the symbols for program. A missing default symbol file
// is not an error.
func loadSymbols(symFile, program string) (intcode.Symbols, error) {
	syms, err := parseSymbols(symPath(symFile, program))
	if symFile == "" && errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return syms, err
}

func withLabelPrefix(syms intcode.Symbols, prefix string) []string {
	var ls []string
	for _, l := range syms.Labels() {
		if strings.HasPrefix(l, prefix) {
			ls = append(ls, l)
		}
	}
	return ls
}

// resolveAddr interprets arg as an address: a number, a label, "pc",
// or "rb" with an optional signed offset such as "rb+3". Labels take
// precedence over the register names.
func resolveAddr(syms intcode.Symbols, arg string, pc, base int64) (int64, error) {
	var addr int64
	if v, err := strconv.ParseInt(arg, 10, 64); err == nil {
		addr = v
	} else if a, ok := syms.Addr(arg); ok {
		addr = a
	} else if arg == "pc" {
		addr = pc
	} else if off, ok := strings.CutPrefix(arg, "rb"); ok {
		addr = base
		if off != "" {
			v, err := strconv.ParseInt(off, 10, 64)
			if err != nil || (off[0] != '+' && off[0] != '-') {
				return 0, fmt.Errorf("invalid address %q", arg)
			}
			addr += v
		}
	} else {
		return 0, fmt.Errorf("invalid address %q", arg)
	}
	if addr < 0 {
		return 0, fmt.Errorf("address %q is negative (%d)", arg, addr)
	}
	return addr, nil
}

func describeAddr(syms intcode.Symbols, addr int64) string {
	if l, ok := syms[addr]; ok {
		return fmt.Sprintf("%s (%d)", l, addr)
	}
	return strconv.FormatInt(addr, 10)
}
