package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/intcode/intcode"
)

// loaded is a program and its symbols as read from disk.
type loaded struct {
	prog []int64
	syms intcode.Symbols
}

// watch sends the program and its symbols every time either file
// changes. The first load happens immediately. Loads that fail are
// logged and skipped. The channel is closed once ctx is done.
func watch(ctx context.Context, program, symArg string) (<-chan loaded, error) {
	program = filepath.Clean(program)
	symFile := filepath.Clean(symPath(symArg, program))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := map[string]bool{filepath.Dir(program): true, filepath.Dir(symFile): true}
	for dir := range dirs {
		if err := watcher.Watch(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	ch := make(chan loaded)
	go func() {
		defer close(ch)
		defer watcher.Close()
		load := time.After(1 * time.Millisecond)
		for {
			select {
			case <-load:
				log.Printf("watch: load %s", filepath.Base(program))
				prog, err := intcode.ReadFile(program)
				if err != nil {
					log.Printf("watch: %v", err)
					break
				}
				syms, err := loadSymbols(symArg, program)
				if err != nil {
					log.Printf("watch: reading symbols: %v", err)
					break
				}
				select {
				case ch <- loaded{prog, syms}:
				case <-ctx.Done():
					return
				}
			case ev := <-watcher.Event:
				name := filepath.Clean(ev.Name)
				if (name == program || name == symFile) && !ev.IsAttrib() {
					load = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("watch: watcher: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// watchMode runs the program and restarts it each time it changes on disk,
// in the debugger if cfg.debug is set. Input comes only from cfg's input
// list, since a restarted program cannot share stdin with its predecessor.
func watchMode(ctx context.Context, cfg *runConfig, inputs []int64, stdout io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loads, err := watch(ctx, cfg.program, cfg.symFile)
	if err != nil {
		return err
	}
	var first loaded
	select {
	case first = <-loads:
	case <-ctx.Done():
		return ctx.Err()
	}

	if cfg.debug {
		d, err := newDebugger(first.prog, first.syms, inputs, cfg)
		if err != nil {
			return err
		}
		go func() {
			for l := range loads {
				d.reload(l.prog, l.syms)
			}
		}()
		return d.Run(stdout, cfg.dump)
	}

	r := newRunner(func(prog []int64) *intcode.Machine {
		m := intcode.New(prog)
		m.In = chainInput(inputs, nil)
		if cfg.ascii {
			m.Out = intcode.ASCIIOutput(stdout)
		} else {
			m.Out = intcode.NumberOutput(stdout)
		}
		return m
	}, func(m *intcode.Machine, err error) {
		if cfg.dump {
			intcode.Dump(stdout, m.Mem)
		}
		if err := stopError(m, err); err != nil {
			log.Printf("run: %v", err)
		} else {
			log.Printf("run: halted after %d steps", m.Steps)
		}
		log.Printf("run: waiting for changes")
	})
	go func() {
		for l := range loads {
			log.Printf("run: restart")
			if err := r.Swap(ctx, l.prog); err != nil {
				return
			}
		}
	}()
	if err := r.Run(ctx, first.prog); !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
