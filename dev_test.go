package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchStops(t *testing.T) {
	prog := writeFile(t, "doubler.txt", doubler)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loads, err := watch(ctx, prog, "")
	require.NoError(t, err)

	select {
	case l := <-loads:
		assert.Equal(t, mustParse(t, doubler), l.prog)
		assert.Nil(t, l.syms)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial load")
	}

	cancel()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-loads:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("loads not closed after cancel")
		}
	}
}
