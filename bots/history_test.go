package bots

import (
	"sync"
	"testing"

	"github.com/matryer/is"
)

func TestDecayFloorsAtZero(t *testing.T) {
	is := is.New(t)
	h := NewRepetitionTable(DefaultDecayCeiling)
	prev := DefaultDecayCeiling
	for i := 1; i <= 15; i++ {
		d := h.Decay("g1f3")
		is.True(d >= 0)
		if prev > 0 {
			is.Equal(d, prev-1) // strictly decreasing until the floor
		} else {
			is.Equal(d, 0)
		}
		prev = d
	}
	is.Equal(h.Count("g1f3"), 15)
}

func TestDecayPerToken(t *testing.T) {
	is := is.New(t)
	h := NewRepetitionTable(DefaultDecayCeiling)
	is.Equal(h.Decay("e2e4"), 9)
	is.Equal(h.Decay("e2e4"), 8)
	is.Equal(h.Decay("d2d4"), 9)
	is.Equal(h.Len(), 2)
	is.Equal(h.Count("a2a3"), 0)
}

func TestResetForgets(t *testing.T) {
	is := is.New(t)
	h := NewRepetitionTable(DefaultDecayCeiling)
	h.Decay("e2e4")
	h.Decay("e2e4")
	h.Reset()
	is.Equal(h.Len(), 0)
	is.Equal(h.Decay("e2e4"), 9)
}

func TestDecayConcurrent(t *testing.T) {
	is := is.New(t)
	h := NewRepetitionTable(DefaultDecayCeiling)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Decay("e2e4")
			}
		}()
	}
	wg.Wait()
	is.Equal(h.Count("e2e4"), 800)
}
