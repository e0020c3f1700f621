package bots

import "sync"

// DefaultDecayCeiling is the decay bonus a move token would get before its first use.
const DefaultDecayCeiling = 10

// RepetitionTable counts how many times each move token has been scored through the
// decay rule. It belongs to one game and is safe for concurrent use.
type RepetitionTable struct {
	mu      sync.Mutex
	counts  map[string]int
	ceiling int
}

// NewRepetitionTable returns an empty table with the given decay ceiling.
func NewRepetitionTable(ceiling int) *RepetitionTable {
	return &RepetitionTable{counts: make(map[string]int), ceiling: ceiling}
}

// Decay bumps the count for move and returns max(0, ceiling - count).
func (t *RepetitionTable) Decay(move string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[move]++
	return max(0, t.ceiling-t.counts[move])
}

// Count returns the number of times move went through Decay.
func (t *RepetitionTable) Count(move string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[move]
}

// Len returns the number of distinct tokens seen.
func (t *RepetitionTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.counts)
}

// Reset forgets every count, for reuse at the start of a new game.
func (t *RepetitionTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = make(map[string]int)
}
