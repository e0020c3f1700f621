package bots

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// fakeGenerator stands in for the rules engine where a real position is awkward
// to build.
type fakeGenerator struct {
	fen    string
	moves  []string
	mates  map[string]bool
	status Status
}

func (f *fakeGenerator) FEN() string          { return f.fen }
func (f *fakeGenerator) LegalMoves() []string { return f.moves }
func (f *fakeGenerator) Status() Status       { return f.status }

func (f *fakeGenerator) Apply(move string) (MoveGenerator, error) {
	if !lo.Contains(f.moves, move) {
		return nil, ErrIllegalMove
	}
	st := InProgress
	if f.mates[move] {
		st = Checkmate
	}
	return &fakeGenerator{fen: f.fen, status: st}, nil
}

func candidate(move string, b Board, phase GamePhase) *Candidate {
	from, _ := ParseSquare(move[:2])
	to, _ := ParseSquare(move[2:4])
	c := &Candidate{
		Move:    move,
		From:    from,
		To:      to,
		Board:   b,
		Phase:   phase,
		Side:    chess.White,
		History: NewRepetitionTable(DefaultDecayCeiling),
		Weights: DefaultWeights(),
	}
	c.oppKing, c.hasOpp = b.KingSquare(chess.Black)
	return c
}

func TestCaptureRule(t *testing.T) {
	cases := []struct {
		target chess.Piece
		score  int
	}{
		{chess.BlackQueen, 14},
		{chess.BlackRook, 10},
		{chess.BlackBishop, 8},
		{chess.BlackKnight, 8},
		{chess.BlackPawn, 6},
		{chess.WhitePawn, 6},
	}
	for _, tc := range cases {
		c := candidate("c3b5", Board{chess.B5: tc.target}, Opening)
		outcome, score, err := CaptureRule.Eval(c)
		assert.NoError(t, err)
		assert.Equal(t, Scored, outcome)
		assert.Equal(t, tc.score, score)
		assert.Equal(t, 0, c.History.Len())
	}

	outcome, _, err := CaptureRule.Eval(candidate("c3b5", Board{}, Opening))
	assert.NoError(t, err)
	assert.Equal(t, Unmatched, outcome)
}

func TestCentreRule(t *testing.T) {
	for _, mv := range []string{"d2d4", "e2e4", "f6e5", "c6d5"} {
		outcome, score, err := CentreRule.Eval(candidate(mv, Board{}, Opening))
		assert.NoError(t, err)
		assert.Equal(t, Scored, outcome, mv)
		assert.Equal(t, 3, score, mv)
	}
	outcome, _, _ := CentreRule.Eval(candidate("c2c4", Board{}, Opening))
	assert.Equal(t, Unmatched, outcome)
}

func TestKingHuntRule(t *testing.T) {
	b := Board{chess.E5: chess.BlackKing, chess.D1: chess.WhiteQueen, chess.E1: chess.WhiteKing}

	c := candidate("d1d4", b, Endgame)
	outcome, score, err := KingHuntRule.Eval(c)
	assert.NoError(t, err)
	assert.Equal(t, Scored, outcome)
	assert.Equal(t, 5+9, score)

	c = candidate("d1d3", b, Endgame)
	outcome, score, _ = KingHuntRule.Eval(c)
	assert.Equal(t, Scored, outcome)
	assert.Equal(t, 3+9, score)

	c = candidate("e1e2", b, Endgame)
	outcome, _, _ = KingHuntRule.Eval(c)
	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, 0, c.History.Count("e1e2"))

	c = candidate("d1d4", b, Midgame)
	outcome, _, _ = KingHuntRule.Eval(c)
	assert.Equal(t, Unmatched, outcome)

	// no opposing king on the board
	c = candidate("d1d4", Board{chess.D1: chess.WhiteQueen}, Endgame)
	outcome, _, _ = KingHuntRule.Eval(c)
	assert.Equal(t, Unmatched, outcome)
}

func TestKingHuntRuleDecays(t *testing.T) {
	b := Board{chess.E5: chess.BlackKing}
	c := candidate("d1d4", b, Endgame)
	var scores []int
	for i := 0; i < 3; i++ {
		_, s, _ := KingHuntRule.Eval(c)
		scores = append(scores, s)
	}
	assert.Equal(t, []int{14, 13, 12}, scores)
}

func TestCheckmateRule(t *testing.T) {
	gen := &fakeGenerator{fen: startFEN, moves: []string{"a1a8", "g1f1"}, mates: map[string]bool{"a1a8": true}}

	c := candidate("a1a8", Board{}, Endgame)
	c.Gen = gen
	outcome, _, err := CheckmateRule.Eval(c)
	assert.NoError(t, err)
	assert.Equal(t, Mate, outcome)

	c = candidate("g1f1", Board{}, Endgame)
	c.Gen = gen
	outcome, _, err = CheckmateRule.Eval(c)
	assert.NoError(t, err)
	assert.Equal(t, Unmatched, outcome)

	c = candidate("h1h8", Board{}, Endgame)
	c.Gen = gen
	_, _, err = CheckmateRule.Eval(c)
	assert.True(t, errors.Is(err, ErrIllegalMove))
}

func TestKingCoverRule(t *testing.T) {
	b := Board{chess.E1: chess.WhiteKing, chess.D1: chess.WhiteQueen}
	c := candidate("e1f1", b, Opening)
	c.coverFrom = SquareSet{chess.F1: true}
	outcome, score, err := KingCoverRule.Eval(c)
	assert.NoError(t, err)
	assert.Equal(t, Scored, outcome)
	assert.Equal(t, 1+9, score)

	c = candidate("e1e2", b, Opening)
	c.coverFrom = SquareSet{chess.F1: true}
	outcome, _, _ = KingCoverRule.Eval(c)
	assert.Equal(t, Unmatched, outcome)

	// only king moves qualify
	c = candidate("d1f1", b, Opening)
	c.coverFrom = SquareSet{chess.F1: true}
	outcome, _, _ = KingCoverRule.Eval(c)
	assert.Equal(t, Unmatched, outcome)
}

func TestDecayRule(t *testing.T) {
	c := candidate("a2a3", Board{}, Opening)
	_, first, _ := DecayRule.Eval(c)
	_, second, _ := DecayRule.Eval(c)
	assert.Equal(t, 9, first)
	assert.Equal(t, 8, second)
}
