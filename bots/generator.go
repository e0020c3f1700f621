package bots

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
	"github.com/samber/lo"
)

// ErrIllegalMove is returned when a move token is not legal in the position.
var ErrIllegalMove = errors.New("illegal move")

// Status is the game state a generator reports for its position.
type Status int

const (
	InProgress Status = iota
	Checkmate
	OtherTerminal
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Checkmate:
		return "checkmate"
	}
	return "terminal"
}

// MoveGenerator is the rules engine the scorer delegates to. It never mutates;
// Apply returns the generator for the resulting position.
type MoveGenerator interface {
	FEN() string
	LegalMoves() []string
	Apply(move string) (MoveGenerator, error)
	Status() Status
}

type notnilGenerator struct {
	pos *chess.Position
}

// NewGenerator builds a MoveGenerator for a FEN string on top of notnil/chess.
func NewGenerator(fen string) (MoveGenerator, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse position: %w", err)
	}
	return &notnilGenerator{pos: chess.NewGame(opt).Position()}, nil
}

// GeneratorFromPosition wraps an existing notnil/chess position.
func GeneratorFromPosition(pos *chess.Position) MoveGenerator {
	return &notnilGenerator{pos: pos}
}

func (g *notnilGenerator) FEN() string {
	return g.pos.String()
}

func (g *notnilGenerator) LegalMoves() []string {
	return lo.Map(g.pos.ValidMoves(), func(m *chess.Move, _ int) string {
		return chess.UCINotation{}.Encode(g.pos, m)
	})
}

func (g *notnilGenerator) Apply(move string) (MoveGenerator, error) {
	m, err := ToChessMove(g.pos, move)
	if err != nil {
		return nil, err
	}
	return &notnilGenerator{pos: g.pos.Update(m)}, nil
}

func (g *notnilGenerator) Status() Status {
	switch g.pos.Status() {
	case chess.NoMethod:
		return InProgress
	case chess.Checkmate:
		return Checkmate
	}
	return OtherTerminal
}

// ToChessMove resolves a move token to one of the position's legal moves.
func ToChessMove(pos *chess.Position, move string) (*chess.Move, error) {
	m, ok := lo.Find(pos.ValidMoves(), func(m *chess.Move) bool {
		return chess.UCINotation{}.Encode(pos, m) == move
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrIllegalMove, move, pos.String())
	}
	return m, nil
}
