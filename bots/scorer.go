package bots

import (
	"fmt"
	"sort"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ScoredMove is a move token with the score and rule that produced it.
type ScoredMove struct {
	Move  string
	Score int
	Rule  string
}

// Scorer runs the rule cascade over a list of legal moves.
type Scorer struct {
	Rules   []Rule
	Weights Weights
	History *RepetitionTable
}

// NewScorer returns a scorer with the default cascade and its own repetition table.
func NewScorer(w Weights) *Scorer {
	return &Scorer{
		Rules:   DefaultRules(),
		Weights: w,
		History: NewRepetitionTable(w.DecayCeiling),
	}
}

// Prioritize scores moves and returns them best first. A checkmating move ends the
// pass and is returned alone. Ties keep the generator's order.
func (s *Scorer) Prioritize(gen MoveGenerator, moves []string, phase GamePhase, b Board) ([]ScoredMove, error) {
	side, err := SideToMove(gen.FEN())
	if err != nil {
		return nil, err
	}
	oppKing, hasOpp := b.KingSquare(side.Other())

	var cover SquareSet
	usesCover := lo.ContainsBy(s.Rules, func(r Rule) bool { return r.Name == KingCoverRule.Name })
	if ownKing, ok := b.KingSquare(side); ok && usesCover {
		squares := KingSeeksCover(ownKing, AttackedSquares(b, side.Other()), b.Occupied(side))
		cover = lo.SliceToMap(squares, func(sq chess.Square) (chess.Square, bool) { return sq, true })
	}

	scored := make([]ScoredMove, 0, len(moves))
	for _, mv := range moves {
		if len(mv) < 4 {
			return nil, fmt.Errorf("%w: %q", ErrIllegalMove, mv)
		}
		from, okFrom := ParseSquare(mv[:2])
		to, okTo := ParseSquare(mv[2:4])
		if !okFrom || !okTo {
			return nil, fmt.Errorf("%w: %q", ErrIllegalMove, mv)
		}
		c := &Candidate{
			Move:      mv,
			From:      from,
			To:        to,
			Gen:       gen,
			Board:     b,
			Phase:     phase,
			Side:      side,
			History:   s.History,
			Weights:   s.Weights,
			oppKing:   oppKing,
			hasOpp:    hasOpp,
			coverFrom: cover,
		}

	cascade:
		for _, r := range s.Rules {
			outcome, score, err := r.Eval(c)
			if err != nil {
				return nil, fmt.Errorf("rule %s on %s: %w", r.Name, mv, err)
			}
			switch outcome {
			case Mate:
				return []ScoredMove{{Move: mv, Rule: r.Name}}, nil
			case Skipped:
				break cascade
			case Scored:
				scored = append(scored, ScoredMove{Move: mv, Score: score, Rule: r.Name})
				break cascade
			}
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	log.Debug().Str("phase", phase.String()).Int("candidates", len(moves)).Int("scored", len(scored)).Msg("prioritized")
	return scored, nil
}
