package bots

import (
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// Outcome is what a rule decided for one candidate move.
type Outcome int

const (
	// Unmatched passes the move on to the next rule.
	Unmatched Outcome = iota
	// Scored assigns the returned score and stops the cascade.
	Scored
	// Skipped drops the move from this pass.
	Skipped
	// Mate ends the whole pass; the move is the only result.
	Mate
)

// Weights are the hand-tuned constants of the rule cascade.
type Weights struct {
	Capture      int
	Centre       int
	KingRestrict int
	KeySquare    int
	KingCover    int
	DecayCeiling int
}

// DefaultWeights returns the stock tuning.
func DefaultWeights() Weights {
	return Weights{
		Capture:      5,
		Centre:       3,
		KingRestrict: 5,
		KeySquare:    3,
		KingCover:    1,
		DecayCeiling: DefaultDecayCeiling,
	}
}

var (
	centreSquares = squareSet("d4", "d5", "e4", "e5")
	// Squares that keep a king active in the endgame.
	keySquares = squareSet("c4", "c5", "d3", "d6", "e3", "e6", "f4", "f5")
)

func squareSet(names ...string) SquareSet {
	set := make(SquareSet, len(names))
	for _, n := range names {
		sq, _ := ParseSquare(n)
		set[sq] = true
	}
	return set
}

// Candidate carries everything a rule may look at for one move.
type Candidate struct {
	Move     string
	From, To chess.Square
	Gen      MoveGenerator
	Board    Board
	Phase    GamePhase
	Side     chess.Color
	History  *RepetitionTable
	Weights  Weights

	oppKing   chess.Square
	hasOpp    bool
	coverFrom SquareSet
}

// Rule is one entry of the priority cascade.
type Rule struct {
	Name string
	Eval func(c *Candidate) (Outcome, int, error)
}

// DefaultRules is the stock cascade, checked in order.
func DefaultRules() []Rule {
	return []Rule{CheckmateRule, KingHuntRule, CaptureRule, CentreRule, DecayRule}
}

// RulesWithKingCover inserts KingCoverRule ahead of the catch-all.
func RulesWithKingCover() []Rule {
	return []Rule{CheckmateRule, KingHuntRule, CaptureRule, CentreRule, KingCoverRule, DecayRule}
}

// CheckmateRule plays the move on the generator and ends the pass if it mates.
var CheckmateRule = Rule{
	Name: "checkmate",
	Eval: func(c *Candidate) (Outcome, int, error) {
		next, err := c.Gen.Apply(c.Move)
		if err != nil {
			return Unmatched, 0, err
		}
		if next.Status() == Checkmate {
			log.Debug().Str("move", c.Move).Msg("checkmate move")
			return Mate, 0, nil
		}
		return Unmatched, 0, nil
	},
}

// KingHuntRule applies in the endgame only. Moves next to the enemy king or onto
// a key square score; every other move is skipped.
var KingHuntRule = Rule{
	Name: "king-hunt",
	Eval: func(c *Candidate) (Outcome, int, error) {
		if c.Phase != Endgame || !c.hasOpp {
			return Unmatched, 0, nil
		}
		if Adjacent(c.To, c.oppKing) {
			log.Debug().Str("move", c.Move).Msg("restricting opponent king")
			return Scored, c.Weights.KingRestrict + c.History.Decay(c.Move), nil
		}
		if keySquares[c.To] {
			log.Debug().Str("move", c.Move).Msg("targeting key square")
			return Scored, c.Weights.KeySquare + c.History.Decay(c.Move), nil
		}
		return Skipped, 0, nil
	},
}

// CaptureRule scores a move onto an occupied square by the captured piece's value.
var CaptureRule = Rule{
	Name: "capture",
	Eval: func(c *Candidate) (Outcome, int, error) {
		target, ok := c.Board[c.To]
		if !ok {
			return Unmatched, 0, nil
		}
		log.Debug().Str("move", c.Move).Str("captured", string(FENLetter(target))).Msg("capture")
		return Scored, c.Weights.Capture + PieceValue(target.Type()), nil
	},
}

// CentreRule rewards moves onto d4, e4, d5 or e5.
var CentreRule = Rule{
	Name: "centre",
	Eval: func(c *Candidate) (Outcome, int, error) {
		if !centreSquares[c.To] {
			return Unmatched, 0, nil
		}
		log.Debug().Str("move", c.Move).Msg("central control")
		return Scored, c.Weights.Centre, nil
	},
}

// KingCoverRule rewards king steps onto squares KingSeeksCover accepts.
var KingCoverRule = Rule{
	Name: "king-cover",
	Eval: func(c *Candidate) (Outcome, int, error) {
		if c.Board[c.From] != chess.NewPiece(chess.King, c.Side) || !c.coverFrom[c.To] {
			return Unmatched, 0, nil
		}
		log.Debug().Str("move", c.Move).Msg("king seeks cover")
		return Scored, c.Weights.KingCover + c.History.Decay(c.Move), nil
	},
}

// DecayRule is the catch-all: the move scores what is left of its decay budget.
var DecayRule = Rule{
	Name: "decay",
	Eval: func(c *Candidate) (Outcome, int, error) {
		return Scored, c.History.Decay(c.Move), nil
	},
}
