package bots

import (
	"errors"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// ErrNothingScored is returned in strict mode when no legal move survived scoring.
var ErrNothingScored = errors.New("no move survived scoring")

// Observation is what a harness hands the bot for one decision.
type Observation struct {
	Board string `json:"board"`
	Game  string `json:"game,omitempty"`
}

// GooseOptions tune a GooseBot.
type GooseOptions struct {
	Weights Weights
	// Strict turns the random fallback into ErrNothingScored.
	Strict    bool
	KingCover bool
}

// GooseBot picks moves with the one-ply rule cascade. One GooseBot is one game
// session: its repetition table lives as long as the bot does.
type GooseBot struct {
	scorer *Scorer
	strict bool
}

func NewGooseBot(opts GooseOptions) *GooseBot {
	s := NewScorer(opts.Weights)
	if opts.KingCover {
		s.Rules = RulesWithKingCover()
	}
	return &GooseBot{scorer: s, strict: opts.Strict}
}

func (b *GooseBot) Name() string {
	return "Goose"
}

// History exposes the session's repetition table.
func (b *GooseBot) History() *RepetitionTable {
	return b.scorer.History
}

// NewGame clears the session state.
func (b *GooseBot) NewGame() {
	b.scorer.History.Reset()
}

// Rank decodes the position and returns its legal moves best first.
func (b *GooseBot) Rank(gen MoveGenerator) ([]ScoredMove, GamePhase, error) {
	board, err := DecodeBoard(gen.FEN())
	if err != nil {
		return nil, Opening, err
	}
	phase := ClassifyPhase(board)
	log.Debug().Str("phase", phase.String()).Int("material", Material(board)).Msg("game phase")
	scored, err := b.scorer.Prioritize(gen, gen.LegalMoves(), phase, board)
	return scored, phase, err
}

// Choose picks a move from the generator's position. It returns "" when there is
// no legal move.
func (b *GooseBot) Choose(gen MoveGenerator) (string, error) {
	moves := gen.LegalMoves()
	if len(moves) == 0 {
		return "", nil
	}
	scored, _, err := b.Rank(gen)
	if err != nil {
		return "", err
	}
	if len(scored) > 0 {
		log.Debug().Str("move", scored[0].Move).Int("score", scored[0].Score).Str("rule", scored[0].Rule).Msg("best move")
		return scored[0].Move, nil
	}
	if b.strict {
		return "", ErrNothingScored
	}
	mv := moves[frand.Intn(len(moves))]
	log.Warn().Str("move", mv).Msg("nothing scored, playing a random legal move")
	return mv, nil
}

// Decide is the observation entry point.
func (b *GooseBot) Decide(obs Observation) (string, error) {
	gen, err := NewGenerator(obs.Board)
	if err != nil {
		return "", err
	}
	return b.Choose(gen)
}

func (b *GooseBot) BestMove(game *chess.Game) *chess.Move {
	if game == nil {
		return nil
	}
	mv, err := b.Choose(GeneratorFromPosition(game.Position()))
	if err != nil {
		log.Error().Err(err).Msg("goose bot could not decide")
		return nil
	}
	if mv == "" {
		return nil
	}
	m, err := ToChessMove(game.Position(), mv)
	if err != nil {
		log.Error().Err(err).Str("move", mv).Msg("could not resolve move")
		return nil
	}
	return m
}
