package harness

import (
	"errors"
	"fmt"
	"time"

	"github.com/notnil/chess"

	"goosebot/bots"
)

var errTurnPending = errors.New("bot is already thinking")

// BotTurn runs a bot in the background on a copy of the position and hands the
// reply back to the goroutine that owns the game. Start and Poll must both be
// called from that goroutine.
type BotTurn struct {
	delay   time.Duration
	moves   chan *chess.Move
	pending bool
}

func NewBotTurn(delay time.Duration) *BotTurn {
	return &BotTurn{delay: delay, moves: make(chan *chess.Move, 1)}
}

// Pending reports whether a reply is still outstanding.
func (t *BotTurn) Pending() bool {
	return t.pending
}

// Start searches a position rebuilt from FEN, so the bot never shares state with game.
func (t *BotTurn) Start(bot bots.ChessBot, game *chess.Game) error {
	if t.pending {
		return errTurnPending
	}
	opt, err := chess.FEN(game.Position().String())
	if err != nil {
		return fmt.Errorf("snapshot position: %w", err)
	}
	snapshot := chess.NewGame(opt)
	t.pending = true
	go func() {
		time.Sleep(t.delay)
		t.moves <- bot.BestMove(snapshot)
	}()
	return nil
}

// Poll plays the reply on game once it has arrived. It reports whether the turn is over.
func (t *BotTurn) Poll(game *chess.Game) (bool, error) {
	select {
	case move := <-t.moves:
		t.pending = false
		if move == nil {
			return true, errNoMove
		}
		mine := FindMove(game, move.S1(), move.S2(), move.Promo())
		if mine == nil {
			return true, fmt.Errorf("%s is not legal in %s", move, game.Position())
		}
		return true, game.Move(mine)
	default:
		return false, nil
	}
}

// FindMove resolves a from/to pair to one of the game's legal moves. A promotion
// matches only the requested piece.
func FindMove(game *chess.Game, from, to chess.Square, promo chess.PieceType) *chess.Move {
	for _, m := range game.ValidMoves() {
		if m.S1() == from && m.S2() == to && (m.Promo() == chess.NoPieceType || m.Promo() == promo) {
			return m
		}
	}
	return nil
}
