// bot.go
package bots

import "github.com/notnil/chess"

// ChessBot is implemented by every bot the harnesses can play.
type ChessBot interface {
	BestMove(game *chess.Game) *chess.Move
	Name() string
}

// Factory builds a fresh bot for a new game.
type Factory func() ChessBot

// NewBot returns a factory for the named bot, or nil if the name is unknown.
func NewBot(name string, opts GooseOptions) Factory {
	switch name {
	case "goose":
		return func() ChessBot { return NewGooseBot(opts) }
	case "random":
		return func() ChessBot { return NewRandomBot() }
	}
	return nil
}
