package bots

import (
	"sort"

	"github.com/notnil/chess"
	"github.com/samber/lo"
)

// GamePhase is a material-based label for the stage of the game.
type GamePhase int

const (
	Opening GamePhase = iota
	Midgame
	Endgame
)

func (p GamePhase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	case Endgame:
		return "endgame"
	}
	return "unknown"
}

const (
	openingMaterial = 20 // strictly above is opening
	endgameMaterial = 10 // at or below is endgame
)

// PieceValue is the material value of a piece kind, independent of colour.
func PieceValue(t chess.PieceType) int {
	switch t {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 3
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	default:
		return 0
	}
}

// Material sums the value of every piece on the board, both colours.
func Material(b Board) int {
	total := 0
	for _, p := range b {
		total += PieceValue(p.Type())
	}
	return total
}

// ClassifyPhase maps the board's material onto a GamePhase.
func ClassifyPhase(b Board) GamePhase {
	m := Material(b)
	switch {
	case m > openingMaterial:
		return Opening
	case m > endgameMaterial:
		return Midgame
	default:
		return Endgame
	}
}

// SquareSet is an unordered set of squares.
type SquareSet map[chess.Square]bool

var (
	knightSteps = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	rookRays    = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays  = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func offset(sq chess.Square, df, dr int) (chess.Square, bool) {
	file := int(sq.File()) + df
	rank := int(sq.Rank()) + dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare, false
	}
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), true
}

// AttackedSquares returns every square a colour's pieces attack on the given board.
// Sliders stop at the first occupied square, which is itself attacked.
func AttackedSquares(b Board, by chess.Color) SquareSet {
	attacked := make(SquareSet)
	step := func(from chess.Square, steps [][2]int) {
		for _, s := range steps {
			if to, ok := offset(from, s[0], s[1]); ok {
				attacked[to] = true
			}
		}
	}
	slide := func(from chess.Square, rays [][2]int) {
		for _, r := range rays {
			cur := from
			for {
				next, ok := offset(cur, r[0], r[1])
				if !ok {
					break
				}
				attacked[next] = true
				if _, occupied := b[next]; occupied {
					break
				}
				cur = next
			}
		}
	}

	for sq, p := range b {
		if p.Color() != by {
			continue
		}
		switch p.Type() {
		case chess.Pawn:
			dir := 1
			if by == chess.Black {
				dir = -1
			}
			step(sq, [][2]int{{-1, dir}, {1, dir}})
		case chess.Knight:
			step(sq, knightSteps)
		case chess.King:
			step(sq, kingSteps)
		case chess.Bishop:
			slide(sq, bishopRays)
		case chess.Rook:
			slide(sq, rookRays)
		case chess.Queen:
			slide(sq, bishopRays)
			slide(sq, rookRays)
		}
	}
	return attacked
}

func isCorner(sq chess.Square) bool {
	return (sq.File() == chess.FileA || sq.File() == chess.FileH) &&
		(sq.Rank() == chess.Rank1 || sq.Rank() == chess.Rank8)
}

func isEdge(sq chess.Square) bool {
	return sq.File() == chess.FileA || sq.File() == chess.FileH ||
		sq.Rank() == chess.Rank1 || sq.Rank() == chess.Rank8
}

// KingSeeksCover lists the king's neighbouring squares that are neither attacked nor
// held by a friendly piece, corners first, then edge squares, then the rest.
func KingSeeksCover(king chess.Square, attacked, friendly SquareSet) []chess.Square {
	var neighbours []chess.Square
	for _, s := range kingSteps {
		if sq, ok := offset(king, s[0], s[1]); ok {
			neighbours = append(neighbours, sq)
		}
	}
	safe := lo.Filter(neighbours, func(sq chess.Square, _ int) bool {
		return !attacked[sq] && !friendly[sq]
	})
	rank := func(sq chess.Square) int {
		switch {
		case isCorner(sq):
			return 2
		case isEdge(sq):
			return 1
		}
		return 0
	}
	sort.SliceStable(safe, func(i, j int) bool {
		return rank(safe[i]) > rank(safe[j])
	})
	return safe
}

// Occupied returns the squares held by the given colour.
func (b Board) Occupied(c chess.Color) SquareSet {
	set := make(SquareSet)
	for sq, p := range b {
		if p.Color() == c {
			set[sq] = true
		}
	}
	return set
}
