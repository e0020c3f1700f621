package bots

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Board maps occupied squares to the piece standing on them. Empty squares are absent.
type Board map[chess.Square]chess.Piece

// FormatError reports a position string the decoder could not read.
type FormatError struct {
	FEN    string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed position %q: %v", e.FEN, e.Err)
	}
	return fmt.Sprintf("malformed position %q: %s", e.FEN, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// fenDefaults fill the fields a short FEN leaves out.
var fenDefaults = []string{"", "w", "-", "-", "0", "1"}

// decodePosition parses fen with the chess library. Only the placement field is
// required; missing trailing fields take their defaults.
func decodePosition(fen string) (*chess.Position, error) {
	fields := strings.Fields(fen)
	switch {
	case len(fields) == 0:
		return nil, &FormatError{FEN: fen, Reason: "empty position"}
	case len(fields) > len(fenDefaults):
		return nil, &FormatError{FEN: fen, Reason: fmt.Sprintf("expected at most %d fields, got %d", len(fenDefaults), len(fields))}
	}
	fields = append(fields, fenDefaults[len(fields):]...)

	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(strings.Join(fields, " "))); err != nil {
		return nil, &FormatError{FEN: fen, Err: err}
	}
	return pos, nil
}

// DecodeBoard reads the piece placement field of a FEN string.
func DecodeBoard(fen string) (Board, error) {
	pos, err := decodePosition(fen)
	if err != nil {
		return nil, err
	}
	return pos.Board().SquareMap(), nil
}

// SideToMove reads the active colour field. A missing field means white.
func SideToMove(fen string) (chess.Color, error) {
	pos, err := decodePosition(fen)
	if err != nil {
		return chess.NoColor, err
	}
	return pos.Turn(), nil
}

// KingSquare returns the square of the king of the given colour.
func (b Board) KingSquare(c chess.Color) (chess.Square, bool) {
	king := chess.NewPiece(chess.King, c)
	for sq, p := range b {
		if p == king {
			return sq, true
		}
	}
	return chess.NoSquare, false
}

// ParseSquare converts "e4" style identifiers.
func ParseSquare(s string) (chess.Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, false
	}
	return chess.NewSquare(chess.File(s[0]-'a'), chess.Rank(s[1]-'1')), true
}

// Adjacent reports whether two squares are a king step apart.
func Adjacent(a, b chess.Square) bool {
	df := abs(int(a.File()) - int(b.File()))
	dr := abs(int(a.Rank()) - int(b.Rank()))
	return max(df, dr) == 1
}

// FENLetter is the placement letter of a piece, or 0 for NoPiece.
func FENLetter(p chess.Piece) rune {
	letter := p.Type().String()
	if letter == "" {
		return 0
	}
	if p.Color() == chess.White {
		letter = strings.ToUpper(letter)
	}
	return rune(letter[0])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
