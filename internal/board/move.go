package board

import (
	"fmt"
	"strings"
)

// Move is a fully described move as produced by the generator.
// Only From, To and Promotion take part in equality; the remaining
// fields are filled in by generation and used by apply/undo.
type Move struct {
	From      Square
	To        Square
	Piece     Piece     // piece that moves
	Captured  Piece     // NoPiece if nothing is taken
	EnPassant bool      // pawn captures a pawn that sits beside it
	Castle    bool      // king moves two squares; rook relocates too
	Promotion PieceType // NoPieceType unless the pawn reaches the far rank
}

// NoMove is the zero-information move.
var NoMove = Move{From: NoSquare, To: NoSquare, Piece: NoPiece, Captured: NoPiece, Promotion: NoPieceType}

// Equal reports whether two moves have the same start, end and promotion kind.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// IsCapture returns true if this move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// IsPromotion returns true if the pawn becomes another piece.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// capturedSquare is where the taken piece stands; differs from To for en passant.
func (m Move) capturedSquare() Square {
	if m.EnPassant {
		return sq(m.From.Row(), m.To.Col())
	}
	return m.To
}

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	return AlgebraicNotation(m)
}

// AlgebraicNotation concatenates the start and end square names,
// followed by the promotion letter when there is one.
func AlgebraicNotation(m Move) string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove parses coordinate notation into a candidate move suitable for
// GameState.ApplyMove. Only From, To and Promotion are set.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	m := Candidate(from, to, NoPieceType)
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			m.Promotion = Knight
		case 'b':
			m.Promotion = Bishop
		case 'r':
			m.Promotion = Rook
		case 'q':
			m.Promotion = Queen
		default:
			return NoMove, fmt.Errorf("%w: promotion piece %q", ErrInvalidMove, s[4])
		}
	}
	return m, nil
}

// Candidate builds a move that carries only the fields compared by Equal.
func Candidate(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Piece: NoPiece, Captured: NoPiece, Promotion: promo}
}
