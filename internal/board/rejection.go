package board

import "golang.org/x/exp/slices"

// Rejection classifies why a move is not in the legal set.
type Rejection int

const (
	Accepted Rejection = iota
	RejectNoPiece
	RejectNotYourTurn
	RejectOwnPiece
	RejectKingExposed
	RejectCastling
	RejectMovement
)

func (r Rejection) String() string {
	switch r {
	case Accepted:
		return "legal move"
	case RejectNoPiece:
		return "no piece on that square"
	case RejectNotYourTurn:
		return "not your turn"
	case RejectOwnPiece:
		return "square occupied by your own piece"
	case RejectKingExposed:
		return "king would be in check"
	case RejectCastling:
		return "castling is not allowed here"
	default:
		return "piece cannot move like that"
	}
}

// Explain reports why m would be refused by ApplyMove, or Accepted if it is
// legal. A move the piece could make geometrically but that leaves or puts
// its own king in check is RejectKingExposed.
func (g *GameState) Explain(m Move) Rejection {
	g.ensureLegal()
	if slices.IndexFunc(g.legal, m.Equal) >= 0 {
		return Accepted
	}

	p := g.PieceAt(m.From)
	switch {
	case p == NoPiece:
		return RejectNoPiece
	case p.Color() != g.sideToMove:
		return RejectNotYourTurn
	case !m.To.IsValid():
		return RejectMovement
	}
	if t := g.squares[m.To]; t != NoPiece && t.Color() == p.Color() {
		return RejectOwnPiece
	}

	if p.Type() == King {
		dr, dc := abs(m.To.Row()-m.From.Row()), abs(m.To.Col()-m.From.Col())
		switch {
		case dr <= 1 && dc <= 1:
			return RejectKingExposed
		case dr == 0 && dc == 2 && m.From == homeKingSquare(p.Color()):
			return RejectCastling
		}
		return RejectMovement
	}

	// An en passant capture onto the current target is geometrically fine;
	// it is only ever withheld to keep the king safe.
	if p.Type() == Pawn && m.To == g.EnPassantTarget() &&
		m.To.Row()-m.From.Row() == g.sideToMove.forward() &&
		abs(m.To.Col()-m.From.Col()) == 1 {
		return RejectKingExposed
	}

	// Regenerate without pins; a move that only appears now breaks a pin or
	// ignores a check.
	var unpinned attackInfo
	for _, c := range g.generateAllMoves(&unpinned, nil) {
		if c.From == m.From && c.To == m.To {
			return RejectKingExposed
		}
	}
	return RejectMovement
}

func homeKingSquare(c Color) Square {
	if c == White {
		return E1
	}
	return E8
}
