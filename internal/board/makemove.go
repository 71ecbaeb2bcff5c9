package board

import (
	"fmt"
	"log"

	"golang.org/x/exp/slices"
)

// ApplyMove plays m if it equals a move in the most recently generated legal
// set; the set is generated first if none is current. The stored legal move,
// with its capture and special-move details, is what gets applied and logged.
func (g *GameState) ApplyMove(m Move) error {
	g.ensureLegal()
	i := slices.IndexFunc(g.legal, m.Equal)
	if i < 0 {
		return fmt.Errorf("%w: %s for %s", ErrInvalidMove, m, g.sideToMove)
	}
	g.makeMove(g.legal[i])
	return nil
}

// makeMove mutates the board and pushes one entry onto every history stack.
func (g *GameState) makeMove(m Move) {
	us := g.sideToMove

	g.squares[m.From] = NoPiece
	if m.EnPassant {
		g.squares[m.capturedSquare()] = NoPiece
	}
	placed := m.Piece
	if m.IsPromotion() {
		placed = NewPiece(m.Promotion, us)
	}
	g.squares[m.To] = placed

	if m.Piece.Type() == King {
		g.kings[us] = m.To
		if m.Castle {
			rookFrom, rookTo := castleRookSquares(m)
			g.squares[rookTo] = g.squares[rookFrom]
			g.squares[rookFrom] = NoPiece
		}
	}

	ep := NoSquare
	if m.Piece.Type() == Pawn && abs(m.To.Row()-m.From.Row()) == 2 {
		ep = sq((m.From.Row()+m.To.Row())/2, m.From.Col())
	}

	clock := g.HalfMoveClock() + 1
	if m.Piece.Type() == Pawn || m.IsCapture() {
		clock = 0
	}

	g.sideToMove = us.Other()
	g.rights = append(g.rights, g.CastlingRights()&^(rightsLost(m.From)|rightsLost(m.To)))
	g.epTargets = append(g.epTargets, ep)
	g.clocks = append(g.clocks, clock)
	g.moveLog = append(g.moveLog, m)
	g.keys = append(g.keys, g.computeKey())
	g.legal = nil

	if DebugMoveValidation {
		g.validateKings(m)
	}
}

// UndoMove takes back the last move and returns it.
func (g *GameState) UndoMove() (Move, error) {
	n := len(g.moveLog)
	if n == 0 {
		return NoMove, ErrEmptyUndoLog
	}
	m := g.moveLog[n-1]
	us := m.Piece.Color()

	g.squares[m.From] = m.Piece
	g.squares[m.To] = NoPiece
	g.squares[m.capturedSquare()] = m.Captured
	if m.Piece.Type() == King {
		g.kings[us] = m.From
		if m.Castle {
			rookFrom, rookTo := castleRookSquares(m)
			g.squares[rookFrom] = g.squares[rookTo]
			g.squares[rookTo] = NoPiece
		}
	}

	g.sideToMove = us
	g.moveLog = g.moveLog[:n-1]
	g.rights = g.rights[:len(g.rights)-1]
	g.epTargets = g.epTargets[:len(g.epTargets)-1]
	g.clocks = g.clocks[:len(g.clocks)-1]
	g.keys = g.keys[:len(g.keys)-1]
	g.legal = nil
	return m, nil
}

// rightsLost returns the castling rights that disappear when a move starts
// or ends on s: the king's home clears both of its sides, a rook corner its own.
func rightsLost(s Square) CastlingRights {
	switch s {
	case E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A1:
		return WhiteQueenSideCastle
	case E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	case A8:
		return BlackQueenSideCastle
	}
	return NoCastling
}

func (g *GameState) validateKings(m Move) {
	for _, c := range []Color{White, Black} {
		if g.squares[g.kings[c]] != NewPiece(King, c) {
			log.Printf("MAKEMOVE: %v king cached on %v but board has %v after %v",
				c, g.kings[c], g.squares[g.kings[c]], m)
		}
	}
}
