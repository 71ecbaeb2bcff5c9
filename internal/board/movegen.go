package board

import "golang.org/x/exp/slices"

// GenerateLegalMoves returns every legal move for the side to move, in board
// order from a8 to h1. It recomputes the check, checkmate and stalemate flags
// and remembers the result as the set ApplyMove validates against. The
// returned slice is a copy; editing it does not change what ApplyMove plays.
func (g *GameState) GenerateLegalMoves() []Move {
	return slices.Clone(g.generateLegal())
}

// generateLegal refreshes g.legal and the status flags and returns g.legal
// itself. Callers inside the package must not modify the result.
func (g *GameState) generateLegal() []Move {
	us := g.sideToMove
	king := g.kings[us]
	info := detectPinsAndChecks(&g.squares, us, king)

	moves := make([]Move, 0, 48)
	switch len(info.checks) {
	case 0:
		moves = g.generateAllMoves(&info, moves)
	case 1:
		check := info.checks[0]
		targets := responseSquares(&g.squares, king, check)
		for _, m := range g.generateAllMoves(&info, nil) {
			switch {
			case m.Piece.Type() == King:
			case targets[m.To]:
			case m.EnPassant && m.capturedSquare() == check.Square:
			default:
				continue
			}
			moves = append(moves, m)
		}
	default:
		// Only the king can escape a double check.
		moves = g.generateKingMoves(king, moves)
	}

	g.legal = moves
	g.inCheck = info.inCheck
	g.checkmate = len(moves) == 0 && info.inCheck
	g.stalemate = len(moves) == 0 && !info.inCheck
	return moves
}

// GeneratePseudoLegalMoves returns the candidate moves for the side to move
// with pins honoured but without answering a check.
func (g *GameState) GeneratePseudoLegalMoves() []Move {
	us := g.sideToMove
	info := detectPinsAndChecks(&g.squares, us, g.kings[us])
	return g.generateAllMoves(&info, nil)
}

// generateAllMoves appends the candidate moves of every piece of the side to move.
func (g *GameState) generateAllMoves(info *attackInfo, moves []Move) []Move {
	us := g.sideToMove
	for s := A8; s <= H1; s++ {
		p := g.squares[s]
		if p == NoPiece || p.Color() != us {
			continue
		}
		pin := info.pinDir(s)

		switch p.Type() {
		case Pawn:
			moves = g.generatePawnMoves(s, pin, moves)
		case Knight:
			// A pinned knight can never stay on its pin line.
			if pin.IsZero() {
				moves = g.generateSteps(s, knightJumps, moves)
			}
		case Bishop:
			moves = g.generateSlides(s, diagonalDirs, pin, moves)
		case Rook:
			moves = g.generateSlides(s, orthogonalDirs, pin, moves)
		case Queen:
			moves = g.generateSlides(s, kingDirs, pin, moves)
		case King:
			moves = g.generateKingMoves(s, moves)
			if !info.inCheck {
				moves = g.generateCastlingMoves(s, moves)
			}
		}
	}
	return moves
}

func (g *GameState) newMove(from, to Square) Move {
	return Move{
		From:      from,
		To:        to,
		Piece:     g.squares[from],
		Captured:  g.squares[to],
		Promotion: NoPieceType,
	}
}

// generatePawnMoves adds pushes, captures, en passant and promotions.
func (g *GameState) generatePawnMoves(from Square, pin Direction, moves []Move) []Move {
	us := g.sideToMove
	them := us.Other()
	fwd := us.forward()

	if pin.IsZero() || pin.parallel(Direction{fwd, 0}) {
		if one, ok := from.offset(fwd, 0); ok && g.squares[one] == NoPiece {
			moves = g.addPawnMove(g.newMove(from, one), moves)
			if from.Row() == homeRow(us)+fwd {
				if two, ok := one.offset(fwd, 0); ok && g.squares[two] == NoPiece {
					moves = append(moves, g.newMove(from, two))
				}
			}
		}
	}

	ep := g.EnPassantTarget()
	for _, dc := range [2]int{-1, 1} {
		if !pin.IsZero() && !pin.parallel(Direction{fwd, dc}) {
			continue
		}
		to, ok := from.offset(fwd, dc)
		if !ok {
			continue
		}
		target := g.squares[to]
		switch {
		case target != NoPiece && target.Color() == them:
			moves = g.addPawnMove(g.newMove(from, to), moves)
		case target == NoPiece && to == ep:
			m := g.newMove(from, to)
			m.EnPassant = true
			m.Captured = g.squares[m.capturedSquare()]
			if g.enPassantSafe(m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// addPawnMove appends m, expanded to one move per promotion kind when the
// pawn reaches the far rank.
func (g *GameState) addPawnMove(m Move, moves []Move) []Move {
	if m.To.Row() != homeRow(g.sideToMove.Other()) {
		return append(moves, m)
	}
	for _, pt := range promotionKinds {
		m.Promotion = pt
		moves = append(moves, m)
	}
	return moves
}

// enPassantSafe plays the capture on a copy of the board and reports whether
// the king is safe. Removing two pawns from one rank can expose the king in a
// way the pin scan does not see.
func (g *GameState) enPassantSafe(m Move) bool {
	b := g.squares
	b[m.To] = b[m.From]
	b[m.From] = NoPiece
	b[m.capturedSquare()] = NoPiece
	return !attacked(&b, g.kings[g.sideToMove], g.sideToMove.Other())
}

// generateSteps adds single-step moves to squares that are empty or hostile.
func (g *GameState) generateSteps(from Square, steps []Direction, moves []Move) []Move {
	us := g.sideToMove
	for _, d := range steps {
		to, ok := from.offset(d.DR, d.DC)
		if !ok {
			continue
		}
		if t := g.squares[to]; t == NoPiece || t.Color() != us {
			moves = append(moves, g.newMove(from, to))
		}
	}
	return moves
}

// generateSlides walks each ray until blocked. A pinned slider only walks the
// rays that lie on its pin line.
func (g *GameState) generateSlides(from Square, dirs []Direction, pin Direction, moves []Move) []Move {
	us := g.sideToMove
	for _, d := range dirs {
		if !pin.IsZero() && !pin.parallel(d) {
			continue
		}
		for i := 1; i < 8; i++ {
			to, ok := from.offset(i*d.DR, i*d.DC)
			if !ok {
				break
			}
			t := g.squares[to]
			if t == NoPiece {
				moves = append(moves, g.newMove(from, to))
				continue
			}
			if t.Color() != us {
				moves = append(moves, g.newMove(from, to))
			}
			break
		}
	}
	return moves
}

// generateKingMoves adds the king steps that do not walk into an attack.
func (g *GameState) generateKingMoves(from Square, moves []Move) []Move {
	us := g.sideToMove
	for _, d := range kingDirs {
		to, ok := from.offset(d.DR, d.DC)
		if !ok {
			continue
		}
		if t := g.squares[to]; t != NoPiece && t.Color() == us {
			continue
		}
		if g.kingSafeAt(from, to) {
			moves = append(moves, g.newMove(from, to))
		}
	}
	return moves
}

// kingSafeAt reports whether the king standing on from would be unattacked
// after moving to to. The board itself is left untouched.
func (g *GameState) kingSafeAt(from, to Square) bool {
	b := g.squares
	b[to] = b[from]
	b[from] = NoPiece
	return !attacked(&b, to, g.sideToMove.Other())
}

type castleSide struct {
	kingSide bool
	between  []int // columns that must be empty
	crossed  []int // columns the king passes over or lands on
	kingTo   int
}

var castleSides = []castleSide{
	{kingSide: true, between: []int{5, 6}, crossed: []int{5, 6}, kingTo: 6},
	{kingSide: false, between: []int{1, 2, 3}, crossed: []int{3, 2}, kingTo: 2},
}

// generateCastlingMoves adds the castling moves whose preconditions hold.
func (g *GameState) generateCastlingMoves(from Square, moves []Move) []Move {
	us := g.sideToMove
	home := homeRow(us)
	if from != sq(home, 4) {
		return moves
	}
	rights := g.CastlingRights()

	for _, side := range castleSides {
		if !rights.CanCastle(us, side.kingSide) {
			continue
		}
		if attacked(&g.squares, from, us.Other()) {
			return moves
		}
		if !g.emptyCols(home, side.between) {
			continue
		}
		safe := true
		for _, col := range side.crossed {
			if !g.kingSafeAt(from, sq(home, col)) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		m := g.newMove(from, sq(home, side.kingTo))
		m.Castle = true
		moves = append(moves, m)
	}
	return moves
}

func (g *GameState) emptyCols(row int, cols []int) bool {
	for _, col := range cols {
		if g.squares[sq(row, col)] != NoPiece {
			return false
		}
	}
	return true
}

// castleRookSquares returns where the rook starts and lands for castling move m.
func castleRookSquares(m Move) (from, to Square) {
	row := m.From.Row()
	if m.To.Col() == 6 {
		return sq(row, 7), sq(row, 5)
	}
	return sq(row, 0), sq(row, 3)
}
