package board

import (
	"fmt"
	"strings"
)

// Setup describes a position as a diagram of piece identifiers.
// Each row lists eight identifiers separated by spaces, row 0 (rank 8) first.
type Setup struct {
	Rows          [8]string      `json:"rows"`
	SideToMove    Color          `json:"side_to_move"`
	Castling      CastlingRights `json:"castling"`
	EnPassant     Square         `json:"en_passant"`
	HalfMoveClock int            `json:"halfmove_clock,omitempty"`
}

// StartSetup returns the standard initial position.
func StartSetup() Setup {
	return Setup{
		Rows: [8]string{
			"bR bN bB bQ bK bB bN bR",
			"bp bp bp bp bp bp bp bp",
			"-- -- -- -- -- -- -- --",
			"-- -- -- -- -- -- -- --",
			"-- -- -- -- -- -- -- --",
			"-- -- -- -- -- -- -- --",
			"wp wp wp wp wp wp wp wp",
			"wR wN wB wQ wK wB wN wR",
		},
		SideToMove: White,
		Castling:   AllCastling,
		EnPassant:  NoSquare,
	}
}

// NewGameFromSetup builds a game from a diagram after validating it.
func NewGameFromSetup(s Setup) (*GameState, error) {
	g := &GameState{
		sideToMove: s.SideToMove,
		kings:      [2]Square{NoSquare, NoSquare},
		start:      s,
	}
	if s.SideToMove != White && s.SideToMove != Black {
		return nil, fmt.Errorf("%w: side to move %d", ErrInvalidSetup, s.SideToMove)
	}

	for row, line := range s.Rows {
		ids := strings.Fields(line)
		if len(ids) != 8 {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrInvalidSetup, row, len(ids))
		}
		for col, id := range ids {
			p, ok := PieceFromID(id)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q at %s", ErrInvalidSetup, id, sq(row, col))
			}
			g.squares[sq(row, col)] = p
		}
	}

	if err := g.validate(s); err != nil {
		return nil, err
	}

	g.rights = []CastlingRights{s.Castling}
	g.epTargets = []Square{s.EnPassant}
	g.clocks = []int{s.HalfMoveClock}
	g.keys = []uint64{g.computeKey()}
	return g, nil
}

// validate checks the structural rules a playable position must satisfy
// and caches the king squares.
func (g *GameState) validate(s Setup) error {
	var kings [2]int
	for i, p := range g.squares {
		switch p.Type() {
		case King:
			kings[p.Color()]++
			g.kings[p.Color()] = Square(i)
		case Pawn:
			if r := Square(i).Row(); r == 0 || r == 7 {
				return fmt.Errorf("%w: pawn on %s", ErrInvalidSetup, Square(i))
			}
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidSetup)
	}

	for _, c := range []Color{White, Black} {
		home := homeRow(c)
		for _, kingSide := range []bool{true, false} {
			if !s.Castling.CanCastle(c, kingSide) {
				continue
			}
			rookCol := 0
			if kingSide {
				rookCol = 7
			}
			if g.squares[sq(home, 4)] != NewPiece(King, c) || g.squares[sq(home, rookCol)] != NewPiece(Rook, c) {
				return fmt.Errorf("%w: castling right %s without king and rook at home",
					ErrInvalidSetup, castleBit(c, kingSide))
			}
		}
	}

	if s.EnPassant != NoSquare {
		if !s.EnPassant.IsValid() {
			return fmt.Errorf("%w: en passant square %d", ErrInvalidSetup, s.EnPassant)
		}
		// The target lies behind a pawn of the side that just moved.
		mover := s.SideToMove.Other()
		pawnRow := s.EnPassant.Row() + mover.forward()
		if s.EnPassant.Row() != homeRow(mover)+2*mover.forward() ||
			g.squares[sq(pawnRow, s.EnPassant.Col())] != NewPiece(Pawn, mover) ||
			g.squares[s.EnPassant] != NoPiece {
			return fmt.Errorf("%w: en passant square %s", ErrInvalidSetup, s.EnPassant)
		}
	}

	them := s.SideToMove.Other()
	if attacked(&g.squares, g.kings[them], s.SideToMove) {
		return fmt.Errorf("%w: %s king can be captured", ErrInvalidSetup, them)
	}
	return nil
}

// homeRow is the back rank of color c.
func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// Setup returns the position the game started from.
func (g *GameState) Setup() Setup {
	return g.start
}

// Snapshot returns the current position as a Setup.
func (g *GameState) Snapshot() Setup {
	s := Setup{
		SideToMove:    g.sideToMove,
		Castling:      g.CastlingRights(),
		EnPassant:     g.EnPassantTarget(),
		HalfMoveClock: g.HalfMoveClock(),
	}
	ids := g.IDs()
	for row := range ids {
		s.Rows[row] = strings.Join(ids[row][:], " ")
	}
	return s
}
