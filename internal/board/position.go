package board

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the rights as letters, "KQkq" style, or "-" when none remain.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for _, r := range []struct {
		bit CastlingRights
		c   byte
	}{{WhiteKingSideCastle, 'K'}, {WhiteQueenSideCastle, 'Q'}, {BlackKingSideCastle, 'k'}, {BlackQueenSideCastle, 'q'}} {
		if cr&r.bit != 0 {
			sb.WriteByte(r.c)
		}
	}
	return sb.String()
}

// ParseCastlingRights is the inverse of CastlingRights.String.
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" || s == "" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("%w: castling rights %q", ErrInvalidSetup, s)
		}
	}
	return cr, nil
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleBit(c, kingSide) != 0
}

func castleBit(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// DebugMoveValidation enables logging when the cached king squares
// disagree with the board after a move is applied.
var DebugMoveValidation = false

// GameState is the complete, mutable state of a game.
// It is owned by a single goroutine; use Clone to hand a copy elsewhere.
type GameState struct {
	squares    [64]Piece
	sideToMove Color
	kings      [2]Square

	// Per-ply history. Index 0 holds the values of the start position and
	// one entry is appended per applied move, so the last entry is current.
	rights    []CastlingRights
	epTargets []Square
	clocks    []int
	keys      []uint64

	moveLog []Move
	start   Setup

	// Result of the most recent generation; legal is nil when stale.
	legal     []Move
	inCheck   bool
	checkmate bool
	stalemate bool
}

// NewGame returns a game at the standard starting position, White to move.
func NewGame() *GameState {
	g, _ := NewGameFromSetup(StartSetup())
	return g
}

// Clone returns an independent copy of the game.
func (g *GameState) Clone() *GameState {
	c := *g
	c.rights = slices.Clone(g.rights)
	c.epTargets = slices.Clone(g.epTargets)
	c.clocks = slices.Clone(g.clocks)
	c.keys = slices.Clone(g.keys)
	c.moveLog = slices.Clone(g.moveLog)
	c.legal = slices.Clone(g.legal)
	return &c
}

// SideToMove returns the color whose turn it is.
func (g *GameState) SideToMove() Color {
	return g.sideToMove
}

// KingSquare returns the cached location of the king of color c.
func (g *GameState) KingSquare(c Color) Square {
	return g.kings[c]
}

// CastlingRights returns the rights currently retained.
func (g *GameState) CastlingRights() CastlingRights {
	return g.rights[len(g.rights)-1]
}

// EnPassantTarget returns the square a pawn may capture onto en passant,
// or NoSquare.
func (g *GameState) EnPassantTarget() Square {
	return g.epTargets[len(g.epTargets)-1]
}

// HalfMoveClock returns the number of plies since the last capture or pawn move.
func (g *GameState) HalfMoveClock() int {
	return g.clocks[len(g.clocks)-1]
}

// Hash returns the Zobrist key of the current position.
func (g *GameState) Hash() uint64 {
	return g.keys[len(g.keys)-1]
}

// MoveLog returns a copy of the moves played so far, oldest first.
func (g *GameState) MoveLog() []Move {
	return slices.Clone(g.moveLog)
}

// LastMove returns the most recently applied move.
func (g *GameState) LastMove() (Move, bool) {
	if len(g.moveLog) == 0 {
		return NoMove, false
	}
	return g.moveLog[len(g.moveLog)-1], true
}

// PieceAt returns the piece at the given square, or NoPiece if it is empty.
// It is a lookup helper for drawing and hit-testing: NoSquare and other
// off-board values read as empty instead of failing. Use At to have
// off-board coordinates rejected with ErrOutOfBounds.
func (g *GameState) PieceAt(s Square) Piece {
	if !s.IsValid() {
		return NoPiece
	}
	return g.squares[s]
}

// At returns the piece at row and col.
func (g *GameState) At(row, col int) (Piece, error) {
	s, err := NewSquare(row, col)
	if err != nil {
		return NoPiece, err
	}
	return g.squares[s], nil
}

// Board returns a snapshot of the grid indexed [row][col].
func (g *GameState) Board() [8][8]Piece {
	var b [8][8]Piece
	for s := A8; s <= H1; s++ {
		b[s.Row()][s.Col()] = g.squares[s]
	}
	return b
}

// IDs returns the grid as piece identifiers ("wK", "--", ...).
func (g *GameState) IDs() [8][8]string {
	var b [8][8]string
	for s := A8; s <= H1; s++ {
		b[s.Row()][s.Col()] = g.squares[s].ID()
	}
	return b
}

// InCheck reports whether the side to move is in check.
func (g *GameState) InCheck() bool {
	g.ensureLegal()
	return g.inCheck
}

// Checkmate reports whether the side to move is checkmated.
func (g *GameState) Checkmate() bool {
	g.ensureLegal()
	return g.checkmate
}

// Stalemate reports whether the side to move has no legal move and is not in check.
func (g *GameState) Stalemate() bool {
	g.ensureLegal()
	return g.stalemate
}

// ensureLegal regenerates the legal set if a mutation made it stale.
func (g *GameState) ensureLegal() {
	if g.legal == nil {
		g.generateLegal()
	}
}

// String returns a visual representation of the position.
func (g *GameState) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			sb.WriteString(g.squares[sq(row, col)].ID())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a  b  c  d  e  f  g  h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", g.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", g.CastlingRights())
	fmt.Fprintf(&sb, "En passant: %s\n", g.EnPassantTarget())
	fmt.Fprintf(&sb, "Half-move clock: %d\n", g.HalfMoveClock())
	fmt.Fprintf(&sb, "Hash: %016x\n", g.Hash())
	return sb.String()
}
