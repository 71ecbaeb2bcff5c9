// Package board implements the chess rules core: a mailbox board with
// legal move generation, check detection, and reversible move application.
package board

import "fmt"

// Square identifies one of the 64 board cells as row*8 + col.
// Row 0 is rank 8 and row 7 is rank 1; col 0 is the a-file.
type Square uint8

// Square constants for all 64 squares, in row order from rank 8 down.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// NewSquare returns the square at row and col, or ErrOutOfBounds.
func NewSquare(row, col int) (Square, error) {
	if !onBoard(row, col) {
		return NoSquare, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	return sq(row, col), nil
}

// sq builds a square without bounds checking.
func sq(row, col int) Square {
	return Square(row*8 + col)
}

func onBoard(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

// Row returns the row (0 = rank 8, 7 = rank 1).
func (s Square) Row() int {
	return int(s) >> 3
}

// Col returns the column (0 = a-file, 7 = h-file).
func (s Square) Col() int {
	return int(s) & 7
}

// Rank returns the chess rank number, 1 through 8.
func (s Square) Rank() int {
	return 8 - s.Row()
}

// IsValid returns true if the square is on the board.
func (s Square) IsValid() bool {
	return s < NoSquare
}

// String returns the algebraic name of the square (e.g., "e4").
func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.Col()), byte('0' + s.Rank())})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrOutOfBounds, s)
	}

	col := int(s[0]) - 'a'
	row := 8 - (int(s[1]) - '0')

	return NewSquare(row, col)
}

// offset returns the square dr rows and dc columns away, if on the board.
func (s Square) offset(dr, dc int) (Square, bool) {
	r, c := s.Row()+dr, s.Col()+dc
	if !onBoard(r, c) {
		return NoSquare, false
	}
	return sq(r, c), true
}
