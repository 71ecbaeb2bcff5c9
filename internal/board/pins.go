package board

// Direction is a step on the board in rows and columns.
// The zero Direction means "no direction" and marks an unpinned square.
type Direction struct {
	DR, DC int
}

// IsZero reports whether d is the empty direction.
func (d Direction) IsZero() bool {
	return d.DR == 0 && d.DC == 0
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return Direction{-d.DR, -d.DC}
}

// parallel reports whether o lies on the same line as d, either way.
func (d Direction) parallel(o Direction) bool {
	return o == d || o == d.Reverse()
}

func (d Direction) diagonal() bool {
	return d.DR != 0 && d.DC != 0
}

var (
	orthogonalDirs = []Direction{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	diagonalDirs   = []Direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	// kingDirs lists orthogonals first, then diagonals.
	kingDirs    = append(append([]Direction{}, orthogonalDirs...), diagonalDirs...)
	knightJumps = []Direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// Check is one piece giving check. Dir points from the king toward the
// checker; for a knight it is the jump itself.
type Check struct {
	Square Square
	Dir    Direction
}

// attackInfo is the result of scanning outward from a king.
// pins is indexed by square and holds the direction from the king to the
// pinning piece; the zero Direction means the square is not pinned.
type attackInfo struct {
	inCheck bool
	pins    [64]Direction
	checks  []Check
}

// pinDir returns the pin direction recorded for s.
func (a *attackInfo) pinDir(s Square) Direction {
	return a.pins[s]
}

// threatens reports whether p, found dist squares from a defender's square
// along direction d, attacks that square.
func threatens(p Piece, d Direction, dist int, defender Color) bool {
	switch p.Type() {
	case Queen:
		return true
	case Rook:
		return !d.diagonal()
	case Bishop:
		return d.diagonal()
	case King:
		return dist == 1
	case Pawn:
		// An enemy pawn hits the king from the square diagonally ahead of it.
		return dist == 1 && d.diagonal() && d.DR == defender.forward()
	}
	return false
}

// detectPinsAndChecks casts rays from king over the snapshot b, recording
// checks against us and our pieces pinned to the king. b is not modified.
func detectPinsAndChecks(b *[64]Piece, us Color, king Square) attackInfo {
	var info attackInfo
	them := us.Other()

	for _, d := range kingDirs {
		candidate := NoSquare
		for i := 1; i < 8; i++ {
			s, ok := king.offset(i*d.DR, i*d.DC)
			if !ok {
				break
			}
			p := b[s]
			if p == NoPiece {
				continue
			}
			if p.Color() == us {
				if candidate != NoSquare {
					break
				}
				candidate = s
				continue
			}
			if threatens(p, d, i, us) {
				if candidate == NoSquare {
					info.inCheck = true
					info.checks = append(info.checks, Check{Square: s, Dir: d})
				} else {
					info.pins[candidate] = d
				}
			}
			break
		}
	}

	knight := NewPiece(Knight, them)
	for _, j := range knightJumps {
		if s, ok := king.offset(j.DR, j.DC); ok && b[s] == knight {
			info.inCheck = true
			info.checks = append(info.checks, Check{Square: s, Dir: j})
		}
	}
	return info
}

// attacked reports whether any piece of color by attacks target in b.
func attacked(b *[64]Piece, target Square, by Color) bool {
	defender := by.Other()
	for _, d := range kingDirs {
		for i := 1; i < 8; i++ {
			s, ok := target.offset(i*d.DR, i*d.DC)
			if !ok {
				break
			}
			p := b[s]
			if p == NoPiece {
				continue
			}
			if p.Color() == by && threatens(p, d, i, defender) {
				return true
			}
			break
		}
	}

	knight := NewPiece(Knight, by)
	for _, j := range knightJumps {
		if s, ok := target.offset(j.DR, j.DC); ok && b[s] == knight {
			return true
		}
	}
	return false
}

// responseSquares marks the squares a non-king move may land on to answer
// a single check: the checker's square, plus every square between it and
// the king unless the checker is a knight.
func responseSquares(b *[64]Piece, king Square, c Check) [64]bool {
	var mask [64]bool
	mask[c.Square] = true
	if b[c.Square].Type() == Knight {
		return mask
	}
	for s, ok := king.offset(c.Dir.DR, c.Dir.DC); ok && s != c.Square; s, ok = s.offset(c.Dir.DR, c.Dir.DC) {
		mask[s] = true
	}
	return mask
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
