package board

// Outcome is the state of the game as seen from the current position.
type Outcome uint8

const (
	InProgress Outcome = iota
	WinByCheckmate
	DrawByStalemate
	DrawByInsufficientMaterial
	DrawByFiftyMoves
	DrawByRepetition
)

// String returns a short human-readable description.
func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case WinByCheckmate:
		return "checkmate"
	case DrawByStalemate:
		return "stalemate"
	case DrawByInsufficientMaterial:
		return "draw by insufficient material"
	case DrawByFiftyMoves:
		return "draw by fifty-move rule"
	case DrawByRepetition:
		return "draw by threefold repetition"
	default:
		return "unknown"
	}
}

// IsDraw reports whether the outcome ends the game without a winner.
func (o Outcome) IsDraw() bool {
	return o >= DrawByStalemate
}

// Status classifies the current position. Checkmate and stalemate come from
// the legal move set; the draw rules are checked after them.
func (g *GameState) Status() Outcome {
	g.ensureLegal()
	switch {
	case g.checkmate:
		return WinByCheckmate
	case g.stalemate:
		return DrawByStalemate
	case g.IsInsufficientMaterial():
		return DrawByInsufficientMaterial
	case g.HalfMoveClock() >= 100:
		return DrawByFiftyMoves
	case g.Repetitions() >= 3:
		return DrawByRepetition
	}
	return InProgress
}

// Winner returns the checkmating color, or NoColor if nobody has won.
func (g *GameState) Winner() Color {
	if g.Status() != WinByCheckmate {
		return NoColor
	}
	return g.sideToMove.Other()
}

// Repetitions counts how often the current position has occurred, including
// now. Only positions since the last capture or pawn move can match.
func (g *GameState) Repetitions() int {
	n := len(g.keys) - 1
	current := g.keys[n]
	count := 0
	for i := n; i >= 0 && i >= n-g.HalfMoveClock(); i -= 2 {
		if g.keys[i] == current {
			count++
		}
	}
	return count
}

// IsInsufficientMaterial returns true if neither side can possibly mate:
// bare kings, a single minor piece, or bishops that all share one square color.
func (g *GameState) IsInsufficientMaterial() bool {
	var minors [2]int
	var bishopShades [2]int
	bishops := 0
	for s, p := range g.squares {
		switch p.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			minors[p.Color()]++
		case Bishop:
			minors[p.Color()]++
			bishops++
			bishopShades[(Square(s).Row()+Square(s).Col())%2]++
		}
	}

	total := minors[White] + minors[Black]
	if total <= 1 {
		return true
	}
	// K+B(s) vs K+B(s) with every bishop on the same color.
	if bishops == total && (bishopShades[0] == 0 || bishopShades[1] == 0) {
		return true
	}
	return false
}
