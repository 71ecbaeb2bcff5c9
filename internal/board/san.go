package board

import (
	"strings"

	"golang.org/x/exp/slices"
)

// SAN converts a move to Standard Algebraic Notation in the current
// position. m is matched against the legal set like ApplyMove; a move that
// is not legal falls back to coordinate notation.
func (g *GameState) SAN(m Move) string {
	g.ensureLegal()
	i := slices.IndexFunc(g.legal, m.Equal)
	if i < 0 {
		return AlgebraicNotation(m)
	}
	m = g.legal[i]

	var sb strings.Builder
	pt := m.Piece.Type()

	switch {
	case m.Castle && m.To.Col() == 6:
		sb.WriteString("O-O")
	case m.Castle:
		sb.WriteString("O-O-O")
	default:
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(g.disambiguation(m))
		}
		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte(byte('a' + m.From.Col()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion])
		}
	}

	// Play the move on a copy to see whether it checks or mates.
	next := g.Clone()
	next.makeMove(m)
	next.generateLegal()
	if next.checkmate {
		sb.WriteByte('#')
	} else if next.inCheck {
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the origin file, rank, or square needed when
// another piece of the same kind can reach the same destination.
func (g *GameState) disambiguation(m Move) string {
	sameFile, sameRank, ambiguous := false, false, false
	for _, o := range g.legal {
		if o.To != m.To || o.From == m.From || o.Piece != m.Piece {
			continue
		}
		ambiguous = true
		if o.From.Col() == m.From.Col() {
			sameFile = true
		}
		if o.From.Row() == m.From.Row() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + m.From.Col()))
	case !sameRank:
		return string(rune('0' + m.From.Rank()))
	default:
		return m.From.String()
	}
}

// SANLog returns the moves played so far in Standard Algebraic Notation,
// replayed from the start position.
func (g *GameState) SANLog() []string {
	replay, err := NewGameFromSetup(g.start)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(g.moveLog))
	for _, m := range g.moveLog {
		out = append(out, replay.SAN(m))
		if err := replay.ApplyMove(m); err != nil {
			break
		}
	}
	return out
}
