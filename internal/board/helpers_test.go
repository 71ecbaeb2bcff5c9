package board

import (
	"sort"
	"strconv"
	"strings"
	"testing"
)

// setupFromFEN converts a FEN record into a Setup so that well-known test
// positions can be written in their usual form.
func setupFromFEN(t testing.TB, fen string) *GameState {
	t.Helper()
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		t.Fatalf("bad FEN %q", fen)
	}

	var s Setup
	for row, rank := range strings.Split(fields[0], "/") {
		var ids []string
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				for n := 0; n < int(c-'0'); n++ {
					ids = append(ids, EmptyID)
				}
				continue
			}
			color := "w"
			if c >= 'a' {
				color = "b"
			}
			kind := strings.ToUpper(string(c))
			if kind == "P" {
				kind = "p"
			}
			ids = append(ids, color+kind)
		}
		s.Rows[row] = strings.Join(ids, " ")
	}

	s.SideToMove = White
	if fields[1] == "b" {
		s.SideToMove = Black
	}
	cr, err := ParseCastlingRights(fields[2])
	if err != nil {
		t.Fatal(err)
	}
	s.Castling = cr
	s.EnPassant = NoSquare
	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			t.Fatal(err)
		}
		s.EnPassant = ep
	}
	if len(fields) > 4 {
		s.HalfMoveClock, _ = strconv.Atoi(fields[4])
	}

	g, err := NewGameFromSetup(s)
	if err != nil {
		t.Fatalf("NewGameFromSetup(%q): %v", fen, err)
	}
	return g
}

// toFEN renders the current position for comparison with other move generators.
func toFEN(g *GameState) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < 8; col++ {
			p := g.squares[sq(row, col)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			c := p.Type().Char()
			if p.Color() == White {
				c -= 'a' - 'A'
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	side := "w"
	if g.sideToMove == Black {
		side = "b"
	}
	return strings.Join([]string{
		sb.String(),
		side,
		g.CastlingRights().String(),
		g.EnPassantTarget().String(),
		strconv.Itoa(g.HalfMoveClock()),
		strconv.Itoa(1 + len(g.moveLog)/2),
	}, " ")
}

// moveStrings returns the coordinate notation of moves, sorted.
func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

// movesFrom returns the sorted coordinate notation of the legal moves starting on from.
func movesFrom(g *GameState, from Square) []string {
	var out []Move
	for _, m := range g.GenerateLegalMoves() {
		if m.From == from {
			out = append(out, m)
		}
	}
	return moveStrings(out)
}

// play applies each move given in coordinate notation, failing the test on error.
func play(t testing.TB, g *GameState, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if err := g.ApplyMove(m); err != nil {
			t.Fatalf("ApplyMove(%q): %v\n%s", s, err, g)
		}
	}
}

func hasMove(g *GameState, s string) bool {
	for _, m := range g.GenerateLegalMoves() {
		if m.String() == s {
			return true
		}
	}
	return false
}
