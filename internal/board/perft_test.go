package board

import "testing"

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	g := NewGame()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		if tc.depth > 3 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := g.Perft(tc.depth)
			if got != tc.expected {
				t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}

	if len(g.MoveLog()) != 0 {
		t.Errorf("perft left %d moves in the log", len(g.MoveLog()))
	}
}

// TestPerftPositions covers castling, promotion, en passant and pins.
func TestPerftPositions(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		expected []uint64
	}{
		{
			// Kiwipete
			name:     "kiwipete",
			fen:      "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			expected: []uint64{48, 2039, 97862},
		},
		{
			name:     "rook endgame",
			fen:      "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			expected: []uint64{14, 191, 2812, 43238},
		},
		{
			// Capturing en passant would expose the black king along the rank.
			name:     "en passant horizontal pin",
			fen:      "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
			expected: []uint64{6, 94},
		},
		{
			name:     "promotions",
			fen:      "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
			expected: []uint64{24, 496, 9483},
		},
		{
			name:     "position 4",
			fen:      "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			expected: []uint64{6, 264, 9467},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := setupFromFEN(t, tc.fen)
			for i, want := range tc.expected {
				depth := i + 1
				if depth > 3 && testing.Short() {
					break
				}
				if got := g.Perft(depth); got != want {
					t.Errorf("Perft(%d) = %d, want %d", depth, got, want)
				}
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	g := setupFromFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var total uint64
	entries := g.Divide(2)
	for _, e := range entries {
		total += e.Nodes
	}
	if len(entries) != 48 {
		t.Errorf("Divide(2) has %d root moves, want 48", len(entries))
	}
	if total != 2039 {
		t.Errorf("Divide(2) total = %d, want 2039", total)
	}
}
