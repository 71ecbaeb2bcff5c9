package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStartingPositionMoves(t *testing.T) {
	g := NewGame()
	got := moveStrings(g.GenerateLegalMoves())
	want := []string{
		"a2a3", "a2a4", "b1a3", "b1c3", "b2b3", "b2b4", "c2c3", "c2c4",
		"d2d3", "d2d4", "e2e3", "e2e4", "f2f3", "f2f4", "g1f3", "g1h3",
		"g2g3", "g2g4", "h2h3", "h2h4",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
	}
	if g.InCheck() || g.Checkmate() || g.Stalemate() {
		t.Errorf("flags set at start: check=%v mate=%v stale=%v", g.InCheck(), g.Checkmate(), g.Stalemate())
	}
}

func TestCheckResponses(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{
			// Rook on the e-file: step aside, block on e4 or e2, or take the rook.
			name: "rook check",
			fen:  "4r2k/8/8/1B6/R7/8/8/4K3 w - - 0 1",
			want: []string{"a4e4", "b5e2", "b5e8", "e1d1", "e1d2", "e1f1", "e1f2"},
		},
		{
			// A knight check cannot be blocked.
			name: "knight check",
			fen:  "3Q4/7k/8/8/8/R2n4/8/4K3 w - - 0 1",
			want: []string{"a3d3", "d8d3", "e1d1", "e1d2", "e1e2", "e1f1"},
		},
		{
			// Rook and bishop both give check: only the king may move even
			// though the queen could take the bishop.
			name: "double check",
			fen:  "4r2k/8/8/Q7/1b6/8/8/4K3 w - - 0 1",
			want: []string{"e1d1", "e1f1", "e1f2"},
		},
		{
			// The king may not retreat along the line of the checking rook.
			name: "retreat along check ray",
			fen:  "7k/8/8/8/8/8/r3K3/8 w - - 0 1",
			want: []string{"e2d1", "e2d3", "e2e1", "e2e3", "e2f1", "e2f3"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := setupFromFEN(t, tc.fen)
			got := moveStrings(g.GenerateLegalMoves())
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
			}
			if !g.InCheck() {
				t.Error("InCheck() = false, want true")
			}
			if g.Checkmate() || g.Stalemate() {
				t.Errorf("terminal flags set: mate=%v stale=%v", g.Checkmate(), g.Stalemate())
			}
		})
	}
}

func TestPinnedPieces(t *testing.T) {
	// Queen pinned on the e-file, knight pinned on the b4-e1 diagonal.
	g := setupFromFEN(t, "k3r3/8/8/8/1b6/4Q3/3N4/4K3 w - - 0 1")

	if got := movesFrom(g, D2); len(got) != 0 {
		t.Errorf("pinned knight moves = %v, want none", got)
	}
	want := []string{"e3e2", "e3e4", "e3e5", "e3e6", "e3e7", "e3e8"}
	if diff := cmp.Diff(want, movesFrom(g, E3)); diff != "" {
		t.Errorf("pinned queen moves mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagonallyPinnedQueen(t *testing.T) {
	g := setupFromFEN(t, "7k/8/5b2/8/8/2Q5/8/K7 w - - 0 1")
	want := []string{"c3b2", "c3d4", "c3e5", "c3f6"}
	if diff := cmp.Diff(want, movesFrom(g, C3)); diff != "" {
		t.Errorf("pinned queen moves mismatch (-want +got):\n%s", diff)
	}
}

func TestPinnedPawn(t *testing.T) {
	// The d-pawn is pinned diagonally and may only capture the pinner.
	g := setupFromFEN(t, "7k/8/8/8/1b6/8/3P4/4K3 w - - 0 1")
	if got := movesFrom(g, D2); len(got) != 0 {
		t.Errorf("pinned pawn moves = %v, want none", got)
	}

	g = setupFromFEN(t, "7k/8/8/8/8/2b5/3P4/4K3 w - - 0 1")
	if diff := cmp.Diff([]string{"d2c3"}, movesFrom(g, D2)); diff != "" {
		t.Errorf("pinned pawn moves mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckmateDetection(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		checkmate bool
	}{
		{
			// Back rank mate: rook on a8, king on h8 blocked by its own pawns.
			name:      "back rank mate",
			fen:       "R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
			checkmate: true,
		},
		{
			// The king can capture the unprotected rook.
			name:      "not mate king captures",
			fen:       "6Rk/8/8/8/8/8/8/K7 b - - 0 1",
			checkmate: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := setupFromFEN(t, tc.fen)
			if got := g.Checkmate(); got != tc.checkmate {
				t.Errorf("Checkmate() = %v, want %v", got, tc.checkmate)
			}
			if !g.InCheck() {
				t.Error("InCheck() = false, want true")
			}
			if g.Stalemate() {
				t.Error("Stalemate() = true in a checking position")
			}
		})
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if len(g.GenerateLegalMoves()) != 0 {
		t.Fatalf("expected no legal moves after fool's mate")
	}
	if !g.Checkmate() || !g.InCheck() || g.Stalemate() {
		t.Errorf("flags: check=%v mate=%v stale=%v", g.InCheck(), g.Checkmate(), g.Stalemate())
	}
	if g.Winner() != Black {
		t.Errorf("Winner() = %v, want Black", g.Winner())
	}
}

func TestStalemate(t *testing.T) {
	g := setupFromFEN(t, "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")
	if moves := g.GenerateLegalMoves(); len(moves) != 0 {
		t.Fatalf("legal moves = %v, want none", moveStrings(moves))
	}
	if !g.Stalemate() {
		t.Error("Stalemate() = false, want true")
	}
	if g.Checkmate() || g.InCheck() {
		t.Errorf("check=%v mate=%v, want both false", g.InCheck(), g.Checkmate())
	}
	if g.Status() != DrawByStalemate {
		t.Errorf("Status() = %v, want %v", g.Status(), DrawByStalemate)
	}
}

func TestPromotionMoves(t *testing.T) {
	g := setupFromFEN(t, "1n5k/P7/8/8/8/8/8/K7 w - - 0 1")
	want := []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r", "a7b8b", "a7b8n", "a7b8q", "a7b8r"}
	if diff := cmp.Diff(want, movesFrom(g, A7)); diff != "" {
		t.Errorf("promotion moves mismatch (-want +got):\n%s", diff)
	}

	play(t, g, "a7b8n")
	if got := g.PieceAt(B8); got != WhiteKnight {
		t.Errorf("PieceAt(b8) = %v, want wN", got)
	}
	if _, err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if g.PieceAt(A7) != WhitePawn || g.PieceAt(B8) != BlackKnight {
		t.Errorf("undo promotion: a7=%v b8=%v", g.PieceAt(A7), g.PieceAt(B8))
	}
}
