package board

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// gameView is the externally observable state compared across undo.
type gameView struct {
	Setup     Setup
	Kings     [2]Square
	Hash      uint64
	MoveCount int
}

func viewOf(g *GameState) gameView {
	return gameView{
		Setup:     g.Snapshot(),
		Kings:     [2]Square{g.KingSquare(White), g.KingSquare(Black)},
		Hash:      g.Hash(),
		MoveCount: len(g.MoveLog()),
	}
}

func TestApplyUndoRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGame()
		var views []gameView

		for ply := 0; ply < 120; ply++ {
			moves := g.GenerateLegalMoves()
			if len(moves) == 0 {
				break
			}
			views = append(views, viewOf(g))
			m := moves[rng.Intn(len(moves))]
			mover := g.SideToMove()
			if err := g.ApplyMove(m); err != nil {
				t.Fatalf("seed %d ply %d: ApplyMove(%v): %v", seed, ply, m, err)
			}
			if attacked(&g.squares, g.KingSquare(mover), mover.Other()) {
				t.Fatalf("seed %d ply %d: %v left the %v king in check\n%s", seed, ply, m, mover, g)
			}
			if g.PieceAt(g.KingSquare(White)) != WhiteKing || g.PieceAt(g.KingSquare(Black)) != BlackKing {
				t.Fatalf("seed %d ply %d: king cache out of sync after %v", seed, ply, m)
			}
		}

		for i := len(views) - 1; i >= 0; i-- {
			if _, err := g.UndoMove(); err != nil {
				t.Fatalf("seed %d: UndoMove: %v", seed, err)
			}
			if diff := cmp.Diff(views[i], viewOf(g)); diff != "" {
				t.Fatalf("seed %d: state after undo to ply %d differs (-want +got):\n%s", seed, i, diff)
			}
		}
	}
}

func TestApplyMoveErrors(t *testing.T) {
	g := NewGame()

	if _, err := g.UndoMove(); !errors.Is(err, ErrEmptyUndoLog) {
		t.Errorf("UndoMove on new game: err = %v, want ErrEmptyUndoLog", err)
	}

	for _, s := range []string{"e2e5", "e7e5", "e1e2", "a1a3"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		if err := g.ApplyMove(m); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ApplyMove(%s): err = %v, want ErrInvalidMove", s, err)
		}
	}
	if len(g.MoveLog()) != 0 || g.SideToMove() != White {
		t.Errorf("rejected moves changed the game: log=%v side=%v", g.MoveLog(), g.SideToMove())
	}
}

func TestApplyMoveUsesGeneratedDetails(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "d7d5")

	// Only the fields compared by Equal are set on the candidate.
	if err := g.ApplyMove(Candidate(E4, D5, NoPieceType)); err != nil {
		t.Fatal(err)
	}
	last, _ := g.LastMove()
	if last.Piece != WhitePawn || last.Captured != BlackPawn {
		t.Errorf("logged move = %+v, want pawn takes pawn", last)
	}
}

func TestGeneratedMovesAreCopies(t *testing.T) {
	g := NewGame()
	moves := g.GenerateLegalMoves()
	for i := range moves {
		moves[i].Piece = WhiteQueen
		moves[i].Promotion = Queen
	}

	m, err := ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.ApplyMove(m); err != nil {
		t.Fatal(err)
	}
	if got := g.PieceAt(E4); got != WhitePawn {
		t.Errorf("e4 = %v, want wp", got)
	}
	if last, _ := g.LastMove(); last.Piece != WhitePawn || last.IsPromotion() {
		t.Errorf("logged move = %+v, want a plain pawn push", last)
	}

	if _, err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if got := g.PieceAt(E2); got != WhitePawn {
		t.Errorf("after undo e2 = %v, want wp", got)
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		present []string
		absent  []string
	}{
		{
			name:    "both sides",
			fen:     "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			present: []string{"e1g1", "e1c1"},
		},
		{
			name:    "no rights",
			fen:     "4k3/8/8/8/8/8/8/R3K2R w - - 0 1",
			absent:  []string{"e1g1", "e1c1"},
		},
		{
			name:    "king in check",
			fen:     "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1",
			absent:  []string{"e1g1", "e1c1"},
		},
		{
			name:    "crossing attacked square",
			fen:     "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			present: []string{"e1c1"},
			absent:  []string{"e1g1"},
		},
		{
			name:    "destination attacked",
			fen:     "2r1k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			present: []string{"e1g1"},
			absent:  []string{"e1c1"},
		},
		{
			// Only the squares the king crosses must be safe.
			name:    "b-file attacked",
			fen:     "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			present: []string{"e1g1", "e1c1"},
		},
		{
			name:    "b-file occupied",
			fen:     "4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1",
			present: []string{"e1g1"},
			absent:  []string{"e1c1"},
		},
		{
			name:    "black castles",
			fen:     "r3k2r/8/8/8/8/8/8/4K3 b kq - 0 1",
			present: []string{"e8g8", "e8c8"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := setupFromFEN(t, tc.fen)
			for _, s := range tc.present {
				if !hasMove(g, s) {
					t.Errorf("%s missing from %v", s, moveStrings(g.GenerateLegalMoves()))
				}
			}
			for _, s := range tc.absent {
				if hasMove(g, s) {
					t.Errorf("%s should not be legal", s)
				}
			}
		})
	}
}

func TestCastlingApplyAndUndo(t *testing.T) {
	g := setupFromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	play(t, g, "e1g1")
	if g.PieceAt(G1) != WhiteKing || g.PieceAt(F1) != WhiteRook || g.PieceAt(H1) != NoPiece {
		t.Errorf("after O-O: g1=%v f1=%v h1=%v", g.PieceAt(G1), g.PieceAt(F1), g.PieceAt(H1))
	}
	if got, want := g.CastlingRights(), BlackKingSideCastle|BlackQueenSideCastle; got != want {
		t.Errorf("rights after O-O = %v, want %v", got, want)
	}

	play(t, g, "e8c8")
	if g.PieceAt(C8) != BlackKing || g.PieceAt(D8) != BlackRook || g.PieceAt(A8) != NoPiece {
		t.Errorf("after O-O-O: c8=%v d8=%v a8=%v", g.PieceAt(C8), g.PieceAt(D8), g.PieceAt(A8))
	}
	if g.CastlingRights() != NoCastling {
		t.Errorf("rights = %v, want none", g.CastlingRights())
	}

	for i := 0; i < 2; i++ {
		if _, err := g.UndoMove(); err != nil {
			t.Fatal(err)
		}
	}
	if g.CastlingRights() != AllCastling {
		t.Errorf("rights after undo = %v, want KQkq", g.CastlingRights())
	}
	if g.PieceAt(E1) != WhiteKing || g.PieceAt(H1) != WhiteRook || g.PieceAt(E8) != BlackKing || g.PieceAt(A8) != BlackRook {
		t.Errorf("pieces not restored:%s", g)
	}
	if g.KingSquare(White) != E1 || g.KingSquare(Black) != E8 {
		t.Errorf("king cache = %v %v", g.KingSquare(White), g.KingSquare(Black))
	}
}

func TestCastlingRightsLost(t *testing.T) {
	g := setupFromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	// Rook leaves and returns: the right stays lost.
	play(t, g, "h1h2", "e8d8", "h2h1", "d8e8")
	if g.CastlingRights() != WhiteQueenSideCastle {
		t.Errorf("rights = %v, want Q", g.CastlingRights())
	}
	if hasMove(g, "e1g1") {
		t.Error("e1g1 legal after the rook moved")
	}

	// A rook captured on its corner takes its right with it.
	g = setupFromFEN(t, "r3k2r/8/8/8/8/8/6b1/R3K2R b KQkq - 0 1")
	play(t, g, "g2h1")
	if g.CastlingRights().CanCastle(White, true) {
		t.Error("white kept king-side right after losing the h1 rook")
	}
	if _, err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if g.CastlingRights() != AllCastling || g.PieceAt(H1) != WhiteRook {
		t.Errorf("undo capture: rights=%v h1=%v", g.CastlingRights(), g.PieceAt(H1))
	}
}

func TestEnPassantLifetime(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5")

	if g.EnPassantTarget() != D6 {
		t.Fatalf("EnPassantTarget() = %v, want d6", g.EnPassantTarget())
	}
	if !hasMove(g, "e5d6") {
		t.Fatalf("e5d6 missing from %v", moveStrings(g.GenerateLegalMoves()))
	}

	play(t, g, "e5d6")
	if g.PieceAt(D5) != NoPiece || g.PieceAt(D6) != WhitePawn {
		t.Errorf("after e.p.: d5=%v d6=%v", g.PieceAt(D5), g.PieceAt(D6))
	}
	last, _ := g.LastMove()
	if !last.EnPassant || last.Captured != BlackPawn {
		t.Errorf("logged move = %+v, want en passant capture", last)
	}

	if _, err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if g.PieceAt(D5) != BlackPawn || g.PieceAt(E5) != WhitePawn || g.PieceAt(D6) != NoPiece {
		t.Errorf("undo e.p.: d5=%v e5=%v d6=%v", g.PieceAt(D5), g.PieceAt(E5), g.PieceAt(D6))
	}
	if g.EnPassantTarget() != D6 {
		t.Errorf("EnPassantTarget() after undo = %v, want d6", g.EnPassantTarget())
	}

	// The opportunity expires after one half-move.
	play(t, g, "h2h3", "h7h6")
	if g.EnPassantTarget() != NoSquare {
		t.Errorf("EnPassantTarget() = %v, want none", g.EnPassantTarget())
	}
	if hasMove(g, "e5d6") {
		t.Error("e5d6 still legal two plies later")
	}
}

func TestEnPassantAnswersCheck(t *testing.T) {
	// d7-d5 checks the king on e4; taking en passant removes the checker.
	g := setupFromFEN(t, "7k/3p4/8/4P3/4K3/8/8/8 b - - 0 1")
	play(t, g, "d7d5")
	if !g.InCheck() {
		t.Fatal("expected check from the d5 pawn")
	}
	if !hasMove(g, "e5d6") {
		t.Errorf("e5d6 missing from %v", moveStrings(g.GenerateLegalMoves()))
	}
}

func TestEnPassantHorizontalPin(t *testing.T) {
	g := setupFromFEN(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if hasMove(g, "e4d3") {
		t.Error("e4d3 exposes the king on the fourth rank")
	}
}
