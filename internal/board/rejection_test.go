package board

import "testing"

func TestExplain(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want Rejection
	}{
		{"legal", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "e2e4", Accepted},
		{"empty square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "e3e4", RejectNoPiece},
		{"opponent piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "e7e5", RejectNotYourTurn},
		{"own piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "a1a2", RejectOwnPiece},
		{"bad geometry", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "e2e5", RejectMovement},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2d3", RejectKingExposed},
		{"king into attack", "4k3/8/8/8/8/8/r7/4K3 w - - 0 1", "e1e2", RejectKingExposed},
		{"ignores check", "4k3/8/8/8/8/7N/8/r3K3 w - - 0 1", "h3g5", RejectKingExposed},
		{"castle through attack", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", RejectCastling},
		{"en passant along pinned rank", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", "e4d3", RejectKingExposed},
		{"king too far", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1e3", RejectMovement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := setupFromFEN(t, tt.fen)
			m, err := ParseMove(tt.move)
			if err != nil {
				t.Fatal(err)
			}
			if got := g.Explain(m); got != tt.want {
				t.Errorf("Explain(%s) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}
