package board

// Position keys for repetition detection. Every table is indexed the way the
// board is: pieces by their Piece value, squares by mailbox index.
var (
	pieceKeys    [NoPiece][64]uint64
	castleKeys   [4]uint64 // one per rights bit
	epColumnKeys [8]uint64
	blackToMove  uint64
)

func init() {
	seed := uint64(0x6A09E667F3BCC908)
	for p := range pieceKeys {
		for s := range pieceKeys[p] {
			pieceKeys[p][s] = splitmix(&seed)
		}
	}
	for i := range castleKeys {
		castleKeys[i] = splitmix(&seed)
	}
	for col := range epColumnKeys {
		epColumnKeys[col] = splitmix(&seed)
	}
	blackToMove = splitmix(&seed)
}

// splitmix advances *state and returns the next SplitMix64 output.
func splitmix(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}

// computeKey hashes the current board, side, rights and en passant column.
// Two positions with equal keys are treated as repetitions.
func (g *GameState) computeKey() uint64 {
	var key uint64
	for s, p := range g.squares {
		if p != NoPiece {
			key ^= pieceKeys[p][s]
		}
	}
	cr := g.CastlingRights()
	for i := range castleKeys {
		if cr&(1<<i) != 0 {
			key ^= castleKeys[i]
		}
	}
	if ep := g.EnPassantTarget(); ep != NoSquare {
		key ^= epColumnKeys[ep.Col()]
	}
	if g.sideToMove == Black {
		key ^= blackToMove
	}
	return key
}
