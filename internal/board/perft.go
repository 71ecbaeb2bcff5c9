package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// The game is returned to its original position afterwards.
func (g *GameState) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := g.generateLegal()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		g.makeMove(m)
		nodes += g.Perft(depth - 1)
		g.UndoMove()
	}
	return nodes
}

// DivideEntry is the node count below a single root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide runs Perft(depth-1) below every legal root move.
func (g *GameState) Divide(depth int) []DivideEntry {
	moves := g.generateLegal()
	out := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		g.makeMove(m)
		out = append(out, DivideEntry{Move: m, Nodes: g.Perft(depth - 1)})
		g.UndoMove()
	}
	return out
}
