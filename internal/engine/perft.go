package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Perft counts the leaf nodes of the legal move tree of pos to the given
// depth. Terminal positions contribute no further nodes.
func Perft(pos *chess.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := AllLegalMoves(pos)
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, move := range moves {
		next := playMove(*pos, move)
		nodes += Perft(&next, depth-1)
	}
	return nodes
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  chess.Move
	Nodes int64
}

// Divide returns the perft count below each legal root move, in SortMoves
// order.
func Divide(pos *chess.Position, depth int) []DivideEntry {
	moves := AllLegalMoves(pos)
	SortMoves(moves)
	entries := make([]DivideEntry, 0, len(moves))
	for _, move := range moves {
		next := playMove(*pos, move)
		entries = append(entries, DivideEntry{Move: move, Nodes: Perft(&next, depth-1)})
	}
	return entries
}
