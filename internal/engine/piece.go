package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Offset tables shared by attack detection and move generation. Each entry is
// a (file, rank) delta.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allDirs       = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// pieceMoves generates pseudo-legal moves for a knight, bishop, rook or
// queen standing on from.
func pieceMoves(pos *chess.Position, from chess.Square, piece chess.Piece) []chess.Move {
	switch piece.Kind {
	case chess.Knight:
		return stepMoves(pos, from, piece.Colour, knightOffsets, nil)
	case chess.Bishop:
		return slidingMoves(pos, from, piece.Colour, diagonalDirs)
	case chess.Rook:
		return slidingMoves(pos, from, piece.Colour, straightDirs)
	case chess.Queen:
		return slidingMoves(pos, from, piece.Colour, allDirs)
	}
	return nil
}

// stepMoves generates single-step moves to each offset that is on the board
// and not occupied by a piece of the mover's colour or by a king. Targets
// for which skip returns true are left out.
func stepMoves(pos *chess.Position, from chess.Square, colour chess.Colour, offsets [][2]int, skip func(chess.Square) bool) []chess.Move {
	var moves []chess.Move
	for _, off := range offsets {
		to, ok := from.Offset(off[0], off[1])
		if !ok {
			continue
		}
		target := pos.At(to)
		if !target.IsEmpty() && (target.Colour == colour || target.Kind == chess.King) {
			continue
		}
		if skip != nil && skip(to) {
			continue
		}
		moves = append(moves, chess.Move{From: from, To: to, Capture: !target.IsEmpty()})
	}
	return moves
}

// slidingMoves ray-scans each direction, adding every empty square and the
// first enemy-occupied square as a capture, stopping at any occupied square.
// Kings are never captured.
func slidingMoves(pos *chess.Position, from chess.Square, colour chess.Colour, dirs [][2]int) []chess.Move {
	var moves []chess.Move
	for _, dir := range dirs {
		to, ok := from.Offset(dir[0], dir[1])
		for ok {
			target := pos.At(to)
			if !target.IsEmpty() {
				if target.Colour != colour && target.Kind != chess.King {
					moves = append(moves, chess.Move{From: from, To: to, Capture: true})
				}
				break // Blocked
			}
			moves = append(moves, chess.Move{From: from, To: to})
			to, ok = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// isAdjacent reports whether two squares touch, including diagonally.
func isAdjacent(a, b chess.Square) bool {
	return a != b && abs(a.File-b.File) <= 1 && abs(a.Rank-b.Rank) <= 1
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
