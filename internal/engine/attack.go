package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// IsSquareAttacked returns true if the square is attacked by the given colour.
// The square itself may hold any piece or be empty.
func IsSquareAttacked(pos *chess.Position, sq chess.Square, byColour chess.Colour) bool {
	// Check pawn attacks: pawns of byColour attack from one rank behind,
	// relative to their direction of travel.
	pawnRank := -chess.ColourOffset(byColour)
	for _, df := range []int{-1, 1} {
		if from, ok := sq.Offset(df, pawnRank); ok && pos.At(from).Is(byColour, chess.Pawn) {
			return true
		}
	}

	// Check knight attacks
	for _, off := range knightOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && pos.At(from).Is(byColour, chess.Knight) {
			return true
		}
	}

	// Check king attacks
	for _, off := range kingOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && pos.At(from).Is(byColour, chess.King) {
			return true
		}
	}

	// Check sliding pieces along diagonals and straight lines
	if rayAttacked(pos, sq, byColour, diagonalDirs, chess.Bishop) {
		return true
	}
	return rayAttacked(pos, sq, byColour, straightDirs, chess.Rook)
}

// rayAttacked scans each direction from sq and reports whether the first
// occupied square holds a slider of byColour: the given kind or a queen.
func rayAttacked(pos *chess.Position, sq chess.Square, byColour chess.Colour, dirs [][2]int, slider chess.Kind) bool {
	for _, dir := range dirs {
		cur, ok := sq.Offset(dir[0], dir[1])
		for ok {
			piece := pos.At(cur)
			if !piece.IsEmpty() {
				if piece.Colour == byColour && (piece.Kind == slider || piece.Kind == chess.Queen) {
					return true
				}
				break // Blocked
			}
			cur, ok = cur.Offset(dir[0], dir[1])
		}
	}
	return false
}

// IsInCheck returns true if the given colour's king is attacked.
func IsInCheck(pos *chess.Position, colour chess.Colour) bool {
	kingSq, ok := FindKing(pos, colour)
	if !ok {
		return false // No king found
	}
	return IsSquareAttacked(pos, kingSq, colour.Opposite())
}

// FindKing finds the king of the given colour on the board.
func FindKing(pos *chess.Position, colour chess.Colour) (chess.Square, bool) {
	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			if pos.Board[file][rank].Is(colour, chess.King) {
				return chess.Sq(file, rank), true
			}
		}
	}
	return chess.NoSquare, false
}
