package engine

import (
	"sort"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// PseudoLegalMoves returns the moves of the piece on sq that obey its
// movement shape and board occupancy, without checking whether they leave the
// mover's king attacked. Castling moves are fully validated here because
// their transit conditions are part of the move shape. An empty square yields
// no moves. Works for either colour, regardless of the side to move.
func PseudoLegalMoves(pos *chess.Position, sq chess.Square) []chess.Move {
	piece := pos.At(sq)
	if piece.IsEmpty() {
		return nil
	}

	switch piece.Kind {
	case chess.Pawn:
		return pawnMoves(pos, sq, piece.Colour)
	case chess.King:
		return kingMoves(pos, sq, piece.Colour)
	default:
		return pieceMoves(pos, sq, piece)
	}
}

// kingMoves generates the king's single steps, never onto a square touching
// the enemy king, plus any available castles.
func kingMoves(pos *chess.Position, from chess.Square, colour chess.Colour) []chess.Move {
	enemyKing, hasEnemyKing := FindKing(pos, colour.Opposite())
	skip := func(to chess.Square) bool {
		return hasEnemyKing && isAdjacent(to, enemyKing)
	}
	moves := stepMoves(pos, from, colour, kingOffsets, skip)
	return append(moves, castleMoves(pos, from, colour)...)
}

// LegalMoves returns the legal moves of the piece on sq. The piece must
// belong to the side to move; otherwise, or for an empty square, the result
// is empty. Each pseudo-legal move is tried on a copy of the position and
// kept only if the mover's king is not attacked afterwards. The order of the
// result is unspecified; use SortMoves for a deterministic order.
func LegalMoves(pos *chess.Position, sq chess.Square) []chess.Move {
	piece := pos.At(sq)
	if piece.IsEmpty() || piece.Colour != pos.ToMove {
		return nil
	}

	var legal []chess.Move
	for _, move := range PseudoLegalMoves(pos, sq) {
		if leavesKingSafe(pos, move) {
			legal = append(legal, move)
		}
	}
	return legal
}

// leavesKingSafe plays the move on a scratch copy and checks the mover's king.
func leavesKingSafe(pos *chess.Position, move chess.Move) bool {
	colour := pos.At(move.From).Colour
	scratch := playMove(*pos, move)
	return !IsInCheck(&scratch, colour)
}

// AllLegalMoves returns every legal move for the side to move.
func AllLegalMoves(pos *chess.Position) []chess.Move {
	var moves []chess.Move
	for _, sq := range pos.Squares(pos.ToMove) {
		moves = append(moves, LegalMoves(pos, sq)...)
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(pos *chess.Position, colour chess.Colour) bool {
	if pos.ToMove != colour {
		flipped := *pos
		flipped.ToMove = colour
		flipped.ClearEnPassant()
		pos = &flipped
	}
	for _, sq := range pos.Squares(colour) {
		for _, move := range PseudoLegalMoves(pos, sq) {
			if leavesKingSafe(pos, move) {
				return true
			}
		}
	}
	return false
}

// SortMoves orders moves by origin then target square, each by rank then
// file, for callers that need a deterministic order.
func SortMoves(moves []chess.Move) {
	key := func(sq chess.Square) int { return sq.Rank*chess.BoardSize + sq.File }
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.From != b.From {
			return key(a.From) < key(b.From)
		}
		return key(a.To) < key(b.To)
	})
}
