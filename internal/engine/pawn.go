package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// pawnMoves generates pseudo-legal moves for the pawn on from: single and
// double pushes, diagonal captures, en passant, and promotion (always to a
// queen) on reaching the last rank.
func pawnMoves(pos *chess.Position, from chess.Square, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	dir := chess.ColourOffset(colour)
	lastRank := chess.PromotionRank(colour)

	add := func(m chess.Move) {
		if m.To.Rank == lastRank {
			m.Promotion = chess.Queen
		}
		moves = append(moves, m)
	}

	// Forward move
	if one, ok := from.Offset(0, dir); ok && pos.At(one).IsEmpty() {
		add(chess.Move{From: from, To: one})

		// Double push from starting rank
		if from.Rank == chess.PawnRank(colour) {
			if two, ok := one.Offset(0, dir); ok && pos.At(two).IsEmpty() {
				add(chess.Move{From: from, To: two, Class: chess.DoublePawnPush})
			}
		}
	}

	// Captures
	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		target := pos.At(to)
		if !target.IsEmpty() {
			if target.Colour != colour && target.Kind != chess.King {
				add(chess.Move{From: from, To: to, Capture: true})
			}
			continue
		}
		// En passant: the target lies behind a pawn that just moved two
		// squares, so it is on the mover's sixth rank.
		if pos.HasEnPassant() && to == pos.EPSquare && to.Rank == lastRank-2*dir {
			if pos.At(enPassantVictim(to, colour)).Is(colour.Opposite(), chess.Pawn) {
				add(chess.Move{From: from, To: to, Capture: true, Class: chess.EnPassantPawnMove})
			}
		}
	}

	return moves
}

// enPassantVictim returns the square of the pawn removed by an en passant
// capture landing on target: the square behind the target from the mover's
// point of view.
func enPassantVictim(target chess.Square, mover chess.Colour) chess.Square {
	return chess.Sq(target.File, target.Rank-chess.ColourOffset(mover))
}
