package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Standard castling geometry, as file indices on the back rank.
const (
	kingHomeFile          = 4
	kingsideRookFile      = 7
	queensideRookFile     = 0
	kingsideKingDestFile  = 6
	queensideKingDestFile = 2
	kingsideRookDestFile  = 5
	queensideRookDestFile = 3
)

// castleMoves generates the castling moves available to the king on from.
// A castle is offered when the right is held, king and rook stand on their
// home squares, every square between them is empty, the king is not in check,
// and neither square the king crosses (destination included) is attacked.
func castleMoves(pos *chess.Position, from chess.Square, colour chess.Colour) []chess.Move {
	home := chess.HomeRank(colour)
	if from != chess.Sq(kingHomeFile, home) || !pos.Castling.Any() {
		return nil
	}
	enemy := colour.Opposite()
	if IsSquareAttacked(pos, from, enemy) {
		return nil
	}

	var moves []chess.Move
	if pos.Castling.Kingside(colour) &&
		canCastle(pos, colour, kingsideRookFile, []int{5, 6}, []int{5, 6}) {
		moves = append(moves, chess.Move{
			From:  from,
			To:    chess.Sq(kingsideKingDestFile, home),
			Class: chess.KingsideCastle,
		})
	}
	if pos.Castling.Queenside(colour) &&
		canCastle(pos, colour, queensideRookFile, []int{1, 2, 3}, []int{3, 2}) {
		moves = append(moves, chess.Move{
			From:  from,
			To:    chess.Sq(queensideKingDestFile, home),
			Class: chess.QueensideCastle,
		})
	}
	return moves
}

// canCastle checks the rook is at home, the between files are empty and the
// transit files are not attacked by the opponent.
func canCastle(pos *chess.Position, colour chess.Colour, rookFile int, between, transit []int) bool {
	home := chess.HomeRank(colour)
	if !pos.At(chess.Sq(rookFile, home)).Is(colour, chess.Rook) {
		return false
	}
	for _, file := range between {
		if !pos.At(chess.Sq(file, home)).IsEmpty() {
			return false
		}
	}
	for _, file := range transit {
		if IsSquareAttacked(pos, chess.Sq(file, home), colour.Opposite()) {
			return false
		}
	}
	return true
}

// castleRookSquares returns where the castling rook starts and ends.
func castleRookSquares(move chess.Move) (from, to chess.Square) {
	rank := move.From.Rank
	if move.Class == chess.KingsideCastle {
		return chess.Sq(kingsideRookFile, rank), chess.Sq(kingsideRookDestFile, rank)
	}
	return chess.Sq(queensideRookFile, rank), chess.Sq(queensideRookDestFile, rank)
}

// updateCastlingRightsForRook removes the castling right tied to a rook home
// square when a rook of the colour leaves it or is captured on it.
func updateCastlingRightsForRook(rights chess.CastlingRights, colour chess.Colour, sq chess.Square) chess.CastlingRights {
	if sq.Rank != chess.HomeRank(colour) {
		return rights
	}
	switch sq.File {
	case kingsideRookFile:
		return rights.Revoke(colour, true)
	case queensideRookFile:
		return rights.Revoke(colour, false)
	}
	return rights
}
