// Package engine provides chess move generation, legality checking and
// position updates on top of the chess data model.
package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// FiftyMoveLimit is the halfmove clock value at which the 50-move rule ends
// the game.
const FiftyMoveLimit = 100

// RepetitionLimit is the number of occurrences of a board layout that ends
// the game by repetition.
const RepetitionLimit = 3

// DrawRuleResult contains the results of draw rule detection.
type DrawRuleResult struct {
	// HasThreefoldRepetition is true if the current board layout occurs
	// RepetitionLimit or more times in the history.
	HasThreefoldRepetition bool

	// HasInsufficientMaterial is true if neither side can ever deliver mate.
	HasInsufficientMaterial bool

	// HasFiftyMoveRule is true if 50 moves (100 half-moves) have been made
	// without a pawn move or capture.
	HasFiftyMoveRule bool
}

// Any reports whether any draw rule holds.
func (r DrawRuleResult) Any() bool {
	return r.HasThreefoldRepetition || r.HasInsufficientMaterial || r.HasFiftyMoveRule
}

// AnalyzeDrawRules evaluates each draw rule independently.
func AnalyzeDrawRules(pos *chess.Position, history chess.History) DrawRuleResult {
	return DrawRuleResult{
		HasThreefoldRepetition:  IsThreefoldRepetition(pos, history),
		HasInsufficientMaterial: HasInsufficientMaterial(pos),
		HasFiftyMoveRule:        IsFiftyMoveRule(pos),
	}
}

// Evaluate returns the verdict on pos from the point of view of the side to
// move. Checkmate and stalemate are checked first; of the draw rules the
// first to hold wins, in the order repetition, insufficient material,
// 50-move rule.
func Evaluate(pos *chess.Position, history chess.History) chess.Outcome {
	colour := pos.ToMove
	if !HasLegalMoves(pos, colour) {
		if IsInCheck(pos, colour) {
			return chess.Outcome{Kind: chess.Checkmate, Winner: colour.Opposite()}
		}
		return chess.Outcome{Kind: chess.Stalemate}
	}

	draws := AnalyzeDrawRules(pos, history)
	switch {
	case draws.HasThreefoldRepetition:
		return chess.Outcome{Kind: chess.ThreefoldRepetition}
	case draws.HasInsufficientMaterial:
		return chess.Outcome{Kind: chess.InsufficientMaterial}
	case draws.HasFiftyMoveRule:
		return chess.Outcome{Kind: chess.FiftyMoveRule}
	}
	return chess.Outcome{Kind: chess.Ongoing}
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(pos *chess.Position) bool {
	colour := pos.ToMove
	return IsInCheck(pos, colour) && !HasLegalMoves(pos, colour)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(pos *chess.Position) bool {
	colour := pos.ToMove
	return !IsInCheck(pos, colour) && !HasLegalMoves(pos, colour)
}

// IsThreefoldRepetition returns true if the board layout of pos occurs at
// least RepetitionLimit times in history. The history is expected to already
// contain pos itself, as Apply arranges.
func IsThreefoldRepetition(pos *chess.Position, history chess.History) bool {
	return history.Count(BoardLayout(pos)) >= RepetitionLimit
}

// IsFiftyMoveRule returns true once the halfmove clock reaches FiftyMoveLimit.
func IsFiftyMoveRule(pos *chess.Position) bool {
	return pos.HalfmoveClock >= FiftyMoveLimit
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side: no pawn, rook or queen anywhere and at
// most one knight or bishop in total across both sides.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
func HasInsufficientMaterial(pos *chess.Position) bool {
	minors := 0
	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			switch pos.Board[file][rank].Kind {
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			case chess.Knight, chess.Bishop:
				minors++
			}
		}
	}
	return minors <= 1
}

// HasMatingMaterial reports whether the colour has enough material to ever
// deliver mate: any pawn, rook or queen, or at least two minor pieces.
func HasMatingMaterial(pos *chess.Position, colour chess.Colour) bool {
	if pos.Count(colour, chess.Pawn)+pos.Count(colour, chess.Rook)+pos.Count(colour, chess.Queen) > 0 {
		return true
	}
	return pos.Count(colour, chess.Knight)+pos.Count(colour, chess.Bishop) >= 2
}
