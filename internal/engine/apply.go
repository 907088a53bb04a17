package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Apply plays a legal move on pos and returns the resulting position, the
// updated repetition history and the verdict on the new position. pos and
// history are not modified.
//
// The move is matched against LegalMoves(pos, move.From) by origin and
// target, and the generated move's flags are used. A move that is not legal
// returns an error wrapping errors.ErrIllegalMove and no position: passing
// one is a caller bug, not a game event.
func Apply(pos chess.Position, move chess.Move, history chess.History) (chess.Position, chess.History, chess.Outcome, error) {
	legal, ok := FindLegalMove(&pos, move.From, move.To)
	if !ok || (move.Promotion != chess.NoKind && move.Promotion != legal.Promotion) {
		return chess.Position{}, nil, chess.Outcome{}, &errors.MoveError{
			Err:      errors.ErrIllegalMove,
			FEN:      FormatFEN(&pos),
			MoveText: move.String(),
		}
	}

	irreversible := pos.At(legal.From).Kind == chess.Pawn || legal.IsCapture() || legal.IsCastle()
	next := playMove(pos, legal)

	newHistory := extendHistory(history, &next, irreversible)

	return next, newHistory, Evaluate(&next, newHistory), nil
}

// FindLegalMove returns the legal move of the side to move going from one
// square to another, if there is one.
func FindLegalMove(pos *chess.Position, from, to chess.Square) (chess.Move, bool) {
	moves := LegalMoves(pos, from)
	i := slices.IndexFunc(moves, func(m chess.Move) bool { return m.To == to })
	if i < 0 {
		return chess.Move{}, false
	}
	return moves[i], true
}

// playMove applies a pseudo-legal move to a copy of pos and updates all
// derived state. It performs no legality checks; both Apply and the legality
// filter go through it so a simulated move behaves exactly like a real one.
func playMove(pos chess.Position, move chess.Move) chess.Position {
	piece := pos.At(move.From)
	colour := piece.Colour
	captured := pos.At(move.To)

	// En passant target lives for exactly one reply.
	pos.ClearEnPassant()
	if move.Class == chess.DoublePawnPush {
		pos.SetEnPassant(chess.Sq(move.From.File, move.From.Rank+chess.ColourOffset(colour)))
	}

	if move.Class == chess.EnPassantPawnMove {
		victim := enPassantVictim(move.To, colour)
		captured = pos.At(victim)
		pos.Set(victim, chess.NoPiece)
	}

	// Move the piece
	pos.Set(move.From, chess.NoPiece)
	pos.Set(move.To, piece)

	if move.IsCastle() {
		rookFrom, rookTo := castleRookSquares(move)
		rook := pos.At(rookFrom)
		pos.Set(rookFrom, chess.NoPiece)
		pos.Set(rookTo, rook)
		pos.Castling = pos.Castling.RevokeAll(colour)
	}

	// Update castling rights if king or rook moved or was captured
	if piece.Kind == chess.King {
		pos.Castling = pos.Castling.RevokeAll(colour)
	}
	if captured.Kind == chess.King {
		pos.Castling = pos.Castling.RevokeAll(captured.Colour)
	}
	if piece.Kind == chess.Rook {
		pos.Castling = updateCastlingRightsForRook(pos.Castling, colour, move.From)
	}
	if captured.Kind == chess.Rook {
		pos.Castling = updateCastlingRightsForRook(pos.Castling, captured.Colour, move.To)
	}

	// Handle promotion
	if piece.Kind == chess.Pawn && move.To.Rank == chess.PromotionRank(colour) {
		promoted := move.Promotion
		if promoted == chess.NoKind {
			promoted = chess.Queen
		}
		pos.Set(move.To, chess.Piece{Colour: colour, Kind: promoted})
	}

	// Update halfmove clock
	if piece.Kind == chess.Pawn || !captured.IsEmpty() {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}

	if colour == chess.Black {
		pos.FullmoveNumber++
	}
	pos.ToMove = colour.Opposite()

	return pos
}
