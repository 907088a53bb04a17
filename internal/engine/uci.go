package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// ParseUCIMove decodes long algebraic move text as used by UCI engines:
// origin and target squares, optionally followed by a lowercase promotion
// letter ("e2e4", "e7e8q"). It checks syntax only.
func ParseUCIMove(text string) (from, to chess.Square, promotion chess.Kind, err error) {
	if len(text) != 4 && len(text) != 5 {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, moveTextError(text, "4 or 5 characters")
	}

	var ok bool
	if from, ok = chess.ParseSquare(text[0:2]); !ok {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, moveTextError(text, "origin square")
	}
	if to, ok = chess.ParseSquare(text[2:4]); !ok {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, moveTextError(text, "target square")
	}

	if len(text) == 5 {
		c := text[4]
		promotion = chess.KindFromLetter(c)
		if c < 'a' || c > 'z' {
			promotion = chess.NoKind
		}
		switch promotion {
		case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		default:
			return chess.NoSquare, chess.NoSquare, chess.NoKind, moveTextError(text, "promotion letter q, r, b or n")
		}
	}
	return from, to, promotion, nil
}

func moveTextError(text, expected string) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidMoveText,
		Input:    text,
		Expected: expected,
	}
}

// FormatUCIMove encodes a move as long algebraic text.
func FormatUCIMove(move chess.Move) string {
	return move.String()
}

// ResolveMove decodes move text and matches it against the legal moves of
// the side to move, recovering the capture, promotion and special flags.
// Only queen promotion exists, so an explicit promotion letter other than q
// does not match any legal move.
func ResolveMove(pos *chess.Position, text string) (chess.Move, error) {
	from, to, promotion, err := ParseUCIMove(text)
	if err != nil {
		return chess.Move{}, err
	}

	move, ok := FindLegalMove(pos, from, to)
	if !ok || (promotion != chess.NoKind && promotion != move.Promotion) {
		return chess.Move{}, &errors.MoveError{
			Err:      errors.ErrIllegalMove,
			FEN:      FormatFEN(pos),
			MoveText: text,
		}
	}
	return move, nil
}

// PlayUCIMoves plays a sequence of move texts from start, stopping with an
// error at the first malformed or illegal move, or at a move attempted after
// the game has ended. The history starts at start.
func PlayUCIMoves(start chess.Position, moves []string) (chess.Position, chess.History, chess.Outcome, error) {
	pos := start
	history := NewHistory(&pos)
	outcome := Evaluate(&pos, history)

	for i, text := range moves {
		if outcome.IsOver() {
			return pos, history, outcome, &errors.MoveError{
				Err:      errors.ErrGameOver,
				FEN:      FormatFEN(&pos),
				PlyNum:   i + 1,
				MoveText: text,
			}
		}
		move, err := ResolveMove(&pos, text)
		if err != nil {
			return pos, history, outcome, fmt.Errorf("ply %d: %w", i+1, err)
		}
		next, nextHistory, nextOutcome, err := Apply(pos, move, history)
		if err != nil {
			return pos, history, outcome, err
		}
		pos, history, outcome = next, nextHistory, nextOutcome
	}
	return pos, history, outcome, nil
}
