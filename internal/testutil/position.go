package testutil

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// MustParseFEN parses a FEN string and calls t.Fatal if it is invalid.
func MustParseFEN(t testing.TB, fen string) chess.Position {
	t.Helper()
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("invalid test FEN %q: %v", fen, err)
	}
	return pos
}

// MustSquare parses an algebraic square name and calls t.Fatal if it is
// invalid.
func MustSquare(t testing.TB, name string) chess.Square {
	t.Helper()
	sq, ok := chess.ParseSquare(name)
	if !ok {
		t.Fatalf("invalid test square %q", name)
	}
	return sq
}

// MustPlay plays a sequence of UCI move texts from the FEN position and
// returns the final position, history and outcome. It calls t.Fatal if any
// move cannot be played.
func MustPlay(t testing.TB, fen string, moves ...string) (chess.Position, chess.History, chess.Outcome) {
	t.Helper()
	pos, history, outcome, err := engine.PlayUCIMoves(MustParseFEN(t, fen), moves)
	if err != nil {
		t.Fatalf("playing %v from %q: %v", moves, fen, err)
	}
	return pos, history, outcome
}

// MoveTexts returns the sorted UCI texts of moves.
func MoveTexts(moves []chess.Move) []string {
	sorted := append([]chess.Move(nil), moves...)
	engine.SortMoves(sorted)
	texts := make([]string, len(sorted))
	for i, m := range sorted {
		texts[i] = m.String()
	}
	return texts
}
