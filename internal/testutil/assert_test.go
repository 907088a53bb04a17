package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// Only success paths are exercised here; a failing assertion would fail
// this test too.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, chess.StartingPosition(), engine.NewInitialPosition(), "start position")
}

func TestAssertErrors_Success(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", errNotExist)
	AssertNoError(t, nil)
	AssertError(t, errors.New("test error"), "expected error from %s", "operation")
	AssertErrorIs(t, wrapped, errNotExist)
}

var errNotExist = errors.New("does not exist")

func TestAssertConditions_Success(t *testing.T) {
	AssertContains(t, "hello world", "world")
	AssertContains(t, "test", "")
	AssertTrue(t, len("hello") == 5)
	AssertFalse(t, len("hello") == 0)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestMustHelpers(t *testing.T) {
	AssertEqual(t, MustSquare(t, "e4"), chess.Sq(4, 3))

	pos, history, outcome := MustPlay(t, engine.InitialFEN, "e2e4", "e7e5")
	AssertEqual(t, engine.FormatFEN(&pos), "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	AssertEqual(t, len(history), 1, "pawn moves restart the history")
	AssertFalse(t, outcome.IsOver())

	knight := MoveTexts(engine.LegalMoves(&pos, MustSquare(t, "g1")))
	AssertEqual(t, knight, []string{"g1e2", "g1f3", "g1h3"})
}
