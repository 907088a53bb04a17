package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// NewHistory starts a repetition history at pos.
func NewHistory(pos *chess.Position) chess.History {
	return chess.History{BoardLayout(pos)}
}

// extendHistory returns a new history ending in the layout of next. After an
// irreversible move no earlier layout can recur, so the count restarts.
func extendHistory(history chess.History, next *chess.Position, irreversible bool) chess.History {
	var out chess.History
	if !irreversible {
		out = history.Clone()
	}
	return append(out, BoardLayout(next))
}
