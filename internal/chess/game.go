package chess

// History is the append-ordered record of board layouts (FEN placement
// fields) reached in a game line, used for repetition detection. Entries made
// unreachable by an irreversible move are dropped.
type History []string

// Count returns how many times layout occurs in the history.
func (h History) Count(layout string) int {
	count := 0
	for _, seen := range h {
		if seen == layout {
			count++
		}
	}
	return count
}

// Last returns the most recent layout, or "" for an empty history.
func (h History) Last() string {
	if len(h) == 0 {
		return ""
	}
	return h[len(h)-1]
}

// Clone returns a copy that shares no storage with h.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// OutcomeKind identifies how (or whether) a game has ended.
type OutcomeKind int

const (
	Ongoing OutcomeKind = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	ThreefoldRepetition
	FiftyMoveRule
	Timeout
	TimeoutVsInsufficientMaterial
	Resignation
	Agreement
)

var outcomeKindNames = []string{
	"Ongoing", "Checkmate", "Stalemate", "InsufficientMaterial",
	"ThreefoldRepetition", "FiftyMoveRule", "Timeout",
	"TimeoutVsInsufficientMaterial", "Resignation", "Agreement",
}

// String returns the string representation of an outcome kind.
func (k OutcomeKind) String() string {
	if int(k) >= 0 && int(k) < len(outcomeKindNames) {
		return outcomeKindNames[k]
	}
	return "Unknown"
}

// ParseOutcomeKind is the inverse of OutcomeKind.String.
func ParseOutcomeKind(name string) (OutcomeKind, bool) {
	for i, n := range outcomeKindNames {
		if n == name {
			return OutcomeKind(i), true
		}
	}
	return Ongoing, false
}

// IsSessionLevel reports whether the kind is decided by the players or the
// clock rather than by the position.
func (k OutcomeKind) IsSessionLevel() bool {
	switch k {
	case Timeout, TimeoutVsInsufficientMaterial, Resignation, Agreement:
		return true
	default:
		return false
	}
}

// Outcome is the verdict on a position after a move. Winner is meaningful
// only when Decisive returns true.
type Outcome struct {
	Kind   OutcomeKind
	Winner Colour
}

// IsOver reports whether the game has ended.
func (o Outcome) IsOver() bool {
	return o.Kind != Ongoing
}

// Decisive reports whether the game ended with a winner.
func (o Outcome) Decisive() bool {
	switch o.Kind {
	case Checkmate, Timeout, Resignation:
		return true
	default:
		return false
	}
}

// IsDraw reports whether the game ended without a winner.
func (o Outcome) IsDraw() bool {
	return o.IsOver() && !o.Decisive()
}

// Result returns the PGN result string: "1-0", "0-1", "1/2-1/2" or "*".
func (o Outcome) Result() string {
	switch {
	case !o.IsOver():
		return "*"
	case o.IsDraw():
		return "1/2-1/2"
	case o.Winner == White:
		return "1-0"
	default:
		return "0-1"
	}
}

// String returns e.g. "Checkmate (White wins)" or "Stalemate".
func (o Outcome) String() string {
	if o.Decisive() {
		return o.Kind.String() + " (" + o.Winner.String() + " wins)"
	}
	return o.Kind.String()
}
