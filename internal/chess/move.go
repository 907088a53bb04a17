package chess

// MoveClass categorizes the special effects a move has on the position.
type MoveClass int

const (
	NormalMove MoveClass = iota
	DoublePawnPush
	EnPassantPawnMove
	KingsideCastle
	QueensideCastle
)

// String returns the string representation of a move class.
func (c MoveClass) String() string {
	switch c {
	case DoublePawnPush:
		return "DoublePawnPush"
	case EnPassantPawnMove:
		return "EnPassant"
	case KingsideCastle:
		return "KingsideCastle"
	case QueensideCastle:
		return "QueensideCastle"
	default:
		return "Normal"
	}
}

// Move is a request to relocate the piece on From to To, together with the
// flags describing its side effects. A Move is never mutated once built.
type Move struct {
	From Square
	To   Square

	// Whether the move removes an enemy piece (including en passant).
	Capture bool

	// The piece promoted to (NoKind if not a promotion).
	Promotion Kind

	Class MoveClass
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return m.Capture || m.Class == EnPassantPawnMove
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// String returns the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Letter() + ('a' - 'A'))
	}
	return s
}
