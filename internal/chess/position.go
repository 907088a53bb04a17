package chess

// CastlingRights holds the four independent castling flags. A flag stays true
// only while the corresponding king and rook have never left their home
// squares in this game line.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights is the castling state of the standard starting position.
var AllCastlingRights = CastlingRights{
	WhiteKingside:  true,
	WhiteQueenside: true,
	BlackKingside:  true,
	BlackQueenside: true,
}

// Kingside reports whether the colour may still castle kingside.
func (c CastlingRights) Kingside(colour Colour) bool {
	if colour == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports whether the colour may still castle queenside.
func (c CastlingRights) Queenside(colour Colour) bool {
	if colour == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// Any reports whether any castling right is still held.
func (c CastlingRights) Any() bool {
	return c.WhiteKingside || c.WhiteQueenside || c.BlackKingside || c.BlackQueenside
}

// Revoke returns the rights with the given side of the colour removed.
func (c CastlingRights) Revoke(colour Colour, kingside bool) CastlingRights {
	switch {
	case colour == White && kingside:
		c.WhiteKingside = false
	case colour == White:
		c.WhiteQueenside = false
	case kingside:
		c.BlackKingside = false
	default:
		c.BlackQueenside = false
	}
	return c
}

// RevokeAll returns the rights with both sides of the colour removed.
func (c CastlingRights) RevokeAll(colour Colour) CastlingRights {
	return c.Revoke(colour, true).Revoke(colour, false)
}

// Position is a complete snapshot of a game: the board plus all the state
// needed to continue it. Position is a value; assigning it copies the board,
// so a copy can be changed freely without affecting the original.
type Position struct {
	// Board is indexed [file][rank].
	Board [BoardSize][BoardSize]Piece

	// Who has the next move.
	ToMove Colour

	Castling CastlingRights

	// Is an en passant capture possible? If so then EPSquare is the square
	// passed over by the double pawn push. EPSquare is NoSquare otherwise.
	EnPassant bool
	EPSquare  Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock int

	// The current move number; incremented after each Black move.
	FullmoveNumber int
}

// NewPosition creates an empty board with White to move.
func NewPosition() Position {
	return Position{
		ToMove:         White,
		EPSquare:       NoSquare,
		FullmoveNumber: 1,
	}
}

// StartingPosition returns the standard chess starting position.
func StartingPosition() Position {
	pos := NewPosition()
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		pos.Board[file][0] = W(backRank[file])
		pos.Board[file][1] = W(Pawn)
		pos.Board[file][6] = B(Pawn)
		pos.Board[file][7] = B(backRank[file])
	}
	pos.Castling = AllCastlingRights
	return pos
}

// At returns the piece on the square, or NoPiece when the square is empty or
// off the board.
func (p *Position) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.Board[sq.File][sq.Rank]
}

// Set places a piece on the square. Use NoPiece to empty it.
func (p *Position) Set(sq Square, piece Piece) {
	if sq.Valid() {
		p.Board[sq.File][sq.Rank] = piece
	}
}

// SetEnPassant records sq as the en passant target.
func (p *Position) SetEnPassant(sq Square) {
	p.EnPassant = true
	p.EPSquare = sq
}

// HasEnPassant reports whether an en passant capture onto EPSquare is
// available.
func (p *Position) HasEnPassant() bool {
	return p.EnPassant && p.EPSquare.Valid()
}

// ClearEnPassant removes any en passant target.
func (p *Position) ClearEnPassant() {
	p.EnPassant = false
	p.EPSquare = NoSquare
}

// Count returns how many pieces of the colour and kind are on the board.
func (p *Position) Count(colour Colour, kind Kind) int {
	n := 0
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			if p.Board[file][rank].Is(colour, kind) {
				n++
			}
		}
	}
	return n
}

// Squares returns every square holding a piece of the colour, a1 to h8 by
// rank then file.
func (p *Position) Squares(colour Colour) []Square {
	var squares []Square
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			piece := p.Board[file][rank]
			if !piece.IsEmpty() && piece.Colour == colour {
				squares = append(squares, Sq(file, rank))
			}
		}
	}
	return squares
}
