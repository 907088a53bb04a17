package chess

// Square is a (file, rank) pair, both in [0,7]. File 0 is the a-file and
// rank 0 is the first rank.
type Square struct {
	File int
	Rank int
}

// NoSquare is returned where a square is absent.
var NoSquare = Square{File: -1, Rank: -1}

// Sq creates a square from file and rank indices.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Offset returns the square df files and dr ranks away, and whether it is
// still on the board. Offsets never wrap around board edges.
func (s Square) Offset(df, dr int) (Square, bool) {
	to := Square{File: s.File + df, Rank: s.Rank + dr}
	return to, to.Valid()
}

// IsLight reports whether the square is a light square.
func (s Square) IsLight() bool {
	return (s.File+s.Rank)%2 == 1
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File), byte(RankBase + s.Rank)})
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return NoSquare, false
	}
	sq := Square{File: int(name[0]) - FileBase, Rank: int(name[1]) - RankBase}
	if !sq.Valid() {
		return NoSquare, false
	}
	return sq, true
}
