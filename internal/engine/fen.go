package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenFields is the number of space separated fields in a FEN string.
const fenFields = 6

// ParseFEN parses a FEN string into a Position. Parsing is strict: any
// malformed field yields a *errors.ParseError wrapping errors.ErrInvalidFEN
// and a zero Position.
func ParseFEN(fen string) (chess.Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != fenFields {
		return chess.Position{}, fenError(fen, "fields", "6 fields", strconv.Itoa(len(parts)))
	}

	pos := chess.NewPosition()

	if err := parsePiecePlacement(&pos, fen, parts[0]); err != nil {
		return chess.Position{}, err
	}
	if err := parseSideToMove(&pos, fen, parts[1]); err != nil {
		return chess.Position{}, err
	}
	if err := parseCastlingRights(&pos, fen, parts[2]); err != nil {
		return chess.Position{}, err
	}
	if err := parseEnPassant(&pos, fen, parts[3]); err != nil {
		return chess.Position{}, err
	}
	if err := parseClocks(&pos, fen, parts[4], parts[5]); err != nil {
		return chess.Position{}, err
	}
	if IsInCheck(&pos, pos.ToMove.Opposite()) {
		return chess.Position{}, fenError(fen, "placement", "side not to move not in check", parts[1])
	}
	return pos, nil
}

func fenError(input, field, expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidFEN,
		Input:    input,
		Field:    field,
		Expected: expected,
		Got:      got,
	}
}

// parsePiecePlacement parses the piece placement field of a FEN string.
func parsePiecePlacement(pos *chess.Position, fen, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fen, "placement", "8 ranks", strconv.Itoa(len(ranks)))
	}

	kings := map[chess.Colour]int{}
	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		lastWasDigit := false
		for _, c := range []byte(row) {
			switch {
			case c >= '1' && c <= '8':
				if lastWasDigit {
					return fenError(fen, "placement", "no adjacent digits", row)
				}
				file += int(c - '0')
				lastWasDigit = true
			default:
				kind := chess.KindFromLetter(c)
				if kind == chess.NoKind {
					return fenError(fen, "placement", "piece letter", string(c))
				}
				if file >= chess.BoardSize {
					return fenError(fen, "placement", "8 squares per rank", row)
				}
				colour := chess.White
				if c >= 'a' && c <= 'z' {
					colour = chess.Black
				}
				pos.Board[file][rank] = chess.Piece{Colour: colour, Kind: kind}
				if kind == chess.King {
					kings[colour]++
				}
				if kind == chess.Pawn && (rank == 0 || rank == chess.BoardSize-1) {
					return fenError(fen, "placement", "no pawns on the first or last rank", row)
				}
				file++
				lastWasDigit = false
			}
		}
		if file != chess.BoardSize {
			return fenError(fen, "placement", "8 squares per rank", row)
		}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kings[colour] != 1 {
			return fenError(fen, "placement", "one "+strings.ToLower(colour.String())+" king",
				strconv.Itoa(kings[colour]))
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *chess.Position, fen, side string) error {
	switch side {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fenError(fen, "side", "w or b", side)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(pos *chess.Position, fen, field string) error {
	pos.Castling = chess.CastlingRights{}
	if field == "-" {
		return nil
	}

	seen := map[rune]bool{}
	for _, c := range field {
		if seen[c] {
			return fenError(fen, "castling", "no repeated letters", field)
		}
		seen[c] = true
		switch c {
		case 'K':
			pos.Castling.WhiteKingside = true
		case 'Q':
			pos.Castling.WhiteQueenside = true
		case 'k':
			pos.Castling.BlackKingside = true
		case 'q':
			pos.Castling.BlackQueenside = true
		default:
			return fenError(fen, "castling", "KQkq or -", field)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(pos *chess.Position, fen, field string) error {
	pos.ClearEnPassant()
	if field == "-" {
		return nil
	}
	sq, ok := chess.ParseSquare(field)
	if !ok || (sq.Rank != 2 && sq.Rank != 5) {
		return fenError(fen, "en passant", "square on rank 3 or 6", field)
	}
	// The target is behind the pawn the side not to move just pushed.
	if want := chess.PromotionRank(pos.ToMove) - 2*chess.ColourOffset(pos.ToMove); sq.Rank != want {
		return fenError(fen, "en passant", fmt.Sprintf("square on rank %d for %s to move", want+1, pos.ToMove), field)
	}
	pos.SetEnPassant(sq)
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *chess.Position, fen, halfmove, fullmove string) error {
	n, ok := parseCounter(halfmove)
	if !ok {
		return fenError(fen, "halfmove clock", "non-negative integer", halfmove)
	}
	pos.HalfmoveClock = n

	n, ok = parseCounter(fullmove)
	if !ok {
		return fenError(fen, "fullmove number", "non-negative integer", fullmove)
	}
	pos.FullmoveNumber = n
	return nil
}

// parseCounter accepts plain decimal digits only; signs are rejected.
func parseCounter(field string) (int, bool) {
	if field == "" {
		return 0, false
	}
	for _, c := range []byte(field) {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(field)
	return n, err == nil
}

// FormatFEN converts a position to a FEN string. It is the exact inverse of
// ParseFEN.
func FormatFEN(pos *chess.Position) string {
	var sb strings.Builder

	writePiecePlacement(&sb, pos)
	sb.WriteByte(' ')
	writeSideToMove(&sb, pos)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, pos)
	sb.WriteByte(' ')
	writeEnPassant(&sb, pos)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", pos.HalfmoveClock, pos.FullmoveNumber)

	return sb.String()
}

// BoardLayout returns just the piece placement field of the position's FEN.
// It is the key used for repetition detection.
func BoardLayout(pos *chess.Position) string {
	var sb strings.Builder
	writePiecePlacement(&sb, pos)
	return sb.String()
}

// writePiecePlacement writes the piece placement to the builder.
func writePiecePlacement(sb *strings.Builder, pos *chess.Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := pos.Board[file][rank]
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, pos *chess.Position) {
	if pos.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, pos *chess.Position) {
	if !pos.Castling.Any() {
		sb.WriteByte('-')
		return
	}
	if pos.Castling.WhiteKingside {
		sb.WriteByte('K')
	}
	if pos.Castling.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if pos.Castling.BlackKingside {
		sb.WriteByte('k')
	}
	if pos.Castling.BlackQueenside {
		sb.WriteByte('q')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, pos *chess.Position) {
	if pos.EnPassant {
		sb.WriteString(pos.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
}

// NewInitialPosition returns the standard starting position.
func NewInitialPosition() chess.Position {
	pos, _ := ParseFEN(InitialFEN)
	return pos
}
