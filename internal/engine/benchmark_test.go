package engine_test

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

var benchFENs = map[string]string{
	"Initial":   engine.InitialFEN,
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex":   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
	"Castling":  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
}

func BenchmarkParseFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				engine.ParseFEN(fen)
			}
		})
	}
}

func BenchmarkFormatFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pos := testutil.MustParseFEN(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				engine.FormatFEN(&pos)
			}
		})
	}
}

func BenchmarkAllLegalMoves(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pos := testutil.MustParseFEN(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				engine.AllLegalMoves(&pos)
			}
		})
	}
}

func BenchmarkApply(b *testing.B) {
	cases := []struct {
		name string
		fen  string
		move string
	}{
		{"PawnMove", benchFENs["Initial"], "e2e4"},
		{"PieceMove", benchFENs["Initial"], "g1f3"},
		{"KingsideCastle", benchFENs["Castling"], "e1g1"},
		{"QueensideCastle", benchFENs["Castling"], "e1c1"},
		{"EnPassant", benchFENs["EnPassant"], "f5e6"},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			pos := testutil.MustParseFEN(b, tc.fen)
			move, err := engine.ResolveMove(&pos, tc.move)
			if err != nil {
				b.Fatal(err)
			}
			history := engine.NewHistory(&pos)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				engine.Apply(pos, move, history)
			}
		})
	}
}

func BenchmarkPerft3(b *testing.B) {
	pos := engine.NewInitialPosition()
	for i := 0; i < b.N; i++ {
		engine.Perft(&pos, 3)
	}
}
