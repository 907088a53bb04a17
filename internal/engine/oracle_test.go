package engine_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// oracleMoveSet returns the from/to pairs dragontoothmg considers legal.
// Underpromotions collapse onto the same pair as the queen promotion.
func oracleMoveSet(b *dragontoothmg.Board) map[string]bool {
	set := make(map[string]bool)
	for _, m := range b.GenerateLegalMoves() {
		set[m.String()[:4]] = true
	}
	return set
}

func ourMoveSet(pos *chess.Position) map[string]bool {
	set := make(map[string]bool)
	for _, m := range engine.AllLegalMoves(pos) {
		set[m.String()[:4]] = true
	}
	return set
}

// TestLegalMoves_MatchOracle walks deterministic lines through several
// positions and compares the legal move set of every position reached with
// an independent generator.
func TestLegalMoves_MatchOracle(t *testing.T) {
	fens := []string{
		engine.InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	const plies = 40

	for _, fen := range fens {
		for seed := 1; seed <= 3; seed++ {
			pos := testutil.MustParseFEN(t, fen)
			board := dragontoothmg.ParseFen(fen)

			for ply := 0; ply < plies; ply++ {
				ours := ourMoveSet(&pos)
				testutil.AssertEqual(t, ours, oracleMoveSet(&board), "%s ply %d", engine.FormatFEN(&pos), ply)
				if len(ours) == 0 {
					break
				}

				moves := engine.AllLegalMoves(&pos)
				engine.SortMoves(moves)
				move := moves[(ply*7+seed*3)%len(moves)]

				next, _, _, err := engine.Apply(pos, move, nil)
				testutil.AssertNoError(t, err)
				testutil.AssertEqual(t, next.Count(chess.White, chess.King), 1, "%s after %s", fen, move)
				testutil.AssertEqual(t, next.Count(chess.Black, chess.King), 1, "%s after %s", fen, move)
				pos = next

				for _, m := range board.GenerateLegalMoves() {
					text := m.String()
					if text[:4] == move.String()[:4] && (len(text) == 4 || text[4] == 'q') {
						board.Apply(m)
						break
					}
				}
			}
		}
	}
}
