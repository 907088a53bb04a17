package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/storage"
	"github.com/lgbarn/chessrules-go/internal/testutil"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

// scriptedEngine answers with a fixed sequence of moves.
type scriptedEngine struct {
	moves []string
}

func (e *scriptedEngine) BestMove(ctx context.Context, req uci.Request) (string, error) {
	if len(e.moves) == 0 {
		return "", errors.Wrap(errors.ErrEngine, "script exhausted")
	}
	move := e.moves[0]
	e.moves = e.moves[1:]
	return move, nil
}

func testConfig(out io.Writer) *config.Config {
	cfg := config.NewConfig()
	cfg.OutputFile = out
	cfg.LogFile = io.Discard
	return cfg
}

func openTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.OpenInMemory()
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPlayGame(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(&out)
	opts := options{moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"}, legal: true, plies: 10}

	testutil.AssertNoError(t, playGame(context.Background(), cfg, opts, nil, nil))

	want := "FEN: rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3\n" +
		"Moves: f2f3 e7e5 g2g4 d8h4\n" +
		"Outcome: Checkmate (Black wins) 0-1\n" +
		"Legal moves (0): \n"
	testutil.AssertEqual(t, out.String(), want)
}

func TestPlayGameIllegalMove(t *testing.T) {
	cfg := testConfig(io.Discard)
	opts := options{moves: []string{"e2e4", "e2e4"}}

	err := playGame(context.Background(), cfg, opts, nil, nil)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertContains(t, err.Error(), "move 2")
}

func TestPlayGamePerft(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(&out)
	cfg.Board.StartFEN = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
	opts := options{legal: true, perft: 2}

	testutil.AssertNoError(t, playGame(context.Background(), cfg, opts, nil, nil))
	got := out.String()
	testutil.AssertContains(t, got, "Outcome: InsufficientMaterial 1/2-1/2\n")
	testutil.AssertContains(t, got, "Legal moves (5): e1d1 e1f1 e1d2 e1e2 e1f2\n")
	testutil.AssertContains(t, got, "  e1d1: ")
	testutil.AssertContains(t, got, "Perft(2): ")
}

func TestPlayGameAgainstEngine(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(&out)
	cfg.Local = false
	cfg.LocalColour = chess.White
	cfg.Engine.Path = "scripted"

	provider := &scriptedEngine{moves: []string{"e7e5", "d8h4"}}
	opts := options{moves: []string{"f2f3"}, plies: 10}

	testutil.AssertNoError(t, playGame(context.Background(), cfg, opts, provider, nil))
	testutil.AssertContains(t, out.String(), "Moves: f2f3 e7e5\n")
	testutil.AssertEqual(t, provider.moves, []string{"d8h4"})
}

func TestPlayGameSelfPlay(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(&out)
	cfg.Local = false
	cfg.SelfPlay = true
	cfg.Engine.Path = "scripted"

	provider := &scriptedEngine{moves: []string{"f2f3", "e7e5", "g2g4", "d8h4", "a2a3"}}

	testutil.AssertNoError(t, playGame(context.Background(), cfg, options{plies: 10}, provider, nil))
	testutil.AssertContains(t, out.String(), "Outcome: Checkmate (Black wins) 0-1\n")
	testutil.AssertEqual(t, provider.moves, []string{"a2a3"})

	out.Reset()
	provider = &scriptedEngine{moves: []string{"e2e4", "e7e5", "g1f3"}}
	testutil.AssertNoError(t, playGame(context.Background(), cfg, options{plies: 2}, provider, nil))
	testutil.AssertContains(t, out.String(), "Moves: e2e4 e7e5\n")
}

func TestPlayGameSaveAndLoad(t *testing.T) {
	store := openTestStorage(t)
	cfg := testConfig(io.Discard)

	opts := options{moves: []string{"e2e4", "c7c5"}, save: "sicilian"}
	testutil.AssertNoError(t, playGame(context.Background(), cfg, opts, nil, store))

	game, err := store.LoadGame("sicilian")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, game.Moves, []string{"e2e4", "c7c5"})

	var out bytes.Buffer
	cfg = testConfig(&out)
	opts = options{moves: []string{"g1f3"}, load: "sicilian"}
	testutil.AssertNoError(t, playGame(context.Background(), cfg, opts, nil, store))
	testutil.AssertContains(t, out.String(), "Moves: e2e4 c7c5 g1f3\n")

	opts = options{load: "missing"}
	err = playGame(context.Background(), cfg, opts, nil, store)
	testutil.AssertErrorIs(t, err, errors.ErrNotFound)
}

func TestWriteBoard(t *testing.T) {
	pos := engine.NewInitialPosition()

	var out bytes.Buffer
	writeBoard(&out, &pos, false, nil)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	testutil.AssertEqual(t, len(lines), 9)
	testutil.AssertEqual(t, lines[0], "8 rnbqkbnr")
	testutil.AssertEqual(t, lines[4], "4 ........")
	testutil.AssertEqual(t, lines[7], "1 RNBQKBNR")
	testutil.AssertEqual(t, lines[8], "  abcdefgh")

	out.Reset()
	writeBoard(&out, &pos, true, nil)
	lines = strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	testutil.AssertEqual(t, lines[0], "1 RNBKQBNR")
	testutil.AssertEqual(t, lines[7], "8 rnbkqbnr")
	testutil.AssertEqual(t, lines[8], "  hgfedcba")
}

func TestWriteBoard_Palette(t *testing.T) {
	pos := engine.NewInitialPosition()
	const (
		light = "\x1b[48;2;239;216;183m"
		dark  = "\x1b[48;2;180;135;102m"
		reset = "\x1b[0m"
	)

	var out bytes.Buffer
	writeBoard(&out, &pos, false, storage.DefaultSettings())
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	testutil.AssertEqual(t, len(lines), 9)
	testutil.AssertTrue(t, strings.HasPrefix(lines[0], "8 "+light+"r"+reset+dark+"n"+reset), lines[0])
	testutil.AssertTrue(t, strings.HasPrefix(lines[4], "4 "+light+" "+reset+dark+" "+reset), lines[4])
	testutil.AssertTrue(t, strings.HasSuffix(lines[7], light+"R"+reset), lines[7])
	testutil.AssertEqual(t, strings.Count(lines[0], reset), chess.BoardSize)
	testutil.AssertEqual(t, lines[8], "  abcdefgh")

	custom := storage.DefaultSettings()
	custom.LightSquare = storage.RGBA{R: 1, G: 2, B: 3, A: 255}
	out.Reset()
	writeBoard(&out, &pos, true, custom)
	lines = strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	// h1 is light, so the flipped diagram starts with it.
	testutil.AssertTrue(t, strings.HasPrefix(lines[0], "1 \x1b[48;2;1;2;3mR"+reset), lines[0])
}

func TestPlayGame_ColouredBoard(t *testing.T) {
	store := openTestStorage(t)
	settings := storage.DefaultSettings()
	settings.DarkSquare = storage.RGBA{R: 10, G: 20, B: 30, A: 255}
	testutil.AssertNoError(t, store.SaveSettings(settings))

	var out bytes.Buffer
	cfg := testConfig(&out)
	opts := options{board: true, colour: true}
	testutil.AssertNoError(t, playGame(context.Background(), cfg, opts, nil, store))
	testutil.AssertContains(t, out.String(), "\x1b[48;2;10;20;30mn\x1b[0m")

	out.Reset()
	testutil.AssertNoError(t, playGame(context.Background(), cfg, options{board: true, colour: true}, nil, nil))
	testutil.AssertContains(t, out.String(), "\x1b[48;2;180;135;102mn\x1b[0m")
}

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStorage(t)

	cfg := testConfig(io.Discard)
	cfg.Engine.Elo = 1800
	cfg.Board.Flip = true
	testutil.AssertNoError(t, storeSettings(cfg, store))

	cfg = testConfig(io.Discard)
	testutil.AssertNoError(t, applySettings(cfg, store, map[string]bool{}))
	testutil.AssertEqual(t, cfg.Engine.Elo, 1800)
	testutil.AssertTrue(t, cfg.Board.Flip)

	cfg = testConfig(io.Discard)
	cfg.Engine.Elo = 0
	testutil.AssertNoError(t, applySettings(cfg, store, map[string]bool{"elo": true}))
	testutil.AssertEqual(t, cfg.Engine.Elo, 0)
}

func TestRunStorageCommands(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	cfg := testConfig(&out)
	cfg.DBDir = dir

	ctx := context.Background()
	testutil.AssertNoError(t, run(ctx, cfg, options{moves: []string{"d2d4"}, save: "qp"}, nil))

	out.Reset()
	testutil.AssertNoError(t, run(ctx, cfg, options{list: true}, nil))
	testutil.AssertContains(t, out.String(), "qp\t1 moves\tOngoing\t")

	testutil.AssertNoError(t, run(ctx, cfg, options{delete: "qp"}, nil))
	err := run(ctx, cfg, options{delete: "qp"}, nil)
	testutil.AssertErrorIs(t, err, errors.ErrNotFound)

	out.Reset()
	testutil.AssertNoError(t, run(ctx, cfg, options{list: true}, nil))
	testutil.AssertEqual(t, out.String(), "")
}
