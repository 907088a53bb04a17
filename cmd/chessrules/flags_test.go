package main

import (
	"testing"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// saveRestoreString sets a string flag and returns a func restoring it.
// Usage: defer saveRestoreString(enginePath, "sf")()
func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreDuration(ptr *time.Duration, val time.Duration) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyEngineFlags(t *testing.T) {
	t.Run("engine alone plays both sides", func(t *testing.T) {
		defer saveRestoreString(enginePath, "/usr/bin/stockfish")()
		defer saveRestoreString(playColour, "")()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyEngineFlags(cfg))
		testutil.AssertFalse(t, cfg.Local)
		testutil.AssertTrue(t, cfg.SelfPlay)
		testutil.AssertEqual(t, cfg.Engine.Path, "/usr/bin/stockfish")
	})

	t.Run("play black against the engine", func(t *testing.T) {
		defer saveRestoreString(enginePath, "sf")()
		defer saveRestoreString(playColour, "black")()
		defer saveRestoreInt(engineElo, 1400)()
		defer saveRestoreDuration(moveTime, 100*time.Millisecond)()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyEngineFlags(cfg))
		testutil.AssertFalse(t, cfg.SelfPlay)
		testutil.AssertEqual(t, cfg.LocalColour, chess.Black)
		testutil.AssertTrue(t, cfg.EnginePlays(chess.White))
		testutil.AssertEqual(t, cfg.Engine.Elo, 1400)
		testutil.AssertEqual(t, cfg.Engine.MoveTime, 100*time.Millisecond)
	})

	t.Run("bad colour", func(t *testing.T) {
		defer saveRestoreString(playColour, "green")()
		err := applyEngineFlags(config.NewConfig())
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	})

	t.Run("no engine stays local", func(t *testing.T) {
		defer saveRestoreString(enginePath, "")()
		defer saveRestoreString(playColour, "")()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyEngineFlags(cfg))
		testutil.AssertTrue(t, cfg.Local)
	})
}

func TestApplyClockFlags(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		clock   time.Duration
		want    config.ClockConfig
		wantErr bool
	}{
		{"untouched", "", 0, config.ClockConfig{Mode: config.Standard}, false},
		{"blitz default", "blitz", 0, config.ClockConfig{Mode: config.Blitz}, false},
		{"rapid fifteen", "rapid", 15 * time.Minute, config.ClockConfig{Mode: config.Rapid, Initial: 15 * time.Minute}, false},
		{"clock alone is custom", "", 90 * time.Second, config.ClockConfig{Mode: config.Custom, Initial: 90 * time.Second}, false},
		{"unknown mode", "bullet", 0, config.ClockConfig{}, true},
		{"negative clock", "", -time.Second, config.ClockConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreString(gameMode, tt.mode)()
			defer saveRestoreDuration(clockTime, tt.clock)()
			cfg := config.NewConfig()
			err := applyClockFlags(cfg)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, *cfg.Clock, tt.want)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	t.Run("board and output", func(t *testing.T) {
		defer saveRestoreString(fenFlag, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")()
		defer saveRestoreBool(flipFlag, true)()
		defer saveRestoreString(dbDir, "/tmp/chessrules")()
		defer saveRestoreInt(workers, 3)()
		defer saveRestoreBool(verbose, true)()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertEqual(t, *cfg.Board, config.BoardConfig{StartFEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Flip: true})
		testutil.AssertEqual(t, cfg.DBDir, "/tmp/chessrules")
		testutil.AssertEqual(t, cfg.NumWorkers(), 3)
		testutil.AssertEqual(t, cfg.Verbosity, config.Chatty)
	})

	t.Run("quiet wins over verbose", func(t *testing.T) {
		defer saveRestoreBool(verbose, true)()
		defer saveRestoreBool(quiet, true)()
		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertEqual(t, cfg.Verbosity, config.Quiet)
	})

	t.Run("invalid fen rejected", func(t *testing.T) {
		defer saveRestoreString(fenFlag, "8/8/8 w - - 0 1")()
		err := applyFlags(config.NewConfig())
		testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
	})
}

func TestCurrentOptions(t *testing.T) {
	defer saveRestoreString(movesFlag, "  e2e4   e7e5 ")()
	defer saveRestoreString(saveName, "club")()
	defer saveRestoreInt(perftFlag, 2)()

	opts := currentOptions()
	testutil.AssertEqual(t, opts.moves, []string{"e2e4", "e7e5"})
	testutil.AssertEqual(t, opts.perft, 2)
	testutil.AssertTrue(t, opts.usesStorage())

	testutil.AssertFalse(t, options{}.usesStorage())
	testutil.AssertFalse(t, options{colour: true}.usesStorage(), "colour without a diagram")
	testutil.AssertTrue(t, options{board: true, colour: true}.usesStorage())
}
