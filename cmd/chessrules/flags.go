// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

var (
	// Position and moves
	fenFlag   = flag.String("fen", "", "Starting position in FEN (default: the initial position)")
	movesFlag = flag.String("moves", "", "Space separated UCI moves to play, e.g. \"e2e4 e7e5\"")

	// Reports on the final position
	legalFlag  = flag.Bool("legal", false, "Print the legal moves of the final position")
	perftFlag  = flag.Int("perft", 0, "Print perft node counts to depth N (per move with -legal)")
	boardFlag  = flag.Bool("board", false, "Print the final position as a diagram")
	flipFlag   = flag.Bool("flip", false, "Print the diagram from Black's side")
	colourFlag = flag.Bool("colour", false, "Shade the diagram with the stored square colours")

	// Batch analysis
	batchFile = flag.String("batch", "", "Evaluate every FEN in this file (one per line, - for stdin)")
	workers   = flag.Int("j", 0, "Number of batch workers (0 = auto-detect based on CPU cores)")

	// Configuration
	configFile = flag.String("config", "", "YAML configuration file")

	// Engine play
	enginePath = flag.String("engine", "", "UCI engine executable; the engine moves until the game ends or -plies is reached")
	playColour = flag.String("play", "", "Colour you play against the engine (white or black); empty lets the engine play both sides")
	engineElo  = flag.Int("elo", 0, "Limit engine strength to this Elo (0 = full strength)")
	moveTime   = flag.Duration("movetime", 0, "Engine thinking time per move (default 5s)")
	maxPlies   = flag.Int("plies", 200, "Maximum number of engine moves")

	// Time control
	gameMode  = flag.String("mode", "", "Game mode: standard, custom, blitz, rapid")
	clockTime = flag.Duration("clock", 0, "Initial time per side (blitz 3m/5m, rapid 10m/15m)")

	// Storage
	dbDir        = flag.String("db", "", "Storage directory (default: user data dir)")
	saveName     = flag.String("save", "", "Save the game under this name")
	loadName     = flag.String("load", "", "Resume the saved game with this name")
	deleteName   = flag.String("delete", "", "Delete the saved game with this name")
	listGames    = flag.Bool("list", false, "List saved games")
	saveSettings = flag.Bool("savesettings", false, "Store -elo and -flip as defaults")

	// Output and logging
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	logFile    = flag.String("l", "", "Write diagnostics to log file")
	verbose    = flag.Bool("v", false, "Verbose diagnostics, including engine traffic")
	quiet      = flag.Bool("s", false, "Silent mode (no diagnostics)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// options are the per-run choices that are not part of the configuration.
type options struct {
	batch  string
	moves  []string
	legal  bool
	perft  int
	board  bool
	colour bool
	plies  int

	save   string
	load   string
	delete string
	list   bool

	saveSettings bool
}

// currentOptions collects the per-run flags.
func currentOptions() options {
	return options{
		batch:        *batchFile,
		moves:        strings.Fields(*movesFlag),
		legal:        *legalFlag,
		perft:        *perftFlag,
		board:        *boardFlag,
		colour:       *colourFlag,
		plies:        *maxPlies,
		save:         *saveName,
		load:         *loadName,
		delete:       *deleteName,
		list:         *listGames,
		saveSettings: *saveSettings,
	}
}

// usesStorage reports whether the run needs the settings database.
func (o options) usesStorage() bool {
	return o.save != "" || o.load != "" || o.delete != "" || o.list || o.saveSettings || (o.board && o.colour)
}

// applyFlags applies command-line flags on top of the configuration.
func applyFlags(cfg *config.Config) error {
	if err := applyEngineFlags(cfg); err != nil {
		return err
	}
	if err := applyClockFlags(cfg); err != nil {
		return err
	}
	applyBoardFlags(cfg)

	if *dbDir != "" {
		cfg.DBDir = *dbDir
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	switch {
	case *quiet:
		cfg.Verbosity = config.Quiet
	case *verbose:
		cfg.Verbosity = config.Chatty
	}
	return cfg.Validate()
}

// applyEngineFlags configures engine play.
func applyEngineFlags(cfg *config.Config) error {
	if *enginePath != "" {
		cfg.Engine.Path = *enginePath
		cfg.Local = false
	}
	if *playColour != "" {
		colour, err := config.ParseColour(*playColour)
		if err != nil {
			return err
		}
		cfg.LocalColour = colour
		cfg.SelfPlay = false
	} else if *enginePath != "" {
		cfg.SelfPlay = true
	}
	if *engineElo != 0 {
		cfg.Engine.Elo = *engineElo
	}
	if *moveTime != 0 {
		cfg.Engine.MoveTime = *moveTime
	}
	return nil
}

// applyClockFlags configures the time control.
func applyClockFlags(cfg *config.Config) error {
	if *gameMode != "" {
		mode, err := config.ParseGameMode(*gameMode)
		if err != nil {
			return err
		}
		cfg.Clock.Mode = mode
	}
	if *clockTime != 0 {
		if *clockTime < 0 {
			return fmt.Errorf("clock %v is negative: %w", *clockTime, errors.ErrInvalidConfig)
		}
		cfg.Clock.Initial = *clockTime
		if cfg.Clock.Mode == config.Standard {
			cfg.Clock.Mode = config.Custom
		}
	}
	return nil
}

// applyBoardFlags sets the starting position and diagram orientation.
func applyBoardFlags(cfg *config.Config) {
	if *fenFlag != "" {
		cfg.Board.StartFEN = *fenFlag
	}
	if *flipFlag {
		cfg.Board.Flip = true
	}
}

// flagsSet returns the names of the flags given on the command line.
func flagsSet() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
