// chessrules plays, checks and analyses chess positions from the command
// line, optionally against a UCI engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/session"
	"github.com/lgbarn/chessrules-go/internal/storage"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	setupLogFile(cfg)
	setupOutputFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, currentOptions(), flagsSet())
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the -config file, if any, and applies the flags on top.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return nil, err
		}
	}
	if err := applyFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// run carries out one invocation.
func run(ctx context.Context, cfg *config.Config, opts options, set map[string]bool) error {
	if opts.batch != "" {
		return batchFromFile(cfg, opts.batch, opts.perft)
	}

	var store *storage.Storage
	if opts.usesStorage() {
		var err error
		if store, err = storage.Open(cfg.DBDir); err != nil {
			return err
		}
		defer store.Close()

		if err := applySettings(cfg, store, set); err != nil {
			return err
		}
	}

	switch {
	case opts.list:
		return printSavedGames(cfg, store)
	case opts.delete != "":
		if err := store.DeleteGame(opts.delete); err != nil {
			return err
		}
		cfg.Logf(config.Summary, "deleted %q", opts.delete)
		return nil
	}

	if opts.saveSettings {
		if err := storeSettings(cfg, store); err != nil {
			return err
		}
	}

	var provider session.MoveProvider
	if !cfg.Local {
		client, err := uci.Start(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		provider = client
	}
	return playGame(ctx, cfg, opts, provider, store)
}

// applySettings fills in stored preferences the command line left unset.
func applySettings(cfg *config.Config, store *storage.Storage, set map[string]bool) error {
	settings, err := store.LoadSettings()
	if err != nil {
		return err
	}
	if !set["elo"] && cfg.Engine.Elo <= 0 {
		cfg.Engine.Elo = settings.EngineElo
	}
	if !set["flip"] && settings.FlipBoard {
		cfg.Board.Flip = true
	}
	return nil
}

// storeSettings records the current Elo and orientation as defaults.
func storeSettings(cfg *config.Config, store *storage.Storage) error {
	settings, err := store.LoadSettings()
	if err != nil {
		return err
	}
	settings.EngineElo = cfg.Engine.Elo
	settings.FlipBoard = cfg.Board.Flip
	if err := store.SaveSettings(settings); err != nil {
		return err
	}
	cfg.Logf(config.Summary, "settings saved")
	return nil
}

// printSavedGames lists the saved games with their state.
func printSavedGames(cfg *config.Config, store *storage.Storage) error {
	names, err := store.ListGames()
	if err != nil {
		return err
	}
	for _, name := range names {
		game, err := store.LoadGame(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cfg.OutputFile, "%s\t%d moves\t%s\t%s\n",
			name, len(game.Moves), game.Outcome, game.SavedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessrules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays moves from a position, reports the legal moves and the game state,\n")
	fmt.Fprintf(os.Stderr, "and optionally lets a UCI engine continue the game.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  chessrules -moves \"f2f3 e7e5 g2g4 d8h4\"\n")
	fmt.Fprintf(os.Stderr, "  chessrules -fen \"<fen>\" -legal -perft 3\n")
	fmt.Fprintf(os.Stderr, "  chessrules -batch positions.txt -j 8\n")
	fmt.Fprintf(os.Stderr, "  chessrules -engine stockfish -play white -moves e2e4 -save club\n")
}
