// Package config provides the configuration of a chess session and the
// command line front end.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Verbosity levels.
const (
	Quiet   = 0 // nothing but results
	Summary = 1 // one line per game event
	Chatty  = 2 // running commentary, including engine traffic
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=game events, 2=running commentary

	// Local play: both sides are moved by the caller. Otherwise the engine
	// plays the colour opposite LocalColour.
	Local       bool
	LocalColour chess.Colour

	// SelfPlay lets the engine move for both sides in engine play.
	SelfPlay bool

	Engine *EngineConfig
	Clock  *ClockConfig
	Board  *BoardConfig

	// DBDir is the storage directory for settings and saved games.
	// Empty means the default directory under the user's config dir.
	DBDir string

	// Workers is the number of batch analysis workers (0 = NumCPU).
	Workers int

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:   Summary,
		Local:       true,
		LocalColour: chess.White,
		Engine:      NewEngineConfig(),
		Clock:       NewClockConfig(),
		Board:       NewBoardConfig(),
		OutputFile:  os.Stdout,
		LogFile:     os.Stderr,
	}
}

// Logf writes a diagnostic line to LogFile if Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c == nil || c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}

// NumWorkers returns the effective number of batch workers.
func (c *Config) NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// EnginePlays reports whether the engine moves for the colour.
func (c *Config) EnginePlays(colour chess.Colour) bool {
	if c.Local {
		return false
	}
	return c.SelfPlay || colour != c.LocalColour
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Verbosity < Quiet {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Clock.Validate(); err != nil {
		return err
	}
	if err := c.Board.Validate(); err != nil {
		return err
	}
	if !c.Local && c.Engine.Path == "" {
		return fmt.Errorf("engine play needs an engine path: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// StartPosition returns the configured starting position.
func (c *Config) StartPosition() (chess.Position, error) {
	if c.Board.StartFEN == "" {
		return engine.NewInitialPosition(), nil
	}
	return engine.ParseFEN(c.Board.StartFEN)
}
