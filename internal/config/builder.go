package config

import (
	"io"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithEngine sets the engine executable and enables engine play with the
// local player on the given colour.
func (b *ConfigBuilder) WithEngine(path string, localColour chess.Colour) *ConfigBuilder {
	b.cfg.Engine.Path = path
	b.cfg.Local = false
	b.cfg.LocalColour = localColour
	return b
}

// WithElo limits the engine's strength.
func (b *ConfigBuilder) WithElo(elo int) *ConfigBuilder {
	b.cfg.Engine.Elo = elo
	return b
}

// WithMoveTime sets the engine's thinking time per move.
func (b *ConfigBuilder) WithMoveTime(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.MoveTime = d
	return b
}

// WithClock sets the time control.
func (b *ConfigBuilder) WithClock(mode GameMode, initial time.Duration) *ConfigBuilder {
	b.cfg.Clock.Mode = mode
	b.cfg.Clock.Initial = initial
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Board.StartFEN = fen
	return b
}

// WithFlipBoard shows the board from Black's side.
func (b *ConfigBuilder) WithFlipBoard(flip bool) *ConfigBuilder {
	b.cfg.Board.Flip = flip
	return b
}

// WithDBDir sets the storage directory.
func (b *ConfigBuilder) WithDBDir(dir string) *ConfigBuilder {
	b.cfg.DBDir = dir
	return b
}

// WithWorkers sets the number of batch workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the diagnostics writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
