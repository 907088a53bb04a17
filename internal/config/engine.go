package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// DefaultMoveTime is how long the engine may think about each move.
const DefaultMoveTime = 5 * time.Second

// EngineConfig holds settings for the external UCI engine.
type EngineConfig struct {
	// Path is the engine executable. Empty disables engine play.
	Path string

	// Args are extra command line arguments for the engine.
	Args []string

	// Elo limits the engine's strength via UCI_LimitStrength/UCI_Elo.
	// Zero or negative means full strength.
	Elo int

	// MoveTime is passed as "go movetime".
	MoveTime time.Duration
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Elo:      -1,
		MoveTime: DefaultMoveTime,
	}
}

// LimitStrength reports whether an Elo limit should be sent to the engine.
func (c *EngineConfig) LimitStrength() bool {
	return c.Elo > 0
}

// Validate checks the engine settings.
func (c *EngineConfig) Validate() error {
	if c.MoveTime <= 0 {
		return fmt.Errorf("engine movetime %v must be positive: %w", c.MoveTime, errors.ErrInvalidConfig)
	}
	return nil
}
