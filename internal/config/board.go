package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// BoardConfig holds settings for the board a session starts from and how
// it is shown.
type BoardConfig struct {
	// StartFEN is the starting position; empty means the standard one.
	StartFEN string

	// Flip shows the board from Black's side.
	Flip bool
}

// NewBoardConfig creates a BoardConfig with default values.
func NewBoardConfig() *BoardConfig {
	return &BoardConfig{}
}

// Validate checks the starting position parses.
func (c *BoardConfig) Validate() error {
	if c.StartFEN == "" {
		return nil
	}
	if _, err := engine.ParseFEN(c.StartFEN); err != nil {
		return fmt.Errorf("start position: %w: %w", errors.ErrInvalidConfig, err)
	}
	return nil
}
