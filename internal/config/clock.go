package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// GameMode selects the time control of a session.
type GameMode int

const (
	Standard GameMode = iota // no clock
	Custom                   // any positive budget
	Blitz                    // 3 or 5 minutes
	Rapid                    // 10 or 15 minutes
)

// String returns the lowercase name of the mode.
func (m GameMode) String() string {
	switch m {
	case Custom:
		return "custom"
	case Blitz:
		return "blitz"
	case Rapid:
		return "rapid"
	default:
		return "standard"
	}
}

// ParseGameMode converts a mode name of any case.
func ParseGameMode(name string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return Standard, nil
	case "custom":
		return Custom, nil
	case "blitz":
		return Blitz, nil
	case "rapid":
		return Rapid, nil
	}
	return Standard, fmt.Errorf("unknown game mode %q: %w", name, errors.ErrInvalidConfig)
}

// Allowed budgets per timed mode; the first is the default.
var modeBudgets = map[GameMode][]time.Duration{
	Blitz: {5 * time.Minute, 3 * time.Minute},
	Rapid: {10 * time.Minute, 15 * time.Minute},
}

// ClockConfig holds the time control.
type ClockConfig struct {
	Mode GameMode

	// Initial is each side's starting budget. Zero selects the mode's
	// default; it must be set for Custom.
	Initial time.Duration
}

// NewClockConfig creates a ClockConfig with default values.
func NewClockConfig() *ClockConfig {
	return &ClockConfig{Mode: Standard}
}

// Timed reports whether the mode runs a clock.
func (c *ClockConfig) Timed() bool {
	return c.Mode != Standard
}

// Budget returns each side's starting time, or 0 for Standard.
func (c *ClockConfig) Budget() time.Duration {
	if !c.Timed() {
		return 0
	}
	if c.Initial > 0 {
		return c.Initial
	}
	if budgets, ok := modeBudgets[c.Mode]; ok {
		return budgets[0]
	}
	return 0
}

// Validate checks the time control.
func (c *ClockConfig) Validate() error {
	switch c.Mode {
	case Standard:
		return nil
	case Custom:
		if c.Initial <= 0 {
			return fmt.Errorf("custom clock needs a positive initial time: %w", errors.ErrInvalidConfig)
		}
		return nil
	case Blitz, Rapid:
		if c.Initial == 0 {
			return nil
		}
		for _, allowed := range modeBudgets[c.Mode] {
			if c.Initial == allowed {
				return nil
			}
		}
		return fmt.Errorf("%s clock cannot start at %v: %w", c.Mode, c.Initial, errors.ErrInvalidConfig)
	}
	return fmt.Errorf("unknown game mode %d: %w", c.Mode, errors.ErrInvalidConfig)
}
