package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// fileConfig is the YAML shape of a config file. Pointer fields tell an
// absent key from an explicit zero.
type fileConfig struct {
	Verbosity *int   `yaml:"verbosity"`
	Local     *bool  `yaml:"local"`
	Colour    string `yaml:"colour"`
	SelfPlay  bool   `yaml:"self_play"`
	DB        string `yaml:"db"`
	Workers   int    `yaml:"workers"`

	Engine struct {
		Path     string        `yaml:"path"`
		Args     []string      `yaml:"args,flow"`
		Elo      *int          `yaml:"elo"`
		MoveTime time.Duration `yaml:"movetime"`
	} `yaml:"engine"`

	Clock struct {
		Mode    string        `yaml:"mode"`
		Initial time.Duration `yaml:"initial"`
	} `yaml:"clock"`

	Board struct {
		FEN  string `yaml:"fen"`
		Flip bool   `yaml:"flip"`
	} `yaml:"board"`
}

// Load reads a YAML config file on top of the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Parse decodes YAML config text on top of the defaults and validates the
// result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}

	cfg := NewConfig()
	if err := fc.apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Verbosity != nil {
		cfg.Verbosity = *fc.Verbosity
	}
	if fc.Local != nil {
		cfg.Local = *fc.Local
	}
	if fc.Colour != "" {
		colour, err := ParseColour(fc.Colour)
		if err != nil {
			return err
		}
		cfg.LocalColour = colour
	}
	cfg.SelfPlay = fc.SelfPlay
	cfg.DBDir = fc.DB
	cfg.Workers = fc.Workers

	cfg.Engine.Path = fc.Engine.Path
	cfg.Engine.Args = fc.Engine.Args
	if fc.Engine.Elo != nil {
		cfg.Engine.Elo = *fc.Engine.Elo
	}
	if fc.Engine.MoveTime != 0 {
		cfg.Engine.MoveTime = fc.Engine.MoveTime
	}

	mode, err := ParseGameMode(fc.Clock.Mode)
	if err != nil {
		return err
	}
	cfg.Clock.Mode = mode
	cfg.Clock.Initial = fc.Clock.Initial

	cfg.Board.StartFEN = fc.Board.FEN
	cfg.Board.Flip = fc.Board.Flip
	return nil
}

// ParseColour converts "white"/"w" or "black"/"b" of any case.
func ParseColour(name string) (chess.Colour, error) {
	switch strings.ToLower(name) {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	}
	return chess.White, &errors.ParseError{
		Err:      errors.ErrInvalidConfig,
		Field:    "colour",
		Expected: "white or black",
		Got:      name,
	}
}
