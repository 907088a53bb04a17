package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/session"
	"github.com/lgbarn/chessrules-go/internal/storage"
)

// playGame starts or resumes a game, plays the given moves and then lets the
// engine move while it has the turn, and prints the result.
func playGame(ctx context.Context, cfg *config.Config, opts options, provider session.MoveProvider, store *storage.Storage) error {
	s, err := newSession(cfg, opts, provider, store)
	if err != nil {
		return err
	}

	for i, text := range opts.moves {
		if _, err := s.PlayUCI(text, 0); err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
	}

	for ply := 0; ply < opts.plies && s.IsEngineTurn(); ply++ {
		move, _, err := s.EngineMove(ctx)
		if errors.Is(err, errors.ErrGameOver) {
			break
		}
		if err != nil {
			return err
		}
		cfg.Logf(config.Chatty, "engine played %s", move)
	}

	if opts.save != "" {
		if err := store.SaveGame(s.Saved(opts.save)); err != nil {
			return err
		}
		cfg.Logf(config.Summary, "saved %q", opts.save)
	}

	var palette *storage.Settings
	if opts.board && opts.colour {
		if palette, err = boardPalette(store); err != nil {
			return err
		}
	}
	return report(cfg.OutputFile, cfg, opts, s, palette)
}

// boardPalette returns the stored square colours, or the defaults without
// a store.
func boardPalette(store *storage.Storage) (*storage.Settings, error) {
	if store == nil {
		return storage.DefaultSettings(), nil
	}
	return store.LoadSettings()
}

func newSession(cfg *config.Config, opts options, provider session.MoveProvider, store *storage.Storage) (*session.Session, error) {
	if opts.load == "" {
		return session.New(cfg, provider)
	}
	game, err := store.LoadGame(opts.load)
	if err != nil {
		return nil, err
	}
	return session.Restore(cfg, provider, game)
}

// report prints the final position and whatever else was asked for. A
// non-nil palette shades the diagram.
func report(w io.Writer, cfg *config.Config, opts options, s *session.Session, palette *storage.Settings) error {
	pos := s.Position()
	outcome := s.Outcome()

	fmt.Fprintf(w, "FEN: %s\n", s.FEN())
	if moves := s.Moves(); len(moves) > 0 {
		fmt.Fprintf(w, "Moves: %s\n", strings.Join(moves, " "))
	}
	fmt.Fprintf(w, "Outcome: %s %s\n", outcome, outcome.Result())
	if cfg.Clock.Timed() {
		fmt.Fprintf(w, "Clock: White %v, Black %v\n", s.Remaining(chess.White), s.Remaining(chess.Black))
	}

	if opts.board {
		writeBoard(w, &pos, cfg.Board.Flip, palette)
	}

	if opts.legal {
		moves := engine.AllLegalMoves(&pos)
		engine.SortMoves(moves)
		texts := make([]string, len(moves))
		for i, m := range moves {
			texts[i] = m.String()
		}
		fmt.Fprintf(w, "Legal moves (%d): %s\n", len(moves), strings.Join(texts, " "))
	}

	if opts.perft > 0 {
		if opts.legal {
			for _, entry := range engine.Divide(&pos, opts.perft) {
				fmt.Fprintf(w, "  %s: %d\n", entry.Move, entry.Nodes)
			}
		}
		fmt.Fprintf(w, "Perft(%d): %d\n", opts.perft, engine.Perft(&pos, opts.perft))
	}
	return nil
}

// writeBoard draws the position with White at the bottom, or Black when
// flipped. Empty squares are dots. With a palette each square gets a
// 24-bit ANSI background in its light or dark colour and empty squares
// are blank.
func writeBoard(w io.Writer, pos *chess.Position, flip bool, palette *storage.Settings) {
	for row := 0; row < chess.BoardSize; row++ {
		rank := chess.BoardSize - 1 - row
		if flip {
			rank = row
		}
		var sb strings.Builder
		sb.WriteByte(byte(chess.RankBase + rank))
		sb.WriteByte(' ')
		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if flip {
				file = chess.BoardSize - 1 - col
			}
			sq := chess.Sq(file, rank)
			glyph := byte('.')
			if piece := pos.At(sq); !piece.IsEmpty() {
				glyph = piece.Letter()
			} else if palette != nil {
				glyph = ' '
			}
			if palette == nil {
				sb.WriteByte(glyph)
				continue
			}
			bg := palette.DarkSquare
			if sq.IsLight() {
				bg = palette.LightSquare
			}
			fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm%c\x1b[0m", bg.R, bg.G, bg.B, glyph)
		}
		fmt.Fprintln(w, sb.String())
	}

	files := "abcdefgh"
	if flip {
		files = "hgfedcba"
	}
	fmt.Fprintf(w, "  %s\n", files)
}
