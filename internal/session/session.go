// Package session drives a single game: it owns the current position and
// repetition history, runs the clocks, asks an engine for moves when it is
// the engine's turn, and reports how the game ended.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/storage"
	"github.com/lgbarn/chessrules-go/internal/uci"
	"golang.org/x/exp/slices"
)

// MoveProvider supplies moves for the engine side. *uci.Client implements it.
type MoveProvider interface {
	BestMove(ctx context.Context, req uci.Request) (string, error)
}

// Session is one game in progress. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	cfg      *config.Config
	provider MoveProvider

	start   chess.Position
	pos     chess.Position
	history chess.History
	moves   []string
	outcome chess.Outcome

	// Remaining time per side, indexed by colour; unused when untimed.
	clock [2]time.Duration

	onGameOver func(chess.Outcome)
}

// New starts a session from the configured starting position. provider may
// be nil for local play.
func New(cfg *config.Config, provider MoveProvider) (*Session, error) {
	start, err := cfg.StartPosition()
	if err != nil {
		return nil, err
	}
	return NewAt(cfg, provider, start), nil
}

// NewAt starts a session from the given position.
func NewAt(cfg *config.Config, provider MoveProvider, start chess.Position) *Session {
	s := &Session{
		cfg:      cfg,
		provider: provider,
		start:    start,
		pos:      start,
		history:  engine.NewHistory(&start),
	}
	budget := cfg.Clock.Budget()
	s.clock = [2]time.Duration{budget, budget}
	s.outcome = engine.Evaluate(&s.pos, s.history)
	return s
}

// OnGameOver registers a callback run once when the game ends. It is called
// without the session lock held.
func (s *Session) OnGameOver(fn func(chess.Outcome)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onGameOver = fn
}

// Position returns the current position.
func (s *Session) Position() chess.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// FEN returns the current position in FEN.
func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.FormatFEN(&s.pos)
}

// History returns a copy of the repetition history.
func (s *Session) History() chess.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Clone()
}

// Moves returns the moves played so far as UCI text.
func (s *Session) Moves() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.moves...)
}

// Outcome returns the current verdict.
func (s *Session) Outcome() chess.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Remaining returns the colour's clock, or 0 when untimed.
func (s *Session) Remaining(colour chess.Colour) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock[colour]
}

// LegalMoves returns the legal moves of the piece on sq, or none once the
// game is over.
func (s *Session) LegalMoves(sq chess.Square) []chess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome.IsOver() {
		return nil
	}
	return engine.LegalMoves(&s.pos, sq)
}

// Play makes a move for the side to move. elapsed is the thinking time
// charged to the mover's clock in timed modes. If the clock runs out the
// move is not played, the game ends on time and an error wrapping
// errors.ErrGameOver is returned together with the final outcome.
func (s *Session) Play(move chess.Move, elapsed time.Duration) (chess.Outcome, error) {
	s.mu.Lock()
	outcome, fire, err := s.playLocked(move, elapsed)
	s.mu.Unlock()
	if fire != nil {
		fire(outcome)
	}
	return outcome, err
}

// PlayUCI makes a move given as UCI text.
func (s *Session) PlayUCI(text string, elapsed time.Duration) (chess.Outcome, error) {
	s.mu.Lock()
	move, err := engine.ResolveMove(&s.pos, text)
	if err != nil {
		outcome := s.outcome
		if outcome.IsOver() {
			err = s.gameOverError(text)
		} else {
			err = s.numberPly(err)
		}
		s.mu.Unlock()
		return outcome, err
	}
	outcome, fire, err := s.playLocked(move, elapsed)
	s.mu.Unlock()
	if fire != nil {
		fire(outcome)
	}
	return outcome, err
}

func (s *Session) playLocked(move chess.Move, elapsed time.Duration) (chess.Outcome, func(chess.Outcome), error) {
	if s.outcome.IsOver() {
		return s.outcome, nil, s.gameOverError(move.String())
	}

	mover := s.pos.ToMove
	if s.cfg.Clock.Timed() {
		if elapsed >= s.clock[mover] {
			s.clock[mover] = 0
			fire := s.finishLocked(s.flagOutcome(mover))
			return s.outcome, fire, fmt.Errorf("%s ran out of time: %w", mover, errors.ErrGameOver)
		}
		s.clock[mover] -= elapsed
	}

	next, history, outcome, err := engine.Apply(s.pos, move, s.history)
	if err != nil {
		if s.cfg.Clock.Timed() {
			s.clock[mover] += elapsed
		}
		return s.outcome, nil, s.numberPly(err)
	}

	s.pos, s.history = next, history
	s.moves = append(s.moves, move.String())
	s.cfg.Logf(config.Chatty, "%d. %s %s", len(s.moves), mover, move)

	if outcome.IsOver() {
		return outcome, s.finishLocked(outcome), nil
	}
	s.outcome = outcome
	return outcome, nil, nil
}

// numberPly stamps a move error with the ply it was attempted at.
func (s *Session) numberPly(err error) error {
	var moveErr *errors.MoveError
	if errors.As(err, &moveErr) {
		moveErr.PlyNum = len(s.moves) + 1
	}
	return err
}

func (s *Session) gameOverError(text string) error {
	return &errors.MoveError{
		Err:      errors.ErrGameOver,
		FEN:      engine.FormatFEN(&s.pos),
		PlyNum:   len(s.moves) + 1,
		MoveText: text,
	}
}

// flagOutcome is the verdict when the colour's clock runs out: a loss,
// unless the opponent could never mate.
func (s *Session) flagOutcome(flagged chess.Colour) chess.Outcome {
	if !engine.HasMatingMaterial(&s.pos, flagged.Opposite()) {
		return chess.Outcome{Kind: chess.TimeoutVsInsufficientMaterial}
	}
	return chess.Outcome{Kind: chess.Timeout, Winner: flagged.Opposite()}
}

// finishLocked records the final outcome and returns the callback to run
// once the lock is released.
func (s *Session) finishLocked(outcome chess.Outcome) func(chess.Outcome) {
	s.outcome = outcome
	s.cfg.Logf(config.Summary, "game over: %s %s", outcome, outcome.Result())
	return s.onGameOver
}

// end finishes the game with the outcome returned by decide, which runs
// under the session lock.
func (s *Session) end(decide func() chess.Outcome) error {
	s.mu.Lock()
	if s.outcome.IsOver() {
		s.mu.Unlock()
		return fmt.Errorf("game already ended: %w", errors.ErrGameOver)
	}
	outcome := decide()
	fire := s.finishLocked(outcome)
	s.mu.Unlock()
	if fire != nil {
		fire(outcome)
	}
	return nil
}

// Resign ends the game with the colour resigning.
func (s *Session) Resign(colour chess.Colour) error {
	return s.end(func() chess.Outcome {
		return chess.Outcome{Kind: chess.Resignation, Winner: colour.Opposite()}
	})
}

// AgreeDraw ends the game as a draw by agreement.
func (s *Session) AgreeDraw() error {
	return s.end(func() chess.Outcome {
		return chess.Outcome{Kind: chess.Agreement}
	})
}

// Flag ends the game on time for the colour whose clock ran out.
func (s *Session) Flag(colour chess.Colour) error {
	return s.end(func() chess.Outcome {
		s.clock[colour] = 0
		return s.flagOutcome(colour)
	})
}

// IsEngineTurn reports whether the provider should move next.
func (s *Session) IsEngineTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isEngineTurnLocked()
}

func (s *Session) isEngineTurnLocked() bool {
	return s.provider != nil && !s.outcome.IsOver() && s.cfg.EnginePlays(s.pos.ToMove)
}

// EngineMove asks the provider for a move and plays it. The session lock is
// not held while the engine thinks; if the game changed meanwhile (a
// resignation, say) the answer is discarded.
func (s *Session) EngineMove(ctx context.Context) (chess.Move, chess.Outcome, error) {
	s.mu.Lock()
	if !s.isEngineTurnLocked() {
		outcome := s.outcome
		s.mu.Unlock()
		if outcome.IsOver() {
			return chess.Move{}, outcome, fmt.Errorf("engine move: %w", errors.ErrGameOver)
		}
		return chess.Move{}, outcome, fmt.Errorf("not the engine's turn: %w", errors.ErrEngine)
	}
	req := uci.Request{
		FEN:       engine.FormatFEN(&s.pos),
		Timed:     s.cfg.Clock.Timed(),
		WhiteTime: s.clock[chess.White],
		BlackTime: s.clock[chess.Black],
		MoveTime:  s.cfg.Engine.MoveTime,
	}
	ply := len(s.moves)
	s.mu.Unlock()

	started := time.Now()
	text, err := s.provider.BestMove(ctx, req)
	if err != nil {
		return chess.Move{}, s.Outcome(), fmt.Errorf("engine move: %w", err)
	}
	elapsed := time.Since(started)

	s.mu.Lock()
	if len(s.moves) != ply || s.outcome.IsOver() {
		outcome := s.outcome
		s.mu.Unlock()
		return chess.Move{}, outcome, fmt.Errorf("game moved on while engine was thinking: %w", errors.ErrGameOver)
	}
	move, err := engine.ResolveMove(&s.pos, text)
	if err != nil {
		outcome := s.outcome
		s.mu.Unlock()
		return chess.Move{}, outcome, fmt.Errorf("engine answered %q: %w: %w", text, errors.ErrEngine, err)
	}
	outcome, fire, err := s.playLocked(move, elapsed)
	s.mu.Unlock()
	if fire != nil {
		fire(outcome)
	}
	return move, outcome, err
}

// Rematch starts a new game from the same starting position with the
// players' colours swapped.
func (s *Session) Rematch() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := *s.cfg
	cfg.LocalColour = cfg.LocalColour.Opposite()
	next := NewAt(&cfg, s.provider, s.start)
	next.onGameOver = s.onGameOver
	return next
}

// Saved returns a snapshot of the session under the given name.
func (s *Session) Saved(name string) *storage.SavedGame {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := &storage.SavedGame{
		Name:     name,
		StartFEN: engine.FormatFEN(&s.start),
		Moves:    append([]string(nil), s.moves...),
		FEN:      engine.FormatFEN(&s.pos),
		History:  s.history.Clone(),
		Mode:     s.cfg.Clock.Mode.String(),
		Outcome:  s.outcome.Kind.String(),
	}
	if s.outcome.Decisive() {
		game.Winner = s.outcome.Winner.String()
	}
	if s.cfg.Clock.Timed() {
		game.WhiteTime = s.clock[chess.White]
		game.BlackTime = s.clock[chess.Black]
	}
	return game
}

// Restore rebuilds a session from a saved game by replaying its moves from
// the saved start. The replayed position must match the saved FEN. An
// outcome decided by the players or the clock is taken from the save since
// it cannot be recovered from the moves.
func Restore(cfg *config.Config, provider MoveProvider, game *storage.SavedGame) (*Session, error) {
	start, err := engine.ParseFEN(game.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("restore %q: %w", game.Name, err)
	}
	mode, err := config.ParseGameMode(game.Mode)
	if err != nil {
		return nil, fmt.Errorf("restore %q: %w", game.Name, err)
	}

	clockCfg := *cfg.Clock
	clockCfg.Mode = mode
	restored := *cfg
	restored.Clock = &clockCfg

	s := NewAt(&restored, provider, start)
	pos, history, outcome, err := engine.PlayUCIMoves(start, game.Moves)
	if err != nil {
		return nil, fmt.Errorf("restore %q: %w", game.Name, err)
	}
	if fen := engine.FormatFEN(&pos); game.FEN != "" && fen != game.FEN {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Input:    game.Name,
			Field:    "saved position",
			Expected: game.FEN,
			Got:      fen,
		}
	}
	if len(game.History) > 0 && !slices.Equal(game.History, []string(history)) {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Input:    game.Name,
			Field:    "saved history",
			Expected: fmt.Sprintf("%d layouts replayed from the moves", len(history)),
			Got:      fmt.Sprintf("%d layouts", len(game.History)),
		}
	}
	s.pos, s.history, s.outcome = pos, history, outcome
	s.moves = append([]string(nil), game.Moves...)

	if kind, ok := chess.ParseOutcomeKind(game.Outcome); ok && kind.IsSessionLevel() && !outcome.IsOver() {
		s.outcome = chess.Outcome{Kind: kind}
		if game.Winner == chess.White.String() {
			s.outcome.Winner = chess.White
		}
	}
	if mode != config.Standard {
		s.clock = [2]time.Duration{chess.White: game.WhiteTime, chess.Black: game.BlackTime}
	}
	cfg.Logf(config.Summary, "restored %q after %d moves", game.Name, len(game.Moves))
	return s, nil
}
