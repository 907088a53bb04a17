// Package uci drives an external chess engine over the Universal Chess
// Interface to obtain best moves.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

const (
	// drainTimeout bounds the wait for the stale answer after a "stop".
	drainTimeout = 2 * time.Second

	// closeTimeout bounds the wait for the engine to exit after "quit".
	closeTimeout = 2 * time.Second
)

// Request asks for the best move in a position.
type Request struct {
	FEN string

	// Remaining clock time per side, sent in timed modes.
	Timed     bool
	WhiteTime time.Duration
	BlackTime time.Duration

	// MoveTime is the thinking time for this move.
	MoveTime time.Duration
}

// GoCommand returns the "go" line for the request.
func (r Request) GoCommand() string {
	if r.Timed {
		return fmt.Sprintf("go wtime %d btime %d movetime %d",
			r.WhiteTime.Milliseconds(), r.BlackTime.Milliseconds(), r.MoveTime.Milliseconds())
	}
	return fmt.Sprintf("go movetime %d", r.MoveTime.Milliseconds())
}

// Result is the answer to a Request.
type Result struct {
	Move string // long algebraic, e.g. "e2e4"
	Err  error
}

// Client talks to one engine process. Requests are answered one at a time.
type Client struct {
	cfg *config.Config

	w   io.Writer
	wmu sync.Mutex

	lines chan string
	eof   chan struct{}
	quit  chan struct{}

	mu        sync.Mutex // serializes requests
	closeOnce sync.Once
	closeErr  error

	cmd *exec.Cmd
}

// Start launches the configured engine executable and completes the UCI
// handshake. The process is killed when ctx is done.
func Start(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.Engine.Path == "" {
		return nil, fmt.Errorf("no engine path configured: %w", errors.ErrEngine)
	}

	cmd := exec.CommandContext(ctx, cfg.Engine.Path, cfg.Engine.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdin: %w: %w", errors.ErrEngine, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdout: %w: %w", errors.ErrEngine, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stderr: %w: %w", errors.ErrEngine, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w: %w", cfg.Engine.Path, errors.ErrEngine, err)
	}

	go func() {
		r := bufio.NewScanner(stderr)
		for r.Scan() {
			cfg.Logf(config.Summary, "engine stderr: %s", r.Text())
		}
	}()

	c := newClient(stdout, stdin, cfg)
	c.cmd = cmd
	if err := c.handshake(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// NewClient completes the UCI handshake with an engine reachable through r
// and w. If w is an io.Closer it is closed by Close.
func NewClient(ctx context.Context, r io.Reader, w io.Writer, cfg *config.Config) (*Client, error) {
	c := newClient(r, w, cfg)
	if err := c.handshake(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func newClient(r io.Reader, w io.Writer, cfg *config.Config) *Client {
	c := &Client{
		cfg:   cfg,
		w:     w,
		lines: make(chan string, 64),
		eof:   make(chan struct{}),
		quit:  make(chan struct{}),
	}
	go c.readLoop(r)
	return c
}

// readLoop forwards engine output lines until the engine closes its output
// or the client is closed.
func (c *Client) readLoop(r io.Reader) {
	defer close(c.eof)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if showEngineOutput(line) {
			c.cfg.Logf(config.Chatty, "engine> %s", line)
		}
		select {
		case c.lines <- line:
		case <-c.quit:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.cfg.Logf(config.Summary, "engine output: %v", err)
	}
}

// showEngineOutput hides the per-move search progress lines.
func showEngineOutput(line string) bool {
	parts := strings.Split(line, " ")
	if len(parts) == 7 {
		if parts[0] == "info" && parts[1] == "depth" && parts[3] == "currmove" && parts[5] == "currmovenumber" {
			return false
		}
	}
	return true
}

func (c *Client) handshake(ctx context.Context) error {
	if err := c.send("uci"); err != nil {
		return err
	}
	if _, err := c.waitFor(ctx, "uciok"); err != nil {
		return err
	}
	if c.cfg.Engine.LimitStrength() {
		if err := c.send("setoption name UCI_LimitStrength value true"); err != nil {
			return err
		}
		if err := c.send(fmt.Sprintf("setoption name UCI_Elo value %d", c.cfg.Engine.Elo)); err != nil {
			return err
		}
	}
	if err := c.waitReady(ctx); err != nil {
		return err
	}
	if err := c.send("ucinewgame"); err != nil {
		return err
	}
	return c.waitReady(ctx)
}

func (c *Client) waitReady(ctx context.Context) error {
	if err := c.send("isready"); err != nil {
		return err
	}
	_, err := c.waitFor(ctx, "readyok")
	return err
}

// send writes one command line to the engine.
func (c *Client) send(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	c.cfg.Logf(config.Chatty, "engine< %s", line)
	if _, err := fmt.Fprintf(c.w, "%s\n", line); err != nil {
		return fmt.Errorf("sending %q: %w: %w", line, errors.ErrEngine, err)
	}
	return nil
}

// waitFor returns the first line whose first word is token.
func (c *Client) waitFor(ctx context.Context, token string) (string, error) {
	for {
		select {
		case line := <-c.lines:
			if fields := strings.Fields(line); len(fields) > 0 && fields[0] == token {
				return line, nil
			}
		case <-c.eof:
			// Output read before the exit is still buffered.
			for {
				select {
				case line := <-c.lines:
					if fields := strings.Fields(line); len(fields) > 0 && fields[0] == token {
						return line, nil
					}
					continue
				default:
				}
				break
			}
			return "", fmt.Errorf("engine exited while waiting for %s: %w", token, errors.ErrEngine)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Request asks the engine for a move. The result is delivered on the
// returned channel, which is closed afterwards. If ctx is done first the
// search is stopped, its answer discarded, and the result carries ctx's
// error.
func (c *Client) Request(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		c.mu.Lock()
		defer c.mu.Unlock()
		move, err := c.bestMove(ctx, req)
		out <- Result{Move: move, Err: err}
	}()
	return out
}

// BestMove is the blocking form of Request.
func (c *Client) BestMove(ctx context.Context, req Request) (string, error) {
	res := <-c.Request(ctx, req)
	return res.Move, res.Err
}

func (c *Client) bestMove(ctx context.Context, req Request) (string, error) {
	if req.MoveTime <= 0 {
		req.MoveTime = c.cfg.Engine.MoveTime
	}
	if err := c.send("position fen " + req.FEN); err != nil {
		return "", err
	}
	if err := c.send(req.GoCommand()); err != nil {
		return "", err
	}

	line, err := c.waitFor(ctx, "bestmove")
	if err != nil {
		if ctx.Err() != nil {
			c.drain()
		}
		return "", err
	}
	return ParseBestMove(line)
}

// drain stops a running search and swallows its answer so the next request
// does not read it.
func (c *Client) drain() {
	if err := c.send("stop"); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if _, err := c.waitFor(ctx, "bestmove"); err != nil {
		c.cfg.Logf(config.Summary, "engine did not answer stop: %v", err)
	}
}

// ParseBestMove extracts the move from a "bestmove" line.
func ParseBestMove(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "bestmove" {
		return "", fmt.Errorf("malformed answer %q: %w", line, errors.ErrEngine)
	}
	move := fields[1]
	if move == "(none)" || move == "0000" {
		return "", fmt.Errorf("engine has no move: %w", errors.ErrEngine)
	}
	return move, nil
}

// Close asks the engine to quit and releases the client. It is safe to call
// more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		_ = c.send("quit")
		if closer, ok := c.w.(io.Closer); ok {
			_ = closer.Close()
		}

		select {
		case <-c.eof:
		case <-time.After(closeTimeout):
		}
		close(c.quit)

		if c.cmd == nil {
			return
		}
		done := make(chan error, 1)
		go func() { done <- c.cmd.Wait() }()
		select {
		case err := <-done:
			if err != nil {
				c.closeErr = fmt.Errorf("engine exit: %w: %w", errors.ErrEngine, err)
			}
		case <-time.After(closeTimeout):
			_ = c.cmd.Process.Kill()
			<-done
		}
	})
	return c.closeErr
}
