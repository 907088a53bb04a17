package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// fakeEngine answers the UCI protocol over in-memory pipes. Each "go" is
// answered with the next entry of moves; an empty entry makes the engine
// wait for "stop" and answer with stoppedMove instead.
type fakeEngine struct {
	mu       sync.Mutex
	commands []string

	moves       []string
	stoppedMove string
	searching   bool

	out *io.PipeWriter
}

func (f *fakeEngine) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		f.mu.Lock()
		f.commands = append(f.commands, line)
		f.mu.Unlock()

		switch {
		case line == "uci":
			fmt.Fprintln(f.out, "id name Fake")
			fmt.Fprintln(f.out, "uciok")
		case line == "isready":
			fmt.Fprintln(f.out, "readyok")
		case strings.HasPrefix(line, "go"):
			move := ""
			if len(f.moves) > 0 {
				move, f.moves = f.moves[0], f.moves[1:]
			}
			if move == "" {
				f.searching = true
				continue
			}
			fmt.Fprintln(f.out, "info depth 1 currmove e2e4 currmovenumber 1")
			fmt.Fprintf(f.out, "bestmove %s ponder e7e5\n", move)
		case line == "stop":
			if f.searching {
				f.searching = false
				fmt.Fprintf(f.out, "bestmove %s\n", f.stoppedMove)
			}
		case line == "quit":
			f.out.Close()
			return
		}
	}
}

func (f *fakeEngine) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func startFake(t *testing.T, cfg *config.Config, moves ...string) (*Client, *fakeEngine) {
	t.Helper()
	toEngineR, toEngineW := io.Pipe()
	fromEngineR, fromEngineW := io.Pipe()
	fake := &fakeEngine{moves: moves, stoppedMove: "a2a3", out: fromEngineW}
	go fake.run(toEngineR)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := NewClient(ctx, fromEngineR, toEngineW, cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client, fake
}

func TestClient_Handshake(t *testing.T) {
	cfg := config.NewConfigBuilder().WithElo(1500).WithVerbosity(config.Quiet).Build()
	client, fake := startFake(t, cfg)
	testutil.AssertNoError(t, client.Close())

	testutil.AssertEqual(t, fake.sent(), []string{
		"uci",
		"setoption name UCI_LimitStrength value true",
		"setoption name UCI_Elo value 1500",
		"isready",
		"ucinewgame",
		"isready",
		"quit",
	})
}

func TestClient_BestMove(t *testing.T) {
	cfg := config.NewConfigBuilder().WithMoveTime(250 * time.Millisecond).WithVerbosity(config.Quiet).Build()
	client, fake := startFake(t, cfg, "e2e4", "g8f6")

	move, err := client.BestMove(context.Background(), Request{FEN: "startfen"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, move, "e2e4")

	res := <-client.Request(context.Background(), Request{
		FEN:       "nextfen",
		Timed:     true,
		WhiteTime: 3 * time.Minute,
		BlackTime: 170 * time.Second,
		MoveTime:  time.Second,
	})
	testutil.AssertNoError(t, res.Err)
	testutil.AssertEqual(t, res.Move, "g8f6")

	sent := fake.sent()
	testutil.AssertEqual(t, sent[len(sent)-4:], []string{
		"position fen startfen",
		"go movetime 250",
		"position fen nextfen",
		"go wtime 180000 btime 170000 movetime 1000",
	})
}

func TestClient_CancelDiscardsAnswer(t *testing.T) {
	cfg := config.NewConfigBuilder().WithVerbosity(config.Quiet).Build()
	client, fake := startFake(t, cfg, "", "d2d4")

	ctx, cancel := context.WithCancel(context.Background())
	results := client.Request(ctx, Request{FEN: "first"})
	time.Sleep(20 * time.Millisecond)
	cancel()

	res := <-results
	testutil.AssertErrorIs(t, res.Err, context.Canceled)
	testutil.AssertEqual(t, res.Move, "")

	// The stale "bestmove a2a3" must not answer the next request.
	move, err := client.BestMove(context.Background(), Request{FEN: "second"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, move, "d2d4")
	testutil.AssertTrue(t, contains(fake.sent(), "stop"))
}

func TestClient_EngineExit(t *testing.T) {
	toEngineR, toEngineW := io.Pipe()
	fromEngineR, fromEngineW := io.Pipe()
	go func() {
		scanner := bufio.NewScanner(toEngineR)
		scanner.Scan()
		fromEngineW.Close()
		io.Copy(io.Discard, toEngineR)
	}()

	cfg := config.NewConfigBuilder().WithVerbosity(config.Quiet).Build()
	_, err := NewClient(context.Background(), fromEngineR, toEngineW, cfg)
	testutil.AssertErrorIs(t, err, errors.ErrEngine)
}

func TestStart_NoPath(t *testing.T) {
	_, err := Start(context.Background(), config.NewConfig())
	testutil.AssertErrorIs(t, err, errors.ErrEngine)
}

func TestParseBestMove(t *testing.T) {
	tests := []struct {
		line    string
		want    string
		wantErr bool
	}{
		{"bestmove e2e4", "e2e4", false},
		{"bestmove e7e8q ponder d1d8", "e7e8q", false},
		{"bestmove (none)", "", true},
		{"bestmove", "", true},
		{"info depth 3", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseBestMove(tt.line)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrEngine)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
