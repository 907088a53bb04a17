package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// batchFromFile runs a batch over the named file, or stdin for "-".
func batchFromFile(cfg *config.Config, path string, depth int) error {
	if path == "-" {
		return runBatch(cfg, os.Stdin, depth)
	}
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return fmt.Errorf("opening batch file: %w", err)
	}
	defer file.Close()
	return runBatch(cfg, file, depth)
}

// runBatch evaluates every FEN read from r in parallel and prints one line
// per position, in input order. Invalid FENs are reported and counted.
func runBatch(cfg *config.Config, r io.Reader, depth int) error {
	fens, err := readFENs(r)
	if err != nil {
		return err
	}

	results := worker.AnalyzeAll(fens, depth, cfg.NumWorkers())

	invalid := 0
	for _, result := range results {
		if result.Err != nil {
			invalid++
			fmt.Fprintf(cfg.OutputFile, "%d\tinvalid\t%v\n", result.Index+1, result.Err)
			continue
		}
		line := fmt.Sprintf("%d\t%s\t%s\t%d legal moves", result.Index+1, result.Outcome.Result(), result.Outcome, len(result.LegalMoves))
		if depth > 0 {
			line += fmt.Sprintf("\tperft(%d) %d", depth, result.Nodes)
		}
		fmt.Fprintln(cfg.OutputFile, line)
	}

	cfg.Logf(config.Summary, "%d position(s) analysed, %d invalid.", len(results), invalid)
	if invalid > 0 {
		return fmt.Errorf("%d invalid position(s): %w", invalid, errors.ErrInvalidFEN)
	}
	return nil
}

// readFENs returns the non-blank lines of r, skipping # comments.
func readFENs(r io.Reader) ([]string, error) {
	var fens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}
	return fens, nil
}
