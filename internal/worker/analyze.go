package worker

import (
	"sort"

	"github.com/lgbarn/chessrules-go/internal/engine"
)

// Analyze parses the item's FEN and reports its legal moves, its verdict and,
// when Depth is positive, its perft node count. The position is judged on
// its own, with a history holding only itself.
func Analyze(item WorkItem) ProcessResult {
	result := ProcessResult{Index: item.Index, FEN: item.FEN}

	pos, err := engine.ParseFEN(item.FEN)
	if err != nil {
		result.Err = err
		return result
	}

	result.LegalMoves = engine.AllLegalMoves(&pos)
	engine.SortMoves(result.LegalMoves)
	result.Outcome = engine.Evaluate(&pos, engine.NewHistory(&pos))
	if item.Depth > 0 {
		result.Nodes = engine.Perft(&pos, item.Depth)
	}
	return result
}

// AnalyzeAll analyses every FEN with the given number of workers and
// returns the results in input order.
func AnalyzeAll(fens []string, depth, workers int) []ProcessResult {
	pool := NewPool(Analyze, WithWorkers(workers), WithBufferSize(2*workers))
	pool.Start()

	go func() {
		for i, fen := range fens {
			pool.Submit(WorkItem{Index: i, FEN: fen, Depth: depth})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(fens))
	for result := range pool.Results() {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
