// Package pipeline runs batches of submission forms through a planner and
// summarizes the outcome.
package pipeline

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/planner"
	"github.com/theirongolddev/payplan/internal/source"

	"golang.org/x/sync/errgroup"
)

// Evaluator validates and records submissions. *planner.Planner satisfies it.
type Evaluator interface {
	Evaluate(f intake.Form) (planner.Evaluation, error)
	Commit(ctx context.Context, ev planner.Evaluation) planner.Result
}

// Item is the outcome of one batch line.
type Item struct {
	Path   string
	Line   int
	Result *planner.Result // nil when rejected
	Err    error
}

// BatchResult holds the output of a batch run.
type BatchResult struct {
	Items       []Item
	TotalFiles  int
	ParsedFiles int
	FileErrors  int
	ParseErrors int
}

// ProgressFunc is called while forms are evaluated.
// current is the number of forms evaluated so far, total is the total count.
type ProgressFunc func(current, total int)

// Run parses every file and evaluates the forms on a bounded worker pool,
// then commits the accepted ones one at a time in file and line order, so
// records from one batch keep their input order in the log. A cancelled
// context stops the commit loop; items already committed are returned along
// with ctx.Err().
func Run(ctx context.Context, ev Evaluator, files []source.DiscoveredFile, progressFn ProgressFunc) (*BatchResult, error) {
	result := &BatchResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	parsed := make([]source.ParseResult, len(files))
	forEach(len(files), func(i int) {
		parsed[i] = source.ParseFile(files[i])
	})

	var entries []source.Entry
	for _, pr := range parsed {
		if pr.Err != nil {
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors
		entries = append(entries, pr.Entries...)
	}
	if len(entries) == 0 {
		return result, nil
	}

	type outcome struct {
		ev  planner.Evaluation
		err error
	}
	outcomes := make([]outcome, len(entries))
	var processed atomic.Int64
	forEach(len(entries), func(i int) {
		e, err := ev.Evaluate(entries[i].Form)
		outcomes[i] = outcome{ev: e, err: err}
		n := processed.Add(1)
		if progressFn != nil {
			progressFn(int(n), len(entries))
		}
	})

	result.Items = make([]Item, 0, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		item := Item{Path: e.Path, Line: e.Line, Err: outcomes[i].err}
		if item.Err == nil {
			res := ev.Commit(ctx, outcomes[i].ev)
			item.Result = &res
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

// forEach calls fn for every index in [0, n) with at most GOMAXPROCS calls
// in flight.
func forEach(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(max(runtime.GOMAXPROCS(0), 1))
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
