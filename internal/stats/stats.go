// Package stats summarizes the history of a registry: one row per test case,
// one duration and status column pair per run.
package stats

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/timvw/webtrace/internal/trace"
)

// Run is one persisted run of the registry.
type Run struct {
	// Label is the run directory name, e.g. TestRun-20260301-120000.
	Label  string
	Path   string
	Result *trace.Result
}

// Cell is one test case's outcome in one run.
type Cell struct {
	Duration time.Duration
	Status   trace.Status
}

// Row is the history of one test case, with one entry per run. Runs that
// did not execute the test hold nil.
type Row struct {
	Test  string
	Cells []*Cell
}

// AverageDuration averages the passed executions only, since failed ones
// often stop early. ok is false when the test never passed.
func (r Row) AverageDuration() (avg time.Duration, ok bool) {
	var sum time.Duration
	n := 0
	for _, c := range r.Cells {
		if c != nil && c.Status == trace.StatusPassed {
			sum += c.Duration
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / time.Duration(n), true
}

// PassRate is the share of executed runs that passed.
func (r Row) PassRate() float64 {
	runs, passed := 0, 0
	for _, c := range r.Cells {
		if c == nil {
			continue
		}
		runs++
		if c.Status == trace.StatusPassed {
			passed++
		}
	}
	if runs == 0 {
		return 0
	}
	return float64(passed) / float64(runs)
}

// Summary is the history table.
type Summary struct {
	Runs []Run
	Rows []Row
}

// Load reads every run artifact under root, at most parallel at a time.
// Runs are ordered oldest first.
func Load(ctx context.Context, root string, parallel int) ([]Run, error) {
	paths, err := trace.ListRuns(root)
	if err != nil {
		return nil, err
	}
	runs := make([]Run, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := trace.ReadResult(p)
			if err != nil {
				return err
			}
			runs[i] = Run{Label: filepath.Base(filepath.Dir(p)), Path: p, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load registry %s: %w", root, err)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Result.BuildStartTime.Before(runs[j].Result.BuildStartTime)
	})
	return runs, nil
}

// Summarize builds the history table. Configuration executions are left
// out; a test executed twice in one run keeps its last execution.
func Summarize(runs []Run) *Summary {
	byTest := map[string][]*Cell{}
	for i, run := range runs {
		for _, e := range run.Result.Executions {
			if e.IsConfiguration {
				continue
			}
			cells, ok := byTest[e.TestName]
			if !ok {
				cells = make([]*Cell, len(runs))
				byTest[e.TestName] = cells
			}
			cells[i] = &Cell{Duration: e.Duration(), Status: e.Status}
		}
	}

	s := &Summary{Runs: runs, Rows: make([]Row, 0, len(byTest))}
	for name, cells := range byTest {
		s.Rows = append(s.Rows, Row{Test: name, Cells: cells})
	}
	sort.Slice(s.Rows, func(i, j int) bool {
		return strings.ToLower(s.Rows[i].Test) < strings.ToLower(s.Rows[j].Test)
	})
	return s
}
