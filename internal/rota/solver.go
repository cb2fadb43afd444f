package rota

import (
	"context"
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

const defaultWorkers = 8

// SolveOptions configures one call to Drive. TimeBudgetMs is validated by
// Request.Validate before it reaches here.
type SolveOptions struct {
	TimeBudgetMs int
}

// BuildResult bundles everything the extractor and diagnostics stages need
// after a solve: the index, the allocated variables, the engine's answer,
// and any locks that had to be dropped during constraint construction.
type BuildResult struct {
	Index        *Index
	Variables    *Variables
	Engine       EngineResult
	DroppedLocks []Lock
}

// Drive builds the model (index -> variables -> constraints -> objective),
// configures the engine with the requested time budget, multi-worker
// parallel search, presolve, aggressive linearisation and interleaved
// search, then runs it to completion or timeout.
func Drive(ctx context.Context, req Request, engine Engine, opts SolveOptions) (BuildResult, error) {
	idx, err := BuildIndex(req)
	if err != nil {
		return BuildResult{}, fmt.Errorf("rota: failed to build index: %w", err)
	}

	vars := AllocateVariables(idx)
	dropped := BuildConstraints(idx, vars, req)
	AssembleObjective(idx, vars)
	applyHints(vars, req)

	budget := EngineBudget{
		TimeBudgetMs:      opts.TimeBudgetMs,
		Workers:           defaultWorkers,
		Presolve:          true,
		LinearizationHigh: true,
		InterleaveSearch:  true,
	}

	result, err := engine.Solve(ctx, vars.Builder, budget)
	if err != nil {
		return BuildResult{}, fmt.Errorf("rota: engine solve failed: %w", err)
	}

	return BuildResult{
		Index:        idx,
		Variables:    vars,
		Engine:       result,
		DroppedLocks: dropped,
	}, nil
}

// applyHints seeds the engine with a warm start built from the request's
// hints. Hints are never binding: a hint whose variable was pruned away
// is skipped rather than treated as an error.
func applyHints(v *Variables, req Request) {
	hint := &cpmodel.Hint{Bools: map[cpmodel.BoolVar]bool{}}
	for _, h := range req.Hints {
		x, ok := v.AssignmentVar(h.StaffID, h.Date, h.WardID, h.Slot)
		if !ok {
			continue
		}
		hint.Bools[x] = true
	}
	if len(hint.Bools) > 0 {
		v.Builder.SetHint(hint)
	}
}
