package rota

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Solve runs the full pipeline: request -> indices -> variables ->
// constraints -> objective -> solve -> extract -> metrics -> summary ->
// response. It is a pure function of (request, engine): no goroutines are
// spawned and no state outlives the call.
//
// Request.Validate is the caller's responsibility; Solve assumes a
// well-formed request.
func Solve(ctx context.Context, req Request, engine Engine) (Response, error) {
	start := time.Now()

	build, err := Drive(ctx, req, engine, SolveOptions{TimeBudgetMs: req.TimeBudgetMs})
	if err != nil {
		return Response{}, err
	}
	solveMs := time.Since(start).Milliseconds()

	notes := make([]string, 0, len(build.DroppedLocks)+1)
	for _, lock := range build.DroppedLocks {
		notes = append(notes, fmt.Sprintf(
			"lock dropped: staff=%s ward=%s date=%s slot=%s (variable pruned by ward eligibility or missing demand)",
			lock.StaffID, lock.WardID, lock.Date, lock.Slot))
	}

	var assignments []Assignment
	infeasible := false

	switch build.Engine.Status {
	case StatusOptimal, StatusFeasible:
		assignments = Extract(build.Index, build.Variables, build.Engine)
	case StatusInfeasible:
		// Reachable only via locks: the slack variables absorb every
		// other source of shortfall.
		infeasible = true
		assignments = nil
	case StatusUnknown:
		// Time-out without an incumbent.
		assignments = nil
		notes = append(notes, "time_budget_exceeded_no_incumbent")
	}

	metrics := ComputeMetrics(build.Index, req, assignments, solveMs)
	summary := BuildSummary(build.Index, req, assignments)

	return Response{
		SolutionID:  solutionID(assignments),
		Assignments: assignments,
		Metrics:     metrics,
		Diagnostics: Diagnostics{
			Infeasible: infeasible,
			Notes:      notes,
			Summary:    summary,
		},
	}, nil
}

// solutionID derives a short, stable identifier from the assignment list.
// It is a hash, not a generated id, so identical requests always yield
// the same solutionId.
func solutionID(assignments []Assignment) string {
	var b strings.Builder
	for _, a := range assignments {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%s;", a.StaffID, a.Date, a.WardID, a.Slot, a.ShiftTypeID)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}
