package rota

import (
	"context"
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// Engine is the narrow capability the model builder depends on: solving a
// 0/1 integer program with linear constraints under a wall-clock time
// budget. A different CP-SAT binding, or a test double, can be substituted
// by implementing this interface.
type Engine interface {
	Solve(ctx context.Context, builder *cpmodel.Builder, budget EngineBudget) (EngineResult, error)
}

// EngineBudget configures one solve call.
type EngineBudget struct {
	TimeBudgetMs      int
	Workers           int32
	Presolve          bool
	LinearizationHigh bool
	InterleaveSearch  bool
}

// EngineStatus classifies the engine's returned state.
type EngineStatus int

const (
	StatusUnknown EngineStatus = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

// EngineResult is the engine's answer: a status plus read access to the
// chosen variable values. It intentionally does not expose the underlying
// protobuf response type, so callers only ever depend on this package's
// Engine interface.
type EngineResult struct {
	Status         EngineStatus
	ObjectiveValue float64
	boolValue      func(cpmodel.BoolVar) bool
	intValue       func(cpmodel.IntVar) int64
}

// BoolValue reports the solved value of a Boolean decision variable. It
// panics if called on a zero-value EngineResult (a programming error, not
// a runtime condition callers need to recover from).
func (r EngineResult) BoolValue(v cpmodel.BoolVar) bool {
	return r.boolValue(v)
}

// IntValue reports the solved value of an integer decision variable.
func (r EngineResult) IntValue(v cpmodel.IntVar) int64 {
	return r.intValue(v)
}

// CPSATEngine is the shipped Engine implementation: an adapter over
// google/or-tools's official Go CP-SAT bindings.
type CPSATEngine struct{}

// NewCPSATEngine constructs the default engine adapter.
func NewCPSATEngine() *CPSATEngine { return &CPSATEngine{} }

// Solve builds the final model proto, configures search parameters from
// budget, and runs CP-SAT to completion or timeout.
func (e *CPSATEngine) Solve(ctx context.Context, builder *cpmodel.Builder, budget EngineBudget) (EngineResult, error) {
	if err := ctx.Err(); err != nil {
		return EngineResult{}, err
	}

	model, err := builder.Model()
	if err != nil {
		return EngineResult{}, fmt.Errorf("rota: failed to build CP-SAT model: %w", err)
	}

	linearization := int32(0)
	if budget.LinearizationHigh {
		linearization = 2
	}
	params := &sppb.SatParameters{
		MaxTimeInSeconds:   proto.Float64(float64(budget.TimeBudgetMs) / 1000.0),
		NumSearchWorkers:   proto.Int32(budget.Workers),
		CpModelPresolve:    proto.Bool(budget.Presolve),
		LinearizationLevel: proto.Int32(linearization),
		InterleaveSearch:   proto.Bool(budget.InterleaveSearch),
	}

	response, err := cpmodel.SolveCpModelWithParameters(model, params)
	if err != nil {
		return EngineResult{}, fmt.Errorf("rota: CP-SAT solve failed: %w", err)
	}

	return EngineResult{
		Status:         classifyStatus(response.GetStatus().String()),
		ObjectiveValue: response.GetObjectiveValue(),
		boolValue: func(v cpmodel.BoolVar) bool {
			return cpmodel.SolutionBooleanValue(response, v)
		},
		intValue: func(v cpmodel.IntVar) int64 {
			return cpmodel.SolutionIntegerValue(response, v)
		},
	}, nil
}

// classifyStatus maps the CP-SAT solver status to the four states the
// caller distinguishes: Optimal, Feasible, Infeasible, Unknown.
func classifyStatus(status string) EngineStatus {
	switch status {
	case "OPTIMAL":
		return StatusOptimal
	case "FEASIBLE":
		return StatusFeasible
	case "INFEASIBLE":
		return StatusInfeasible
	default:
		return StatusUnknown
	}
}
