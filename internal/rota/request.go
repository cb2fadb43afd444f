package rota

import (
	"encoding/json"
	"fmt"
)

// Objective selects between the two accepted objective modes. Both
// currently produce identical behaviour; the enum is preserved at the
// boundary as a forward-compatible extension point.
type Objective string

const (
	// MinSoftPenalties minimises the layered penalty objective (default).
	MinSoftPenalties Objective = "min_soft_penalties"
	// MinTotalAssignments is accepted but currently behaves identically.
	MinTotalAssignments Objective = "min_total_assignments"
)

// UnmarshalJSON validates the objective against the known enumeration
// without silently coercing unknown values.
func (o *Objective) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Objective(s) {
	case MinSoftPenalties, MinTotalAssignments:
		*o = Objective(s)
		return nil
	default:
		return fmt.Errorf("rota: unknown objective %q", s)
	}
}

// MinTimeBudgetMs and MaxTimeBudgetMs bound the accepted solve time budget.
const (
	MinTimeBudgetMs = 10_000
	MaxTimeBudgetMs = 600_000
)

// Request is the full problem instance submitted to the core.
type Request struct {
	Horizon      Horizon      `json:"horizon"`
	Wards        []Ward       `json:"wards"`
	ShiftTypes   []ShiftType  `json:"shiftTypes"`
	Staff        []Staff      `json:"staff"`
	Demand       []Demand     `json:"demand"`
	Rules        Rules        `json:"rules"`
	Locks        []Lock       `json:"locks,omitempty"`
	Preferences  []Preference `json:"preferences,omitempty"`
	Hints        []Hint       `json:"hints,omitempty"`
	Objective    Objective    `json:"objective"`
	TimeBudgetMs int          `json:"timeBudgetMs"`
}

// Validate performs the boundary-level schema checks. It is the caller's
// responsibility to invoke this before Solve; the pipeline itself assumes
// a well-formed request.
func (r Request) Validate() error {
	if r.TimeBudgetMs < MinTimeBudgetMs || r.TimeBudgetMs > MaxTimeBudgetMs {
		return fmt.Errorf("rota: timeBudgetMs %d out of range [%d, %d]", r.TimeBudgetMs, MinTimeBudgetMs, MaxTimeBudgetMs)
	}
	if r.Horizon.End.Before(r.Horizon.Start) {
		return fmt.Errorf("rota: horizon end %s precedes start %s", r.Horizon.End, r.Horizon.Start)
	}
	seen := map[cellKey]bool{}
	for _, d := range r.Demand {
		key := cellKey{date: d.Date, ward: d.WardID, slot: d.Slot}
		if seen[key] {
			return fmt.Errorf("rota: duplicate demand cell (%s, %s, %s)", d.Date, d.WardID, d.Slot)
		}
		seen[key] = true
	}
	ids := map[string]bool{}
	for _, s := range r.Staff {
		if ids[s.ID] {
			return fmt.Errorf("rota: duplicate staff id %q", s.ID)
		}
		ids[s.ID] = true
	}
	return nil
}

// Metrics summarises solution quality.
type Metrics struct {
	HardViolations         int     `json:"hardViolations"`
	SolveMs                int64   `json:"solveMs"`
	FairnessNightStd       float64 `json:"fairnessNightStd"`
	PreferenceSatisfaction float64 `json:"preferenceSatisfaction"`
}

// Diagnostics is the auditor-facing diagnostics bundle.
type Diagnostics struct {
	Infeasible bool     `json:"infeasible"`
	Notes      []string `json:"notes"`
	Summary    Summary  `json:"summary"`
}

// Response is the full solve result returned to the caller.
type Response struct {
	SolutionID  string       `json:"solutionId"`
	Assignments []Assignment `json:"assignments"`
	Metrics     Metrics      `json:"metrics"`
	Diagnostics Diagnostics  `json:"diagnostics"`
}
