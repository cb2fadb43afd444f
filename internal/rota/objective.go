package rota

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Objective weights. Per unit, utilisation gain outweighs an unmet-demand
// penalty, which outweighs the fairness range; the gap between tiers is
// wide enough that no feasible marginal change in a lower tier can trade
// against a higher one.
const (
	weightUnmetDemand     = 100_000
	weightFairnessRange   = 100
	weightUtilisationGain = 1_000_000
)

// AssembleObjective builds the single linear objective to minimise:
// weighted unmet-demand slack, minus a reward for every staff minute
// worked, plus the range between the busiest and idlest staff member.
func AssembleObjective(idx *Index, v *Variables) {
	staffIDs, staffMinutes := staffMinutesVars(idx, v)

	objective := cpmodel.NewLinearExpr()

	for _, uKey := range v.UKeys {
		objective.AddTerm(v.U[uKey], weightUnmetDemand)
	}

	if len(staffIDs) > 0 {
		totalMinutes := cpmodel.NewLinearExpr()
		for _, id := range staffIDs {
			totalMinutes.AddTerm(staffMinutes[id], 1)
		}
		objective.AddTerm(totalMinutes, -weightUtilisationGain)
	}

	if len(staffIDs) >= 2 {
		fairnessRange := fairnessRangeVar(v, staffIDs, staffMinutes)
		objective.AddTerm(fairnessRange, weightFairnessRange)
	}

	v.Builder.Minimize(objective)
}

// staffMinutesVars creates, for every staff member with at least one
// allocated assignment variable, an integer variable equal to their total
// worked minutes: staff_minutes(e) = sum_{d,w,s} duration(s) * x[e,d,w,s].
// The returned id slice preserves roster order.
func staffMinutesVars(idx *Index, v *Variables) ([]string, map[string]cpmodel.IntVar) {
	ids := make([]string, 0, len(idx.Staff))
	out := make(map[string]cpmodel.IntVar, len(idx.Staff))
	for _, staff := range idx.Staff {
		expr := cpmodel.NewLinearExpr()
		any := false
		upperBound := int64(0)
		for _, d := range idx.Dates {
			for _, ward := range idx.Wards {
				for _, st := range idx.ShiftTypes {
					x, ok := v.AssignmentVar(staff.ID, d, ward.ID, st.Code)
					if !ok {
						continue
					}
					expr.AddTerm(x, int64(st.DurationMinutes))
					upperBound += int64(st.DurationMinutes)
					any = true
				}
			}
		}
		if !any {
			continue
		}
		minutesVar := v.Builder.NewIntVar(0, upperBound).WithName("minutes_" + staff.ID)
		v.Builder.AddEquality(expr, minutesVar)
		ids = append(ids, staff.ID)
		out[staff.ID] = minutesVar
	}
	return ids, out
}

// fairnessRangeVar returns an integer variable equal to
// max(staff_minutes) - min(staff_minutes) across all staff with at least
// one allocated assignment variable. The intermediate domains are valid
// but deliberately loose; the solver only needs a superset of the true
// range.
func fairnessRangeVar(v *Variables, staffIDs []string, staffMinutes map[string]cpmodel.IntVar) cpmodel.IntVar {
	sorted := append([]string(nil), staffIDs...)
	sort.Strings(sorted)
	args := make([]cpmodel.LinearArgument, len(sorted))
	for i, id := range sorted {
		args[i] = staffMinutes[id]
	}

	const bound = int64(1) << 30
	maxVar := v.Builder.NewIntVar(0, bound).WithName("max_minutes")
	minVar := v.Builder.NewIntVar(0, bound).WithName("min_minutes")
	v.Builder.AddMaxEquality(maxVar, args...)
	v.Builder.AddMinEquality(minVar, args...)

	rangeExpr := cpmodel.NewLinearExpr()
	rangeExpr.AddTerm(maxVar, 1)
	rangeExpr.AddTerm(minVar, -1)

	rangeVar := v.Builder.NewIntVar(0, bound).WithName("fairness_range")
	v.Builder.AddEquality(rangeExpr, rangeVar)
	return rangeVar
}
