package rota

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// BuildConstraints emits the hard feasibility rules against the allocated
// Variables: skill channelling, per-cell coverage with slack, one shift
// per day, rest adjacency, weekly prorated minute caps, and locks. It
// returns the locks that could not be applied because their variable was
// pruned away (ward ineligible or no demand cell); the solve does not
// fail on those, the conflict is surfaced as a diagnostic instead.
//
// All iteration below follows the insertion-ordered key slices on
// Variables, never raw map order, so the emitted model is identical for
// identical requests.
func BuildConstraints(idx *Index, v *Variables, req Request) (droppedLocks []Lock) {
	addFeasibilityLinks(v)
	addCoverageWithSlack(idx, v)
	addOneShiftPerDay(v)
	addRestConstraints(idx, v)
	addWeeklyContractCaps(idx, v)
	droppedLocks = addLocks(v, req)
	return droppedLocks
}

// addFeasibilityLinks channels each assignment variable to its per-skill
// sub-variables: for every x[e,d,w,s], sum_k y[e,d,w,s,k] = x. A person
// contributes at most one skill per shift, and only if assigned; an
// assigned person always contributes one, so a person without any of the
// cell's required skills is never assigned and a cell never holds more
// assignments than its required headcount.
func addFeasibilityLinks(v *Variables) {
	byAssignment := map[assignmentKey][]cpmodel.BoolVar{}
	for _, key := range v.YKeys {
		ak := assignmentKey{staff: key.staff, date: key.date, ward: key.ward, slot: key.slot}
		byAssignment[ak] = append(byAssignment[ak], v.Y[key])
	}
	for _, ak := range v.XKeys {
		expr := cpmodel.NewLinearExpr()
		for _, y := range byAssignment[ak] {
			expr.Add(y)
		}
		v.Builder.AddEquality(expr, v.X[ak])
	}
}

// addCoverageWithSlack enforces, for every (d,w,s,k) with a required
// headcount r > 0, sum_{eligible e} y[e,d,w,s,k] + u[d,w,s,k] = r. If no
// eligible staff exist for the cell, the absence of any y term pins u to
// r: all of that demand goes unmet rather than the model going
// infeasible.
func addCoverageWithSlack(idx *Index, v *Variables) {
	byCell := map[skillCellKey][]cpmodel.BoolVar{}
	for _, key := range v.YKeys {
		ck := skillCellKey{date: key.date, ward: key.ward, slot: key.slot, skill: key.skill}
		byCell[ck] = append(byCell[ck], v.Y[key])
	}
	for _, ck := range v.UKeys {
		required, _ := idx.Req(ck.date, ck.ward, ck.slot, ck.skill)
		expr := cpmodel.NewLinearExpr()
		for _, y := range byCell[ck] {
			expr.Add(y)
		}
		expr.Add(v.U[ck])
		v.Builder.AddEquality(expr, cpmodel.NewConstant(int64(required)))
	}
}

// addOneShiftPerDay caps each (staff, date) pair at a single assignment
// across all wards and slots.
func addOneShiftPerDay(v *Variables) {
	byDay := map[dayKey][]cpmodel.BoolVar{}
	var dayOrder []dayKey
	for _, key := range v.XKeys {
		dk := dayKey{staff: key.staff, date: key.date}
		if byDay[dk] == nil {
			dayOrder = append(dayOrder, dk)
		}
		byDay[dk] = append(byDay[dk], v.X[key])
	}
	for _, dk := range dayOrder {
		vars := byDay[dk]
		if len(vars) < 2 {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for _, x := range vars {
			expr.Add(x)
		}
		v.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(1))
	}
}

// addRestConstraints emits same-day overlap and cross-day forbidden
// adjacency cuts, both as pairwise "at most one of the two" inequalities.
func addRestConstraints(idx *Index, v *Variables) {
	byStaffDate := map[dayKey][]assignmentKey{}
	for _, key := range v.XKeys {
		dk := dayKey{staff: key.staff, date: key.date}
		byStaffDate[dk] = append(byStaffDate[dk], key)
	}

	// Same-day overlap: two assignments for the same staff member on the
	// same day whose shift windows intersect cannot both hold. Identical
	// slots are already covered by the one-shift-per-day cap; overlap also
	// catches distinct slots scheduled at the same time in different
	// wards.
	for _, staff := range idx.Staff {
		for _, d := range idx.Dates {
			keys := byStaffDate[dayKey{staff: staff.ID, date: d}]
			for i := range keys {
				for j := i + 1; j < len(keys); j++ {
					k1, k2 := keys[i], keys[j]
					if k1.slot == k2.slot {
						continue
					}
					if !idx.Overlaps(k1.slot, k2.slot) {
						continue
					}
					addAtMostOnePair(v, k1, k2)
				}
			}
		}
	}

	// Cross-day forbidden adjacency: shift s1 on day d then shift s2 on
	// day d+1 with less than the minimum rest between them.
	for i := 0; i+1 < len(idx.Dates); i++ {
		d1, d2 := idx.Dates[i], idx.Dates[i+1]
		for _, staff := range idx.Staff {
			keys1 := byStaffDate[dayKey{staff: staff.ID, date: d1}]
			keys2 := byStaffDate[dayKey{staff: staff.ID, date: d2}]
			for _, k1 := range keys1 {
				for _, k2 := range keys2 {
					if !idx.Forbidden(k1.slot, k2.slot) {
						continue
					}
					addAtMostOnePair(v, k1, k2)
				}
			}
		}
	}
}

func addAtMostOnePair(v *Variables, k1, k2 assignmentKey) {
	expr := cpmodel.NewLinearExpr()
	expr.Add(v.X[k1])
	expr.Add(v.X[k2])
	v.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(1))
}

// addWeeklyContractCaps bounds each staff member's minutes per ISO week
// bin at floor(contract_minutes * |bin dates| / 7), prorating partial
// weeks at the horizon edges.
func addWeeklyContractCaps(idx *Index, v *Variables) {
	weekKeys := make([]string, 0, len(idx.WeekBins()))
	for key := range idx.WeekBins() {
		weekKeys = append(weekKeys, key)
	}
	sort.Strings(weekKeys)

	for _, staff := range idx.Staff {
		contractMinutes := int64(staff.ContractHoursPerWeek * 60)
		for _, weekKey := range weekKeys {
			weekDates := idx.WeekBins()[weekKey]
			cap := contractMinutes * int64(len(weekDates)) / 7

			expr := cpmodel.NewLinearExpr()
			any := false
			for _, d := range weekDates {
				for _, ward := range idx.Wards {
					for _, st := range idx.ShiftTypes {
						x, ok := v.AssignmentVar(staff.ID, d, ward.ID, st.Code)
						if !ok {
							continue
						}
						expr.AddTerm(x, int64(st.DurationMinutes))
						any = true
					}
				}
			}
			if any {
				v.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(cap))
			}
		}
	}
}

// addLocks pins x[e,w,d,s] = 1 for every lock in the request. A lock
// whose variable does not exist (ward ineligibility or no demand cell) is
// reported back to the caller instead of failing the solve.
func addLocks(v *Variables, req Request) (dropped []Lock) {
	for _, lock := range req.Locks {
		x, ok := v.AssignmentVar(lock.StaffID, lock.Date, lock.WardID, lock.Slot)
		if !ok {
			dropped = append(dropped, lock)
			continue
		}
		v.Builder.AddEquality(x, cpmodel.NewConstant(1))
	}
	return dropped
}
