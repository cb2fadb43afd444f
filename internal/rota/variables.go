package rota

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Variables is the sparse decision-variable space: a flat mapping from
// composite key to variable handle, pruned to demand cells, ward
// eligibility and skill possession. The full (staff x date x ward x slot
// x skill) tensor is never materialised; variables outside the pruned set
// are fixed at 0 by construction (they simply don't exist).
//
// The key slices record insertion order so that constraint and objective
// emission can walk the variables deterministically: identical requests
// must produce identical models, and Go map iteration order would break
// that.
type Variables struct {
	Builder *cpmodel.Builder

	// X[e,d,w,s]: 1 iff staff e works ward w on date d in slot s.
	X     map[assignmentKey]cpmodel.BoolVar
	XKeys []assignmentKey
	// Y[e,d,w,s,k]: 1 iff staff e contributes skill k in that cell.
	Y     map[skillAssignmentKey]cpmodel.BoolVar
	YKeys []skillAssignmentKey
	// U[d,w,s,k]: unmet-demand slack, bounded by the cell's requirement.
	U     map[skillCellKey]cpmodel.IntVar
	UKeys []skillCellKey
}

// AllocateVariables creates the three decision-variable families: x only
// where the cell has demand and the staff member is ward-eligible; y only
// where the corresponding x exists and the staff member possesses a skill
// the cell actually requires; u bounded by the cell's required headcount
// for that skill. Pruning here is the single biggest tractability lever.
func AllocateVariables(idx *Index) *Variables {
	builder := cpmodel.NewCpModelBuilder()
	v := &Variables{
		Builder: builder,
		X:       make(map[assignmentKey]cpmodel.BoolVar),
		Y:       make(map[skillAssignmentKey]cpmodel.BoolVar),
		U:       make(map[skillCellKey]cpmodel.IntVar),
	}

	for _, staff := range idx.Staff {
		for _, d := range idx.Dates {
			for _, ward := range idx.Wards {
				if !staff.EligibleFor(ward.ID) {
					continue
				}
				for _, st := range idx.ShiftTypes {
					if !idx.HasDemand(d, ward.ID, st.Code) {
						continue
					}
					xKey := assignmentKey{staff: staff.ID, date: d, ward: ward.ID, slot: st.Code}
					v.X[xKey] = builder.NewBoolVar().WithName(
						fmt.Sprintf("x_%s_%s_%s_%s", staff.ID, d, ward.ID, st.Code))
					v.XKeys = append(v.XKeys, xKey)

					for _, skill := range staff.Skills {
						if _, required := idx.Req(d, ward.ID, st.Code, skill); !required {
							continue
						}
						yKey := skillAssignmentKey{staff: staff.ID, date: d, ward: ward.ID, slot: st.Code, skill: skill}
						v.Y[yKey] = builder.NewBoolVar().WithName(
							fmt.Sprintf("y_%s_%s_%s_%s_%s", staff.ID, d, ward.ID, st.Code, skill))
						v.YKeys = append(v.YKeys, yKey)
					}
				}
			}
		}
	}

	for _, d := range idx.Dates {
		for _, ward := range idx.Wards {
			for _, st := range idx.ShiftTypes {
				for _, skill := range idx.Skills {
					required, ok := idx.Req(d, ward.ID, st.Code, skill)
					if !ok {
						continue
					}
					uKey := skillCellKey{date: d, ward: ward.ID, slot: st.Code, skill: skill}
					v.U[uKey] = builder.NewIntVar(0, int64(required)).WithName(
						fmt.Sprintf("u_%s_%s_%s_%s", d, ward.ID, st.Code, skill))
					v.UKeys = append(v.UKeys, uKey)
				}
			}
		}
	}

	return v
}

// AssignmentVar looks up the x variable for (staff, date, ward, slot), if
// it was allocated.
func (v *Variables) AssignmentVar(staff string, d Date, ward, slot string) (cpmodel.BoolVar, bool) {
	x, ok := v.X[assignmentKey{staff: staff, date: d, ward: ward, slot: slot}]
	return x, ok
}
