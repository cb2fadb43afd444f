package rota

import "sort"

// Extract materialises the assignment list: for each x[e,d,w,s] = 1 in
// the engine's answer, emit an Assignment with the shift-type id resolved
// from the slot code. Assignments are returned in stable (staff, date,
// slot, ward) ascending order, so running extraction twice against the
// same EngineResult yields an identical list.
func Extract(idx *Index, v *Variables, result EngineResult) []Assignment {
	assignments := make([]Assignment, 0, len(v.X))
	for key, x := range v.X {
		if !result.BoolValue(x) {
			continue
		}
		st, ok := idx.ShiftByCode(key.slot)
		if !ok {
			continue
		}
		assignments = append(assignments, Assignment{
			StaffID:     key.staff,
			WardID:      key.ward,
			Date:        key.date,
			Slot:        key.slot,
			ShiftTypeID: st.ID,
		})
	}

	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.StaffID != b.StaffID {
			return a.StaffID < b.StaffID
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		return a.WardID < b.WardID
	})

	return assignments
}
