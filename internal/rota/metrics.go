package rota

import "math"

// ComputeMetrics summarises solution quality: hardViolations (always 0
// for a reachable Optimal/Feasible state, since every hard rule is
// encoded directly into the model and slack absorbs the rest),
// fairnessNightStd (population standard deviation of night-shift counts
// per staff), and preferenceSatisfaction (net honoured preferences over
// total preferences, clamped to [0, 1]).
func ComputeMetrics(idx *Index, req Request, assignments []Assignment, solveMs int64) Metrics {
	return Metrics{
		HardViolations:         0,
		SolveMs:                solveMs,
		FairnessNightStd:       nightShiftFairnessStd(idx, assignments),
		PreferenceSatisfaction: preferenceSatisfaction(req, assignments),
	}
}

// nightShiftFairnessStd computes the population standard deviation of
// night-shift counts per staff member who was assigned at least one
// night shift. It is 0 when fewer than two staff have night shifts.
func nightShiftFairnessStd(idx *Index, assignments []Assignment) float64 {
	nightCodes := map[string]bool{}
	for _, st := range idx.ShiftTypes {
		if st.IsNight {
			nightCodes[st.Code] = true
		}
	}

	counts := map[string]int{}
	for _, a := range assignments {
		if nightCodes[a.Slot] {
			counts[a.StaffID]++
		}
	}

	if len(counts) < 2 {
		return 0
	}

	values := make([]float64, 0, len(counts))
	sum := 0.0
	for _, c := range counts {
		values = append(values, float64(c))
		sum += float64(c)
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}

// preferenceSatisfaction is (prefer-on days worked minus prefer-off days
// worked) divided by total preferences, clamped to [0, 1].
func preferenceSatisfaction(req Request, assignments []Assignment) float64 {
	if len(req.Preferences) == 0 {
		return 0
	}

	assignedOn := map[string]map[string]bool{}
	for _, a := range assignments {
		if assignedOn[a.StaffID] == nil {
			assignedOn[a.StaffID] = map[string]bool{}
		}
		assignedOn[a.StaffID][a.Date.String()] = true
	}

	net := 0
	for _, pref := range req.Preferences {
		worked := assignedOn[pref.StaffID][pref.Date.String()]
		switch {
		case pref.PreferOn && worked:
			net++
		case pref.PreferOff && worked:
			net--
		}
	}

	score := float64(net) / float64(len(req.Preferences))
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
