package rota

import "sort"

// CellFillEntry reports required/assigned/unmet headcount for one
// (date, ward, slot) demand cell.
type CellFillEntry struct {
	Date     Date   `json:"date"`
	WardID   string `json:"wardId"`
	Slot     string `json:"slot"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
	Unmet    int    `json:"unmet"`
}

// DateCoverage reports total required/assigned headcount for one date
// across all wards and slots.
type DateCoverage struct {
	Date     Date `json:"date"`
	Required int  `json:"required"`
	Assigned int  `json:"assigned"`
}

// StaffWeekCap reports a staff member's prorated cap and assigned minutes
// for one ISO week bin.
type StaffWeekCap struct {
	StaffID  string `json:"staffId"`
	WeekKey  string `json:"weekKey"`
	CapMin   int    `json:"capMinutes"`
	Assigned int    `json:"assignedMinutes"`
}

// FairnessStats summarises the distribution of total minutes worked
// across staff. Variance is the max-min spread, not a statistical
// variance; the field name is kept for wire compatibility.
type FairnessStats struct {
	MinMinutes  int     `json:"minMinutes"`
	MaxMinutes  int     `json:"maxMinutes"`
	MeanMinutes float64 `json:"meanMinutes"`
	Variance    float64 `json:"variance"`
}

// UnfilledCell is one entry in the top-N unmet-demand ranking.
type UnfilledCell struct {
	Date     Date   `json:"date"`
	WardID   string `json:"wardId"`
	Slot     string `json:"slot"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
	Unmet    int    `json:"unmet"`
}

// Summary is the auditor-facing diagnostics structure consumed
// downstream by reporters and tests.
type Summary struct {
	DatesHistogram map[string]int  `json:"datesHistogram"`
	CellFill       []CellFillEntry `json:"cellFill"`
	TotalRequired  int             `json:"totalRequired"`
	TotalAssigned  int             `json:"totalAssigned"`
	TotalUnmet     int             `json:"totalUnmet"`
	StaffMinutes   map[string]int  `json:"staffMinutes"`
	StaffShifts    map[string]int  `json:"staffShifts"`
	WeekCaps       []StaffWeekCap  `json:"weekCaps"`
	PerDate        []DateCoverage  `json:"perDate"`
	Fairness       FairnessStats   `json:"fairness"`
	Unfilled       []UnfilledCell  `json:"unfilled"`
}

const topUnfilledLimit = 50

// BuildSummary assembles the diagnostics bundle from the final assignment
// list, independent of the solver internals — it only needs the index
// (for requirement lookups, dates and week bins) and the request (for
// demand, staff and shift durations).
func BuildSummary(idx *Index, req Request, assignments []Assignment) Summary {
	datesHistogram := map[string]int{}
	for _, a := range assignments {
		datesHistogram[a.Date.String()]++
	}

	assignedBySkillCell := map[skillCellKey]int{}
	assignedByCell := map[cellKey]int{}
	for _, a := range assignments {
		ck := cellKey{date: a.Date, ward: a.WardID, slot: a.Slot}
		assignedByCell[ck]++
	}
	for _, a := range assignments {
		for _, staff := range req.Staff {
			if staff.ID != a.StaffID {
				continue
			}
			for _, skill := range staff.Skills {
				if _, ok := idx.Req(a.Date, a.WardID, a.Slot, skill); ok {
					assignedBySkillCell[skillCellKey{date: a.Date, ward: a.WardID, slot: a.Slot, skill: skill}]++
					break
				}
			}
		}
	}

	var cellFill []CellFillEntry
	totalRequired, totalAssigned, totalUnmet := 0, 0, 0
	var unfilled []UnfilledCell
	for _, d := range req.Demand {
		required, assigned, unmet := 0, 0, 0
		for skill, r := range d.Requirements {
			required += r
			a := assignedBySkillCell[skillCellKey{date: d.Date, ward: d.WardID, slot: d.Slot, skill: skill}]
			assigned += a
			if r > a {
				unmet += r - a
			}
		}
		cellFill = append(cellFill, CellFillEntry{
			Date: d.Date, WardID: d.WardID, Slot: d.Slot,
			Required: required, Assigned: assigned, Unmet: unmet,
		})
		totalRequired += required
		totalUnmet += unmet
		if unmet > 0 {
			unfilled = append(unfilled, UnfilledCell{
				Date: d.Date, WardID: d.WardID, Slot: d.Slot,
				Required: required, Assigned: assigned, Unmet: unmet,
			})
		}
	}
	totalAssigned = len(assignments)

	sort.Slice(unfilled, func(i, j int) bool { return unfilled[i].Unmet > unfilled[j].Unmet })
	if len(unfilled) > topUnfilledLimit {
		unfilled = unfilled[:topUnfilledLimit]
	}

	staffMinutes := map[string]int{}
	staffShifts := map[string]int{}
	durationByCode := map[string]int{}
	for _, st := range req.ShiftTypes {
		durationByCode[st.Code] = st.DurationMinutes
	}
	for _, a := range assignments {
		staffMinutes[a.StaffID] += durationByCode[a.Slot]
		staffShifts[a.StaffID]++
	}

	var weekCaps []StaffWeekCap
	for _, staff := range req.Staff {
		contractMinutes := int(staff.ContractHoursPerWeek * 60)
		assignedByWeek := map[string]int{}
		for _, a := range assignments {
			if a.StaffID != staff.ID {
				continue
			}
			weekKey := idx.weekOf[a.Date]
			assignedByWeek[weekKey] += durationByCode[a.Slot]
		}
		for weekKey, weekDates := range idx.WeekBins() {
			cap := contractMinutes * len(weekDates) / 7
			weekCaps = append(weekCaps, StaffWeekCap{
				StaffID: staff.ID, WeekKey: weekKey,
				CapMin: cap, Assigned: assignedByWeek[weekKey],
			})
		}
	}
	sort.Slice(weekCaps, func(i, j int) bool {
		if weekCaps[i].StaffID != weekCaps[j].StaffID {
			return weekCaps[i].StaffID < weekCaps[j].StaffID
		}
		return weekCaps[i].WeekKey < weekCaps[j].WeekKey
	})

	perDateRequired := map[string]int{}
	perDateAssigned := map[string]int{}
	for _, d := range req.Demand {
		perDateRequired[d.Date.String()] += d.Requirements.Total()
	}
	for ck, n := range assignedByCell {
		perDateAssigned[ck.date.String()] += n
	}
	var perDate []DateCoverage
	for _, d := range idx.Dates {
		key := d.String()
		if perDateRequired[key] == 0 && perDateAssigned[key] == 0 {
			continue
		}
		perDate = append(perDate, DateCoverage{Date: d, Required: perDateRequired[key], Assigned: perDateAssigned[key]})
	}

	var fairness FairnessStats
	if len(staffMinutes) > 0 {
		first := true
		sum := 0
		for _, m := range staffMinutes {
			sum += m
			if first {
				fairness.MinMinutes, fairness.MaxMinutes = m, m
				first = false
				continue
			}
			if m < fairness.MinMinutes {
				fairness.MinMinutes = m
			}
			if m > fairness.MaxMinutes {
				fairness.MaxMinutes = m
			}
		}
		fairness.MeanMinutes = float64(sum) / float64(len(staffMinutes))
		fairness.Variance = float64(fairness.MaxMinutes - fairness.MinMinutes)
	}

	return Summary{
		DatesHistogram: datesHistogram,
		CellFill:       cellFill,
		TotalRequired:  totalRequired,
		TotalAssigned:  totalAssigned,
		TotalUnmet:     totalUnmet,
		StaffMinutes:   staffMinutes,
		StaffShifts:    staffShifts,
		WeekCaps:       weekCaps,
		PerDate:        perDate,
		Fairness:       fairness,
		Unfilled:       unfilled,
	}
}
