package rota

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Index holds the dense lookups derived once from a Request: the ordered
// date list, demand-cell membership, per-skill requirement counts, ISO
// week bins, and the forbidden-adjacency / same-day-overlap matrices for
// shift-type pairs. All lookups are O(1) after construction.
type Index struct {
	Dates      []Date
	Wards      []Ward
	ShiftTypes []ShiftType
	Staff      []Staff
	Skills     []string

	shiftByCode map[string]ShiftType
	shiftByID   map[string]ShiftType

	hasDemand map[cellKey]bool
	req       map[skillCellKey]int

	weekBins map[string][]Date
	weekOf   map[Date]string

	// forbidden[s1][s2] is true iff a shift coded s1 on day d followed by a
	// shift coded s2 on day d+1 leaves strictly less than minRestHours of
	// clock time between them.
	forbidden map[[2]string]bool
	// overlap[s1][s2] is true iff shifts coded s1 and s2, placed on the
	// same day, intersect in non-zero measure.
	overlap map[[2]string]bool
}

// BuildIndex computes the Index for a request. It runs in time linear in
// |dates| x |wards| x |shiftTypes| x |skills|.
func BuildIndex(req Request) (*Index, error) {
	idx := &Index{
		Dates:       req.Horizon.Dates(),
		Wards:       req.Wards,
		ShiftTypes:  req.ShiftTypes,
		Staff:       req.Staff,
		shiftByCode: make(map[string]ShiftType, len(req.ShiftTypes)),
		shiftByID:   make(map[string]ShiftType, len(req.ShiftTypes)),
		hasDemand:   make(map[cellKey]bool, len(req.Demand)),
		req:         make(map[skillCellKey]int),
		weekBins:    make(map[string][]Date),
		weekOf:      make(map[Date]string, len(req.Horizon.Dates())),
		forbidden:   make(map[[2]string]bool),
		overlap:     make(map[[2]string]bool),
	}

	for _, st := range req.ShiftTypes {
		if _, dup := idx.shiftByCode[st.Code]; dup {
			return nil, fmt.Errorf("rota: duplicate shift-type code %q", st.Code)
		}
		idx.shiftByCode[st.Code] = st
		idx.shiftByID[st.ID] = st
	}

	skillSet := map[string]bool{}
	for _, d := range req.Demand {
		key := cellKey{date: d.Date, ward: d.WardID, slot: d.Slot}
		idx.hasDemand[key] = true
		for skill, count := range d.Requirements {
			idx.req[skillCellKey{date: d.Date, ward: d.WardID, slot: d.Slot, skill: skill}] = count
			skillSet[skill] = true
		}
	}
	idx.Skills = make([]string, 0, len(skillSet))
	for s := range skillSet {
		idx.Skills = append(idx.Skills, s)
	}
	sort.Strings(idx.Skills)

	for _, d := range idx.Dates {
		key := d.WeekKey()
		idx.weekBins[key] = append(idx.weekBins[key], d)
		idx.weekOf[d] = key
	}

	for _, s1 := range req.ShiftTypes {
		for _, s2 := range req.ShiftTypes {
			idx.forbidden[[2]string{s1.Code, s2.Code}] = insufficientRest(s1, s2, req.Rules.MinRestHours)
			if s1.Code != s2.Code {
				idx.overlap[[2]string{s1.Code, s2.Code}] = shiftsOverlapSameDay(s1, s2)
			}
		}
	}

	return idx, nil
}

// HasDemand reports whether (date, ward, slot) is a demand cell.
func (idx *Index) HasDemand(d Date, ward, slot string) bool {
	return idx.hasDemand[cellKey{date: d, ward: ward, slot: slot}]
}

// Req returns the required headcount for (date, ward, slot, skill), and
// whether that cell/skill combination appears in the request at all.
func (idx *Index) Req(d Date, ward, slot, skill string) (int, bool) {
	n, ok := idx.req[skillCellKey{date: d, ward: ward, slot: slot, skill: skill}]
	return n, ok
}

// SkillRequirements returns the skills required in a demand cell.
func (idx *Index) SkillRequirements(d Date, ward, slot string) map[string]int {
	out := map[string]int{}
	for _, skill := range idx.Skills {
		if n, ok := idx.Req(d, ward, slot, skill); ok {
			out[skill] = n
		}
	}
	return out
}

// ShiftByCode resolves a slot code to its shift type.
func (idx *Index) ShiftByCode(code string) (ShiftType, bool) {
	st, ok := idx.shiftByCode[code]
	return st, ok
}

// WeekBins returns the ISO-week -> member-dates map.
func (idx *Index) WeekBins() map[string][]Date {
	return idx.weekBins
}

// Forbidden reports whether placing shift s1 on day d and s2 on day d+1
// violates the minimum rest rule.
func (idx *Index) Forbidden(s1, s2 string) bool {
	return idx.forbidden[[2]string{s1, s2}]
}

// Overlaps reports whether shifts s1 and s2 intersect when placed on the
// same day.
func (idx *Index) Overlaps(s1, s2 string) bool {
	if s1 == s2 {
		return true
	}
	return idx.overlap[[2]string{s1, s2}]
}

// insufficientRest reports whether the clock time between shift1's end
// (on day d, rolled +24h if shift1 is a night shift) and shift2's start
// (on day d+1) is strictly less than minRestHours.
func insufficientRest(shift1, shift2 ShiftType, minRestHours int) bool {
	end1 := minuteOfDay(shift1.End)
	if shift1.IsNight {
		end1 += 24 * 60
	}
	start2 := 24*60 + minuteOfDay(shift2.Start)
	restMinutes := start2 - end1
	return restMinutes < minRestHours*60
}

// shiftsOverlapSameDay reports whether the two shifts' time intervals
// (with night rollover) intersect in non-zero measure when placed on the
// same calendar day.
func shiftsOverlapSameDay(shift1, shift2 ShiftType) bool {
	start1, end1 := minuteOfDay(shift1.Start), minuteOfDay(shift1.End)
	if shift1.IsNight {
		end1 += 24 * 60
	}
	start2, end2 := minuteOfDay(shift2.Start), minuteOfDay(shift2.End)
	if shift2.IsNight {
		end2 += 24 * 60
	}
	return start1 < end2 && start2 < end1
}

// minuteOfDay parses an "HH:MM" clock string into minutes since midnight.
func minuteOfDay(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}
