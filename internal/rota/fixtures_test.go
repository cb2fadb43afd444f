package rota

import "testing"

// mustDate parses an ISO date or fails the test immediately.
func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", s, err)
	}
	return d
}

// dayShift, eveningShift and nightShift are the shift types used throughout
// the scenario and unit tests: DAY (08:00-16:00, 480min), EVENING
// (16:00-00:00, 480min, flagged IsNight) and NIGHT (00:00-08:00, 480min,
// flagged IsNight).
func dayShift() ShiftType {
	return ShiftType{ID: "st-day", Code: "DAY", Start: "08:00", End: "16:00", DurationMinutes: 480}
}

func eveningShift() ShiftType {
	return ShiftType{ID: "st-eve", Code: "EVENING", Start: "16:00", End: "00:00", IsNight: true, DurationMinutes: 480}
}

func nightShift() ShiftType {
	return ShiftType{ID: "st-night", Code: "NIGHT", Start: "00:00", End: "08:00", IsNight: true, DurationMinutes: 480}
}

func baseWard() Ward {
	return Ward{ID: "ward-1", Name: "Ward 1"}
}

// fullWeekContractHours gives a prorated weekly cap of 1440 minutes per
// horizon day, so the cap never binds in scenarios that test other rules.
const fullWeekContractHours = 168

func baseRules() Rules {
	return Rules{MinRestHours: 11, MaxConsecutiveNights: 3, OneShiftPerDay: true}
}
