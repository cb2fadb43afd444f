package rota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", d.String())
}

func TestDateInvalid(t *testing.T) {
	_, err := ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestDateAddDays(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
}

func TestHorizonDatesInclusive(t *testing.T) {
	start, _ := ParseDate("2025-01-01")
	end, _ := ParseDate("2025-01-03")
	h := Horizon{Start: start, End: end}
	dates := h.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, "2025-01-01", dates[0].String())
	assert.Equal(t, "2025-01-03", dates[2].String())
}

func TestHorizonDatesEmptyWhenInverted(t *testing.T) {
	start, _ := ParseDate("2025-01-03")
	end, _ := ParseDate("2025-01-01")
	h := Horizon{Start: start, End: end}
	assert.Empty(t, h.Dates())
}

func TestWeekKeyGroupsISOWeek(t *testing.T) {
	mon, _ := ParseDate("2025-01-06")
	tue, _ := ParseDate("2025-01-07")
	assert.Equal(t, mon.WeekKey(), tue.WeekKey())
}
