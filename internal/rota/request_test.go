package rota

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidateTimeBudgetBounds(t *testing.T) {
	d1 := mustDate(t, "2025-01-01")
	req := Request{Horizon: Horizon{Start: d1, End: d1}, TimeBudgetMs: 1000}
	err := req.Validate()
	assert.ErrorContains(t, err, "timeBudgetMs")
}

func TestRequestValidateRejectsInvertedHorizon(t *testing.T) {
	start := mustDate(t, "2025-01-05")
	end := mustDate(t, "2025-01-01")
	req := Request{Horizon: Horizon{Start: start, End: end}, TimeBudgetMs: 30000}
	assert.Error(t, req.Validate())
}

func TestRequestValidateRejectsDuplicateDemandCell(t *testing.T) {
	d1 := mustDate(t, "2025-01-01")
	req := Request{
		Horizon:      Horizon{Start: d1, End: d1},
		TimeBudgetMs: 30000,
		Demand: []Demand{
			{WardID: "w1", Date: d1, Slot: "DAY", Requirements: Requirements{"General": 1}},
			{WardID: "w1", Date: d1, Slot: "DAY", Requirements: Requirements{"General": 2}},
		},
	}
	assert.ErrorContains(t, req.Validate(), "duplicate demand cell")
}

func TestRequestValidateRejectsDuplicateStaffID(t *testing.T) {
	d1 := mustDate(t, "2025-01-01")
	req := Request{
		Horizon:      Horizon{Start: d1, End: d1},
		TimeBudgetMs: 30000,
		Staff:        []Staff{{ID: "s1"}, {ID: "s1"}},
	}
	assert.ErrorContains(t, req.Validate(), "duplicate staff id")
}

func TestRequestValidateAccepts(t *testing.T) {
	d1 := mustDate(t, "2025-01-01")
	req := Request{Horizon: Horizon{Start: d1, End: d1}, TimeBudgetMs: 30000}
	assert.NoError(t, req.Validate())
}

func TestObjectiveUnmarshalRejectsUnknown(t *testing.T) {
	var o Objective
	err := json.Unmarshal([]byte(`"not_a_real_objective"`), &o)
	assert.Error(t, err)
}

func TestObjectiveUnmarshalAcceptsKnown(t *testing.T) {
	var o Objective
	require.NoError(t, json.Unmarshal([]byte(`"min_total_assignments"`), &o))
	assert.Equal(t, MinTotalAssignments, o)
}

func TestRequirementsBareIntCoercedToDefault(t *testing.T) {
	var r Requirements
	require.NoError(t, json.Unmarshal([]byte(`3`), &r))
	assert.Equal(t, Requirements{"default": 3}, r)
	assert.Equal(t, 3, r.Total())
}

func TestRequirementsObjectFormUnmarshals(t *testing.T) {
	var r Requirements
	require.NoError(t, json.Unmarshal([]byte(`{"General": 2, "Paediatric": 1}`), &r))
	assert.Equal(t, 3, r.Total())
}
