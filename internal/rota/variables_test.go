package rota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateVariablesPrunesIneligibleWard(t *testing.T) {
	req := singleCellRequest(t)
	req.Staff[0].EligibleWards = []string{"ward-2"}

	idx, err := BuildIndex(req)
	require.NoError(t, err)
	vars := AllocateVariables(idx)

	assert.Empty(t, vars.X)
	assert.Empty(t, vars.Y)
	// The slack variable still exists: the cell's demand is simply unmet.
	assert.Len(t, vars.U, 1)
}

func TestAllocateVariablesPrunesUnrequiredSkill(t *testing.T) {
	req := singleCellRequest(t)
	req.Staff[0].Skills = []string{"Paediatric"}

	idx, err := BuildIndex(req)
	require.NoError(t, err)
	vars := AllocateVariables(idx)

	// The assignment variable survives (the staff member is ward-eligible
	// and the cell has demand), but no skill variable links it to the
	// cell's "General" requirement, so it can never cover anything.
	assert.Len(t, vars.X, 1)
	assert.Empty(t, vars.Y)
}

func TestAllocateVariablesCountsReproducible(t *testing.T) {
	req := singleCellRequest(t)
	req.Staff = append(req.Staff, Staff{
		ID: "s2", Skills: []string{"General"}, EligibleWards: []string{"ward-1"},
	})

	idx1, err := BuildIndex(req)
	require.NoError(t, err)
	vars1 := AllocateVariables(idx1)

	idx2, err := BuildIndex(req)
	require.NoError(t, err)
	vars2 := AllocateVariables(idx2)

	assert.Equal(t, len(vars1.X), len(vars2.X))
	assert.Equal(t, len(vars1.Y), len(vars2.Y))
	assert.Equal(t, len(vars1.U), len(vars2.U))
	assert.Equal(t, vars1.XKeys, vars2.XKeys)
	assert.Equal(t, vars1.YKeys, vars2.YKeys)
	assert.Equal(t, vars1.UKeys, vars2.UKeys)
}

func TestBuildConstraintsReportsDroppedLock(t *testing.T) {
	req := singleCellRequest(t)
	req.Locks = []Lock{
		{StaffID: "s1", WardID: "ward-1", Date: req.Horizon.Start, Slot: "DAY"},
		{StaffID: "s1", WardID: "ward-1", Date: req.Horizon.Start, Slot: "NIGHT"},
	}

	idx, err := BuildIndex(req)
	require.NoError(t, err)
	vars := AllocateVariables(idx)

	dropped := BuildConstraints(idx, vars, req)
	// The DAY lock binds to its variable; the NIGHT lock has no demand
	// cell behind it and is dropped.
	require.Len(t, dropped, 1)
	assert.Equal(t, "NIGHT", dropped[0].Slot)
}
