package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareAgents(t *testing.T) {
	engine := newTestEngine(t)

	cmp, err := engine.CompareAgents("Bangladesh", 10)
	require.NoError(t, err)

	assert.InDelta(t, 5000, cmp.TraditionalMonthlyCost, tolerance)
	assert.InDelta(t, 1500, cmp.AIMonthlyCost, tolerance)
	assert.InDelta(t, 3500, cmp.MonthlySavings, tolerance)
	assert.InDelta(t, 42000, cmp.AnnualSavings, tolerance)
	assert.InDelta(t, 70, cmp.SavingsPercent, tolerance)
}

func TestCompareAgents_ZeroAgents(t *testing.T) {
	engine := newTestEngine(t)

	cmp, err := engine.CompareAgents("Philippines", 0)
	require.NoError(t, err)

	assert.Zero(t, cmp.TraditionalMonthlyCost)
	assert.Zero(t, cmp.SavingsPercent)
}

func TestCompareAgents_Errors(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.CompareAgents("Atlantis", 3)
	require.ErrorIs(t, err, ErrInvalidCountry)

	_, err = engine.CompareAgents("Bangladesh", -3)
	require.ErrorIs(t, err, ErrInvalidInput)
}
