package sparsipy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParamKey(t *testing.T) {
	head, rest, nested := splitParamKey("lasso1__alpha")
	assert.True(t, nested)
	assert.Equal(t, "lasso1", head)
	assert.Equal(t, "alpha", rest)

	head, rest, nested = splitParamKey("inner__head__alpha")
	assert.True(t, nested)
	assert.Equal(t, "inner", head)
	assert.Equal(t, "head__alpha", rest)

	head, _, nested = splitParamKey("alpha")
	assert.False(t, nested)
	assert.Equal(t, "alpha", head)
}

func TestEstimatorParamSchema(t *testing.T) {
	m := NewLasso()
	m.Alpha = 0.25

	params := m.GetParams(false)
	assert.Equal(t, 0.25, params["alpha"])
	assert.Equal(t, true, params["fit_intercept"])

	require.NoError(t, m.SetParams(map[string]any{"alpha": 0.5, "max_iter": 50}))
	assert.Equal(t, 0.5, m.Alpha)
	assert.Equal(t, 50, m.MaxIter)

	// Numeric coercion: ints are accepted for float parameters.
	require.NoError(t, m.SetParams(map[string]any{"alpha": 2}))
	assert.Equal(t, 2.0, m.Alpha)

	err := m.SetParams(map[string]any{"gamma": 1.0})
	assert.ErrorIs(t, err, ErrParameterName)

	err = m.SetParams(map[string]any{"alpha": "small"})
	assert.ErrorIs(t, err, ErrParameterName)
}

func TestCloneIndependence(t *testing.T) {
	m := NewL2L0([]int{0, 0, 1})
	m.Alpha = 0.3

	c := m.Clone().(*L2L0)
	assert.Equal(t, m.GetParams(false), c.GetParams(false))

	// Clones own their slice parameters.
	c.Groups[0] = 5
	assert.Equal(t, 0, m.Groups[0])

	c.Alpha = 9.0
	assert.Equal(t, 0.3, m.Alpha)
}
