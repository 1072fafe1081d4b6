package sparsipy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestLassoRegression(t *testing.T) {
	// y = 1 + 2*x0, with x1 exactly collinear to x0.
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	})
	y := []float64{3, 7, 11, 15}

	m := NewLasso()
	m.Alpha = 0.001
	require.NoError(t, m.Fit(X, y))

	// The L1 penalty should push the redundant column to zero.
	assert.InDelta(t, 2.0, m.Coef()[0], 1e-2)
	assert.InDelta(t, 0.0, m.Coef()[1], 1e-2)
	assert.InDelta(t, 1.0, m.Intercept(), 1e-2)

	pred, err := m.Predict(X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, y, pred, 1e-2)

	score, err := m.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-3)
	assert.Less(t, meanSquaredError(y, pred), 1e-3)
}

func TestLassoHighRegularization(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	})
	y := []float64{3, 7, 11, 15}
	meanY := floats.Sum(y) / float64(len(y))

	m := NewLasso()
	m.Alpha = 100.0

	require.NoError(t, m.Fit(X, y))

	// All weights shrunk to exactly zero, intercept falls back to mean(y).
	for j, w := range m.Coef() {
		assert.Zerof(t, w, "coef[%d]", j)
	}
	assert.InDelta(t, meanY, m.Intercept(), 1e-8)
}

func TestLassoNoIntercept(t *testing.T) {
	// y = 3*x0 exactly, through the origin.
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := []float64{3, 6, 9, 12, 15}

	m := NewLasso()
	m.Alpha = 1e-9
	m.FitIntercept = false

	require.NoError(t, m.Fit(X, y))

	assert.Zero(t, m.Intercept())
	assert.InDelta(t, 3.0, m.Coef()[0], 1e-4)
}

func TestLassoStandardization(t *testing.T) {
	// Features on wildly different scales.
	X := mat.NewDense(4, 2, []float64{
		1, 200,
		3, 400,
		5, 600,
		7, 800,
	})
	y := []float64{3, 7, 11, 15}

	m := NewLasso()
	m.Alpha = 0.1

	require.NoError(t, m.Fit(X, y))

	pred, err := m.Predict(X)
	require.NoError(t, err)
	for i := range y {
		assert.InDeltaf(t, y[i], pred[i], 1.0, "prediction %d", i)
	}
}

func TestLassoConvergence(t *testing.T) {
	X := mat.NewDense(100, 5, nil)
	y := make([]float64, 100)
	for i := 0; i < 100; i++ {
		for j := 0; j < 5; j++ {
			X.Set(i, j, float64(i+j))
		}
		y[i] = float64(i)
	}

	m := NewLasso()
	m.Alpha = 0.1
	m.Tol = 1e-6

	require.NoError(t, m.Fit(X, y))
	assert.Less(t, m.NIter(), m.MaxIter, "descent did not converge")
}

func TestLassoShapeMismatch(t *testing.T) {
	X := mat.NewDense(4, 2, nil)
	err := NewLasso().Fit(X, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrConfiguration)
}
