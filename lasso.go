package sparsipy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Lasso is an L1-penalized least-squares regressor solved by cyclic
// coordinate descent with soft-thresholding and active-set skipping.
type Lasso struct {
	Alpha        float64 // Regularization strength (λ)
	FitIntercept bool    // Fit a free intercept term
	Standardize  bool    // Scale features to unit variance before descent
	MaxIter      int     // Maximum number of descent sweeps
	Tol          float64 // Convergence tolerance on max coefficient change
	Verbose      bool    // Print sweep progress
	LogStep      int     // Logging frequency in sweeps

	coef      []float64
	intercept float64
	nIter     int
}

// NewLasso returns a Lasso with recommended default parameters.
func NewLasso() *Lasso {
	return &Lasso{
		Alpha:        1.0,
		FitIntercept: true,
		Standardize:  true,
		MaxIter:      1000,
		Tol:          1e-6,
		LogStep:      10,
	}
}

// Fit trains the model using coordinate descent.
func (m *Lasso) Fit(X *mat.Dense, y []float64) error {
	nSamples, nFeatures := X.Dims()
	if len(y) != nSamples {
		return configErrorf("X has %d samples but y has %d", nSamples, len(y))
	}

	// Work on copies so descent never mutates caller data.
	XData := mat.DenseCopyOf(X)
	yData := make([]float64, len(y))
	copy(yData, y)

	// Center only when fitting an intercept; scaling alone is safe either way.
	var xMeans, xStds []float64
	yMean := 0.0
	if m.FitIntercept || m.Standardize {
		xMeans, xStds = normalizeFeatures(XData, m.FitIntercept, m.Standardize)
	}
	if m.FitIntercept {
		yMean = centerTarget(yData)
	}

	weights := make([]float64, nFeatures)
	activeSet := make([]bool, nFeatures)
	residuals := make([]float64, nSamples)
	copy(residuals, yData)

	if m.Verbose {
		fmt.Printf("lasso: λ=%.4g, max_iter=%d, tol=%.0e, samples=%d, features=%d\n",
			m.Alpha, m.MaxIter, m.Tol, nSamples, nFeatures)
	}

	iter := 0
	for ; iter < m.MaxIter; iter++ {
		maxDelta := 0.0

		for j := 0; j < nFeatures; j++ {
			if !activeSet[j] && iter > 0 {
				continue // Skip inactive features
			}

			oldWeight := weights[j]
			if oldWeight != 0 {
				updateResiduals(XData, residuals, j, oldWeight)
			}

			// Correlation with the residual and column norm.
			rho, xtx := 0.0, 0.0
			for i := 0; i < nSamples; i++ {
				xVal := XData.At(i, j)
				rho += xVal * residuals[i]
				xtx += xVal * xVal
			}

			newWeight := softThreshold(rho, m.Alpha) / (xtx + 1e-8)
			delta := math.Abs(newWeight - oldWeight)
			if delta > maxDelta {
				maxDelta = delta
			}

			if newWeight != 0 {
				activeSet[j] = true
				updateResiduals(XData, residuals, j, -newWeight)
				weights[j] = newWeight
			} else {
				weights[j] = 0
			}
		}

		if m.Verbose && m.LogStep > 0 && (iter%m.LogStep == 0 || iter == m.MaxIter-1) {
			fmt.Printf("lasso: sweep %4d |Δ|=%.2e active=%d/%d\n",
				iter, maxDelta, countActive(activeSet), nFeatures)
		}

		if maxDelta < m.Tol {
			if m.Verbose {
				fmt.Printf("lasso: converged at sweep %d\n", iter)
			}
			break
		}
	}

	// Map coefficients back to the original feature scale.
	if xStds != nil {
		denormalizeWeights(weights, xStds)
	}
	intercept := 0.0
	if m.FitIntercept {
		intercept = denormalizeIntercept(weights, xMeans, yMean)
	}

	m.coef = weights
	m.intercept = intercept
	m.nIter = iter
	return nil
}

// Coef returns the fitted coefficients, nil before Fit.
func (m *Lasso) Coef() []float64 { return m.coef }

// Intercept returns the fitted intercept.
func (m *Lasso) Intercept() float64 { return m.intercept }

// NIter returns the number of coordinate-descent sweeps of the last fit.
func (m *Lasso) NIter() int { return m.nIter }

// Predict returns predictions for input samples.
func (m *Lasso) Predict(X *mat.Dense) ([]float64, error) {
	return predictLinear(X, m.coef, m.intercept)
}

// Score returns the R² score for given data.
func (m *Lasso) Score(X *mat.Dense, y []float64) (float64, error) {
	return scoreLinear(m, X, y)
}

func (m *Lasso) schema() paramSchema {
	return paramSchema{
		{"alpha",
			func() any { return m.Alpha },
			func(v any) (err error) { m.Alpha, err = asFloat("alpha", v); return }},
		{"fit_intercept",
			func() any { return m.FitIntercept },
			func(v any) (err error) { m.FitIntercept, err = asBool("fit_intercept", v); return }},
		{"standardize",
			func() any { return m.Standardize },
			func(v any) (err error) { m.Standardize, err = asBool("standardize", v); return }},
		{"max_iter",
			func() any { return m.MaxIter },
			func(v any) (err error) { m.MaxIter, err = asInt("max_iter", v); return }},
		{"tol",
			func() any { return m.Tol },
			func(v any) (err error) { m.Tol, err = asFloat("tol", v); return }},
	}
}

// GetParams returns the hyperparameters. Lasso has no nested estimators, so
// deep is ignored.
func (m *Lasso) GetParams(deep bool) map[string]any {
	return m.schema().values()
}

// SetParams updates hyperparameters by name.
func (m *Lasso) SetParams(params map[string]any) error {
	return m.schema().apply(params, "Lasso")
}

// Clone returns an unfitted Lasso with the same hyperparameters.
func (m *Lasso) Clone() Estimator {
	c := *m
	c.coef = nil
	c.intercept = 0
	c.nIter = 0
	return &c
}

// --- Coordinate-descent helpers ---

// normalizeFeatures centers and/or scales features in place and returns the
// per-column means and standard deviations used. means is nil when centering
// is disabled, stds when scaling is disabled.
func normalizeFeatures(X *mat.Dense, center, scale bool) (means, stds []float64) {
	nSamples, nFeatures := X.Dims()
	if center {
		means = make([]float64, nFeatures)
	}
	if scale {
		stds = make([]float64, nFeatures)
	}

	col := make([]float64, nSamples)
	for j := 0; j < nFeatures; j++ {
		mat.Col(col, j, X)

		mean := floats.Sum(col) / float64(nSamples)
		if center {
			floats.AddConst(-mean, col)
			means[j] = mean
		}

		if scale {
			variance := 0.0
			for _, v := range col {
				d := v
				if !center {
					d = v - mean
				}
				variance += d * d
			}
			std := math.Sqrt(variance / float64(nSamples-1))
			if std < 1e-8 {
				std = 1.0 // Constant column, leave unscaled
			} else {
				floats.Scale(1/std, col)
			}
			stds[j] = std
		}

		X.SetCol(j, col)
	}
	return means, stds
}

// centerTarget centers the target variable in place and returns its mean.
func centerTarget(y []float64) float64 {
	mean := floats.Sum(y) / float64(len(y))
	floats.AddConst(-mean, y)
	return mean
}

// updateResiduals adds delta * X[:,j] to the residual vector.
func updateResiduals(X *mat.Dense, residuals []float64, j int, delta float64) {
	nSamples, _ := X.Dims()
	for i := 0; i < nSamples; i++ {
		residuals[i] += delta * X.At(i, j)
	}
}

// softThreshold applies the soft-thresholding operator.
func softThreshold(z, lambda float64) float64 {
	if z > lambda {
		return z - lambda
	} else if z < -lambda {
		return z + lambda
	}
	return 0
}

// denormalizeWeights converts weights back to the original feature scale.
func denormalizeWeights(weights, stds []float64) {
	for j := range weights {
		if stds[j] != 0 {
			weights[j] /= stds[j]
		}
	}
}

// denormalizeIntercept recovers the intercept on the original scale. weights
// must already be on the original scale.
func denormalizeIntercept(weights, means []float64, yMean float64) float64 {
	dot := 0.0
	for j := range weights {
		dot += means[j] * weights[j]
	}
	return yMean - dot
}

// countActive counts active features.
func countActive(activeSet []bool) int {
	count := 0
	for _, active := range activeSet {
		if active {
			count++
		}
	}
	return count
}
