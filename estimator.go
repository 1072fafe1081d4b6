// Package sparsipy implements sparse linear regression estimators and a
// stepwise composite that fits several of them over disjoint feature scopes
// while sharing a single intercept.
package sparsipy

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the capability set every regressor in this package satisfies.
// StepwiseEstimator itself implements it, so composites can be nested.
type Estimator interface {
	// Fit trains the estimator on X (n_samples x n_features) and y.
	Fit(X *mat.Dense, y []float64) error

	// Coef returns the fitted coefficients, nil before a successful Fit.
	Coef() []float64

	// Intercept returns the fitted intercept, 0 when the estimator does
	// not fit one.
	Intercept() float64

	// Predict returns X*coef + intercept for each row of X.
	Predict(X *mat.Dense) ([]float64, error)

	// Score returns the R² of the prediction on X against y.
	Score(X *mat.Dense, y []float64) (float64, error)

	// GetParams returns the estimator's hyperparameters. For composite
	// estimators deep=true additionally flattens every sub-estimator's
	// parameters under "<step>__<param>" keys.
	GetParams(deep bool) map[string]any

	// SetParams updates hyperparameters by name. Composite estimators
	// route "<step>__<param>" keys to the named sub-estimator. Unknown
	// names fail with ErrParameterName.
	SetParams(params map[string]any) error

	// Clone returns a new estimator with the same hyperparameters and no
	// fitted state.
	Clone() Estimator
}

// fitsIntercept reports whether an estimator is configured to fit its own
// intercept term. Plain estimators expose this as their "fit_intercept"
// parameter; a nested composite delegates to its first step.
func fitsIntercept(est Estimator) bool {
	if sw, ok := est.(*StepwiseEstimator); ok {
		return fitsIntercept(sw.steps[0].Estimator)
	}
	v, ok := est.GetParams(false)["fit_intercept"].(bool)
	return ok && v
}
