package sparsipy

import (
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Step is one named sub-estimator of a StepwiseEstimator.
type Step struct {
	Name      string
	Estimator Estimator
}

// StepwiseEstimator composes several regressors, each fitting a disjoint
// subset ("scope") of the feature columns. All steps fit the same target;
// the composite's intercept is carried by step 0 alone. The composite
// satisfies Estimator itself, so a step may be another StepwiseEstimator.
type StepwiseEstimator struct {
	steps          []Step
	featureIndices [][]int
	nFeatures      int

	coef      []float64
	intercept float64
}

// NewStepwiseEstimator validates that scopes exactly partitions the feature
// index range and returns the composite. No fitting happens here. Step names
// must be unique and must not contain "__".
func NewStepwiseEstimator(steps []Step, scopes [][]int) (*StepwiseEstimator, error) {
	if len(steps) == 0 {
		return nil, configErrorf("no steps given")
	}
	names := make(map[string]bool, len(steps))
	for _, s := range steps {
		if s.Name == "" {
			return nil, configErrorf("step with empty name")
		}
		if strings.Contains(s.Name, paramSep) {
			return nil, configErrorf("step name %q must not contain %q", s.Name, paramSep)
		}
		if s.Estimator == nil {
			return nil, configErrorf("step %q has no estimator", s.Name)
		}
		if names[s.Name] {
			return nil, configErrorf("duplicate step name %q", s.Name)
		}
		names[s.Name] = true
	}

	nFeatures, featureIndices, err := validateScopes(len(steps), scopes)
	if err != nil {
		return nil, err
	}

	kept := make([]Step, len(steps))
	copy(kept, steps)
	return &StepwiseEstimator{
		steps:          kept,
		featureIndices: featureIndices,
		nFeatures:      nFeatures,
	}, nil
}

// Fit slices X by scope and fits every step against the same y, in step
// order. The full coefficient vector is assembled by scattering each step's
// coefficients into its scope's positions; the intercept is step 0's when
// step 0 fits one, otherwise 0.
func (e *StepwiseEstimator) Fit(X *mat.Dense, y []float64) error {
	nSamples, nCols := X.Dims()
	if nCols != e.nFeatures {
		return configErrorf("X has %d features but scopes cover %d", nCols, e.nFeatures)
	}
	if len(y) != nSamples {
		return configErrorf("X has %d samples but y has %d", nSamples, len(y))
	}

	coef := make([]float64, e.nFeatures)
	for i, step := range e.steps {
		scope := e.featureIndices[i]
		sub := sliceColumns(X, scope)
		if err := step.Estimator.Fit(sub, y); err != nil {
			return err
		}
		subCoef := step.Estimator.Coef()
		if len(subCoef) != len(scope) {
			return configErrorf("step %q fitted %d coefficients for a scope of %d columns",
				step.Name, len(subCoef), len(scope))
		}
		for k, idx := range scope {
			coef[idx] = subCoef[k]
		}
	}

	e.coef = coef
	e.intercept = 0
	if fitsIntercept(e.steps[0].Estimator) {
		e.intercept = e.steps[0].Estimator.Intercept()
	}
	return nil
}

// Coef returns the assembled full-length coefficient vector, nil before Fit.
func (e *StepwiseEstimator) Coef() []float64 { return e.coef }

// Intercept returns the shared intercept carried by step 0.
func (e *StepwiseEstimator) Intercept() float64 { return e.intercept }

// Predict returns predictions for input samples.
func (e *StepwiseEstimator) Predict(X *mat.Dense) ([]float64, error) {
	return predictLinear(X, e.coef, e.intercept)
}

// Score returns the R² score for given data.
func (e *StepwiseEstimator) Score(X *mat.Dense, y []float64) (float64, error) {
	return scoreLinear(e, X, y)
}

// Estimators returns the sub-estimators in step order. The returned slice
// aliases the composite's own; callers may mutate the estimators' parameters
// between fits but must not do so during one.
func (e *StepwiseEstimator) Estimators() []Estimator {
	out := make([]Estimator, len(e.steps))
	for i, s := range e.steps {
		out[i] = s.Estimator
	}
	return out
}

// Steps returns the named steps in order.
func (e *StepwiseEstimator) Steps() []Step {
	out := make([]Step, len(e.steps))
	copy(out, e.steps)
	return out
}

// FeatureIndices returns, per step, the global column indices of its scope.
func (e *StepwiseEstimator) FeatureIndices() [][]int { return e.featureIndices }

// NFeatures returns the total feature count implied by the scopes.
func (e *StepwiseEstimator) NFeatures() int { return e.nFeatures }

// GetParams returns the composite's configuration. With deep=true it also
// exposes each step under its own name and every sub-parameter flattened
// under "<step>__<param>" keys, recursing through nested composites.
func (e *StepwiseEstimator) GetParams(deep bool) map[string]any {
	params := map[string]any{
		"steps":  e.Steps(),
		"scopes": e.featureIndices,
	}
	if !deep {
		return params
	}
	for _, s := range e.steps {
		params[s.Name] = s.Estimator
		for k, v := range s.Estimator.GetParams(true) {
			params[s.Name+paramSep+k] = v
		}
	}
	return params
}

// SetParams routes "<step>__<param>" keys to the named step's own SetParams;
// the tail may itself be namespaced when the step is a nested composite. A
// bare step name replaces that step's estimator. Unknown step or parameter
// names fail with ErrParameterName.
func (e *StepwiseEstimator) SetParams(params map[string]any) error {
	for key, v := range params {
		head, rest, nested := splitParamKey(key)
		if !nested {
			if err := e.setOwnParam(head, v); err != nil {
				return err
			}
			continue
		}
		i, ok := e.stepIndex(head)
		if !ok {
			return paramNameErrorf("%q does not name a step of the composite", head)
		}
		if err := e.steps[i].Estimator.SetParams(map[string]any{rest: v}); err != nil {
			return err
		}
	}
	return nil
}

// setOwnParam handles a non-namespaced key: the composite's own "steps" and
// "scopes" configuration, or a bare step name replacing that step's
// estimator.
func (e *StepwiseEstimator) setOwnParam(name string, v any) error {
	switch name {
	case "steps":
		steps, ok := v.([]Step)
		if !ok {
			return paramNameErrorf("parameter %q expects a []Step, got %T", name, v)
		}
		rebuilt, err := NewStepwiseEstimator(steps, e.featureIndices)
		if err != nil {
			return err
		}
		e.steps = rebuilt.steps
		return nil
	case "scopes":
		scopes, ok := v.([][]int)
		if !ok {
			return paramNameErrorf("parameter %q expects a [][]int, got %T", name, v)
		}
		nFeatures, featureIndices, err := validateScopes(len(e.steps), scopes)
		if err != nil {
			return err
		}
		e.nFeatures = nFeatures
		e.featureIndices = featureIndices
		return nil
	}
	i, ok := e.stepIndex(name)
	if !ok {
		return paramNameErrorf("%q does not name a step of the composite", name)
	}
	est, ok := v.(Estimator)
	if !ok {
		return paramNameErrorf("replacing step %q requires an Estimator, got %T", name, v)
	}
	e.steps[i].Estimator = est
	return nil
}

func (e *StepwiseEstimator) stepIndex(name string) (int, bool) {
	for i, s := range e.steps {
		if s.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Clone rebuilds the composite from cloned sub-estimators and copied scopes,
// preserving current parameter values and dropping fitted state. This is the
// structural clone required for use inside outer model-selection loops; it
// deliberately bypasses any generic constructor-signature check, since the
// composite is built from steps and scopes rather than flat hyperparameters.
func (e *StepwiseEstimator) Clone() Estimator {
	steps := make([]Step, len(e.steps))
	for i, s := range e.steps {
		steps[i] = Step{Name: s.Name, Estimator: s.Estimator.Clone()}
	}
	c, err := NewStepwiseEstimator(steps, e.featureIndices)
	if err != nil {
		// The source composite already passed validation.
		panic(err)
	}
	return c
}

// sliceColumns copies the given columns of X, in order, into a new matrix.
func sliceColumns(X *mat.Dense, cols []int) *mat.Dense {
	nSamples, _ := X.Dims()
	out := mat.NewDense(nSamples, len(cols), nil)
	for k, j := range cols {
		for i := 0; i < nSamples; i++ {
			out.Set(i, k, X.At(i, j))
		}
	}
	return out
}
