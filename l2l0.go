package sparsipy

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// L2L0 is a mixed-penalty least-squares regressor minimizing
//
//	‖y - Xw‖² + alpha·‖w‖² + eta·(number of active groups)
//
// over user-supplied per-column group labels. The L2 part is solved in closed
// form as an augmented least-squares system; the L0 part by greedy backward
// elimination of whole groups while the penalized objective keeps improving.
type L2L0 struct {
	Groups       []int   // Group label per column, len == n_features
	Alpha        float64 // L2 penalty weight
	Eta          float64 // Per-group L0 penalty weight
	FitIntercept bool

	coef      []float64
	intercept float64
}

// NewL2L0 returns an L2L0 over the given column groups with default
// penalties. It does not fit an intercept unless asked to.
func NewL2L0(groups []int) *L2L0 {
	g := make([]int, len(groups))
	copy(g, groups)
	return &L2L0{
		Groups: g,
		Alpha:  1.0,
		Eta:    1.0,
	}
}

// Fit solves the penalized regression.
func (m *L2L0) Fit(X *mat.Dense, y []float64) error {
	nSamples, nFeatures := X.Dims()
	if len(y) != nSamples {
		return configErrorf("X has %d samples but y has %d", nSamples, len(y))
	}
	if len(m.Groups) != nFeatures {
		return configErrorf("groups has %d entries but X has %d features", len(m.Groups), nFeatures)
	}

	XData := mat.DenseCopyOf(X)
	yData := make([]float64, len(y))
	copy(yData, y)

	var xMeans []float64
	yMean := 0.0
	if m.FitIntercept {
		xMeans, _ = normalizeFeatures(XData, true, false)
		yMean = centerTarget(yData)
	}

	groupIDs := uniqueGroups(m.Groups)
	active := make(map[int]bool, len(groupIDs))
	for _, g := range groupIDs {
		active[g] = true
	}

	weights, obj, err := m.solveActive(XData, yData, active)
	if err != nil {
		return err
	}

	// Backward elimination: drop any group whose removal lowers the
	// penalized objective, until no drop helps.
	for improved := true; improved; {
		improved = false
		for _, g := range groupIDs {
			if !active[g] {
				continue
			}
			active[g] = false
			trial, trialObj, err := m.solveActive(XData, yData, active)
			if err != nil {
				return err
			}
			if trialObj < obj-1e-12 {
				weights, obj = trial, trialObj
				improved = true
			} else {
				active[g] = true
			}
		}
	}

	intercept := 0.0
	if m.FitIntercept {
		intercept = denormalizeIntercept(weights, xMeans, yMean)
	}

	m.coef = weights
	m.intercept = intercept
	return nil
}

// solveActive solves the ridge subproblem restricted to columns whose group
// is active and returns the full-length weight vector plus the penalized
// objective value.
func (m *L2L0) solveActive(X *mat.Dense, y []float64, active map[int]bool) ([]float64, float64, error) {
	nSamples, nFeatures := X.Dims()

	cols := make([]int, 0, nFeatures)
	for j := 0; j < nFeatures; j++ {
		if active[m.Groups[j]] {
			cols = append(cols, j)
		}
	}

	weights := make([]float64, nFeatures)
	if len(cols) == 0 {
		rss := floats.Dot(y, y)
		return weights, rss, nil
	}

	// Augmented least squares: stacking sqrt(alpha)·I under X turns the
	// ridge problem into an ordinary one.
	rows := nSamples
	if m.Alpha > 0 {
		rows += len(cols)
	}
	a := mat.NewDense(rows, len(cols), nil)
	b := mat.NewVecDense(rows, nil)
	for i := 0; i < nSamples; i++ {
		for k, j := range cols {
			a.Set(i, k, X.At(i, j))
		}
		b.SetVec(i, y[i])
	}
	if m.Alpha > 0 {
		sq := math.Sqrt(m.Alpha)
		for k := range cols {
			a.Set(nSamples+k, k, sq)
		}
	}

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return nil, 0, configErrorf("singular design for active groups: %v", err)
	}
	for k, j := range cols {
		weights[j] = w.AtVec(k)
	}

	rss := 0.0
	for i := 0; i < nSamples; i++ {
		r := y[i]
		for _, j := range cols {
			r -= X.At(i, j) * weights[j]
		}
		rss += r * r
	}
	l2 := floats.Dot(weights, weights)

	nActive := 0
	for _, ok := range active {
		if ok {
			nActive++
		}
	}
	return weights, rss + m.Alpha*l2 + m.Eta*float64(nActive), nil
}

// Coef returns the fitted coefficients, nil before Fit. Columns of pruned
// groups are exactly zero.
func (m *L2L0) Coef() []float64 { return m.coef }

// Intercept returns the fitted intercept.
func (m *L2L0) Intercept() float64 { return m.intercept }

// Predict returns predictions for input samples.
func (m *L2L0) Predict(X *mat.Dense) ([]float64, error) {
	return predictLinear(X, m.coef, m.intercept)
}

// Score returns the R² score for given data.
func (m *L2L0) Score(X *mat.Dense, y []float64) (float64, error) {
	return scoreLinear(m, X, y)
}

func (m *L2L0) schema() paramSchema {
	return paramSchema{
		{"groups",
			func() any { return m.Groups },
			func(v any) (err error) { m.Groups, err = asIntSlice("groups", v); return }},
		{"alpha",
			func() any { return m.Alpha },
			func(v any) (err error) { m.Alpha, err = asFloat("alpha", v); return }},
		{"eta",
			func() any { return m.Eta },
			func(v any) (err error) { m.Eta, err = asFloat("eta", v); return }},
		{"fit_intercept",
			func() any { return m.FitIntercept },
			func(v any) (err error) { m.FitIntercept, err = asBool("fit_intercept", v); return }},
	}
}

// GetParams returns the hyperparameters.
func (m *L2L0) GetParams(deep bool) map[string]any {
	return m.schema().values()
}

// SetParams updates hyperparameters by name.
func (m *L2L0) SetParams(params map[string]any) error {
	return m.schema().apply(params, "L2L0")
}

// Clone returns an unfitted L2L0 with the same hyperparameters.
func (m *L2L0) Clone() Estimator {
	c := *m
	c.Groups = make([]int, len(m.Groups))
	copy(c.Groups, m.Groups)
	c.coef = nil
	c.intercept = 0
	return &c
}

func uniqueGroups(groups []int) []int {
	seen := make(map[int]bool, len(groups))
	out := make([]int, 0, len(groups))
	for _, g := range groups {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	sort.Ints(out)
	return out
}
