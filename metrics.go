package sparsipy

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// predictLinear evaluates X*weights + intercept for each row of X.
func predictLinear(X *mat.Dense, weights []float64, intercept float64) ([]float64, error) {
	if weights == nil {
		return nil, configErrorf("estimator is not fitted")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != len(weights) {
		return nil, configErrorf("X has %d features, model has %d coefficients", nFeatures, len(weights))
	}

	pred := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		sum := intercept
		for j := 0; j < nFeatures; j++ {
			sum += X.At(i, j) * weights[j]
		}
		pred[i] = sum
	}
	return pred, nil
}

// scoreLinear computes the R² of est's predictions on X against y.
func scoreLinear(est Estimator, X *mat.Dense, y []float64) (float64, error) {
	pred, err := est.Predict(X)
	if err != nil {
		return 0, err
	}
	if len(pred) != len(y) {
		return 0, configErrorf("X has %d samples but y has %d", len(pred), len(y))
	}
	return stat.RSquaredFrom(pred, y, nil), nil
}

// meanSquaredError calculates the MSE between two equal-length vectors.
func meanSquaredError(yTrue, yPred []float64) float64 {
	sum := 0.0
	for i := range yTrue {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}
	return sum / float64(len(yTrue))
}
