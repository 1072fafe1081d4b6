package main

import (
	"fmt"
	"log"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/CederGroupHub/sparsipy"
)

func main() {
	// Two feature blocks: columns 0-2 fitted by a Lasso carrying the shared
	// intercept, columns 3-6 by a grouped L2L0.
	lasso := sparsipy.NewLasso()
	lasso.Alpha = 1e-6

	l2l0 := sparsipy.NewL2L0([]int{0, 0, 1, 1})
	l2l0.Alpha = 1e-3
	l2l0.Eta = 1e-6

	est, err := sparsipy.NewStepwiseEstimator(
		[]sparsipy.Step{
			{Name: "lasso", Estimator: lasso},
			{Name: "l2l0", Estimator: l2l0},
		},
		[][]int{{0, 1, 2}, {3, 4, 5, 6}},
	)
	if err != nil {
		log.Fatal(err)
	}

	wTrue := []float64{1.2, 0, -0.8, 0.5, 0.3, 0, 2.0}
	rng := rand.New(rand.NewSource(1))

	X := mat.NewDense(50, 7, nil)
	y := make([]float64, 50)
	for i := 0; i < 50; i++ {
		y[i] = 3.0 // true intercept
		for j := 0; j < 7; j++ {
			X.Set(i, j, rng.NormFloat64())
			y[i] += X.At(i, j) * wTrue[j]
		}
		y[i] += 0.05 * rng.NormFloat64()
	}

	if err := est.Fit(X, y); err != nil {
		log.Fatal(err)
	}

	fmt.Println("coefficients:", est.Coef())
	fmt.Println("intercept:", est.Intercept())

	score, err := est.Score(X, y)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("R²: %.4f\n", score)

	// Retune one sub-estimator through the namespaced parameter interface
	// and refit.
	if err := est.SetParams(map[string]any{"lasso__alpha": 1e-3}); err != nil {
		log.Fatal(err)
	}
	if err := est.Fit(X, y); err != nil {
		log.Fatal(err)
	}
	fmt.Println("refit coefficients:", est.Coef())
}
