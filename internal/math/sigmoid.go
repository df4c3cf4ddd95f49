package math

import "math"

// Sigmoid is the base-10 logistic function 1/(1+10^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, -x))
}

// Predict maps a centipawn score to the expected game result for the first
// side. k scales centipawns to the logistic axis.
func Predict(k float64, score int) float64 {
	return Sigmoid(k * float64(score) / 100)
}
