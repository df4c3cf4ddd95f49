package math

import (
	"math"
	"testing"
)

func TestSigmoid(t *testing.T) {
	var tests = []struct {
		x, want float64
	}{
		{0, 0.5},
		{1, 10.0 / 11},
		{-1, 1.0 / 11},
		{2, 100.0 / 101},
	}
	for _, test := range tests {
		if got := Sigmoid(test.x); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Sigmoid(%v) = %v, want %v", test.x, got, test.want)
		}
	}
}

func TestPredict(t *testing.T) {
	if got := Predict(0.4, 0); got != 0.5 {
		t.Errorf("even score %v", got)
	}
	if Predict(0.4, 900) <= 0.5 || Predict(0.4, -900) >= 0.5 {
		t.Error("sign")
	}
	for _, score := range []int{-500, -30, 1, 250} {
		var sum = Predict(0.7, score) + Predict(0.7, -score)
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("score %v: Predict(s)+Predict(-s) = %v", score, sum)
		}
	}
}
