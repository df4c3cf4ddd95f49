package tuner

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

var errLoss = errors.New("loss failed")

// quadraticLoss is minimal at target and separable per value.
func quadraticLoss(target eval.Weights) func(eval.Weights) (float64, error) {
	return func(w eval.Weights) (float64, error) {
		var sum float64
		for i := range w {
			for part := range w[i] {
				var d = float64(w[i][part] - target[i][part])
				sum += d * d
			}
		}
		return sum, nil
	}
}

func TestTunerConverges(t *testing.T) {
	var target = eval.Weights{eval.S(3, -2), eval.S(0, 5), eval.S(-4, 1)}
	var tuner, err = NewTuner(make(eval.Weights, len(target)), quadraticLoss(target))
	if err != nil {
		t.Fatal(err)
	}
	if err := tuner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := range target {
		if tuner.Weights[i] != target[i] {
			t.Errorf("weight %v: got %v, want %v", i, tuner.Weights[i], target[i])
		}
	}
	if tuner.BestError != 0 {
		t.Errorf("error %v", tuner.BestError)
	}
	if tuner.Directions[0] != [2]int{1, -1} || tuner.Directions[2] != [2]int{-1, 1} {
		t.Errorf("directions %v", tuner.Directions)
	}
}

func TestTunerMaxEpochs(t *testing.T) {
	var target = eval.Weights{eval.S(10, 10)}
	var tuner, err = NewTuner(make(eval.Weights, 1), quadraticLoss(target))
	if err != nil {
		t.Fatal(err)
	}
	tuner.MaxEpochs = 3
	var epochs int
	tuner.OnEpoch = func(t *Tuner) error {
		epochs++
		return nil
	}
	if err := tuner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if tuner.Epoch != 3 || epochs != 3 {
		t.Errorf("epoch %v, callbacks %v", tuner.Epoch, epochs)
	}
	if tuner.Weights[0] != eval.S(3, 3) {
		t.Errorf("weights %v", tuner.Weights[0])
	}
}

func TestTunerMonotonicDescent(t *testing.T) {
	var positions = syntheticPositions(rand.New(rand.NewSource(1)), 400)
	var tuner, err = NewTuner(eval.DefaultWeights(), func(w eval.Weights) (float64, error) {
		return ComputeError(positions, w, 0.4, 4)
	})
	if err != nil {
		t.Fatal(err)
	}
	var start = tuner.BestError
	var last = start
	var trials int
	tuner.OnTrial = func(index, part int, bestError float64) {
		trials++
		if bestError > last {
			t.Fatalf("trial %v (%v, %v): error grew from %v to %v", trials, index, part, last, bestError)
		}
		last = bestError
	}
	improved, err := tuner.RunEpoch()
	if err != nil {
		t.Fatal(err)
	}
	if trials != 2*eval.FeatureSize {
		t.Errorf("trials %v", trials)
	}
	if !improved || !(tuner.BestError < start) {
		t.Errorf("no improvement: %v -> %v", start, tuner.BestError)
	}
}

func TestTunerLossError(t *testing.T) {
	var calls int
	var tuner, err = NewTuner(eval.Weights{eval.S(5, 5)}, func(w eval.Weights) (float64, error) {
		calls++
		if calls > 2 {
			return 0, errLoss
		}
		return 1, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tuner.Run(context.Background()); !errors.Is(err, errLoss) {
		t.Fatalf("got %v", err)
	}
	if tuner.Weights[0] != eval.S(5, 5) {
		t.Errorf("weights not restored: %v", tuner.Weights[0])
	}
}

func TestTunerCancelled(t *testing.T) {
	var tuner, err = NewTuner(make(eval.Weights, 1), quadraticLoss(eval.Weights{eval.S(1, 1)}))
	if err != nil {
		t.Fatal(err)
	}
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if err := tuner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestCalibrateK(t *testing.T) {
	var tests = []struct {
		name string
		min  float64
	}{
		{"up", 1.2345},
		{"down", 0.1},
		{"start", 0.4},
		{"between grid points", 0.4005},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var calls int
			var k, e, iters, err = CalibrateK(func(k float64) (float64, error) {
				calls++
				return (k - test.min) * (k - test.min), nil
			}, 0.4, 0.001, 10000)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(k-test.min) > 0.001+1e-9 {
				t.Errorf("k %v, want %v", k, test.min)
			}
			if e != (k-test.min)*(k-test.min) {
				t.Errorf("error %v at k %v", e, k)
			}
			if calls > iters+4 {
				t.Errorf("%v calls for %v iterations", calls, iters)
			}
		})
	}
}

func TestCalibrateKLimit(t *testing.T) {
	var k, _, iters, err = CalibrateK(func(k float64) (float64, error) {
		return -k, nil
	}, 0.4, 0.001, 10)
	if !errors.Is(err, ErrCalibrationLimit) {
		t.Fatalf("got %v", err)
	}
	if iters != 10 || math.Abs(k-0.41) > 1e-9 {
		t.Errorf("k %v after %v iterations", k, iters)
	}
}

func TestCalibrateKStaysPositive(t *testing.T) {
	var k, _, _, err = CalibrateK(func(k float64) (float64, error) {
		return k, nil
	}, 0.4, 0.001, 0)
	if err != nil {
		t.Fatal(err)
	}
	if k <= 0 || k > 0.0015 {
		t.Errorf("k %v", k)
	}
}

func TestCalibrateKError(t *testing.T) {
	var calls int
	var _, _, _, err = CalibrateK(func(k float64) (float64, error) {
		calls++
		if calls == 5 {
			return 0, errLoss
		}
		return -k, nil
	}, 0.4, 0.001, 0)
	if !errors.Is(err, errLoss) {
		t.Fatalf("got %v", err)
	}
}
