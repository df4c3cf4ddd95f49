package tuner

import (
	"errors"
	"fmt"
	"math"

	mathx "github.com/ChizhovVadim/CounterTexel/internal/math"
	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyDataset = errors.New("empty dataset")
	ErrWeightsSize  = errors.New("weight table does not match feature layout")
	ErrNonFinite    = errors.New("non-finite error")
)

// ComputeError returns the mean squared difference between game results and
// predicted results. Positions are split into contiguous chunks, one per
// thread. Positions and weights must not change during the call.
func ComputeError(positions []eval.Position, weights eval.Weights, k float64, threads int) (float64, error) {
	if len(positions) == 0 {
		return 0, ErrEmptyDataset
	}
	if len(weights) != eval.FeatureSize {
		return 0, fmt.Errorf("%w: %v weights, %v features", ErrWeightsSize, len(weights), eval.FeatureSize)
	}
	threads = max(1, min(threads, len(positions)))

	var sums = make([]float64, threads)
	var g errgroup.Group
	for thread := 0; thread < threads; thread++ {
		thread := thread
		var chunk = positions[thread*len(positions)/threads : (thread+1)*len(positions)/threads]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %v: %v", thread, r)
				}
			}()
			var sum = computePartial(chunk, weights, k)
			if math.IsNaN(sum) || math.IsInf(sum, 0) {
				return fmt.Errorf("%w: worker %v", ErrNonFinite, thread)
			}
			sums[thread] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, sum := range sums {
		total += sum
	}
	return total / float64(len(positions)), nil
}

// computePartial sums the squared residuals of one chunk.
var computePartial = partialError

func partialError(positions []eval.Position, weights eval.Weights, k float64) float64 {
	var sum float64
	for i := range positions {
		var pos = &positions[i]
		var diff = float64(pos.Result) - mathx.Predict(k, pos.Evaluate(weights))
		sum += diff * diff
	}
	return sum
}
