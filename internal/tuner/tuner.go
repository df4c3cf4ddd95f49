package tuner

import (
	"context"
	"log"
	"time"

	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

// Tuner fits weights by coordinate descent.
// https://www.chessprogramming.org/Texel%27s_Tuning_Method
type Tuner struct {
	Weights eval.Weights
	// Directions holds the last successful step of each midgame and endgame value.
	Directions [][2]int
	BestError  float64
	Epoch      int
	MaxEpochs  int

	loss func(eval.Weights) (float64, error)

	// OnTrial is called after every single value was tried.
	OnTrial func(index, part int, bestError float64)
	// OnEpoch is called after every finished epoch.
	OnEpoch func(t *Tuner) error
}

func NewTuner(weights eval.Weights, loss func(eval.Weights) (float64, error)) (*Tuner, error) {
	var directions = make([][2]int, len(weights))
	for i := range directions {
		directions[i] = [2]int{1, 1}
	}
	var e, err = loss(weights)
	if err != nil {
		return nil, err
	}
	return &Tuner{
		Weights:    weights,
		Directions: directions,
		BestError:  e,
		loss:       loss,
	}, nil
}

// RunEpoch tries one step on every value once. The best error never grows.
func (t *Tuner) RunEpoch() (improved bool, err error) {
	for i := range t.Weights {
		for part := eval.Opening; part <= eval.Endgame; part++ {
			var better, err = t.tryValue(i, part)
			if err != nil {
				return improved, err
			}
			improved = improved || better
			if t.OnTrial != nil {
				t.OnTrial(i, part, t.BestError)
			}
		}
	}
	t.Epoch++
	return improved, nil
}

func (t *Tuner) tryValue(i, part int) (bool, error) {
	var oldValue = t.Weights[i][part]
	var step = t.Directions[i][part]

	t.Weights[i][part] = oldValue + step
	var e, err = t.loss(t.Weights)
	if err != nil {
		t.Weights[i][part] = oldValue
		return false, err
	}
	if e < t.BestError {
		t.BestError = e
		return true, nil
	}

	t.Weights[i][part] = oldValue - step
	e, err = t.loss(t.Weights)
	if err != nil {
		t.Weights[i][part] = oldValue
		return false, err
	}
	if e < t.BestError {
		t.BestError = e
		t.Directions[i][part] = -step
		return true, nil
	}

	t.Weights[i][part] = oldValue
	return false, nil
}

// Run repeats epochs until one of them brings no improvement or MaxEpochs
// epochs have run in total.
func (t *Tuner) Run(ctx context.Context) error {
	log.Println("Tune started", "error", t.BestError)
	defer log.Println("Tune finished")
	for t.MaxEpochs == 0 || t.Epoch < t.MaxEpochs {
		if err := ctx.Err(); err != nil {
			return err
		}
		var start = time.Now()
		var improved, err = t.RunEpoch()
		if err != nil {
			return err
		}
		log.Printf("Epoch %v Error %.8f Elapsed %v\n",
			t.Epoch, t.BestError, time.Since(start))
		if t.OnEpoch != nil {
			if err := t.OnEpoch(t); err != nil {
				return err
			}
		}
		if !improved {
			break
		}
	}
	return nil
}
