package tuner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/ChizhovVadim/CounterTexel/internal/checkpoint"
	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

type ICheckpointStore interface {
	Load() (*checkpoint.Checkpoint, error)
	Save(cp *checkpoint.Checkpoint) error
	History() ([]float64, error)
	Reset() error
}

type Config struct {
	Threads          int
	K                float64
	KStep            float64
	CalibrationIters int
	MaxEpochs        int
	Resume           bool
	// Weights are the starting weights; nil means eval.DefaultWeights.
	Weights eval.Weights
}

type Result struct {
	Weights eval.Weights
	K       float64
	Error   float64
	Epochs  int
}

// Run loads the dataset, calibrates k for the starting weights and tunes the
// weights. When store is not nil the state is saved after every epoch.
func Run(
	ctx context.Context,
	datasetProvider IDatasetProvider,
	store ICheckpointStore,
	config Config,
) (Result, error) {

	positions, err := LoadDataset(ctx, datasetProvider)
	if err != nil {
		return Result{}, err
	}
	if len(positions) == 0 {
		return Result{}, ErrEmptyDataset
	}
	log.Println("Loaded dataset", "size", len(positions))
	runtime.GC()

	var resumed *checkpoint.Checkpoint
	if store != nil {
		resumed, err = openCheckpoint(store, config.Resume)
		if err != nil {
			return Result{}, err
		}
	}

	var weights = eval.DefaultWeights()
	if config.Weights != nil {
		if len(config.Weights) != eval.FeatureSize {
			return Result{}, fmt.Errorf("%w: %v starting weights", ErrWeightsSize, len(config.Weights))
		}
		weights = config.Weights.Clone()
	}
	var k = config.K
	if resumed != nil {
		if config.Weights != nil {
			log.Println("Starting weights ignored, resuming from checkpoint")
		}
		weights = resumed.Weights
		k = resumed.K
	} else {
		k, err = calibrate(positions, weights, config)
		if err != nil {
			return Result{}, err
		}
	}

	var tuner, tunerErr = NewTuner(weights, func(w eval.Weights) (float64, error) {
		return ComputeError(positions, w, k, config.Threads)
	})
	if tunerErr != nil {
		return Result{}, tunerErr
	}
	tuner.MaxEpochs = config.MaxEpochs
	if resumed != nil {
		tuner.Directions = resumed.Directions
		tuner.Epoch = resumed.Epoch
	}
	if store != nil {
		tuner.OnEpoch = func(t *Tuner) error {
			return store.Save(&checkpoint.Checkpoint{
				Epoch:      t.Epoch,
				K:          k,
				Error:      t.BestError,
				Weights:    t.Weights,
				Directions: t.Directions,
			})
		}
	}

	err = tuner.Run(ctx)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Weights: tuner.Weights,
		K:       k,
		Error:   tuner.BestError,
		Epochs:  tuner.Epoch,
	}, nil
}

func calibrate(positions []eval.Position, weights eval.Weights, config Config) (float64, error) {
	var k, e, iters, err = CalibrateK(func(k float64) (float64, error) {
		return ComputeError(positions, weights, k, config.Threads)
	}, config.K, config.KStep, config.CalibrationIters)
	if errors.Is(err, ErrCalibrationLimit) {
		log.Println("K calibration stopped", "iterations", iters, "k", k)
	} else if err != nil {
		return 0, err
	}
	log.Printf("Calibrated k %.4f error %.8f iterations %v\n", k, e, iters)
	return k, nil
}

// openCheckpoint returns the checkpoint to resume from. A fresh run clears
// the store so the epoch history belongs to one run only.
func openCheckpoint(store ICheckpointStore, resume bool) (*checkpoint.Checkpoint, error) {
	if !resume {
		return nil, store.Reset()
	}
	cp, err := store.Load()
	if errors.Is(err, checkpoint.ErrNotFound) {
		log.Println("No checkpoint, starting from default weights")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	history, err := store.History()
	if err != nil {
		return nil, err
	}
	log.Println("Resumed", "epoch", cp.Epoch, "k", cp.K, "history", history)
	return cp, nil
}
