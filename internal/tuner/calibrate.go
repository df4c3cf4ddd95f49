package tuner

import (
	"errors"
	"fmt"
)

var ErrCalibrationLimit = errors.New("k calibration did not converge")

// CalibrateK searches k on the grid k0+n*step for the minimum of errorFunc.
// It walks downhill from k0 and stops at the first step that does not
// improve the error. k stays positive. With maxIter > 0 the walk is capped:
// the best k found so far is returned together with ErrCalibrationLimit.
func CalibrateK(
	errorFunc func(k float64) (float64, error),
	k0, step float64,
	maxIter int,
) (k, bestE float64, iters int, err error) {
	if step <= 0 || k0 <= 0 {
		return 0, 0, 0, fmt.Errorf("bad calibration start k=%v step=%v", k0, step)
	}
	bestE, err = errorFunc(k0)
	if err != nil {
		return 0, 0, 0, err
	}
	k = k0

	var dir = 0
	eUp, err := errorFunc(k0 + step)
	if err != nil {
		return 0, 0, 0, err
	}
	var eDown = bestE
	if k0-step > 0 {
		eDown, err = errorFunc(k0 - step)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	if eUp < bestE && eUp <= eDown {
		dir, k, bestE = 1, k0+step, eUp
	} else if eDown < bestE {
		dir, k, bestE = -1, k0-step, eDown
	} else {
		return k, bestE, 0, nil
	}
	iters = 1

	for {
		if maxIter > 0 && iters >= maxIter {
			return k, bestE, iters, ErrCalibrationLimit
		}
		// from k0 on the grid so steps do not accumulate rounding
		var next = k0 + float64(dir*(iters+1))*step
		if next <= 0 {
			return k, bestE, iters, nil
		}
		e, err := errorFunc(next)
		if err != nil {
			return 0, 0, iters, err
		}
		if !(e < bestE) {
			return k, bestE, iters, nil
		}
		k, bestE = next, e
		iters++
	}
}
