package checkpoint

import (
	"errors"
	"testing"

	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	var s, err = OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testCheckpoint(epoch int, e float64) *Checkpoint {
	var directions = make([][2]int, eval.FeatureSize)
	for i := range directions {
		directions[i] = [2]int{1, -1}
	}
	var w = eval.DefaultWeights()
	w[7] = eval.S(12, -3)
	return &Checkpoint{
		Epoch:      epoch,
		K:          1.13,
		Error:      e,
		Weights:    w,
		Directions: directions,
	}
}

func TestLoadEmpty(t *testing.T) {
	var s = openTestStore(t)
	var _, err = s.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	var s = openTestStore(t)
	for epoch, e := range []float64{0.08, 0.07, 0.065} {
		if err := s.Save(testCheckpoint(epoch+1, e)); err != nil {
			t.Fatal(err)
		}
	}
	var cp, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cp.Epoch != 3 || cp.Error != 0.065 || cp.K != 1.13 {
		t.Errorf("got epoch %v error %v k %v", cp.Epoch, cp.Error, cp.K)
	}
	if cp.Weights[7] != eval.S(12, -3) || cp.Weights[4] != eval.S(900, 900) {
		t.Errorf("weights %v %v", cp.Weights[7], cp.Weights[4])
	}
	if cp.Directions[0] != [2]int{1, -1} {
		t.Errorf("directions %v", cp.Directions[0])
	}

	history, err := s.History()
	if err != nil {
		t.Fatal(err)
	}
	var want = []float64{0.08, 0.07, 0.065}
	if len(history) != len(want) {
		t.Fatalf("history %v", history)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history %v", history)
		}
	}
}

func TestLoadValidates(t *testing.T) {
	var tests = []struct {
		name   string
		change func(cp *Checkpoint)
	}{
		{"short weights", func(cp *Checkpoint) { cp.Weights = cp.Weights[:10] }},
		{"short directions", func(cp *Checkpoint) { cp.Directions = nil }},
		{"bad k", func(cp *Checkpoint) { cp.K = 0 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var s = openTestStore(t)
			var cp = testCheckpoint(1, 0.1)
			test.change(cp)
			if err := s.Save(cp); err != nil {
				t.Fatal(err)
			}
			var _, err = s.Load()
			if !errors.Is(err, ErrLayout) {
				t.Fatalf("got %v", err)
			}
		})
	}
}

func TestLoadNormalizesDirections(t *testing.T) {
	var s = openTestStore(t)
	var cp = testCheckpoint(1, 0.1)
	cp.Directions[3] = [2]int{0, -5}
	if err := s.Save(cp); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Directions[3] != [2]int{1, -1} {
		t.Errorf("got %v", loaded.Directions[3])
	}
}

func TestReset(t *testing.T) {
	var s = openTestStore(t)
	for epoch := 1; epoch <= 3; epoch++ {
		if err := s.Save(testCheckpoint(epoch, 0.1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if err := s.Save(testCheckpoint(1, 0.05)); err != nil {
		t.Fatal(err)
	}
	history, err := s.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0] != 0.05 {
		t.Errorf("history %v", history)
	}
}
