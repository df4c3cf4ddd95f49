package eval

import "fmt"

const TotalPhase = 24

const (
	Opening = 0
	Endgame = 1
)

// Score is a tapered weight: a midgame and an endgame value.
type Score [2]int

func S(mg, eg int) Score {
	return Score{mg, eg}
}

func (s Score) Mg() int {
	return s[Opening]
}

func (s Score) Eg() int {
	return s[Endgame]
}

func (s Score) String() string {
	return fmt.Sprintf("S(%d, %d)", s.Mg(), s.Eg())
}

// Weights is the weight table, one Score per feature slot.
type Weights []Score

func DefaultWeights() Weights {
	var w = make(Weights, FeatureSize)
	w[fPawnValue] = S(100, 100)
	w[fKnightValue] = S(300, 300)
	w[fBishopValue] = S(300, 300)
	w[fRookValue] = S(500, 500)
	w[fQueenValue] = S(900, 900)
	return w
}

func (w Weights) Clone() Weights {
	return append(Weights(nil), w...)
}

// Taper interpolates between the midgame and endgame sums.
// phase is TotalPhase for full material and 0 for a bare endgame.
func Taper(mg, eg, phase int) int {
	return (phase*mg + (TotalPhase-phase)*eg) / TotalPhase
}

// Evaluate returns the tapered score of p in centipawns from the first side's
// point of view. len(w) must be FeatureSize.
func (p *Position) Evaluate(w Weights) int {
	var mg, eg int
	for i, v := range p.Features {
		if v == 0 {
			continue
		}
		mg += int(v) * w[i][Opening]
		eg += int(v) * w[i][Endgame]
	}
	return Taper(mg, eg, int(p.Phase))
}
