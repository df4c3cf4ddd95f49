package eval

import (
	"math"

	. "github.com/ChizhovVadim/CounterTexel/pkg/common"
)

var phaseWeight = [PIECE_NB]int{Pawn: 0, Knight: 1, Bishop: 1, Rook: 2, Queen: 4, King: 0}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func file4(sq int) int {
	var f = File(sq)
	if f >= FileE {
		f = FileH - f
	}
	return f
}

func relativeSq32(side, sq int) int {
	sq = RelativeSquare(side, sq)
	return file4(sq) + 4*Rank(sq)
}

// pawnSq24 buckets pawn squares; pawns never stand on the first or last rank.
func pawnSq24(side, sq int) int {
	sq = RelativeSquare(side, sq)
	return file4(sq) + 4*(Rank(sq)-Rank2)
}

func relativeRankOf(side, sq int) int {
	return Rank(RelativeSquare(side, sq))
}

func toInt16(v int) int16 {
	return int16(Limit(v, math.MinInt16, math.MaxInt16))
}
