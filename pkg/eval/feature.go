package eval

import (
	. "github.com/ChizhovVadim/CounterTexel/pkg/common"
)

type FeatureInfo struct {
	Name  string
	Index int
	Size  int
}

const (
	knightMobilitySize = 9
	bishopMobilitySize = 14
	rookMobilitySize   = 15
	queenMobilitySize  = 28
	majorPieceCount    = 4
	passedRankSize     = 6
	pawnPSTSize        = 24
	pstSize            = 32
)

// Slot indices of the feature vector. The weight table uses the same layout.
const (
	fPawnValue         = 0
	fKnightValue       = fPawnValue + 1
	fBishopValue       = fKnightValue + 1
	fRookValue         = fBishopValue + 1
	fQueenValue        = fRookValue + 1
	fBishopPair        = fQueenValue + 1
	fKnightMobility    = fBishopPair + 1
	fBishopMobility    = fKnightMobility + knightMobilitySize
	fRookMobility      = fBishopMobility + bishopMobilitySize
	fQueenMobility     = fRookMobility + rookMobilitySize
	fThreats           = fQueenMobility + queenMobilitySize
	fSupports          = fThreats + majorPieceCount
	fControls          = fSupports + majorPieceCount
	fKingShield        = fControls + majorPieceCount
	fKingDanger        = fKingShield + 1
	fKingDangerSquared = fKingDanger + 1
	fPawnSupported     = fKingDangerSquared + 1
	fPawnThreats       = fPawnSupported + 1
	fPassedPawn        = fPawnThreats + 1
	fPassedRank        = fPassedPawn + 1
	fPawnDoubled       = fPassedRank + passedRankSize
	fPawnIsolated      = fPawnDoubled + 1
	fPawnPST           = fPawnIsolated + 1
	fKnightPST         = fPawnPST + pawnPSTSize
	fKingPST           = fKnightPST + pstSize

	FeatureSize = fKingPST + pstSize
)

var features = []FeatureInfo{
	{"PawnValue", fPawnValue, 1},
	{"KnightValue", fKnightValue, 1},
	{"BishopValue", fBishopValue, 1},
	{"RookValue", fRookValue, 1},
	{"QueenValue", fQueenValue, 1},
	{"BishopPair", fBishopPair, 1},
	{"KnightMobility", fKnightMobility, knightMobilitySize},
	{"BishopMobility", fBishopMobility, bishopMobilitySize},
	{"RookMobility", fRookMobility, rookMobilitySize},
	{"QueenMobility", fQueenMobility, queenMobilitySize},
	{"Threats", fThreats, majorPieceCount},
	{"Supports", fSupports, majorPieceCount},
	{"Controls", fControls, majorPieceCount},
	{"KingShield", fKingShield, 1},
	{"KingDanger", fKingDanger, 1},
	{"KingDangerSquared", fKingDangerSquared, 1},
	{"PawnSupported", fPawnSupported, 1},
	{"PawnThreats", fPawnThreats, 1},
	{"PassedPawn", fPassedPawn, 1},
	{"PassedRank", fPassedRank, passedRankSize},
	{"PawnDoubled", fPawnDoubled, 1},
	{"PawnIsolated", fPawnIsolated, 1},
	{"PawnPST", fPawnPST, pawnPSTSize},
	{"KnightPST", fKnightPST, pstSize},
	{"KingPST", fKingPST, pstSize},
}

// Features returns the feature groups in layout order.
func Features() []FeatureInfo {
	return append([]FeatureInfo(nil), features...)
}

// indexed by piece type, knight to queen
var mobilityFeature = [...]struct{ index, size int }{
	{fKnightMobility, knightMobilitySize},
	{fBishopMobility, bishopMobilitySize},
	{fRookMobility, rookMobilitySize},
	{fQueenMobility, queenMobilitySize},
}

// PieceSquareIndex returns the slot counting a white piece of a piece-square
// group on sq. ok is false for other groups and for pawns on the back ranks.
func PieceSquareIndex(group FeatureInfo, sq int) (index int, ok bool) {
	switch group.Index {
	case fPawnPST:
		var rank = Rank(sq)
		if rank == Rank1 || rank == Rank8 {
			return 0, false
		}
		return fPawnPST + pawnSq24(SideWhite, sq), true
	case fKnightPST, fKingPST:
		return group.Index + relativeSq32(SideWhite, sq), true
	}
	return 0, false
}
