package eval

import (
	. "github.com/ChizhovVadim/CounterTexel/pkg/common"
)

const maxKingDangerSquared = 255

type extractor struct {
	*board
	values      [FeatureSize]int
	pawnAttacks [COLOUR_NB]uint64
	kingSq      [COLOUR_NB]int
	kingDanger  [COLOUR_NB]int
}

// add counts n for side. White counts positive, black negative.
func (e *extractor) add(index, side, n int) {
	if side == SideWhite {
		e.values[index] += n
	} else {
		e.values[index] -= n
	}
}

func (b *board) computeFeatures(result *[FeatureSize]int16) {
	var e = extractor{board: b}
	for side := SideWhite; side <= SideBlack; side++ {
		e.pawnAttacks[side] = AllPawnAttacks(side, b.pieces[side][Pawn])
		e.kingSq[side] = FirstOne(b.pieces[side][King])
	}
	for side := SideWhite; side <= SideBlack; side++ {
		e.evalMaterial(side)
		e.evalPawns(side)
		e.evalPieces(side)
		e.evalKing(side)
	}
	for side := SideWhite; side <= SideBlack; side++ {
		var danger = e.kingDanger[side]
		e.add(fKingDanger, side, danger)
		e.add(fKingDangerSquared, side, min(danger*danger, maxKingDangerSquared))
	}
	for i, v := range e.values {
		result[i] = toInt16(v)
	}
}

func (e *extractor) evalMaterial(side int) {
	for pt := Pawn; pt <= Queen; pt++ {
		e.add(fPawnValue+pt, side, PopCount(e.pieces[side][pt]))
	}
	e.add(fBishopPair, side, boolToInt(MoreThanOne(e.pieces[side][Bishop])))
}

func (e *extractor) evalPawns(side int) {
	var them = side ^ 1
	var own = e.pieces[side][Pawn]
	var theirs = e.pieces[them][Pawn]

	e.add(fPawnSupported, side, PopCount(own&e.pawnAttacks[side]))
	e.add(fPawnThreats, side, PopCount(e.pawnAttacks[side]&e.colours[them]&^theirs))

	// a pawn is passed when no enemy pawn stands in front of it or can capture
	// on its way: the enemy front span widened by one file on each side
	var span = FrontSpan(them, theirs)
	span |= Left(span) | Right(span)
	var passed = own &^ span

	e.add(fPawnDoubled, side, PopCount(own&FrontSpan(side, own)))
	var files = FileFill(own)
	e.add(fPawnIsolated, side, PopCount(own&^(Left(files)|Right(files))))

	for x := own; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		e.add(fPawnPST+pawnSq24(side, sq), side, 1)
		if passed&SquareMask[sq] != 0 {
			e.add(fPassedPawn, side, 1)
			e.add(fPassedRank+relativeRankOf(side, sq)-Rank2, side, 1)
		}
	}
}

// pieceAttacks returns the squares attacked by piece on sq. Sliders look
// through friendly sliders moving along the same line: rooks and queens on
// ranks and files, bishops and queens on diagonals.
func (e *extractor) pieceAttacks(side, piece, sq int) uint64 {
	var own = &e.pieces[side]
	var rookOcc = e.occupied &^ (own[Rook] | own[Queen])
	var bishopOcc = e.occupied &^ (own[Bishop] | own[Queen])
	switch piece {
	case Knight:
		return KnightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, bishopOcc)
	case Rook:
		return RookAttacks(sq, rookOcc)
	case Queen:
		return RookAttacks(sq, rookOcc) | BishopAttacks(sq, bishopOcc)
	}
	panic("eval: not a major piece")
}

func (e *extractor) evalPieces(side int) {
	var them = side ^ 1
	var friends = e.colours[side]
	var enemies = e.colours[them]
	var unprotected = ^e.pawnAttacks[them]
	var kingZone = KingAttacks[e.kingSq[them]]

	for pt := Knight; pt <= Queen; pt++ {
		var mobility = mobilityFeature[pt-Knight]
		for x := e.pieces[side][pt]; x != 0; x &= x - 1 {
			var sq = FirstOne(x)
			var attacks = e.pieceAttacks(side, pt, sq)

			var safe = PopCount(attacks &^ friends & unprotected)
			e.add(mobility.index+min(safe, mobility.size-1), side, 1)

			e.add(fThreats+pt-Knight, side, PopCount(attacks&enemies))
			e.add(fSupports+pt-Knight, side, PopCount(attacks&friends))
			e.add(fControls+pt-Knight, side, PopCount(attacks&^e.occupied&unprotected))

			e.kingDanger[side] += PopCount(attacks & kingZone)

			if pt == Knight {
				e.add(fKnightPST+relativeSq32(side, sq), side, 1)
			}
		}
	}
}

func (e *extractor) evalKing(side int) {
	var sq = e.kingSq[side]
	e.add(fKingShield, side, PopCount(KingAttacks[sq]&e.pieces[side][Pawn]))
	e.add(fKingPST+relativeSq32(side, sq), side, 1)
}
