package common

import "math/bits"

// sliderMask holds the per-square lines used by the o^(o-2r) fill.
// Every line excludes the square itself.
type sliderMask struct {
	bit      uint64
	reversed uint64 // bit after byte reversal
	diagonal uint64 // a1-h8 direction
	anti     uint64 // a8-h1 direction
	file     uint64
	east     uint64
	west     uint64
}

var (
	sliderMasks [SQUARE_NB]sliderMask
	// westFill[sq] holds the squares between the a-file and sq on the rank of sq.
	westFill [SQUARE_NB]uint64
)

func initSliders() {
	for sq := 0; sq < SQUARE_NB; sq++ {
		var bit = SquareMask[sq]
		var f, r = File(sq), Rank(sq)
		var m = &sliderMasks[sq]
		m.bit = bit
		m.reversed = bits.ReverseBytes64(bit)
		for s := 0; s < SQUARE_NB; s++ {
			if s == sq {
				continue
			}
			if File(s)-Rank(s) == f-r {
				m.diagonal |= SquareMask[s]
			}
			if File(s)+Rank(s) == f+r {
				m.anti |= SquareMask[s]
			}
		}
		m.file = FileMask[f] ^ bit
		m.west = (bit - 1) & RankMask[r]
		m.east = RankMask[r] ^ m.west ^ bit
		westFill[sq] = m.west
	}
}

// lineAttacks computes the attacks along a line that the byte reversal mirrors
// correctly (files and diagonals).
func lineAttacks(m *sliderMask, line, occ uint64) uint64 {
	var forward = occ & line
	var reverse = bits.ReverseBytes64(forward)
	forward -= m.bit
	reverse -= m.reversed
	forward ^= bits.ReverseBytes64(reverse)
	return forward & line
}

func BishopAttacks(from int, occ uint64) uint64 {
	var m = &sliderMasks[from]
	return lineAttacks(m, m.diagonal, occ) | lineAttacks(m, m.anti, occ)
}

func RookAttacks(from int, occ uint64) uint64 {
	var m = &sliderMasks[from]
	var fileAttacks = lineAttacks(m, m.file, occ)

	// nearest blocker to the east is the lowest set bit
	var e = m.east & occ
	var blocker = e & -e
	var east = (blocker ^ (blocker - m.bit)) & m.east

	// nearest blocker to the west is the highest set bit, a1 when there is none
	var top = 63 ^ bits.LeadingZeros64((m.west&occ)|1)
	var west = m.west ^ westFill[top]

	return fileAttacks | east | west
}
