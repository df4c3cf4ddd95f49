package common

import (
	"strings"

	"golang.org/x/exp/constraints"
)

// Limit clamps v into [min, max].
func Limit[T constraints.Integer](v, min, max T) T {
	if v <= min {
		return min
	}
	if v >= max {
		return max
	}
	return v
}

// ParsePiece decodes a board letter. Upper case is white.
func ParsePiece(ch byte) (piece, side int, ok bool) {
	side = SideBlack
	if ch >= 'A' && ch <= 'Z' {
		side = SideWhite
		ch += 'a' - 'A'
	}
	piece = strings.IndexByte(pieceNames, ch)
	if piece < 0 {
		return 0, 0, false
	}
	return piece, side, true
}
