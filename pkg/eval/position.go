package eval

import (
	"errors"
	"fmt"
	"strings"

	. "github.com/ChizhovVadim/CounterTexel/pkg/common"
)

var (
	ErrBadPiece      = errors.New("bad piece")
	ErrBadBoard      = errors.New("bad board")
	ErrKings         = errors.New("each side needs exactly one king")
	ErrMissingResult = errors.New("missing game result")
)

// ParseError reports a malformed position record.
type ParseError struct {
	Line   int
	Record string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: parse %q: %v", e.Line, e.Record, e.Err)
	}
	return fmt.Sprintf("parse %q: %v", e.Record, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Position is a labeled training position. It is immutable once parsed.
type Position struct {
	Features [FeatureSize]int16
	Phase    int16
	Result   float32
}

type board struct {
	pieces   [COLOUR_NB][PIECE_NB]uint64
	colours  [COLOUR_NB]uint64
	occupied uint64
	phase    int
}

// ParsePosition parses a record of the form
//
//	rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - c9 "1/2-1/2";
//
// Fields between the board and the result are ignored.
func ParsePosition(record string) (Position, error) {
	var index = strings.IndexByte(record, '"')
	if index < 0 {
		return Position{}, &ParseError{Record: record, Err: ErrMissingResult}
	}
	var fields = strings.Fields(record[:index])
	if len(fields) == 0 {
		return Position{}, &ParseError{Record: record, Err: fmt.Errorf("%w: empty", ErrBadBoard)}
	}
	var b, err = parseBoard(fields[0])
	if err != nil {
		return Position{}, &ParseError{Record: record, Err: err}
	}
	var pos = Position{
		Phase:  int16(Limit(b.phase, 0, TotalPhase)),
		Result: parseResult(record[index+1:]),
	}
	b.computeFeatures(&pos.Features)
	return pos, nil
}

// parseResult maps the annotation after the opening quote. Anything that is
// not a decisive result counts as a draw.
func parseResult(s string) float32 {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "1-0") {
		return 1
	}
	if strings.HasPrefix(s, "0-1") {
		return 0
	}
	return 0.5
}

func parseBoard(s string) (board, error) {
	var b board
	var rank, file = Rank8, FileA
	for i := 0; i < len(s); i++ {
		var ch = s[i]
		switch {
		case ch == '/':
			if file != 8 {
				return board{}, fmt.Errorf("%w: rank %d has %d squares", ErrBadBoard, rank+1, file)
			}
			if rank == Rank1 {
				return board{}, fmt.Errorf("%w: too many ranks", ErrBadBoard)
			}
			rank--
			file = FileA
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
			if file > 8 {
				return board{}, fmt.Errorf("%w: rank %d has more than 8 squares", ErrBadBoard, rank+1)
			}
		default:
			var piece, side, ok = ParsePiece(ch)
			if !ok {
				return board{}, fmt.Errorf("%w %q", ErrBadPiece, ch)
			}
			if file >= 8 {
				return board{}, fmt.Errorf("%w: rank %d has more than 8 squares", ErrBadBoard, rank+1)
			}
			if piece == Pawn && (rank == Rank1 || rank == Rank8) {
				return board{}, fmt.Errorf("%w: pawn on %v", ErrBadBoard, SquareName(MakeSquare(file, rank)))
			}
			b.put(piece, side, MakeSquare(file, rank))
			file++
		}
	}
	if rank != Rank1 || file != 8 {
		return board{}, fmt.Errorf("%w: incomplete board", ErrBadBoard)
	}
	if PopCount(b.pieces[SideWhite][King]) != 1 || PopCount(b.pieces[SideBlack][King]) != 1 {
		return board{}, ErrKings
	}
	return b, nil
}

func (b *board) put(piece, side, sq int) {
	var x = SquareMask[sq]
	b.pieces[side][piece] |= x
	b.colours[side] |= x
	b.occupied |= x
	b.phase += phaseWeight[piece]
}
