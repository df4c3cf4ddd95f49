package report

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/ChizhovVadim/CounterTexel/pkg/common"
	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

const (
	cellSize    = 32
	boardSize   = 8 * cellSize
	margin      = 24
	titleHeight = 24
)

// WriteHeatMap draws the midgame and endgame piece-square weights as boards
// shaded by value: green is positive, red negative.
func WriteHeatMap(w io.Writer, weights eval.Weights) error {
	if len(weights) != eval.FeatureSize {
		return fmt.Errorf("heat map: %v weights, %v features", len(weights), eval.FeatureSize)
	}
	var groups []eval.FeatureInfo
	for _, f := range eval.Features() {
		if _, ok := eval.PieceSquareIndex(f, common.SquareE4); ok {
			groups = append(groups, f)
		}
	}

	var rowHeight = titleHeight + boardSize + margin
	var width = 2*boardSize + 3*margin
	var height = margin + len(groups)*rowHeight

	var canvas = svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	for row, f := range groups {
		var y = margin + row*rowHeight
		for part := eval.Opening; part <= eval.Endgame; part++ {
			var x = margin + part*(boardSize+margin)
			canvas.Text(x, y+titleHeight-8, fmt.Sprintf("%v %v", f.Name, phaseNames[part]),
				"font-family:monospace;font-size:14px")
			drawBoard(canvas, x, y+titleHeight, f, weights, part)
		}
	}
	canvas.End()
	return nil
}

var phaseNames = [2]string{"mg", "eg"}

func drawBoard(canvas *svg.SVG, x, y int, f eval.FeatureInfo, weights eval.Weights, part int) {
	var maxAbs = 1
	for i := f.Index; i < f.Index+f.Size; i++ {
		maxAbs = max(maxAbs, abs(weights[i][part]))
	}
	for sq := 0; sq < common.SQUARE_NB; sq++ {
		var cx = x + common.File(sq)*cellSize
		var cy = y + (common.Rank8-common.Rank(sq))*cellSize
		var index, ok = eval.PieceSquareIndex(f, sq)
		if !ok {
			canvas.Rect(cx, cy, cellSize, cellSize, "fill:lightgray;stroke:gray")
			continue
		}
		var v = weights[index][part]
		canvas.Rect(cx, cy, cellSize, cellSize, cellStyle(v, maxAbs)+";stroke:gray")
		canvas.Text(cx+cellSize/2, cy+cellSize/2+4, fmt.Sprint(v),
			"text-anchor:middle;font-family:monospace;font-size:10px")
	}
}

func cellStyle(v, maxAbs int) string {
	var shade = 255 - 200*abs(v)/maxAbs
	if v >= 0 {
		return fmt.Sprintf("fill:rgb(%d,255,%d)", shade, shade)
	}
	return fmt.Sprintf("fill:rgb(255,%d,%d)", shade, shade)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
