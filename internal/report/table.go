package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

// WriteTable prints one line per feature group in layout order.
func WriteTable(w io.Writer, weights eval.Weights) error {
	if len(weights) != eval.FeatureSize {
		return fmt.Errorf("table: %v weights, %v features", len(weights), eval.FeatureSize)
	}
	for _, f := range eval.Features() {
		var sb strings.Builder
		sb.WriteString(f.Name)
		for i := f.Index; i < f.Index+f.Size; i++ {
			sb.WriteByte(' ')
			sb.WriteString(weights[i].String())
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteGo prints the weights as Go source, midgame and endgame interleaved.
func WriteGo(w io.Writer, weights eval.Weights) error {
	var flat = make([]int, 0, 2*len(weights))
	for _, s := range weights {
		flat = append(flat, s.Mg(), s.Eg())
	}
	_, err := fmt.Fprintf(w, "var w = %#v\n", flat)
	return err
}

// ParseGo reads weights written by WriteGo.
func ParseGo(s string) (eval.Weights, error) {
	var start = strings.Index(s, "{")
	var end = strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("parse weights: no literal in %q", s)
	}
	var fields = strings.Split(s[start+1:end], ",")
	var values []int
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var v int
		if _, err := fmt.Sscan(field, &v); err != nil {
			return nil, fmt.Errorf("parse weights: %w", err)
		}
		values = append(values, v)
	}
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("parse weights: odd number of values %v", len(values))
	}
	var result = make(eval.Weights, len(values)/2)
	for i := range result {
		result[i] = eval.S(values[2*i], values[2*i+1])
	}
	return result, nil
}
