package report

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

func testWeights() eval.Weights {
	var w = eval.DefaultWeights()
	for i := range w {
		if w[i] == (eval.Score{}) {
			w[i] = eval.S(i%7-3, -(i % 5))
		}
	}
	return w
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, testWeights()); err != nil {
		t.Fatal(err)
	}
	var lines = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	var features = eval.Features()
	if len(lines) != len(features) {
		t.Fatalf("got %v lines, want %v", len(lines), len(features))
	}
	for i, f := range features {
		var fields = strings.SplitN(lines[i], " ", 2)
		if fields[0] != f.Name {
			t.Errorf("line %v: %q", i, fields[0])
		}
		if n := strings.Count(lines[i], "S("); n != f.Size {
			t.Errorf("%v: %v values, want %v", f.Name, n, f.Size)
		}
	}
	if lines[4] != "QueenValue S(900, 900)" {
		t.Errorf("got %q", lines[4])
	}
}

func TestWriteTableSize(t *testing.T) {
	if err := WriteTable(io.Discard, eval.Weights{eval.S(1, 1)}); err == nil {
		t.Error("expected error")
	}
}

func TestWriteGoRoundTrip(t *testing.T) {
	var weights = testWeights()
	var buf bytes.Buffer
	if err := WriteGo(&buf, weights); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "var w = []int{100, 100, 300, 300,") {
		t.Errorf("got %.40q", buf.String())
	}
	parsed, err := ParseGo(buf.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != len(weights) {
		t.Fatalf("got %v weights", len(parsed))
	}
	for i := range weights {
		if parsed[i] != weights[i] {
			t.Errorf("weight %v: got %v, want %v", i, parsed[i], weights[i])
		}
	}
}

func TestParseGoErrors(t *testing.T) {
	for _, s := range []string{"", "var w = []int{1, 2, 3}", "var w = []int{1, x}"} {
		if _, err := ParseGo(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestWriteHeatMap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeatMap(&buf, testWeights()); err != nil {
		t.Fatal(err)
	}
	var out = buf.String()
	for _, name := range []string{"PawnPST mg", "KnightPST eg", "KingPST mg"} {
		if !strings.Contains(out, name) {
			t.Errorf("missing %q", name)
		}
	}
	// 3 groups, 2 phases, 64 cells, plus the background
	if n := strings.Count(out, "<rect"); n != 3*2*64+1 {
		t.Errorf("got %v rects", n)
	}
	var decoder = xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid svg: %v", err)
		}
	}
}

func TestCellStyle(t *testing.T) {
	var tests = []struct {
		v, maxAbs int
		want      string
	}{
		{0, 10, "fill:rgb(255,255,255)"},
		{10, 10, "fill:rgb(55,255,55)"},
		{-10, 10, "fill:rgb(255,55,55)"},
	}
	for _, test := range tests {
		if got := cellStyle(test.v, test.maxAbs); got != test.want {
			t.Errorf("cellStyle(%v, %v) = %v, want %v", test.v, test.maxAbs, got, test.want)
		}
	}
}
