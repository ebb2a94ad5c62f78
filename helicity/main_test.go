package main

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/plot/plotter"

	"github.com/decibelcooper/oleaaplot/internal/flattree"
	"github.com/decibelcooper/oleaaplot/internal/yields"
)

func TestTaggedCharmValues(t *testing.T) {
	evt := &flattree.Event{
		PT:       []float64{12, 20, 30, 40},
		Eta:      []float64{0.1, 0.2, 0.3, 0.4},
		Flavor:   []float64{4, 4, 1, 4},
		SIP3DTag: []float64{1, 0, 1, 1},
		Scalars:  map[string]float64{"bjorken_x": 0.05},
	}

	for _, tc := range []struct {
		xvar string
		want []float64
	}{
		{"pt", []float64{12, 40}},
		{"eta", []float64{0.1, 0.4}},
		{"bjorken_x", []float64{0.05, 0.05}},
	} {
		t.Run(tc.xvar, func(t *testing.T) {
			got := taggedCharmValues(evt, drawConfigs[tc.xvar])
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorBoxes(t *testing.T) {
	bins := yields.Bins{
		Centers: []float64{11, 14, 20},
		Widths:  []float64{2, 4, 8},
	}
	dA := []float64{5, math.NaN(), 250}

	got := errorBoxes(bins, dA, 100)
	want := []plotter.XYs{
		{{X: 10, Y: -5}, {X: 12, Y: -5}, {X: 12, Y: 5}, {X: 10, Y: 5}},
		{{X: 16, Y: -100}, {X: 24, Y: -100}, {X: 24, Y: 100}, {X: 16, Y: 100}},
	}
	assert.Equal(t, want, got)
}
