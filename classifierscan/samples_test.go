package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/oleaaplot/internal/classifier"
)

var testBranches = branches{Score: "MLP", PT: "jet_PT", Eta: "jet_Eta", Flavor: "jet_flavor"}

func writeSamples(t *testing.T, path string, samples []classifier.Sample) {
	t.Helper()

	f, err := groot.Create(path)
	require.NoError(t, err)
	defer f.Close()

	dir, err := riofs.Dir(f).Mkdir("dataset")
	require.NoError(t, err)

	var score, pt, eta, flavor float32
	w, err := rtree.NewWriter(dir, "TestTree", []rtree.WriteVar{
		{Name: testBranches.Score, Value: &score},
		{Name: testBranches.PT, Value: &pt},
		{Name: testBranches.Eta, Value: &eta},
		{Name: testBranches.Flavor, Value: &flavor},
	})
	require.NoError(t, err)

	for _, smp := range samples {
		score, pt, eta, flavor = float32(smp.Score), float32(smp.PT), float32(smp.Eta), float32(smp.Flavor)
		_, err := w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestReadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.root")
	want := []classifier.Sample{
		{Score: 0.25, PT: 12, Eta: -1.5, Flavor: 4},
		{Score: 0.75, PT: 30, Eta: 0.5, Flavor: 21},
	}
	writeSamples(t, path, want)

	got, err := readSamples(path, "dataset/TestTree", testBranches)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}

	_, err = readSamples(path, "dataset/TrainTree", testBranches)
	assert.Error(t, err)
}

func TestScores(t *testing.T) {
	samples := []classifier.Sample{
		{Score: 0.1, Flavor: 4},
		{Score: 0.2, Flavor: 1},
		{Score: 0.3, Flavor: 5},
		{Score: 0.4, Flavor: 21},
	}
	assert.Equal(t, []float64{0.1}, scores(samples, func(f float64) bool { return f == 4 }))
	assert.Equal(t, []float64{0.2, 0.4}, scores(samples, func(f float64) bool { return f < 4 || f == 21 }))
}
