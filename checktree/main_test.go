package main

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/oleaaplot/internal/flattree"
)

func writeTree(t *testing.T, path string, pt, sip [][]float64) {
	t.Helper()

	f, err := groot.Create(path)
	require.NoError(t, err)

	var jetPT, jetSIP []float64
	w, err := rtree.NewWriter(f, flattree.TreeName, []rtree.WriteVar{
		{Name: "jet_pt", Value: &jetPT},
		{Name: "jet_t1_sIP3D", Value: &jetSIP},
	})
	require.NoError(t, err)

	for i := range pt {
		jetPT, jetSIP = pt[i], sip[i]
		_, err := w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.root")
	writeTree(t, path,
		[][]float64{{10, 20}, {15}, {30}},
		[][]float64{{1, 2}, {math.NaN()}, {}},
	)

	var buf bytes.Buffer
	n, err := check(context.Background(), []string{path}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, buf.String(), "event 1: jet 0 has jet_t1_sIP3D that is NaN")
	assert.Contains(t, buf.String(), "event 2: mismatch in number of jets")
}

func TestCheckClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.root")
	writeTree(t, path, [][]float64{{10}, {}}, [][]float64{{3.5}, {}})

	var buf bytes.Buffer
	n, err := check(context.Background(), []string{path}, &buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())
}
