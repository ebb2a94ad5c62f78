package treecheck

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/oleaaplot/internal/flattree"
)

func TestCheckClean(t *testing.T) {
	evt := &flattree.Event{PT: []float64{10, 20}, T1SIP3D: []float64{1.5, -3}}
	assert.Empty(t, Check(evt))
	assert.Empty(t, Check(&flattree.Event{}))
}

func TestCheckFindsIssues(t *testing.T) {
	evt := &flattree.Event{
		File:    "out.root",
		Entry:   7,
		PT:      []float64{10, 20},
		T1SIP3D: []float64{math.NaN(), 2, math.Inf(-1)},
	}

	issues := Check(evt)
	require.Len(t, issues, 3)
	assert.Equal(t, LengthMismatch, issues[0].Kind)
	assert.Equal(t, -1, issues[0].Jet)
	assert.Equal(t, NaN, issues[1].Kind)
	assert.Equal(t, 0, issues[1].Jet)
	assert.Equal(t, Inf, issues[2].Kind)
	assert.Equal(t, 2, issues[2].Jet)

	assert.Equal(t, "out.root event 7: mismatch in number of jets and jet_t1_sIP3D vector length", issues[0].String())
	assert.Equal(t, "out.root event 7: jet 2 has jet_t1_sIP3D that is infinite in value (-Inf)", issues[2].String())
}
