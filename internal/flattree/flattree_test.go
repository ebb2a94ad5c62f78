package flattree

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

type row struct {
	pt, eta, flavor, tag []float64
	met                  float64
	q2                   float64
}

func writeTree(t *testing.T, rows []row) string {
	t.Helper()

	fname := filepath.Join(t.TempDir(), "out.root")
	f, err := groot.Create(fname)
	require.NoError(t, err)

	var evt row
	wvars := []rtree.WriteVar{
		{Name: "jet_pt", Value: &evt.pt},
		{Name: "jet_eta", Value: &evt.eta},
		{Name: "jet_flavor", Value: &evt.flavor},
		{Name: "jet_sip3dtag", Value: &evt.tag},
		{Name: "met_et", Value: &evt.met},
		{Name: "Q2", Value: &evt.q2},
	}
	w, err := rtree.NewWriter(f, TreeName, wvars)
	require.NoError(t, err)

	for _, r := range rows {
		evt = r
		_, err = w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return fname
}

func TestScanRoundTrip(t *testing.T) {
	fname := writeTree(t, []row{
		{pt: []float64{12, 30}, eta: []float64{0.5, -2}, flavor: []float64{4, 21}, tag: []float64{1, 0}, met: 15, q2: 150},
		{pt: []float64{}, eta: []float64{}, flavor: []float64{}, tag: []float64{}, met: 3, q2: 200},
	})

	opts := Options{
		Branches: Branches{
			PT:       "jet_pt",
			Flavor:   "jet_flavor",
			SIP3DTag: "jet_sip3dtag",
			METET:    "met_et",
		},
		ExtraJet:   []string{"jet_eta"},
		ExtraEvent: []string{"Q2"},
	}

	var events []*Event
	err := Scan(context.Background(), []string{fname}, opts, func(evt *Event) error {
		events = append(events, evt)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, int64(0), first.Entry)
	assert.Equal(t, []float64{12, 30}, first.PT)
	assert.Equal(t, []float64{0.5, -2}, first.Extra["jet_eta"])
	assert.Equal(t, 150.0, first.Scalars["Q2"])
	assert.Equal(t, 15.0, first.METET)
	assert.Nil(t, first.Eta)

	jets := first.Jets()
	require.Len(t, jets, 2)
	assert.Equal(t, Jet{PT: 30, Flavor: 21, METET: 15}, jets[1])

	assert.Empty(t, events[1].Jets())
	assert.Equal(t, 3.0, events[1].METET)
}

func TestScanMaxEvents(t *testing.T) {
	fname := writeTree(t, []row{
		{pt: []float64{1}, eta: []float64{0}, flavor: []float64{1}, tag: []float64{0}},
		{pt: []float64{2}, eta: []float64{0}, flavor: []float64{1}, tag: []float64{0}},
		{pt: []float64{3}, eta: []float64{0}, flavor: []float64{1}, tag: []float64{0}},
	})

	n := 0
	err := Scan(context.Background(), []string{fname, fname}, Options{Branches: Branches{PT: "jet_pt"}, MaxEvents: 2}, func(*Event) error {
		n++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestScanMissingBranch(t *testing.T) {
	fname := writeTree(t, []row{{pt: []float64{1}, eta: []float64{0}, flavor: []float64{1}, tag: []float64{0}}})

	err := Scan(context.Background(), []string{fname}, Options{Branches: DefaultBranches()}, func(*Event) error { return nil })
	assert.Error(t, err, "jet_ktag is not in the tree")
}

func TestJetsPadsShortColumns(t *testing.T) {
	evt := Event{PT: []float64{10, 20}, Flavor: []float64{4}}
	jets := evt.Jets()
	require.Len(t, jets, 2)
	assert.Equal(t, 4.0, jets[0].Flavor)
	assert.Equal(t, 0.0, jets[1].Flavor)
}
