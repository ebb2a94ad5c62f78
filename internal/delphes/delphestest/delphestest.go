// Package delphestest writes small Delphes-shaped trees for tests.
package delphestest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/oleaaplot/internal/delphes"
)

type jetCols struct {
	pt, eta, phi, mass []float32
	flavor             []uint32
}

func (c *jetCols) set(jets []delphes.Jet) {
	*c = jetCols{}
	for _, j := range jets {
		c.pt = append(c.pt, float32(j.PT))
		c.eta = append(c.eta, float32(j.Eta))
		c.phi = append(c.phi, float32(j.Phi))
		c.mass = append(c.mass, float32(j.Mass))
		c.flavor = append(c.flavor, uint32(j.Flavor))
	}
}

func (c *jetCols) writeVars(prefix string) []rtree.WriteVar {
	return []rtree.WriteVar{
		{Name: prefix + ".PT", Value: &c.pt},
		{Name: prefix + ".Eta", Value: &c.eta},
		{Name: prefix + ".Phi", Value: &c.phi},
		{Name: prefix + ".Mass", Value: &c.mass},
		{Name: prefix + ".Flavor", Value: &c.flavor},
	}
}

type trackCols struct {
	uid                      []uint32
	pt, eta, phi             []float32
	d0, errorD0, dz, errorDZ []float32
	xd, yd, zd               []float32
}

func (c *trackCols) set(tracks []delphes.Track) {
	*c = trackCols{}
	for _, t := range tracks {
		c.uid = append(c.uid, t.UID)
		c.pt = append(c.pt, float32(t.PT))
		c.eta = append(c.eta, float32(t.Eta))
		c.phi = append(c.phi, float32(t.Phi))
		c.d0 = append(c.d0, float32(t.D0))
		c.errorD0 = append(c.errorD0, float32(t.ErrorD0))
		c.dz = append(c.dz, float32(t.DZ))
		c.errorDZ = append(c.errorDZ, float32(t.ErrorDZ))
		c.xd = append(c.xd, float32(t.Xd))
		c.yd = append(c.yd, float32(t.Yd))
		c.zd = append(c.zd, float32(t.Zd))
	}
}

func (c *trackCols) writeVars() []rtree.WriteVar {
	return []rtree.WriteVar{
		{Name: "Track.fUniqueID", Value: &c.uid},
		{Name: "Track.PT", Value: &c.pt},
		{Name: "Track.Eta", Value: &c.eta},
		{Name: "Track.Phi", Value: &c.phi},
		{Name: "Track.D0", Value: &c.d0},
		{Name: "Track.ErrorD0", Value: &c.errorD0},
		{Name: "Track.DZ", Value: &c.dz},
		{Name: "Track.ErrorDZ", Value: &c.errorDZ},
		{Name: "Track.Xd", Value: &c.xd},
		{Name: "Track.Yd", Value: &c.yd},
		{Name: "Track.Zd", Value: &c.zd},
	}
}

// WriteFile writes events as a Delphes tree to dir/name and returns the
// path.  Every event fills the Jet, GenJet and Track branches; nil slices
// give empty rows.
func WriteFile(t testing.TB, dir, name string, events []delphes.Event) string {
	t.Helper()

	fname := filepath.Join(dir, name)
	f, err := groot.Create(fname)
	require.NoError(t, err)

	var jets, genJets jetCols
	var tracks trackCols
	wvars := jets.writeVars("Jet")
	wvars = append(wvars, genJets.writeVars("GenJet")...)
	wvars = append(wvars, tracks.writeVars()...)

	w, err := rtree.NewWriter(f, delphes.TreeName, wvars)
	require.NoError(t, err)

	for _, evt := range events {
		jets.set(evt.Jets)
		genJets.set(evt.GenJets)
		tracks.set(evt.Tracks)
		_, err := w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return fname
}
