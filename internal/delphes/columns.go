package delphes

import (
	"go-hep.org/x/hep/groot/rtree"
)

type jetColumns struct {
	PT, Eta, Phi, Mass []float32
	Flavor             []uint32
}

func (c *jetColumns) readVars(prefix string) []rtree.ReadVar {
	return []rtree.ReadVar{
		{Name: prefix + ".PT", Value: &c.PT},
		{Name: prefix + ".Eta", Value: &c.Eta},
		{Name: prefix + ".Phi", Value: &c.Phi},
		{Name: prefix + ".Mass", Value: &c.Mass},
		{Name: prefix + ".Flavor", Value: &c.Flavor},
	}
}

func (c *jetColumns) jets() []Jet {
	n := minLen(len(c.PT), len(c.Eta), len(c.Phi), len(c.Mass), len(c.Flavor))
	jets := make([]Jet, n)
	for i := range jets {
		jets[i] = Jet{
			PT:     float64(c.PT[i]),
			Eta:    float64(c.Eta[i]),
			Phi:    float64(c.Phi[i]),
			Mass:   float64(c.Mass[i]),
			Flavor: float64(c.Flavor[i]),
		}
	}
	return jets
}

type trackColumns struct {
	UID                      []uint32
	PT, Eta, Phi             []float32
	D0, ErrorD0, DZ, ErrorDZ []float32
	Xd, Yd, Zd               []float32
}

func (c *trackColumns) readVars() []rtree.ReadVar {
	return []rtree.ReadVar{
		{Name: "Track.fUniqueID", Value: &c.UID},
		{Name: "Track.PT", Value: &c.PT},
		{Name: "Track.Eta", Value: &c.Eta},
		{Name: "Track.Phi", Value: &c.Phi},
		{Name: "Track.D0", Value: &c.D0},
		{Name: "Track.ErrorD0", Value: &c.ErrorD0},
		{Name: "Track.DZ", Value: &c.DZ},
		{Name: "Track.ErrorDZ", Value: &c.ErrorDZ},
		{Name: "Track.Xd", Value: &c.Xd},
		{Name: "Track.Yd", Value: &c.Yd},
		{Name: "Track.Zd", Value: &c.Zd},
	}
}

func (c *trackColumns) tracks() []Track {
	n := minLen(len(c.UID), len(c.PT), len(c.Eta), len(c.Phi),
		len(c.D0), len(c.ErrorD0), len(c.DZ), len(c.ErrorDZ),
		len(c.Xd), len(c.Yd), len(c.Zd))
	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = Track{
			UID:     c.UID[i],
			PT:      float64(c.PT[i]),
			Eta:     float64(c.Eta[i]),
			Phi:     float64(c.Phi[i]),
			D0:      float64(c.D0[i]),
			ErrorD0: float64(c.ErrorD0[i]),
			DZ:      float64(c.DZ[i]),
			ErrorDZ: float64(c.ErrorDZ[i]),
			Xd:      float64(c.Xd[i]),
			Yd:      float64(c.Yd[i]),
			Zd:      float64(c.Zd[i]),
		}
	}
	return tracks
}

// columns holds the buffers the tree reader fills for one entry.
type columns struct {
	branches Branch
	jet      jetColumns
	genJet   jetColumns
	track    trackColumns
}

func (c *columns) readVars() []rtree.ReadVar {
	var rvars []rtree.ReadVar
	if c.branches.has(Jets) {
		rvars = append(rvars, c.jet.readVars("Jet")...)
	}
	if c.branches.has(GenJets) {
		rvars = append(rvars, c.genJet.readVars("GenJet")...)
	}
	if c.branches.has(Tracks) {
		rvars = append(rvars, c.track.readVars()...)
	}
	return rvars
}

func (c *columns) event(file string, entry int64) *Event {
	evt := &Event{File: file, Entry: entry}
	if c.branches.has(Jets) {
		evt.Jets = c.jet.jets()
	}
	if c.branches.has(GenJets) {
		evt.GenJets = c.genJet.jets()
	}
	if c.branches.has(Tracks) {
		evt.Tracks = c.track.tracks()
	}
	return evt
}

func minLen(lens ...int) int {
	n := lens[0]
	for _, l := range lens[1:] {
		if l < n {
			n = l
		}
	}
	return n
}
