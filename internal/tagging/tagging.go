// Package tagging matches tracks to jets and computes the track-level
// observables used for charm jet tagging.
package tagging

import (
	"math"
	"sort"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/delphes"
)

const (
	// Unassigned marks a track significance with no matching jet.
	Unassigned = -999.0
	// Unmatched marks a track source flavor with no matching jet.
	Unmatched = -1.0
)

// Cuts select the jets and tracks considered for matching.  A track matches
// a jet when it passes MinTrackPT and lies within MaxDeltaR of a jet with
// |eta| <= MaxJetEta.
type Cuts struct {
	MaxJetEta  float64
	MinTrackPT float64
	MaxDeltaR  float64
}

func DefaultCuts() Cuts {
	return Cuts{MaxJetEta: 3.5, MinTrackPT: 1.0, MaxDeltaR: 0.5}
}

func (c Cuts) jetOK(jet delphes.Jet) bool {
	return math.Abs(jet.Eta) <= c.MaxJetEta
}

func (c Cuts) matches(jet delphes.Jet, trk delphes.Track) bool {
	if trk.PT < c.MinTrackPT {
		return false
	}
	return oleaaplot.DeltaR(trk.Eta, trk.Phi, jet.Eta, jet.Phi) <= c.MaxDeltaR
}

// Significance is the 3D impact parameter significance of trk, signed
// positive when the point of closest approach lies in the hemisphere of the
// jet momentum.
func Significance(jet delphes.Jet, trk delphes.Track) float64 {
	sig := math.Hypot(trk.D0/trk.ErrorD0, trk.DZ/trk.ErrorDZ)
	if !oleaaplot.SameHemisphere(jet.PT, jet.Eta, jet.Phi, [3]float64{trk.Xd, trk.Yd, trk.Zd}) {
		sig = -sig
	}
	return sig
}

// IP3D is the unsigned 3D impact parameter of trk.
func IP3D(trk delphes.Track) float64 {
	return math.Hypot(trk.D0, trk.DZ)
}

// IP2D is the transverse impact parameter of trk.
func IP2D(trk delphes.Track) float64 {
	return math.Abs(trk.D0)
}

// TrackSignificances returns one significance per track, computed against
// the first jet that the track matches, or Unassigned.
func TrackSignificances(jets []delphes.Jet, tracks []delphes.Track, cuts Cuts) []float64 {
	sigs := make([]float64, len(tracks))
	for i := range sigs {
		sigs[i] = Unassigned
	}

	for _, jet := range jets {
		if !cuts.jetOK(jet) {
			continue
		}
		for i, trk := range tracks {
			if sigs[i] != Unassigned || !cuts.matches(jet, trk) {
				continue
			}
			sigs[i] = Significance(jet, trk)
		}
	}
	return sigs
}

// JetTrackSignificances returns, for each jet, the significances of the
// tracks matching it.  Jets failing the eta cut get no tracks.  A track may
// appear under several jets.
func JetTrackSignificances(jets []delphes.Jet, tracks []delphes.Track, cuts Cuts) [][]float64 {
	sigs := make([][]float64, len(jets))
	for j, jet := range jets {
		if !cuts.jetOK(jet) {
			continue
		}
		for _, trk := range tracks {
			if cuts.matches(jet, trk) {
				sigs[j] = append(sigs[j], Significance(jet, trk))
			}
		}
	}
	return sigs
}

// TrackSourceFlavor assigns each track the flavor of the jet it matches.
// When several jets match, the last one wins unless an earlier match was a
// charm or bottom jet, which is kept.
func TrackSourceFlavor(jets []delphes.Jet, tracks []delphes.Track, cuts Cuts) []float64 {
	flavors := make([]float64, len(tracks))
	for i := range flavors {
		flavors[i] = Unmatched
	}

	for _, jet := range jets {
		if !cuts.jetOK(jet) {
			continue
		}
		for i, trk := range tracks {
			if flavors[i] == oleaaplot.FlavorCharm || flavors[i] == oleaaplot.FlavorBottom {
				continue
			}
			if cuts.matches(jet, trk) {
				flavors[i] = jet.Flavor
			}
		}
	}
	return flavors
}

// TrackInfo summarises one track inside a jet.
type TrackInfo struct {
	PT         float64
	D0, D0Err  float64
	Z0, Z0Err  float64
	SIP3D      float64
	IP3D, IP2D float64
}

// LeadingTracks returns up to n tracks within maxDR of jet, in decreasing
// order of transverse momentum.
func LeadingTracks(jet delphes.Jet, tracks []delphes.Track, n int, maxDR float64) []TrackInfo {
	var inJet []delphes.Track
	for _, trk := range tracks {
		if oleaaplot.DeltaR(jet.Eta, jet.Phi, trk.Eta, trk.Phi) < maxDR {
			inJet = append(inJet, trk)
		}
	}
	sort.SliceStable(inJet, func(i, j int) bool {
		return inJet[i].PT > inJet[j].PT
	})
	if len(inJet) > n {
		inJet = inJet[:n]
	}

	infos := make([]TrackInfo, len(inJet))
	for i, trk := range inJet {
		infos[i] = TrackInfo{
			PT:    trk.PT,
			D0:    trk.D0,
			D0Err: trk.ErrorD0,
			Z0:    trk.DZ,
			Z0Err: trk.ErrorDZ,
			SIP3D: Significance(jet, trk),
			IP3D:  IP3D(trk),
			IP2D:  IP2D(trk),
		}
	}
	return infos
}
