package tagging

import (
	"math"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/delphes"
)

// TagCuts configure the sIP3D jet tag: a jet is tagged when at least
// MinTracks tracks with pT above MinPT inside the jet cone have a
// significance above MinSignificance.
type TagCuts struct {
	MinSignificance float64
	MinPT           float64
	MinTracks       int
	MaxDeltaR       float64
}

func DefaultTagCuts() TagCuts {
	return TagCuts{MinSignificance: 3.0, MinPT: 0.25, MinTracks: 2, MaxDeltaR: 0.5}
}

func SIP3DTagged(jet delphes.Jet, tracks []delphes.Track, cuts TagCuts) bool {
	n := 0
	for _, trk := range tracks {
		if trk.PT < cuts.MinPT {
			continue
		}
		if oleaaplot.DeltaR(jet.Eta, jet.Phi, trk.Eta, trk.Phi) >= cuts.MaxDeltaR {
			continue
		}
		if Significance(jet, trk) > cuts.MinSignificance {
			n++
		}
	}
	return n >= cuts.MinTracks
}

// KaonTagged applies the leading-kaon charm tag: the leading kaon carries
// between 10% and 40% of the jet pT, is displaced (|sIP3D| > 4) and is
// positively charged.
func KaonTagged(jetPT, kaonPT, kaonSIP3D, kaonCharge float64) bool {
	if jetPT <= 0 {
		return false
	}
	ratio := kaonPT / jetPT
	return 0.1 < ratio && ratio < 0.4 && math.Abs(kaonSIP3D) > 4.0 && kaonCharge > 0
}
