package tagging

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/oleaaplot/internal/delphes"
)

var (
	charmJet   = delphes.Jet{PT: 20, Eta: 0, Phi: 0, Flavor: 4}
	lightJet   = delphes.Jet{PT: 15, Eta: 0.3, Phi: 0.2, Flavor: 1}
	forwardJet = delphes.Jet{PT: 25, Eta: 4, Phi: 0, Flavor: 2}

	tracks = []delphes.Track{
		// inside both the charm and the light jet, displaced along +x
		{UID: 1, PT: 2, Eta: 0.1, Phi: 0.1, D0: 0.03, ErrorD0: 0.01, DZ: 0.04, ErrorDZ: 0.01, Xd: 1},
		// too soft for matching
		{UID: 2, PT: 0.5, Eta: 0, Phi: 0.2, D0: 0.01, ErrorD0: 0.01, DZ: 0, ErrorDZ: 0.01, Zd: 1},
		// inside the light jet only, displaced along -x
		{UID: 3, PT: 3, Eta: 0.3, Phi: 0.6, D0: 0.06, ErrorD0: 0.02, DZ: 0.08, ErrorDZ: 0.02, Xd: -1},
		// only near the forward jet, which fails the eta cut
		{UID: 4, PT: 5, Eta: 4, Phi: 0, D0: 0.01, ErrorD0: 0.01, DZ: 0.01, ErrorDZ: 0.01, Xd: 1},
	}

	approx = cmpopts.EquateApprox(0, 1e-9)
)

func TestSignificance(t *testing.T) {
	assert.InDelta(t, 5.0, Significance(charmJet, tracks[0]), 1e-9)
	assert.InDelta(t, -5.0, Significance(lightJet, tracks[2]), 1e-9)
	assert.InDelta(t, 0.05, IP3D(tracks[0]), 1e-12)
	assert.InDelta(t, 0.06, IP2D(tracks[2]), 1e-12)
}

func TestTrackSignificances(t *testing.T) {
	got := TrackSignificances([]delphes.Jet{charmJet, lightJet, forwardJet}, tracks, DefaultCuts())
	want := []float64{5, Unassigned, -5, Unassigned}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("significances (-want +got):\n%s", diff)
	}
}

func TestJetTrackSignificances(t *testing.T) {
	got := JetTrackSignificances([]delphes.Jet{charmJet, lightJet, forwardJet}, tracks, DefaultCuts())
	want := [][]float64{{5}, {5, -5}, nil}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("per-jet significances (-want +got):\n%s", diff)
	}
}

func TestTrackSourceFlavorKeepsHeavyFlavor(t *testing.T) {
	got := TrackSourceFlavor([]delphes.Jet{charmJet, lightJet}, tracks, DefaultCuts())
	assert.Equal(t, []float64{4, Unmatched, 1, Unmatched}, got)
}

func TestTrackSourceFlavorLastLightJetWins(t *testing.T) {
	gluonJet := delphes.Jet{PT: 10, Eta: 0.1, Phi: 0.1, Flavor: 21}
	got := TrackSourceFlavor([]delphes.Jet{lightJet, gluonJet}, tracks, DefaultCuts())
	assert.Equal(t, []float64{21, Unmatched, 1, Unmatched}, got)
}

func TestLeadingTracks(t *testing.T) {
	infos := LeadingTracks(charmJet, tracks, 4, 0.5)
	require.Len(t, infos, 2)
	assert.Equal(t, 2.0, infos[0].PT)
	assert.InDelta(t, 5.0, infos[0].SIP3D, 1e-9)
	assert.Equal(t, 0.5, infos[1].PT)
	// perpendicular to the jet counts as the negative hemisphere
	assert.InDelta(t, -1.0, infos[1].SIP3D, 1e-9)
	assert.Equal(t, 0.01, infos[1].D0Err)

	assert.Len(t, LeadingTracks(charmJet, tracks, 1, 0.5), 1)
	assert.Empty(t, LeadingTracks(forwardJet, tracks[:3], 4, 0.5))
}

func TestSIP3DTagged(t *testing.T) {
	cuts := DefaultTagCuts()
	assert.False(t, SIP3DTagged(charmJet, tracks, cuts))

	displaced := append([]delphes.Track{
		{PT: 1.5, Eta: -0.1, Phi: -0.1, D0: 0.05, ErrorD0: 0.01, DZ: 0, ErrorDZ: 1, Xd: 1},
	}, tracks...)
	assert.True(t, SIP3DTagged(charmJet, displaced, cuts))

	cuts.MinTracks = 3
	assert.False(t, SIP3DTagged(charmJet, displaced, cuts))
}

func TestKaonTagged(t *testing.T) {
	assert.True(t, KaonTagged(20, 5, 4.5, 1))
	assert.True(t, KaonTagged(20, 5, -4.5, 1))
	assert.False(t, KaonTagged(20, 5, 4.5, -1), "negative kaon")
	assert.False(t, KaonTagged(20, 1, 4.5, 1), "soft kaon")
	assert.False(t, KaonTagged(20, 10, 4.5, 1), "hard kaon")
	assert.False(t, KaonTagged(20, 5, 3, 1), "prompt kaon")
	assert.False(t, KaonTagged(0, 5, 5, 1))
}
