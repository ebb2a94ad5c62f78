package delphes

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsEvent(t *testing.T) {
	cols := columns{branches: Jets | Tracks}
	cols.jet = jetColumns{
		PT:     []float32{20, 8},
		Eta:    []float32{0.5, -1},
		Phi:    []float32{1, 2},
		Mass:   []float32{3, 1},
		Flavor: []uint32{4, 21},
	}
	cols.track = trackColumns{
		UID:     []uint32{7},
		PT:      []float32{2.5},
		Eta:     []float32{0.4},
		Phi:     []float32{1.1},
		D0:      []float32{0.01},
		ErrorD0: []float32{0.002},
		DZ:      []float32{0.02},
		ErrorDZ: []float32{0.004},
		Xd:      []float32{0.1},
		Yd:      []float32{0.2},
		Zd:      []float32{0.3},
	}

	evt := cols.event("f.root", 3)
	assert.Equal(t, "f.root", evt.File)
	assert.Equal(t, int64(3), evt.Entry)
	require.Len(t, evt.Jets, 2)
	assert.Equal(t, Jet{PT: 20, Eta: 0.5, Phi: 1, Mass: 3, Flavor: 4}, evt.Jets[0])
	assert.Equal(t, 21.0, evt.Jets[1].Flavor)
	assert.Nil(t, evt.GenJets)
	require.Len(t, evt.Tracks, 1)
	assert.Equal(t, uint32(7), evt.Tracks[0].UID)
	assert.InDelta(t, 0.002, evt.Tracks[0].ErrorD0, 1e-9)
	assert.InDelta(t, 0.3, evt.Tracks[0].Zd, 1e-7)

	// the event owns its data
	cols.jet.PT[0] = 99
	assert.Equal(t, 20.0, evt.Jets[0].PT)
}

func TestColumnsReadVars(t *testing.T) {
	cols := columns{branches: GenJets}
	rvars := cols.readVars()
	require.Len(t, rvars, 5)
	assert.Equal(t, "GenJet.PT", rvars[0].Name)

	cols.branches = Jets | GenJets | Tracks
	assert.Len(t, cols.readVars(), 21)
}

func TestColumnsRaggedLengths(t *testing.T) {
	c := jetColumns{PT: []float32{1, 2}, Eta: []float32{0}, Phi: []float32{0, 0}, Mass: []float32{0, 0}, Flavor: []uint32{1, 1}}
	assert.Len(t, c.jets(), 1)
}

func TestScanMissingFile(t *testing.T) {
	err := Scan(context.Background(), []string{filepath.Join(t.TempDir(), "none.root")}, Options{}, func(*Event) error {
		t.Fatal("no events expected")
		return nil
	})
	assert.Error(t, err)
}
