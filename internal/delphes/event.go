// Package delphes reads jets and tracks from the Delphes tree of simulated
// detector output files.
package delphes

// TreeName is the name of the event tree in Delphes output files.
const TreeName = "Delphes"

type Jet struct {
	PT, Eta, Phi, Mass float64
	Flavor             float64
}

type Track struct {
	UID     uint32
	PT      float64
	Eta     float64
	Phi     float64
	D0      float64
	ErrorD0 float64
	DZ      float64
	ErrorDZ float64

	// point of closest approach to the beam line
	Xd, Yd, Zd float64
}

type Event struct {
	File    string
	Entry   int64
	Jets    []Jet
	GenJets []Jet
	Tracks  []Track
}

// Branch selects groups of Delphes branches to read.
type Branch uint8

const (
	Jets Branch = 1 << iota
	GenJets
	Tracks
)

func (b Branch) has(o Branch) bool { return b&o != 0 }
