package oleaaplot

// Parton flavor codes as stored in the Jet.Flavor and jet_flavor branches.
const (
	FlavorDown    = 1
	FlavorUp      = 2
	FlavorStrange = 3
	FlavorCharm   = 4
	FlavorBottom  = 5
	FlavorGluon   = 21
)

func IsCharm(flavor float64) bool {
	return flavor == FlavorCharm
}

// IsLight is true for u, d, s and gluon jets.  Zero and negative flavors
// count as light, matching the light-jet selection used for background.
func IsLight(flavor float64) bool {
	return flavor < FlavorCharm || flavor == FlavorGluon
}
