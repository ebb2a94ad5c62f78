package oleaaplot

import "math"

// DeltaPhi returns a-b wrapped into [-pi, pi].
func DeltaPhi(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d < -math.Pi:
		d += 2 * math.Pi
	}
	return d
}

// DeltaR is the angular distance between two directions in (eta, phi).
func DeltaR(eta1, phi1, eta2, phi2 float64) float64 {
	return math.Hypot(eta1-eta2, DeltaPhi(phi1, phi2))
}

// Momentum returns |p| for a massless object of transverse momentum pt at
// pseudorapidity eta.
func Momentum(pt, eta float64) float64 {
	return pt * math.Cosh(eta)
}

// Theta returns the polar angle in radians for pseudorapidity eta.
func Theta(eta float64) float64 {
	return 2 * math.Atan(math.Exp(-eta))
}

func PVector(pt, eta, phi float64) [3]float64 {
	return [3]float64{pt * math.Cos(phi), pt * math.Sin(phi), pt * math.Sinh(eta)}
}

func dotProduct(v1, v2 [3]float64) float64 {
	return v1[0]*v2[0] + v1[1]*v2[1] + v1[2]*v2[2]
}

// SameHemisphere reports whether v points along the jet direction given by
// (pt, eta, phi).
func SameHemisphere(pt, eta, phi float64, v [3]float64) bool {
	return dotProduct(PVector(pt, eta, phi), v) > 0
}
