package yields

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// Bins holds a binned yield.  Values and Errors are in events for the
// given luminosity.
type Bins struct {
	Centers []float64
	Widths  []float64
	Counts  []float64
	Values  []float64
	Errors  []float64
}

// Differential histograms xs in the given bin edges and normalises the raw
// counts to the expected number of events, counts*xsec*lumi/nGen, with xsec
// in fb and lumi in inverse fb.  Errors are the relative Poisson errors of
// the raw counts applied to the normalised values.  The last bin is closed:
// a value equal to the last edge counts in it.
func Differential(xs, edges []float64, xsecFb, lumiInvFb float64, nGen int) Bins {
	h := hbook.NewH1DFromEdges(edges)
	last := edges[len(edges)-1]
	for _, x := range xs {
		if x == last {
			x = math.Nextafter(last, math.Inf(-1))
		}
		h.Fill(x, 1)
	}

	scale := 0.0
	if nGen > 0 {
		scale = xsecFb * lumiInvFb / float64(nGen)
	}

	var b Bins
	for _, bin := range h.Binning.Bins {
		n := bin.SumW()
		y := n * scale
		yErr := 0.0
		if n > 0 {
			yErr = math.Sqrt(n) / n * y
		}
		b.Centers = append(b.Centers, bin.XMid())
		b.Widths = append(b.Widths, bin.XWidth())
		b.Counts = append(b.Counts, n)
		b.Values = append(b.Values, y)
		b.Errors = append(b.Errors, yErr)
	}
	return b
}

// Total is the summed normalised yield.
func (b Bins) Total() float64 {
	sum := 0.0
	for _, v := range b.Values {
		sum += v
	}
	return sum
}

// AsymmetryUncertainty returns the statistical uncertainty, in percent, on a
// single-spin asymmetry measured from n events per bin with electron beam
// polarisation polE and analysing polarisation polP.  Empty bins give NaN.
func AsymmetryUncertainty(n []float64, polE, polP float64) []float64 {
	dA := make([]float64, len(n))
	for i, v := range n {
		if v <= 0 {
			dA[i] = math.NaN()
			continue
		}
		errN := math.Sqrt(v * (1 + polE) / 2.0)
		dA[i] = 1.0 / (errN * polP) * 100
	}
	return dA
}
