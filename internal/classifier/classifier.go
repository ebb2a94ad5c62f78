// Package classifier chooses a working point on a charm jet classifier
// output and checks the classifier for over-training.
package classifier

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/decibelcooper/oleaaplot"
)

// Sample is one jet scored by the classifier.
type Sample struct {
	Score  float64
	Flavor float64
	PT     float64
	Eta    float64
}

// Selection is the kinematic acceptance for the working point scan.
type Selection struct {
	MinPT  float64
	MaxEta float64
}

func DefaultSelection() Selection {
	return Selection{MinPT: 5.0, MaxEta: 3.0}
}

func (s Selection) accept(smp Sample) bool {
	return smp.PT > s.MinPT && -s.MaxEta < smp.Eta && smp.Eta < s.MaxEta
}

// WorkingPoint is a cut on the classifier score with its efficiencies.
type WorkingPoint struct {
	Cut      float64
	CharmEff float64
	LightEff float64
}

// Scan steps a cut over [0, 1) and returns the one whose light jet
// efficiency is closest to target.  Efficiencies count accepted jets with a
// score above the cut, relative to all light or charm jets in samples.
func Scan(samples []Sample, sel Selection, target, step float64) WorkingPoint {
	if step <= 0 {
		step = 0.001
	}

	var light, charm []float64
	var nLight, nCharm int
	for _, smp := range samples {
		isLight := oleaaplot.IsLight(smp.Flavor)
		isCharm := oleaaplot.IsCharm(smp.Flavor)
		if isLight {
			nLight++
		}
		if isCharm {
			nCharm++
		}
		if !sel.accept(smp) {
			continue
		}
		switch {
		case isLight:
			light = append(light, smp.Score)
		case isCharm:
			charm = append(charm, smp.Score)
		}
	}
	sort.Float64s(light)
	sort.Float64s(charm)

	eff := func(scores []float64, total int, cut float64) float64 {
		if total == 0 {
			return 0
		}
		// scores strictly above the cut
		i := sort.Search(len(scores), func(i int) bool { return scores[i] > cut })
		return float64(len(scores)-i) / float64(total)
	}

	best := WorkingPoint{}
	minDist := math.Inf(1)
	nSteps := int(math.Round(1 / step))
	for i := 0; i < nSteps; i++ {
		cut := float64(i) * step
		dist := math.Abs(eff(light, nLight, cut) - target)
		if dist < minDist {
			minDist = dist
			best.Cut = cut
		}
	}
	best.LightEff = eff(light, nLight, best.Cut)
	best.CharmEff = eff(charm, nCharm, best.Cut)
	return best
}

// KSTest compares two samples and returns the Kolmogorov-Smirnov distance
// and the asymptotic probability of a distance at least as large when both
// come from the same distribution.
func KSTest(a, b []float64) (d, p float64) {
	if len(a) == 0 || len(b) == 0 {
		return math.NaN(), math.NaN()
	}

	x := append([]float64(nil), a...)
	y := append([]float64(nil), b...)
	sort.Float64s(x)
	sort.Float64s(y)

	d = stat.KolmogorovSmirnov(x, nil, y, nil)
	n := float64(len(x)) * float64(len(y)) / float64(len(x)+len(y))
	return d, KolmogorovProb(d * math.Sqrt(n))
}

// KolmogorovProb is the survival function of the Kolmogorov distribution.
func KolmogorovProb(z float64) float64 {
	if z < 0.2 {
		return 1
	}
	if z < 0.755 {
		// small z: use the theta-function form
		v := math.Pi * math.Pi / (8 * z * z)
		sum := 0.0
		for k := 1; k <= 7; k += 2 {
			sum += math.Exp(-float64(k*k) * v)
		}
		return 1 - math.Sqrt(2*math.Pi)/z*sum
	}

	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * z * z)
		sum += sign * term
		if term < 1e-12 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	return math.Max(0, math.Min(1, p))
}
