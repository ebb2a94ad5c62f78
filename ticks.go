package oleaaplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places labelled major ticks on round multiples of a power of
// ten and unlabelled minor ticks between them.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		panic("illegal range")
	}

	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	majorMult := int(n / float64(t.NSuggestedTicks-1))
	switch majorMult {
	case 7:
		majorMult = 6
	case 9:
		majorMult = 8
	}
	majorDelta := float64(majorMult) * tens

	var ticks []plot.Tick
	last := min
	for _, v := range multiplesIn(min, max, majorDelta) {
		last = v
		ticks = append(ticks, plot.Tick{Value: v})
	}
	prec := int(math.Ceil(math.Log10(last+majorDelta)) - math.Floor(math.Log10(majorDelta)))
	for i := range ticks {
		v := round(ticks[i].Value, prec)
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)}
	}

	minorDelta := majorDelta / 2
	switch majorMult {
	case 3, 6:
		minorDelta = majorDelta / 3
	case 5:
		minorDelta = majorDelta / 5
	}
	return appendMinor(ticks, multiplesIn(min, max, minorDelta))
}

// MultipleTicks puts a labelled tick on every multiple of Major and an
// unlabelled one on every multiple of Minor in between.
type MultipleTicks struct {
	Major, Minor float64
	Prec         int
}

func (t MultipleTicks) Ticks(min, max float64) []plot.Tick {
	if t.Major <= 0 || max <= min {
		return nil
	}

	var ticks []plot.Tick
	for _, v := range multiplesIn(min, max, t.Major) {
		v = round(v, 12)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', t.Prec, 64)})
	}
	if t.Minor <= 0 {
		return ticks
	}
	return appendMinor(ticks, multiplesIn(min, max, t.Minor))
}

// multiplesIn returns the multiples of delta within [min, max].
func multiplesIn(min, max, delta float64) []float64 {
	var vals []float64
	first := math.Ceil(min/delta - 1e-9)
	for i := first; ; i++ {
		v := i * delta
		if v > max+delta*1e-9 {
			break
		}
		vals = append(vals, v)
	}
	return vals
}

func appendMinor(ticks []plot.Tick, minor []float64) []plot.Tick {
	nMajor := len(ticks)
	for _, v := range minor {
		found := false
		for _, t := range ticks[:nMajor] {
			if math.Abs(t.Value-v) < 1e-9*math.Max(1, math.Abs(v)) {
				found = true
				break
			}
		}
		if !found {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}

// round rounds x to prec decimal places, half away from zero, and never
// returns negative zero.
func round(x float64, prec int) float64 {
	if x == 0 {
		return 0
	}
	pow := math.Pow10(prec)
	if math.IsInf(x*pow, 0) {
		return x
	}
	if v := math.Round(x*pow) / pow; v != 0 {
		return v
	}
	return 0
}
