package oleaaplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/plot"
)

func labelled(ticks []plot.Tick) []float64 {
	var vals []float64
	for _, t := range ticks {
		if t.Label != "" {
			vals = append(vals, t.Value)
		}
	}
	return vals
}

func TestMultipleTicks(t *testing.T) {
	ticks := MultipleTicks{Major: 10, Minor: 2}.Ticks(-30, 30)

	assert.Equal(t, []float64{-30, -20, -10, 0, 10, 20, 30}, labelled(ticks))
	assert.Len(t, ticks, 31)
	assert.Equal(t, "-30", ticks[0].Label)
}

func TestMultipleTicksBadRange(t *testing.T) {
	assert.Nil(t, MultipleTicks{Major: 1}.Ticks(1, 1))
	assert.Nil(t, MultipleTicks{}.Ticks(0, 1))
}

func TestPreciseTicks(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 5}.Ticks(0, 100)

	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, labelled(ticks))
	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Value, 0.0)
		assert.LessOrEqual(t, tick.Value, 100.0)
	}
}

func TestPreciseTicksPanicsOnEmptyRange(t *testing.T) {
	assert.Panics(t, func() { PreciseTicks{}.Ticks(2, 1) })
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.25, round(1.2549, 2))
	assert.Equal(t, -1.3, round(-1.25, 1))
	assert.Equal(t, 40.0, round(40, 3))
	assert.False(t, math.Signbit(round(-0.0001, 2)))
	assert.False(t, math.Signbit(round(math.Copysign(0, -1), 2)))
	assert.Equal(t, 1e300, round(1e300, 20))
}
