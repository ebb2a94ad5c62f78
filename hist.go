package oleaaplot

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// HistPoints converts the in-range bins of h into points at the bin centres
// with half-width x errors and Poisson y errors.  With density set, contents
// are divided by norm and by the bin width; a non-positive norm means all
// entries of h, overflow included.  Empty bins are left out.
func HistPoints(h *hbook.H1D, density bool, norm float64) plotutil.ErrorPoints {
	if norm <= 0 {
		norm = float64(h.Entries())
	}

	var pts plotutil.ErrorPoints
	for _, bin := range h.Binning.Bins {
		n := bin.SumW()
		if n <= 0 {
			continue
		}

		y := n
		if density {
			y = y / norm / bin.XWidth()
		}
		yErr := math.Sqrt(n) / n * y
		halfWidth := bin.XWidth() / 2

		pts.XYs = append(pts.XYs, plotter.XY{X: bin.XMid(), Y: y})
		pts.XErrors = append(pts.XErrors, struct{ Low, High float64 }{halfWidth, halfWidth})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{yErr, yErr})
	}
	return pts
}

// LogSafe shortens lower y errors that reach zero or below so the points
// can be drawn on a log axis.
func LogSafe(pts plotutil.ErrorPoints) plotutil.ErrorPoints {
	for i := range pts.YErrors {
		if y := pts.XYs[i].Y; pts.YErrors[i].Low >= y {
			pts.YErrors[i].Low = 0.999 * y
		}
	}
	return pts
}

// Edges concatenates runs of evenly spaced bin edges [start, stop) in steps
// of step, closing the final run at its stop value.
func Edges(runs ...[3]float64) []float64 {
	var edges []float64
	for _, run := range runs {
		start, stop, step := run[0], run[1], run[2]
		n := int(math.Round((stop - start) / step))
		for i := 0; i < n; i++ {
			edges = append(edges, start+float64(i)*step)
		}
	}
	if len(runs) > 0 {
		edges = append(edges, runs[len(runs)-1][1])
	}
	return edges
}

// Linspace returns n evenly spaced values over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	vals := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	vals[n-1] = stop
	return vals
}

// SampleFiles returns the sorted files matching dir/sample/pattern.
func SampleFiles(dir, sample, pattern string) ([]string, error) {
	glob := filepath.Join(dir, sample, pattern)
	files, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %q", glob)
	}
	sort.Strings(files)
	return files, nil
}
