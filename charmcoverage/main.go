package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/delphes"
)

var (
	dir       = flag.String("d", ".", "directory containing input files")
	input     = flag.String("i", "", "main input subfolder")
	pattern   = flag.String("pattern", "*/out.root", "input file pattern inside the subfolder")
	xvar      = flag.String("x", "jet_p", "x variable: jet_pt, jet_p or genjet_p")
	redraw    = flag.Bool("redraw", false, "ignore any cached histogram and refill from the inputs")
	normalize = flag.Bool("normalize", false, "normalize the map to unit sum")
	maxEvents = flag.Int64("n", 0, "maximum number of events per file (0 for all)")
	nThreads  = flag.Int("t", 2, "number of concurrent files to process")
	title     = flag.String("title", "CC-DIS, 10x275GeV, Q^2>100GeV^2", "plot title")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] -i <input subfolder>

options:
`,
	)
	flag.PrintDefaults()
}

var thetaEdges = oleaaplot.Linspace(0, 180, 90)

type xAxis struct {
	label  string
	edges  []float64
	branch delphes.Branch
	value  func(delphes.Jet) float64
}

var xAxes = map[string]xAxis{
	"jet_pt": {
		label:  "Charm Jet p_T [GeV]",
		edges:  oleaaplot.Linspace(0, 50, 10),
		branch: delphes.Jets,
		value:  func(j delphes.Jet) float64 { return j.PT },
	},
	"jet_p": {
		label:  "Charm Jet Momentum [GeV]",
		edges:  oleaaplot.Linspace(0, 80, 16),
		branch: delphes.Jets,
		value:  func(j delphes.Jet) float64 { return oleaaplot.Momentum(j.PT, j.Eta) },
	},
	"genjet_p": {
		label:  "Generated Charm Jet Momentum [GeV]",
		edges:  oleaaplot.Linspace(0, 80, 16),
		branch: delphes.GenJets,
		value:  func(j delphes.Jet) float64 { return oleaaplot.Momentum(j.PT, j.Eta) },
	},
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if *input == "" || flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	axis, ok := xAxes[*xvar]
	if !ok {
		printUsage()
		log.Fatalf("unknown x variable %q", *xvar)
	}

	cache := fmt.Sprintf("charm_jet_coverage_%s_%s.root", *xvar, *input)

	var h *hbook.H2D
	if !*redraw {
		var err error
		if h, err = loadCoverage(cache); err != nil {
			log.Fatal(err)
		}
		if h != nil {
			log.Printf("using cached histogram from %s", cache)
		}
	}

	if h == nil {
		files, err := oleaaplot.SampleFiles(*dir, *input, *pattern)
		if err != nil {
			log.Fatal(err)
		}

		h, err = fillCoverage(files, axis)
		if err != nil {
			log.Fatal(err)
		}
		if err := saveCoverage(cache, h); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("charm jets = %d\n", h.Entries())

	var grid plotter.GridXYZ = h.GridXYZ()
	if *normalize && h.SumW() > 0 {
		grid = scaledGrid{GridXYZ: grid, scale: 1 / h.SumW()}
	}

	prefix := fmt.Sprintf("charm_jet_coverage_%s_%s", *xvar, *input)
	for _, format := range []string{"png", "pdf"} {
		if err := drawCoverage(grid, axis.label, format, prefix+"."+format); err != nil {
			log.Fatal(err)
		}
	}
}

// scaledGrid multiplies every cell of a grid by scale.
type scaledGrid struct {
	plotter.GridXYZ
	scale float64
}

func (g scaledGrid) Z(c, r int) float64 {
	return g.GridXYZ.Z(c, r) * g.scale
}

func fillCoverage(files []string, axis xAxis) (*hbook.H2D, error) {
	h := hbook.NewH2DFromEdges(axis.edges, thetaEdges)

	opts := delphes.Options{Branches: axis.branch, Workers: *nThreads, MaxEvents: *maxEvents}
	err := delphes.Scan(context.Background(), files, opts, func(evt *delphes.Event) error {
		jets := evt.Jets
		if axis.branch == delphes.GenJets {
			jets = evt.GenJets
		}
		for _, jet := range jets {
			if jet.Flavor != oleaaplot.FlavorCharm {
				continue
			}
			h.Fill(axis.value(jet), oleaaplot.Theta(jet.Eta)*180/math.Pi, 1)
		}
		return nil
	})
	return h, err
}

func drawCoverage(grid plotter.GridXYZ, xLabel, format, output string) error {
	p := hplot.New()
	p.Title.Text = *title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Charm Jet Polar Angle [deg]"
	p.X.Tick.Marker = oleaaplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = oleaaplot.MultipleTicks{Major: 30, Minor: 10}

	img, err := draw.NewFormattedCanvas(670, 400, format)
	if err != nil {
		return err
	}
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	zMax := 0.0
	nx, ny := grid.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			zMax = math.Max(zMax, grid.Z(i, j))
		}
	}
	if zMax == 0 {
		zMax = 1
	}

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(zMax)
	heatMap := plotter.NewHeatMap(grid, colorMap.Palette(1000))
	heatMap.Min = 0
	heatMap.Max = zMax
	p.Add(heatMap)
	p.Draw(dc0)

	cp := plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	cp.Add(colorBar)
	cp.HideX()
	cp.Y.Padding = 0
	cp.Draw(dc1)

	w, err := os.Create(output)
	if err != nil {
		return err
	}
	if _, err = img.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
