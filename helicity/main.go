package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/flattree"
	"github.com/decibelcooper/oleaaplot/internal/yields"
)

var (
	dir       = flag.String("d", ".", "directory containing input files")
	input     = flag.String("i", "", "main input subfolder")
	pattern   = flag.String("pattern", "*/out.root", "input file pattern inside the subfolder")
	xvar      = flag.String("x", "pt", "x variable: pt, eta or bjorken_x")
	xsec      = flag.Float64("xsec", 0, "total cross section of the sample in fb")
	xsecTable = flag.String("xsec-table", "", "YAML file mapping process names to cross sections in fb")
	process   = flag.String("process", "CC_DIS_e10_p275_CT18NNLO", "process name to look up in -xsec-table")
	lumi      = flag.Float64("lumi", 100, "integrated luminosity in inverse fb")
	polE      = flag.Float64("pol-e", 0.7, "electron beam polarization")
	polP      = flag.Float64("pol-p", 0.7, "analysing polarization")
	nThreads  = flag.Int("t", 2, "number of concurrent files to process")

	binEdges oleaaplot.FloatArrayFlags
)

func init() {
	flag.Var(&binEdges, "bin", "bin edge, repeated or comma-separated, replacing the default edges of the x variable")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] -i <input subfolder> (-xsec <fb> | -xsec-table <file>)

options:
`,
	)
	flag.PrintDefaults()
}

type drawConfig struct {
	branch     string
	perEvent   bool
	edges      []float64
	xMin, xMax float64
	label      string
}

var drawConfigs = map[string]drawConfig{
	"eta": {
		branch: "jet_eta",
		edges:  []float64{-4.0, -3.5, -2.5, -1.0, 1.0, 2.5, 3.5, 4.0},
		xMin:   -5,
		xMax:   5,
		label:  "Reconstructed Jet η",
	},
	"pt": {
		branch: "jet_pt",
		edges:  []float64{10, 12.5, 15, 20, 25, 35, 60},
		xMin:   0,
		xMax:   60,
		label:  "Reconstructed Jet p_T [GeV]",
	},
	"bjorken_x": {
		branch:   "bjorken_x",
		perEvent: true,
		edges:    []float64{5e-3, 1e-2, 1e-1, 1},
		xMin:     1e-3,
		xMax:     1,
		label:    "Bjorken x",
	},
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if *input == "" || flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	cfg, ok := drawConfigs[*xvar]
	if !ok {
		printUsage()
		log.Fatalf("unknown x variable %q", *xvar)
	}
	if binEdges.IsSet() {
		if len(binEdges.Array) < 2 {
			log.Fatal("at least two -bin edges are required")
		}
		cfg.edges = binEdges.Array
	}

	xsecFb, err := crossSection()
	if err != nil {
		log.Fatal(err)
	}

	files, err := oleaaplot.SampleFiles(*dir, *input, *pattern)
	if err != nil {
		log.Fatal(err)
	}

	opts := flattree.Options{
		Branches: flattree.Branches{PT: "jet_pt", Flavor: "jet_flavor", SIP3DTag: "jet_sip3dtag"},
		Workers:  *nThreads,
	}
	switch {
	case cfg.perEvent:
		opts.ExtraEvent = []string{cfg.branch}
	case cfg.branch == "jet_eta":
		opts.Branches.Eta = cfg.branch
	}

	var xs []float64
	nGen := 0
	err = flattree.Scan(context.Background(), files, opts, func(evt *flattree.Event) error {
		nGen++
		xs = append(xs, taggedCharmValues(evt, cfg)...)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("n_gen = %d\n", nGen)
	fmt.Printf("Normalizing yields to x-section %.3ffb\n", xsecFb)

	bins := yields.Differential(xs, cfg.edges, xsecFb, *lumi, nGen)
	dA := yields.AsymmetryUncertainty(bins.Values, *polE, *polP)

	fmt.Println("Raw Counts:")
	fmt.Println(bins.Counts)
	fmt.Println("Yields")
	fmt.Println(bins.Values)
	fmt.Println("Total Events:")
	fmt.Println(bins.Total())
	fmt.Println("dA [%]")
	fmt.Println(dA)

	prefix := fmt.Sprintf("dA_100fb_%s_%s", cfg.branch, *input)
	if err := drawAsymmetry(bins, dA, cfg, prefix); err != nil {
		log.Fatal(err)
	}
}

func crossSection() (float64, error) {
	if *xsecTable != "" {
		table, err := yields.LoadXSections(*xsecTable)
		if err != nil {
			return 0, err
		}
		return table.Lookup(*process)
	}
	if *xsec <= 0 {
		return 0, fmt.Errorf("a positive -xsec or a -xsec-table is required")
	}
	return *xsec, nil
}

// taggedCharmValues returns the x value of every sIP3D-tagged charm jet in
// evt.  Event-level variables are repeated once per jet.
func taggedCharmValues(evt *flattree.Event, cfg drawConfig) []float64 {
	var xs []float64
	for i, jet := range evt.Jets() {
		if jet.SIP3DTag != 1 || jet.Flavor != oleaaplot.FlavorCharm {
			continue
		}
		switch {
		case cfg.perEvent:
			xs = append(xs, evt.Scalars[cfg.branch])
		case cfg.branch == "jet_eta":
			xs = append(xs, jet.Eta)
		default:
			xs = append(xs, evt.PT[i])
		}
	}
	return xs
}

// errorBoxes returns one rectangle per bin spanning the bin width and
// +-dA around zero, clipped to +-yMax.  Bins without events are skipped.
func errorBoxes(bins yields.Bins, dA []float64, yMax float64) []plotter.XYs {
	var boxes []plotter.XYs
	for i, d := range dA {
		if math.IsNaN(d) {
			continue
		}
		d = math.Min(d, yMax)
		x0 := bins.Centers[i] - bins.Widths[i]/2
		x1 := bins.Centers[i] + bins.Widths[i]/2
		boxes = append(boxes, plotter.XYs{{X: x0, Y: -d}, {X: x1, Y: -d}, {X: x1, Y: d}, {X: x0, Y: d}})
	}
	return boxes
}

func drawAsymmetry(bins yields.Bins, dA []float64, cfg drawConfig, prefix string) error {
	const yMax = 100

	p := hplot.New()
	p.X.Label.Text = cfg.label
	p.Y.Label.Text = "Asymmetry Uncertainty [%]"
	p.X.Min = cfg.xMin
	p.X.Max = cfg.xMax
	p.Y.Min = -yMax
	p.Y.Max = yMax
	p.Y.Tick.Marker = oleaaplot.MultipleTicks{Major: 50, Minor: 10}
	p.Add(plotter.NewGrid())

	boxColor := color.NRGBA{R: 0x2d, G: 0x6c, B: 0xc0, A: 0xcc}
	label := fmt.Sprintf("δA (p=%.0f%%)", *polP*100)
	for i, box := range errorBoxes(bins, dA, yMax) {
		poly, err := plotter.NewPolygon(box)
		if err != nil {
			return err
		}
		poly.Color = boxColor
		poly.LineStyle.Width = 0
		p.Add(poly)
		if i == 0 {
			p.Legend.Add(label, poly)
		}
	}

	unity, err := plotter.NewLine(plotter.XYs{{X: cfg.xMin, Y: 1}, {X: cfg.xMax, Y: 1}})
	if err != nil {
		return err
	}
	unity.LineStyle.Width = vg.Points(2)
	p.Add(unity)
	p.Legend.Top = true

	for _, ext := range []string{".png", ".pdf"} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, prefix+ext); err != nil {
			return err
		}
	}
	return nil
}
