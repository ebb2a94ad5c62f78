package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/classifier"
)

var (
	folder    = flag.String("folder", "dataset", "directory holding the TestTree and TrainTree")
	tagger    = flag.String("tagger", "MLP", "classifier output branch")
	ptBranch  = flag.String("pt", "jet.PT", "jet transverse momentum branch")
	etaBranch = flag.String("eta", "jet.Eta", "jet pseudorapidity branch")
	flvBranch = flag.String("flavor", "jet.flavor", "jet flavor branch")
	target    = flag.Float64("bkg-eff", 0.004, "target light jet efficiency")
	step      = flag.Float64("step", 0.001, "classifier cut step")
	minPT     = flag.Float64("minpt", classifier.DefaultSelection().MinPT, "minimum jet transverse momentum")
	maxEta    = flag.Float64("maxeta", classifier.DefaultSelection().MaxEta, "maximum absolute jet pseudorapidity")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] [CharmJetClassification_Results.root]

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() > 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	file := "CharmJetClassification_Results.root"
	if flag.NArg() == 1 {
		file = flag.Arg(0)
	}

	br := branches{Score: *tagger, PT: *ptBranch, Eta: *etaBranch, Flavor: *flvBranch}
	test, err := readSamples(file, *folder+"/TestTree", br)
	if err != nil {
		log.Fatal(err)
	}
	train, err := readSamples(file, *folder+"/TrainTree", br)
	if err != nil {
		log.Fatal(err)
	}

	sel := classifier.Selection{MinPT: *minPT, MaxEta: *maxEta}
	wp := classifier.Scan(test, sel, *target, *step)
	fmt.Printf("%s cut %.3f yields Eff_c = %.3f and Eff_light = %.3e\n", *tagger, wp.Cut, wp.CharmEff, wp.LightEff)

	fmt.Println("Over-Training Study")
	fmt.Println("=============================================")

	p := hplot.New()
	p.X.Label.Text = "Classifier Output"
	p.Y.Label.Text = "Probability Density"
	p.X.Min = 0
	p.X.Max = 1
	p.Y.Min = 1e-5
	p.Y.Max = 1e2
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	for _, s := range []struct {
		name  string
		keep  func(float64) bool
		color color.Color
	}{
		{"Signal", oleaaplot.IsCharm, color.RGBA{B: 255, A: 255}},
		{"Background", oleaaplot.IsLight, color.RGBA{R: 255, A: 255}},
	} {
		testScores := scores(test, s.keep)
		trainScores := scores(train, s.keep)
		_, pValue := classifier.KSTest(testScores, trainScores)
		fmt.Printf("%s: K-S Test p-value = %g\n", s.name, pValue)

		if err := addSample(p, s.name, testScores, trainScores, s.color); err != nil {
			log.Fatal(err)
		}
	}

	out := fmt.Sprintf("CharmJetClassifier_Scan_Overtraining_%s.pdf", *tagger)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		log.Fatal(err)
	}
}

func scores(samples []classifier.Sample, keep func(float64) bool) []float64 {
	var out []float64
	for _, smp := range samples {
		if keep(smp.Flavor) {
			out = append(out, smp.Score)
		}
	}
	return out
}

// addSample draws the test scores as a line and the training scores as
// points, both normalised to unit area.
func addSample(p *hplot.Plot, name string, test, train []float64, c color.Color) error {
	hTest := hbook.NewH1D(50, 0, 1)
	hTrain := hbook.NewH1D(50, 0, 1)
	for _, v := range test {
		hTest.Fill(v, 1)
	}
	for _, v := range train {
		hTrain.Fill(v, 1)
	}
	if hTest.SumW() == 0 || hTrain.SumW() == 0 {
		log.Printf("no %s entries to draw", name)
		return nil
	}

	hTest.Scale(1 / (hTest.SumW() * hTest.Binning.Bins[0].XWidth()))
	line := hplot.NewH1D(hTest, hplot.WithLogY(true))
	line.LineStyle.Color = c
	p.Add(line)
	p.Legend.Add(name+" (test)", line)

	pts := oleaaplot.LogSafe(oleaaplot.HistPoints(hTrain, true, hTrain.SumW()))
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(2)
	yerr, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return err
	}
	yerr.LineStyle.Color = c
	p.Add(yerr, scatter)
	p.Legend.Add(name+" (train)", scatter)
	return nil
}
