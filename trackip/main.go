package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/delphes"
	"github.com/decibelcooper/oleaaplot/internal/tagging"
)

var (
	dir       = flag.String("d", ".", "directory containing input files")
	input     = flag.String("i", "", "main input subfolder")
	pattern   = flag.String("pattern", "[0-4]/out.root", "input file pattern inside the subfolder")
	perJet    = flag.Bool("perjet", false, "collect tracks per jet instead of assigning each track to its first jet")
	maxEvents = flag.Int64("n", 0, "maximum number of events per file (0 for all)")
	nThreads  = flag.Int("t", 2, "number of concurrent files to process")
	title     = flag.String("title", "CC-DIS, 10x275GeV, Q^2>100GeV^2", "plot title")
	prefix    = flag.String("prefix", "", "output file prefix (default track_ip_significance_<input>)")
	doProfile = flag.Bool("profile", false, "write a CPU profile")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] -i <input subfolder>

options:
`,
	)
	flag.PrintDefaults()
}

// ipEdges are fine in the core and coarse in the tails.
var ipEdges = oleaaplot.Edges(
	[3]float64{-300, -30, 10},
	[3]float64{-30, 30, 1},
	[3]float64{30, 300, 10},
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if *input == "" || flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *prefix == "" {
		*prefix = "track_ip_significance_" + *input
	}

	files, err := oleaaplot.SampleFiles(*dir, *input, *pattern)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(files); err != nil {
		log.Fatal(err)
	}
}

func run(files []string) error {
	if *doProfile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	s := newStudy(*perJet)
	opts := delphes.Options{Branches: delphes.Jets | delphes.Tracks, Workers: *nThreads, MaxEvents: *maxEvents}
	err := delphes.Scan(context.Background(), files, opts, func(evt *delphes.Event) error {
		s.add(evt)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("n_gen = %d\n", s.nGen)
	fmt.Printf("light tracks = %d, charm tracks = %d\n", s.ip.light.Entries(), s.ip.charm.Entries())
	for t, name := range []string{"light", "charm"} {
		if s.jets[t] > 0 {
			fmt.Printf("%s jets sIP3D-tagged: %d of %d (%.3f%%)\n", name, s.tagged[t], s.jets[t], s.tagRate(t)*100)
		}
	}

	if err := drawIP(s.ip, "sIP_3D", "P(sIP_3D | Jet Flavor)", *prefix); err != nil {
		return err
	}
	return drawIP(s.lead, "Leading Track sIP_3D", "P(sIP_3D | Jet Flavor)", "jet_t1_sip3d_"+*input)
}

// study accumulates the track significance histograms, the leading track
// significance per jet and the sIP3D tag counts.  Index 0 of tagged and
// jets is light, 1 is charm.
type study struct {
	perJet  bool
	cuts    tagging.Cuts
	tagCuts tagging.TagCuts

	nGen     int
	ip, lead flavorHists
	tagged   [2]int
	jets     [2]int
}

func newStudy(perJet bool) *study {
	return &study{
		perJet:  perJet,
		cuts:    tagging.DefaultCuts(),
		tagCuts: tagging.DefaultTagCuts(),
		ip:      newFlavorHists(ipEdges),
		lead:    newFlavorHists(ipEdges),
	}
}

func (s *study) add(evt *delphes.Event) {
	s.nGen++
	if s.perJet {
		fillPerJet(evt, s.cuts, s.ip)
	} else {
		fillPerTrack(evt, s.cuts, s.ip)
	}

	for _, jet := range evt.Jets {
		h := s.lead.of(jet.Flavor)
		if h == nil || math.Abs(jet.Eta) > s.cuts.MaxJetEta {
			continue
		}
		t := 0
		if oleaaplot.IsCharm(jet.Flavor) {
			t = 1
		}
		s.jets[t]++
		if tagging.SIP3DTagged(jet, evt.Tracks, s.tagCuts) {
			s.tagged[t]++
		}
		if leading := tagging.LeadingTracks(jet, evt.Tracks, 1, s.tagCuts.MaxDeltaR); len(leading) > 0 {
			h.Fill(leading[0].SIP3D, 1)
		}
	}
}

func (s *study) tagRate(t int) float64 {
	if s.jets[t] == 0 {
		return 0
	}
	return float64(s.tagged[t]) / float64(s.jets[t])
}

// flavorHists holds one histogram per jet flavor class.
type flavorHists struct {
	light, charm *hbook.H1D
}

func newFlavorHists(edges []float64) flavorHists {
	return flavorHists{light: hbook.NewH1DFromEdges(edges), charm: hbook.NewH1DFromEdges(edges)}
}

// of returns the histogram for flavor, or nil for flavors outside both
// classes.
func (fh flavorHists) of(flavor float64) *hbook.H1D {
	switch {
	case oleaaplot.IsCharm(flavor):
		return fh.charm
	case oleaaplot.IsLight(flavor):
		return fh.light
	}
	return nil
}

func drawIP(fh flavorHists, xLabel, yLabel, prefix string) error {
	p := hplot.New()
	p.Title.Text = *title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Min = -30
	p.X.Max = 30
	p.Y.Min = 1e-6
	p.Y.Max = 2
	p.X.Tick.Marker = oleaaplot.MultipleTicks{Major: 10, Minor: 2}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := addPoints(p, "light jets", fh.light, color.RGBA{R: 255, A: 255}, draw.CircleGlyph{}); err != nil {
		return err
	}
	if err := addPoints(p, "charm jets", fh.charm, color.RGBA{B: 255, A: 255}, draw.BoxGlyph{}); err != nil {
		return err
	}

	for _, ext := range []string{".png", ".pdf"} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, prefix+ext); err != nil {
			return err
		}
	}
	return nil
}

func fillPerTrack(evt *delphes.Event, cuts tagging.Cuts, fh flavorHists) {
	sigs := tagging.TrackSignificances(evt.Jets, evt.Tracks, cuts)
	flavors := tagging.TrackSourceFlavor(evt.Jets, evt.Tracks, cuts)
	for i, flavor := range flavors {
		if flavor == tagging.Unmatched || sigs[i] == tagging.Unassigned {
			continue
		}
		if h := fh.of(flavor); h != nil {
			h.Fill(sigs[i], 1)
		}
	}
}

func fillPerJet(evt *delphes.Event, cuts tagging.Cuts, fh flavorHists) {
	for j, sigs := range tagging.JetTrackSignificances(evt.Jets, evt.Tracks, cuts) {
		h := fh.of(evt.Jets[j].Flavor)
		if h == nil {
			continue
		}
		for _, sig := range sigs {
			h.Fill(sig, 1)
		}
	}
}

func addPoints(p *hplot.Plot, label string, h *hbook.H1D, c color.Color, shape draw.GlyphDrawer) error {
	pts := oleaaplot.LogSafe(oleaaplot.HistPoints(h, true, 0))
	if len(pts.XYs) == 0 {
		log.Printf("no entries for %s", label)
		return nil
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Shape = shape
	scatter.GlyphStyle.Radius = vg.Points(3)

	xerr, err := plotter.NewXErrorBars(pts)
	if err != nil {
		return err
	}
	yerr, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return err
	}
	xerr.LineStyle.Color = c
	yerr.LineStyle.Color = c

	p.Add(xerr, yerr, scatter)
	p.Legend.Add(label, scatter)
	return nil
}
