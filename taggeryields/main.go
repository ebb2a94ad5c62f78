package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/flattree"
	"github.com/decibelcooper/oleaaplot/internal/tagging"
	"github.com/decibelcooper/oleaaplot/internal/yields"
)

var (
	dir       = flag.String("d", "..", "directory containing input files")
	input     = flag.String("i", "CC_DIS_e10_p275_CT18NNLO", "main input subfolder")
	pattern   = flag.String("pattern", "*/out.root", "input file pattern inside the subfolder")
	preselect = flag.Bool("preselect", false, "count only jets with |eta| < 3 in events with MET above 10 GeV")
	retag     = flag.Bool("retag-kaons", false, "recompute the K tag from the leading kaon columns")
	kaonPT    = flag.String("k1-pt", "jet_k1_pt", "leading kaon pT branch")
	kaonSIP   = flag.String("k1-sip3d", "jet_k1_sIP3D", "leading kaon sIP3D branch")
	kaonQ     = flag.String("k1-q", "jet_k1_q", "leading kaon charge branch")
	maxEvents = flag.Int64("n", 0, "maximum number of events per file (0 for all)")
	nThreads  = flag.Int("t", 2, "number of concurrent files to process")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] [flat-tree-files]...

Files given as arguments replace the -d/-i/-pattern search.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		var err error
		if files, err = oleaaplot.SampleFiles(*dir, *input, *pattern); err != nil {
			log.Fatal(err)
		}
	}

	counter := yields.NewCounter(*preselect)
	opts := flattree.Options{
		Branches:  flattree.DefaultBranches(),
		Workers:   *nThreads,
		MaxEvents: *maxEvents,
	}
	opts.Branches.T1SIP3D = ""
	if !*preselect {
		opts.Branches.METET = ""
	}

	kaons := kaonColumns{PT: *kaonPT, SIP3D: *kaonSIP, Charge: *kaonQ}
	if *retag {
		opts.ExtraJet = []string{kaons.PT, kaons.SIP3D, kaons.Charge}
	}

	err := flattree.Scan(context.Background(), files, opts, func(evt *flattree.Event) error {
		if *retag {
			retagKaons(evt, kaons)
		}
		counter.Add(evt.Jets()...)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := writeTables(os.Stdout, counter.Tables()); err != nil {
		log.Fatal(err)
	}
}

// kaonColumns names the per-jet leading kaon columns.
type kaonColumns struct {
	PT, SIP3D, Charge string
}

// retagKaons replaces the K tag of every jet in evt with the leading kaon
// rule applied to the kaon columns in evt.Extra.
func retagKaons(evt *flattree.Event, cols kaonColumns) {
	pt, sip, q := evt.Extra[cols.PT], evt.Extra[cols.SIP3D], evt.Extra[cols.Charge]
	evt.KTag = make([]float64, len(evt.PT))
	for i, jetPT := range evt.PT {
		if i >= len(pt) || i >= len(sip) || i >= len(q) {
			break
		}
		if tagging.KaonTagged(jetPT, pt[i], sip[i], q[i]) {
			evt.KTag[i] = 1
		}
	}
}

func writeTables(w io.Writer, tables []yields.Table) error {
	for _, t := range tables {
		if _, err := t.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}
