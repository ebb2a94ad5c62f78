package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decibelcooper/oleaaplot/internal/flattree"
	"github.com/decibelcooper/oleaaplot/internal/treecheck"
)

var (
	maxEvents = flag.Int64("n", 0, "maximum number of events per file (0 for all)")
	nThreads  = flag.Int("t", 2, "number of concurrent files to process")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <flat-tree-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	n, err := check(context.Background(), flag.Args(), os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if n > 0 {
		log.Fatalf("found %d issues", n)
	}
}

// check prints every issue found in files to w and returns their number.
func check(ctx context.Context, files []string, w io.Writer) (int, error) {
	opts := flattree.Options{
		Branches:  flattree.Branches{PT: "jet_pt", T1SIP3D: "jet_t1_sIP3D"},
		Workers:   *nThreads,
		MaxEvents: *maxEvents,
	}

	n := 0
	err := flattree.Scan(ctx, files, opts, func(evt *flattree.Event) error {
		for _, issue := range treecheck.Check(evt) {
			n++
			if _, err := fmt.Fprintln(w, issue); err != nil {
				return err
			}
		}
		return nil
	})
	return n, err
}
