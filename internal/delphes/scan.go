package delphes

import (
	"context"
	"fmt"

	"github.com/decibelcooper/oleaaplot/internal/rootscan"
)

type Options struct {
	// Branches to read; zero means jets and tracks.
	Branches Branch
	// Workers is the number of files read concurrently.
	Workers int
	// MaxEvents limits the events read from each file when positive.
	MaxEvents int64
}

// Scan reads the Delphes tree of every file and calls fn with each event.
// fn is never called concurrently.
func Scan(ctx context.Context, files []string, opts Options, fn func(*Event) error) error {
	if opts.Branches == 0 {
		opts.Branches = Jets | Tracks
	}

	read := func(ctx context.Context, file string, out chan<- *Event) error {
		return readFile(ctx, file, opts, out)
	}
	return rootscan.Scan(ctx, files, opts.Workers, read, fn)
}

func readFile(ctx context.Context, file string, opts Options, out chan<- *Event) error {
	tree, closeFile, err := rootscan.OpenTree(file, TreeName)
	if err != nil {
		return fmt.Errorf("delphes: %w", err)
	}
	defer closeFile()

	cols := columns{branches: opts.Branches}
	err = rootscan.ReadTree(tree, cols.readVars(), opts.MaxEvents, func(entry int64) error {
		return rootscan.Send(ctx, out, cols.event(file, entry))
	})
	if err != nil {
		return fmt.Errorf("delphes: reading %q: %w", file, err)
	}
	return nil
}
