// Package rootscan fans the reading of ROOT trees out over several files and
// funnels the decoded entries back to a single consumer.
package rootscan

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of files read concurrently when no worker
// count is given.
const DefaultWorkers = 2

// ReadFunc decodes the entries of one file and sends them on out.  It must
// return promptly once ctx is done.
type ReadFunc[T any] func(ctx context.Context, file string, out chan<- T) error

// Scan calls read for every file, at most workers at a time, and hands each
// produced entry to fn on the calling goroutine.  Entries from one file keep
// their order; entries from different files interleave.  The first error
// from read or fn stops the scan and is returned.
func Scan[T any](ctx context.Context, files []string, workers int, read ReadFunc[T], fn func(T) error) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	entries := make(chan T, 64)
	var readErr error
	go func() {
		defer close(entries)
		for _, file := range files {
			file := file
			g.Go(func() error {
				return read(gctx, file, entries)
			})
		}
		readErr = g.Wait()
	}()

	var fnErr error
	for entry := range entries {
		if fnErr != nil {
			continue
		}
		if err := fn(entry); err != nil {
			fnErr = err
			cancel()
		}
	}

	if fnErr != nil {
		return fnErr
	}
	return readErr
}

// Send delivers v on out unless ctx is done first.
func Send[T any](ctx context.Context, out chan<- T, v T) error {
	select {
	case out <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OpenTree opens the named tree in file.  The name may include a directory
// path such as "dataset/TestTree".  The returned function closes the file.
func OpenTree(file, name string) (rtree.Tree, func() error, error) {
	f, err := groot.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %q: %w", file, err)
	}

	obj, err := riofs.Dir(f).Get(name)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("could not find %q in %q: %w", name, file, err)
	}

	tree, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, nil, fmt.Errorf("%q in %q is a %T, not a tree", name, file, obj)
	}
	return tree, f.Close, nil
}

// ReadTree reads rvars for the entries of tree, stopping after maxEntries
// when positive, and calls fn after each entry is loaded.
func ReadTree(tree rtree.Tree, rvars []rtree.ReadVar, maxEntries int64, fn func(entry int64) error) error {
	var opts []rtree.ReadOption
	if maxEntries > 0 && maxEntries < tree.Entries() {
		opts = append(opts, rtree.WithRange(0, maxEntries))
	}

	r, err := rtree.NewReader(tree, rvars, opts...)
	if err != nil {
		return fmt.Errorf("could not create reader: %w", err)
	}
	defer r.Close()

	return r.Read(func(rctx rtree.RCtx) error {
		return fn(rctx.Entry)
	})
}
