package main

import (
	"fmt"
	"os"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"
)

const cacheKey = "coverage"

// loadCoverage reads a cached coverage histogram.  A missing file is not an
// error; the returned histogram is then nil.
func loadCoverage(path string) (*hbook.H2D, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := groot.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := f.Get(cacheKey)
	if err != nil {
		return nil, err
	}
	h2, ok := obj.(rhist.H2)
	if !ok {
		return nil, fmt.Errorf("%s: %q is a %T, not a 2D histogram", path, cacheKey, obj)
	}
	return rootcnv.H2D(h2), nil
}

func saveCoverage(path string, h *hbook.H2D) error {
	f, err := groot.Create(path)
	if err != nil {
		return err
	}

	if err := f.Put(cacheKey, rhist.NewH2DFrom(h)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
