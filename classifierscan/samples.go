package main

import (
	"fmt"

	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/oleaaplot/internal/classifier"
	"github.com/decibelcooper/oleaaplot/internal/rootscan"
)

// branches names the float columns of the classifier evaluation trees.
type branches struct {
	Score, PT, Eta, Flavor string
}

func readSamples(file, treePath string, br branches) ([]classifier.Sample, error) {
	tree, closeFile, err := rootscan.OpenTree(file, treePath)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	var score, pt, eta, flavor float32
	rvars := []rtree.ReadVar{
		{Name: br.Score, Value: &score},
		{Name: br.PT, Value: &pt},
		{Name: br.Eta, Value: &eta},
		{Name: br.Flavor, Value: &flavor},
	}

	samples := make([]classifier.Sample, 0, tree.Entries())
	err = rootscan.ReadTree(tree, rvars, 0, func(int64) error {
		samples = append(samples, classifier.Sample{
			Score:  float64(score),
			PT:     float64(pt),
			Eta:    float64(eta),
			Flavor: float64(flavor),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s:%s: %w", file, treePath, err)
	}
	return samples, nil
}
