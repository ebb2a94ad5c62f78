// Package yields counts tagged jets and turns the counts into normalised
// differential yields and asymmetry uncertainties.
package yields

import (
	"fmt"
	"io"
	"math"

	"github.com/decibelcooper/oleaaplot"
	"github.com/decibelcooper/oleaaplot/internal/flattree"
)

// Category is a named combination of jet tags.
type Category struct {
	Name   string
	Select func(flattree.Jet) bool
}

func sip3d(j flattree.Jet) bool { return j.SIP3DTag == 1 }
func eTag(j flattree.Jet) bool  { return j.ETag == 1 }
func muTag(j flattree.Jet) bool { return j.MuTag == 1 }
func kTag(j flattree.Jet) bool  { return j.KTag == 1 }

// Categories lists the tag categories in reporting order.
var Categories = []Category{
	{"sIP3D-tagged", sip3d},
	{"sIP3D-untagged", func(j flattree.Jet) bool { return !sip3d(j) }},
	{"sIP3D-untagged, e-tagged", func(j flattree.Jet) bool { return !sip3d(j) && eTag(j) }},
	{"sIP3D-untagged, mu-tagged", func(j flattree.Jet) bool { return !sip3d(j) && muTag(j) }},
	{"sIP3D-untagged, K-tagged", func(j flattree.Jet) bool { return !sip3d(j) && kTag(j) }},
	{"sIP3D-untagged, (e|mu|K)-tagged", func(j flattree.Jet) bool {
		return !sip3d(j) && (eTag(j) || muTag(j) || kTag(j))
	}},
	{"Tagged by anything", func(j flattree.Jet) bool {
		return sip3d(j) || eTag(j) || muTag(j) || kTag(j)
	}},
}

// Preselected is the central, missing-energy selection applied before
// counting: |eta| < 3 and MET above 10 GeV.
func Preselected(j flattree.Jet) bool {
	return math.Abs(j.Eta) < 3.0 && j.METET > 10.0
}

type Row struct {
	Category string
	N        int
	// Percent of the jets of this type in the category.
	Percent float64
}

type Table struct {
	JetType string
	Total   int
	Rows    []Row
}

// Counter accumulates category counts for light and charm jets.
type Counter struct {
	Preselect bool

	total  [2]int
	counts [2][]int
}

func NewCounter(preselect bool) *Counter {
	c := &Counter{Preselect: preselect}
	for i := range c.counts {
		c.counts[i] = make([]int, len(Categories))
	}
	return c
}

func (c *Counter) Add(jets ...flattree.Jet) {
	for _, j := range jets {
		if c.Preselect && !Preselected(j) {
			continue
		}

		t := -1
		switch {
		case oleaaplot.IsCharm(j.Flavor):
			t = 1
		case oleaaplot.IsLight(j.Flavor):
			t = 0
		}
		if t < 0 {
			continue
		}

		c.total[t]++
		for i, cat := range Categories {
			if cat.Select(j) {
				c.counts[t][i]++
			}
		}
	}
}

// Tables returns the light jet table followed by the charm jet table.
func (c *Counter) Tables() []Table {
	tables := make([]Table, 2)
	for t, name := range []string{"light", "charm"} {
		tables[t] = Table{JetType: name, Total: c.total[t]}
		for i, cat := range Categories {
			row := Row{Category: cat.Name, N: c.counts[t][i]}
			if c.total[t] > 0 {
				row.Percent = float64(row.N) / float64(c.total[t]) * 100
			}
			tables[t].Rows = append(tables[t].Rows, row)
		}
	}
	return tables
}

func (t Table) WriteTo(w io.Writer) (int64, error) {
	var n int64
	write := func(format string, args ...interface{}) error {
		m, err := fmt.Fprintf(w, format, args...)
		n += int64(m)
		return err
	}

	if err := write("%s jets: %d\n", t.JetType, t.Total); err != nil {
		return n, err
	}
	for _, row := range t.Rows {
		if err := write("%s: %d (%.3f%%)\n", row.Category, row.N, row.Percent); err != nil {
			return n, err
		}
	}
	err := write("========================================\n")
	return n, err
}
