// Package flattree reads the flat per-jet tree written by the OLeAA
// TreeWriter module.  Per-jet quantities are stored as std::vector<double>
// branches with one element per jet; event quantities as doubles.
package flattree

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/oleaaplot/internal/rootscan"
)

// TreeName is the name of the output tree.
const TreeName = "tree"

// Branches names the tree columns.  An empty name leaves the column unread.
type Branches struct {
	PT, Eta, Flavor   string
	SIP3DTag          string
	KTag, ETag, MuTag string
	T1SIP3D           string
	METET             string
}

func DefaultBranches() Branches {
	return Branches{
		PT:       "jet_pt",
		Eta:      "jet_eta",
		Flavor:   "jet_flavor",
		SIP3DTag: "jet_sip3dtag",
		KTag:     "jet_ktag",
		ETag:     "jet_etag",
		MuTag:    "jet_mutag",
		T1SIP3D:  "jet_t1_sIP3D",
		METET:    "met_et",
	}
}

type Event struct {
	File  string
	Entry int64

	METET float64

	PT, Eta, Flavor   []float64
	SIP3DTag          []float64
	KTag, ETag, MuTag []float64
	T1SIP3D           []float64

	// Extra holds additional per-jet columns by branch name, Scalars
	// additional event columns.
	Extra   map[string][]float64
	Scalars map[string]float64
}

// Jet is one row of the per-jet columns.
type Jet struct {
	PT, Eta, Flavor   float64
	SIP3DTag          float64
	KTag, ETag, MuTag float64
	METET             float64
}

// Jets zips the per-jet columns that were read.  The jet count follows the
// PT column.
func (e *Event) Jets() []Jet {
	jets := make([]Jet, len(e.PT))
	for i := range jets {
		jets[i] = Jet{
			PT:       e.PT[i],
			Eta:      at(e.Eta, i),
			Flavor:   at(e.Flavor, i),
			SIP3DTag: at(e.SIP3DTag, i),
			KTag:     at(e.KTag, i),
			ETag:     at(e.ETag, i),
			MuTag:    at(e.MuTag, i),
			METET:    e.METET,
		}
	}
	return jets
}

func at(col []float64, i int) float64 {
	if i < len(col) {
		return col[i]
	}
	return 0
}

type Options struct {
	Branches Branches
	// ExtraJet and ExtraEvent name additional per-jet and per-event
	// columns to read into Event.Extra and Event.Scalars.
	ExtraJet   []string
	ExtraEvent []string

	Workers   int
	MaxEvents int64
}

// Scan reads the tree of every file and calls fn serially with each event.
func Scan(ctx context.Context, files []string, opts Options, fn func(*Event) error) error {
	read := func(ctx context.Context, file string, out chan<- *Event) error {
		return readFile(ctx, file, opts, out)
	}
	return rootscan.Scan(ctx, files, opts.Workers, read, fn)
}

type columns struct {
	metET             float64
	pt, eta, flavor   []float64
	sip3dTag          []float64
	kTag, eTag, muTag []float64
	t1SIP3D           []float64
	extra             map[string]*[]float64
	scalars           map[string]*float64
}

func newColumns(opts Options) (*columns, []rtree.ReadVar) {
	c := &columns{
		extra:   make(map[string]*[]float64),
		scalars: make(map[string]*float64),
	}

	var rvars []rtree.ReadVar
	vec := func(name string, dst *[]float64) {
		if name != "" {
			rvars = append(rvars, rtree.ReadVar{Name: name, Value: dst})
		}
	}
	b := opts.Branches
	vec(b.PT, &c.pt)
	vec(b.Eta, &c.eta)
	vec(b.Flavor, &c.flavor)
	vec(b.SIP3DTag, &c.sip3dTag)
	vec(b.KTag, &c.kTag)
	vec(b.ETag, &c.eTag)
	vec(b.MuTag, &c.muTag)
	vec(b.T1SIP3D, &c.t1SIP3D)
	if b.METET != "" {
		rvars = append(rvars, rtree.ReadVar{Name: b.METET, Value: &c.metET})
	}
	for _, name := range opts.ExtraJet {
		dst := new([]float64)
		c.extra[name] = dst
		vec(name, dst)
	}
	for _, name := range opts.ExtraEvent {
		dst := new(float64)
		c.scalars[name] = dst
		rvars = append(rvars, rtree.ReadVar{Name: name, Value: dst})
	}
	return c, rvars
}

func (c *columns) event(file string, entry int64) *Event {
	evt := &Event{
		File:     file,
		Entry:    entry,
		METET:    c.metET,
		PT:       clone(c.pt),
		Eta:      clone(c.eta),
		Flavor:   clone(c.flavor),
		SIP3DTag: clone(c.sip3dTag),
		KTag:     clone(c.kTag),
		ETag:     clone(c.eTag),
		MuTag:    clone(c.muTag),
		T1SIP3D:  clone(c.t1SIP3D),
	}
	if len(c.extra) > 0 {
		evt.Extra = make(map[string][]float64, len(c.extra))
		for name, col := range c.extra {
			evt.Extra[name] = clone(*col)
		}
	}
	if len(c.scalars) > 0 {
		evt.Scalars = make(map[string]float64, len(c.scalars))
		for name, v := range c.scalars {
			evt.Scalars[name] = *v
		}
	}
	return evt
}

func clone(s []float64) []float64 {
	if s == nil {
		return nil
	}
	return append(make([]float64, 0, len(s)), s...)
}

func readFile(ctx context.Context, file string, opts Options, out chan<- *Event) error {
	tree, closeFile, err := rootscan.OpenTree(file, TreeName)
	if err != nil {
		return fmt.Errorf("flattree: %w", err)
	}
	defer closeFile()

	cols, rvars := newColumns(opts)
	err = rootscan.ReadTree(tree, rvars, opts.MaxEvents, func(entry int64) error {
		return rootscan.Send(ctx, out, cols.event(file, entry))
	})
	if err != nil {
		return fmt.Errorf("flattree: reading %q: %w", file, err)
	}
	return nil
}
