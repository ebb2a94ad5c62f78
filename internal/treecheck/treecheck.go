// Package treecheck looks for malformed jet entries in the flat output tree.
package treecheck

import (
	"fmt"
	"math"

	"github.com/decibelcooper/oleaaplot/internal/flattree"
)

type Kind int

const (
	LengthMismatch Kind = iota
	NaN
	Inf
)

func (k Kind) String() string {
	switch k {
	case LengthMismatch:
		return "length mismatch"
	case NaN:
		return "NaN"
	case Inf:
		return "infinite"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Issue struct {
	File  string
	Entry int64
	Kind  Kind
	// Jet is the jet index, or -1 for event-level issues.
	Jet   int
	Value float64
}

func (i Issue) String() string {
	switch i.Kind {
	case LengthMismatch:
		return fmt.Sprintf("%s event %d: mismatch in number of jets and jet_t1_sIP3D vector length", i.File, i.Entry)
	default:
		return fmt.Sprintf("%s event %d: jet %d has jet_t1_sIP3D that is %v in value (%v)", i.File, i.Entry, i.Jet, i.Kind, i.Value)
	}
}

// Check returns the issues found in evt: a leading-track significance column
// whose length differs from the jet count, and NaN or infinite
// significances.
func Check(evt *flattree.Event) []Issue {
	var issues []Issue
	if len(evt.T1SIP3D) != len(evt.PT) {
		issues = append(issues, Issue{File: evt.File, Entry: evt.Entry, Kind: LengthMismatch, Jet: -1})
	}

	for j, v := range evt.T1SIP3D {
		switch {
		case math.IsNaN(v):
			issues = append(issues, Issue{File: evt.File, Entry: evt.Entry, Kind: NaN, Jet: j, Value: v})
		case math.IsInf(v, 0):
			issues = append(issues, Issue{File: evt.File, Entry: evt.Entry, Kind: Inf, Jet: j, Value: v})
		}
	}
	return issues
}
