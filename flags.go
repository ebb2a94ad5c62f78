package oleaaplot

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags collects float64 values from a flag that may be repeated
// or given a comma-separated list, e.g. "-bin 10 -bin 12.5,15".  Values from
// the command line replace any default held in Array.
type FloatArrayFlags struct {
	Array []float64
	set   bool
}

func (f *FloatArrayFlags) Set(s string) error {
	var vals []float64
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return err
		}
		vals = append(vals, v)
	}

	if !f.set {
		f.set = true
		f.Array = nil
	}
	f.Array = append(f.Array, vals...)
	return nil
}

func (f *FloatArrayFlags) String() string {
	if f == nil {
		return "[]"
	}
	return fmt.Sprint(f.Array)
}

// IsSet reports whether the flag was given on the command line.
func (f *FloatArrayFlags) IsSet() bool {
	return f.set
}
