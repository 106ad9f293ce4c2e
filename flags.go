package zllplot

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags collects float values from a repeatable flag. Each use
// may carry a comma-separated list. The first use replaces the defaults.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func NewFloatArrayFlags(defaults ...float64) *FloatArrayFlags {
	return &FloatArrayFlags{Array: defaults}
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	var values []float64
	for _, field := range strings.Split(valueStr, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return err
		}
		values = append(values, value)
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, values...)
	return nil
}

func (f *FloatArrayFlags) String() string {
	if f == nil {
		return "[]"
	}
	return fmt.Sprint(f.Array)
}

// Edges checks that the values are strictly increasing bin edges and
// returns them.
func (f *FloatArrayFlags) Edges() ([]float64, error) {
	if len(f.Array) < 2 {
		return nil, fmt.Errorf("need at least two bin edges, got %v", f.Array)
	}
	for i := 1; i < len(f.Array); i++ {
		if f.Array[i] <= f.Array[i-1] {
			return nil, fmt.Errorf("bin edges %v are not increasing", f.Array)
		}
	}
	return f.Array, nil
}
