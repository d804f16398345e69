package table

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of a numeric column.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	P25    float64
	P50    float64
	P75    float64
	Max    float64
}

// Describe summarises a numeric column.
func (t *Table) Describe(column string) (Summary, error) {
	values, err := t.Float64s(column)
	if err != nil {
		return Summary{}, err
	}
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("describe %s: no values", column)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := Summary{
		Column: column,
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		P25:    stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		P50:    stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		P75:    stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s, nil
}
