package domain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Trend fits a least-squares polynomial of the given degree to the series,
// using the point position scaled to [0, 1] as x, and returns the fitted
// values.
func Trend(s Series, degree int) (Series, error) {
	if degree < 0 {
		return nil, fmt.Errorf("trend: negative degree %d", degree)
	}
	if len(s) <= degree {
		return nil, fmt.Errorf("trend: %d points cannot fit degree %d", len(s), degree)
	}

	cols := degree + 1
	a := mat.NewDense(len(s), cols, nil)
	b := mat.NewVecDense(len(s), s.Values())
	for i := range s {
		x := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, x)
			x *= position(i, len(s))
		}
	}

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("trend: %w", err)
	}

	out := make(Series, len(s))
	for i, p := range s {
		var y, x float64 = 0, 1
		for j := 0; j < cols; j++ {
			y += coef.AtVec(j) * x
			x *= position(i, len(s))
		}
		p.Value = y
		out[i] = p
	}
	return out, nil
}

func position(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}
