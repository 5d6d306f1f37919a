package domain

import "fmt"

// Point is one day of a Series.
type Point struct {
	Date  string  // ISO date, the grouping key
	Label string  // "MM-DD", used on chart axes
	Value float64 // sum of the extracted values for Date
}

// Series is a daily series: one point per distinct date, in first-seen order.
type Series []Point

// Labels returns the x-axis labels of the series.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// Values returns the y values of the series, aligned with Labels.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Total returns the sum of all values.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Extractor pulls the value to aggregate out of a record.
type Extractor func(Record) (float64, error)

// Field extracts the raw numeric value of name.
func Field(name string) Extractor {
	return func(r Record) (float64, error) {
		return r.Number(name)
	}
}

// Differenced extracts a cumulative counter minus baseline.
//
// The baseline is fixed for the whole fold; it is not advanced to the
// previous record's value. With a zero baseline the extracted value is the
// counter itself, which is how the tests chart has always been computed.
func Differenced(name string, baseline float64) Extractor {
	return func(r Record) (float64, error) {
		v, err := r.Number(name)
		if err != nil {
			return 0, err
		}
		return v - baseline, nil
	}
}

// Aggregate groups records by date and sums the extracted values.
// Records without a usable DATE are skipped. Same-date records need not be
// adjacent: they are merged into the point created by the first of them.
func Aggregate(records []Record, extract Extractor) (Series, error) {
	series := make(Series, 0)
	index := make(map[string]int)

	for i, r := range records {
		date, ok := r.Date()
		if !ok {
			continue
		}
		v, err := extract(r)
		if err != nil {
			return nil, fmt.Errorf("aggregate record %d (%s): %w", i, date, err)
		}
		if at, seen := index[date]; seen {
			series[at].Value += v
			continue
		}
		index[date] = len(series)
		series = append(series, Point{Date: date, Label: date[5:10], Value: v})
	}
	return series, nil
}

// Ratio divides, for every date of tests, the sum of field over the records
// of other dated exactly that day by that day's test count. Dates with no
// tests are left out. Dates of other missing from tests are dropped.
func Ratio(tests Series, other []Record, field string) (Series, error) {
	out := make(Series, 0, len(tests))
	for _, p := range tests {
		if p.Value == 0 {
			continue
		}
		num, err := SumAtDate(other, p.Date, field)
		if err != nil {
			return nil, err
		}
		out = append(out, Point{Date: p.Date, Label: p.Label, Value: num / p.Value})
	}
	return out, nil
}
