package domain

import "fmt"

// AgeUnknown is the bucket for records with no AGEGROUP.
const AgeUnknown = "Age unknown"

// AgeGroups are the age buckets of the cases feed, youngest first.
var AgeGroups = []string{
	"0-9", "10-19", "20-29", "30-39", "40-49",
	"50-59", "60-69", "70-79", "80-89", "90+",
	AgeUnknown,
}

// AgeGroup returns the record's age bucket. A missing, empty or non-string
// AGEGROUP is AgeUnknown.
func AgeGroup(r Record) string {
	g, ok := r[FieldAgeGroup].(string)
	if !ok || g == "" {
		return AgeUnknown
	}
	return g
}

// AggregateByAge builds one daily series per entry of AgeGroups. Every
// series has a point for each date of records, in first-seen order, with 0
// where the group had no record that day. Undated records are skipped, as
// are records whose group is not listed in AgeGroups.
func AggregateByAge(records []Record, extract Extractor) (map[string]Series, error) {
	column := make(map[string]int, len(AgeGroups))
	for i, g := range AgeGroups {
		column[g] = i
	}

	var dates []string
	index := make(map[string]int)
	sums := make([][]float64, 0)

	for i, r := range records {
		date, ok := r.Date()
		if !ok {
			continue
		}
		col, listed := column[AgeGroup(r)]
		if !listed {
			continue
		}
		v, err := extract(r)
		if err != nil {
			return nil, fmt.Errorf("aggregate record %d (%s): %w", i, date, err)
		}
		at, seen := index[date]
		if !seen {
			at = len(dates)
			index[date] = at
			dates = append(dates, date)
			sums = append(sums, make([]float64, len(AgeGroups)))
		}
		sums[at][col] += v
	}

	out := make(map[string]Series, len(AgeGroups))
	for col, g := range AgeGroups {
		s := make(Series, len(dates))
		for at, date := range dates {
			s[at] = Point{Date: date, Label: date[5:10], Value: sums[at][col]}
		}
		out[g] = s
	}
	return out, nil
}
