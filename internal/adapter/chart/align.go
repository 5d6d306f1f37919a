package chart

import "github.com/couchcryptid/belcovid/internal/domain"

// axis is the shared x axis of a chart: the dates of its first line, plus
// dates only present in later lines appended in order.
type axis struct {
	dates  []string
	labels []string
	index  map[string]int
}

func newAxis(c domain.Chart) axis {
	a := axis{index: make(map[string]int)}
	for _, line := range c.Lines {
		for _, p := range line.Series {
			if _, ok := a.index[p.Date]; ok {
				continue
			}
			a.index[p.Date] = len(a.dates)
			a.dates = append(a.dates, p.Date)
			a.labels = append(a.labels, p.Label)
		}
	}
	return a
}
