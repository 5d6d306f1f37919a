package domain

// Chart is what a plotting consumer receives: one or more aligned series and
// their axis labels.
type Chart struct {
	Name   string // short identifier, used for file names and message keys
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
}

// Line is one named series on a chart.
type Line struct {
	Name   string
	Series Series
}

// NewChart builds a single-line chart with "Date" on the x axis.
func NewChart(name, yLabel string, s Series) Chart {
	return Chart{
		Name:   name,
		Title:  yLabel,
		XLabel: "Date",
		YLabel: yLabel,
		Lines:  []Line{{Name: yLabel, Series: s}},
	}
}
