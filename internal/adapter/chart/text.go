package chart

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/couchcryptid/belcovid/internal/domain"
)

// TextSink prints charts as aligned columns: one row per date, one column
// per line.
type TextSink struct {
	w io.Writer
}

// NewTextSink writes to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Render prints c.
func (s *TextSink) Render(_ context.Context, c domain.Chart) error {
	ax := newAxis(c)

	columns := make([]map[string]float64, len(c.Lines))
	for i, line := range c.Lines {
		columns[i] = make(map[string]float64, len(line.Series))
		for _, p := range line.Series {
			columns[i][p.Date] = p.Value
		}
	}

	tw := tabwriter.NewWriter(s.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "# %s\n", c.Title)
	fmt.Fprint(tw, c.XLabel)
	for _, line := range c.Lines {
		fmt.Fprintf(tw, "\t%s", line.Name)
	}
	fmt.Fprintln(tw, "\t")

	for i, date := range ax.dates {
		fmt.Fprint(tw, ax.labels[i])
		for _, col := range columns {
			v, ok := col[date]
			if !ok {
				fmt.Fprint(tw, "\t-")
				continue
			}
			fmt.Fprintf(tw, "\t%s", strconv.FormatFloat(v, 'f', -1, 64))
		}
		fmt.Fprintln(tw, "\t")
	}
	return tw.Flush()
}
