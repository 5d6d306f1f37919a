package chart

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/belcovid/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const maxTicks = 12

// PNGSink renders charts as line plots into one PNG file per chart.
type PNGSink struct {
	dir    string
	width  vg.Length
	height vg.Length
	logger *slog.Logger
}

// NewPNGSink writes charts into dir as <chart name>.png.
func NewPNGSink(dir string, logger *slog.Logger) *PNGSink {
	return &PNGSink{dir: dir, width: 12 * vg.Inch, height: 6 * vg.Inch, logger: logger}
}

// Render draws c and saves it.
func (s *PNGSink) Render(_ context.Context, c domain.Chart) error {
	p, err := buildPlot(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	path := filepath.Join(s.dir, c.Name+".png")
	if err := p.Save(s.width, s.height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", c.Name, err)
	}
	s.logger.Info("chart written", "chart", c.Name, "path", path)
	return nil
}

func buildPlot(c domain.Chart) (*plot.Plot, error) {
	ax := newAxis(c)

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.X.Tick.Marker = labelTicker{labels: ax.labels}
	p.Add(plotter.NewGrid())

	for i, line := range c.Lines {
		xys := make(plotter.XYs, 0, len(line.Series))
		for _, pt := range line.Series {
			xys = append(xys, plotter.XY{X: float64(ax.index[pt.Date]), Y: pt.Value})
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("chart %s line %q: %w", c.Name, line.Name, err)
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(line.Name, l)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// labelTicker places date labels on integer x positions, thinned out to at
// most maxTicks labels.
type labelTicker struct {
	labels []string
}

func (t labelTicker) Ticks(minX, maxX float64) []plot.Tick {
	if len(t.labels) == 0 {
		return nil
	}
	step := (len(t.labels) + maxTicks - 1) / maxTicks
	var ticks []plot.Tick
	for i := 0; i < len(t.labels); i++ {
		x := float64(i)
		if x < minX || x > maxX {
			continue
		}
		label := ""
		if i%step == 0 {
			label = t.labels[i]
		}
		ticks = append(ticks, plot.Tick{Value: x, Label: label})
	}
	return ticks
}
