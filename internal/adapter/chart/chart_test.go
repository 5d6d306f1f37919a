package chart

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/belcovid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChart() domain.Chart {
	c := domain.NewChart("hospitalisations", "Hospitalisation IN", domain.Series{
		{Date: "2021-01-01", Label: "01-01", Value: 100},
		{Date: "2021-01-02", Label: "01-02", Value: 110.5},
		{Date: "2021-01-03", Label: "01-03", Value: 90},
	})
	c.Lines = append(c.Lines, domain.Line{
		Name: "change %",
		Series: domain.Series{
			{Date: "2021-01-02", Label: "01-02", Value: 10.5},
			{Date: "2021-01-04", Label: "01-04", Value: -3},
		},
	})
	return c
}

func TestNewAxis(t *testing.T) {
	ax := newAxis(testChart())

	assert.Equal(t, []string{"2021-01-01", "2021-01-02", "2021-01-03", "2021-01-04"}, ax.dates)
	assert.Equal(t, []string{"01-01", "01-02", "01-03", "01-04"}, ax.labels)
	assert.Equal(t, 3, ax.index["2021-01-04"])
}

func TestTextSink_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextSink(&buf).Render(context.Background(), testChart()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "# Hospitalisation IN", lines[0])
	assert.Equal(t, []string{"Date", "Hospitalisation", "IN", "change", "%"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"01-01", "100", "-"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"01-02", "110.5", "10.5"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"01-04", "-", "-3"}, strings.Fields(lines[5]))
}

func TestPNGSink_Render(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	sink := NewPNGSink(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, sink.Render(context.Background(), testChart()))

	data, err := os.ReadFile(filepath.Join(dir, "hospitalisations.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestBuildPlot(t *testing.T) {
	p, err := buildPlot(testChart())
	require.NoError(t, err)

	assert.Equal(t, "Hospitalisation IN", p.Title.Text)
	assert.Equal(t, "Date", p.X.Label.Text)
	assert.Equal(t, "Hospitalisation IN", p.Y.Label.Text)
}

func TestLabelTicker(t *testing.T) {
	labels := make([]string, 30)
	for i := range labels {
		labels[i] = string(rune('A' + i))
	}
	ticks := labelTicker{labels: labels}.Ticks(0, 29)

	require.Len(t, ticks, 30)
	named := 0
	for _, tick := range ticks {
		if tick.Label != "" {
			named++
		}
	}
	assert.LessOrEqual(t, named, maxTicks)
	assert.Equal(t, "A", ticks[0].Label)
	assert.Empty(t, ticks[1].Label)

	assert.Nil(t, labelTicker{}.Ticks(0, 1))
	assert.Len(t, labelTicker{labels: labels}.Ticks(5, 9), 5)
}
