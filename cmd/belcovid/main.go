// Command belcovid charts the Belgian COVID-19 epistat feeds and projects the
// date at which hospital beds run out.
//
// Usage:
//
//	belcovid                      # print the projected saturation date
//	belcovid -days                # print the projected number of days
//	belcovid -date 2021-01-02     # project from a given reference day
//	belcovid -chart cases -smooth # render a chart through CHART_OUTPUT
//	belcovid -list                # list chart names
//
// Settings come from the environment; see internal/config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/couchcryptid/belcovid/internal/adapter/chart"
	"github.com/couchcryptid/belcovid/internal/adapter/epistat"
	kafkaadapter "github.com/couchcryptid/belcovid/internal/adapter/kafka"
	"github.com/couchcryptid/belcovid/internal/analysis"
	"github.com/couchcryptid/belcovid/internal/config"
	"github.com/couchcryptid/belcovid/internal/domain"
	"github.com/couchcryptid/belcovid/internal/observability"
)

func main() {
	chartName := flag.String("chart", "", "chart to render: "+strings.Join(analysis.Charts(), ", "))
	smooth := flag.Bool("smooth", false, "overlay a 7-day average and a trend line on the chart")
	days := flag.Bool("days", false, "print the number of days until saturation instead of the date")
	date := flag.String("date", "", "reference day YYYY-MM-DD for the projection (default: yesterday)")
	list := flag.Bool("list", false, "list chart names and exit")
	flag.Parse()

	if *list {
		for _, name := range analysis.Charts() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger, metrics, runArgs{
		chart:  *chartName,
		smooth: *smooth,
		days:   *days,
		date:   *date,
	}, os.Stdout)

	if cfg.MetricsFile != "" {
		if werr := observability.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Error("write metrics file", "path", cfg.MetricsFile, "error", werr)
		}
	}
	if err != nil {
		logger.Error("belcovid failed", "error", err)
		os.Exit(1)
	}
}

type runArgs struct {
	chart  string
	smooth bool
	days   bool
	date   string
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, args runArgs, stdout io.Writer) (err error) {
	var ref time.Time
	if args.date != "" {
		if ref, err = domain.ParseDate(args.date); err != nil {
			return err
		}
	}

	var fetcher analysis.Fetcher = epistat.NewClient(cfg.FetchTimeout, metrics, logger)
	if cfg.FetchRateLimit > 0 {
		fetcher = epistat.NewRateLimitedFetcher(fetcher, cfg.FetchRateLimit, 1)
	}

	sink, closeSink := newSink(cfg, logger, stdout)
	defer func() {
		if cerr := closeSink(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close chart output: %w", cerr))
		}
	}()

	svc := analysis.New(fetcher, sink, analysis.Feeds{
		Hospitalisations: domain.Feed{Name: "hospitalisations", URL: cfg.HospitalisationsURL},
		Tests:            domain.Feed{Name: "tests", URL: cfg.TestsURL},
		Cases:            domain.Feed{Name: "cases", URL: cfg.CasesURL},
	}, analysis.Options{
		AvailableBeds: cfg.AvailableBeds,
		Smooth:        args.smooth,
	}, logger, metrics)

	switch {
	case args.chart != "":
		return svc.Chart(ctx, args.chart)
	case args.days:
		d, err := svc.DaysToSaturation(ctx, ref)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, d)
		return err
	default:
		t, err := svc.DateOfSaturation(ctx, ref)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, domain.FormatDate(t))
		return err
	}
}

func newSink(cfg *config.Config, logger *slog.Logger, stdout io.Writer) (analysis.ChartSink, func() error) {
	switch cfg.ChartOutput {
	case config.OutputPNG:
		return chart.NewPNGSink(cfg.ChartDir, logger), noClose
	case config.OutputKafka:
		w := kafkaadapter.NewWriter(cfg, logger)
		return w, w.Close
	default:
		return chart.NewTextSink(stdout), noClose
	}
}

func noClose() error { return nil }
