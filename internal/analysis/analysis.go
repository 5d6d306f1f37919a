package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/couchcryptid/belcovid/internal/domain"
	"github.com/couchcryptid/belcovid/internal/observability"
)

// averageWindow is the width of the rolling average overlaid on smoothed
// charts and used for the weekly change chart.
const averageWindow = 7

// trendDegree is the degree of the polynomial trend line.
const trendDegree = 3

// Fetcher downloads one feed. Implementations must not cache.
type Fetcher interface {
	Fetch(ctx context.Context, feed domain.Feed) ([]domain.Record, error)
}

// ChartSink consumes finished charts: a plotter, a printer or a publisher.
type ChartSink interface {
	Render(ctx context.Context, c domain.Chart) error
}

// Feeds are the three epistat sources.
type Feeds struct {
	Hospitalisations domain.Feed
	Tests            domain.Feed
	Cases            domain.Feed
}

// Options tune a Service.
type Options struct {
	AvailableBeds float64
	// Smooth overlays a rolling average and a trend line on charts.
	Smooth bool
}

// Service runs the analyses. Each entry point fetches the feeds it needs
// afresh; nothing is shared between calls.
type Service struct {
	fetcher Fetcher
	sink    ChartSink
	feeds   Feeds
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service.
func New(f Fetcher, sink ChartSink, feeds Feeds, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if opts.AvailableBeds == 0 {
		opts.AvailableBeds = domain.DefaultAvailableBeds
	}
	return &Service{
		fetcher: f,
		sink:    sink,
		feeds:   feeds,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// ErrUnknownChart is returned by Chart for names not listed by Charts.
var ErrUnknownChart = errors.New("unknown chart")

type chartFunc func(*Service, context.Context) error

var charts = map[string]chartFunc{
	"hospitalisations":          (*Service).Hospitalisations,
	"tests":                     (*Service).Tests,
	"cases":                     (*Service).Cases,
	"cases-by-age":              (*Service).CasesByAge,
	"hospitalisations-per-test": (*Service).HospitalisationsPerTest,
	"cases-per-test":            (*Service).CasesPerTest,
	"people-in-hospital":        (*Service).PeopleInHospital,
	"patients-in-icu":           (*Service).PatientsInICU,
	"hospital-weekly-change":    (*Service).HospitalWeeklyChange,
}

// Charts lists the chart names accepted by Chart, sorted.
func Charts() []string {
	names := make([]string, 0, len(charts))
	for name := range charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chart builds and renders the chart called name.
func (s *Service) Chart(ctx context.Context, name string) error {
	fn, ok := charts[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownChart, name)
	}
	return fn(s, ctx)
}

// Hospitalisations charts daily new admissions.
func (s *Service) Hospitalisations(ctx context.Context) error {
	return s.fieldChart(ctx, "hospitalisations", s.feeds.Hospitalisations, domain.FieldNewIn, "Hospitalisation IN")
}

// Tests charts the daily test counter.
func (s *Service) Tests(ctx context.Context) error {
	series, err := s.testSeries(ctx)
	if err != nil {
		return err
	}
	return s.render(ctx, "tests", "Tests", series)
}

// Cases charts daily confirmed cases. Case rows without a date are skipped.
func (s *Service) Cases(ctx context.Context) error {
	return s.fieldChart(ctx, "cases", s.feeds.Cases, domain.FieldCases, "Cases")
}

// CasesByAge charts the 7-day average of daily cases, one line per age
// group. Cases without an AGEGROUP are counted as AgeUnknown.
func (s *Service) CasesByAge(ctx context.Context) error {
	records, err := s.fetcher.Fetch(ctx, s.feeds.Cases)
	if err != nil {
		return err
	}
	byAge, err := domain.AggregateByAge(records, domain.Field(domain.FieldCases))
	if err != nil {
		return fmt.Errorf("%s: %w", s.feeds.Cases.Name, err)
	}

	const name = "cases-by-age"
	c := domain.Chart{
		Name:   name,
		Title:  fmt.Sprintf("Cases by age (%d-day average)", averageWindow),
		XLabel: "Date",
		YLabel: "Cases",
	}
	var points int
	for _, group := range domain.AgeGroups {
		series := byAge[group]
		points = len(series)
		c.Lines = append(c.Lines, domain.Line{Name: group, Series: domain.RollingAverage(series, averageWindow)})
	}

	s.metrics.SeriesPoints.WithLabelValues(name).Set(float64(points))
	s.logger.Debug("chart built", "chart", name, "points", points, "lines", len(c.Lines))
	return s.sink.Render(ctx, c)
}

// HospitalisationsPerTest charts new admissions divided by tests, per day.
func (s *Service) HospitalisationsPerTest(ctx context.Context) error {
	return s.ratioChart(ctx, "hospitalisations-per-test", s.feeds.Hospitalisations, domain.FieldNewIn, "Hospitalisations per test")
}

// CasesPerTest charts confirmed cases divided by tests, per day.
func (s *Service) CasesPerTest(ctx context.Context) error {
	return s.ratioChart(ctx, "cases-per-test", s.feeds.Cases, domain.FieldCases, "Cases per test")
}

// PeopleInHospital charts total hospital occupancy.
func (s *Service) PeopleInHospital(ctx context.Context) error {
	return s.fieldChart(ctx, "people-in-hospital", s.feeds.Hospitalisations, domain.FieldTotalIn, "People in hospital")
}

// PatientsInICU charts intensive care occupancy.
func (s *Service) PatientsInICU(ctx context.Context) error {
	return s.fieldChart(ctx, "patients-in-icu", s.feeds.Hospitalisations, domain.FieldTotalInICU, "Patients in ICU")
}

// HospitalWeeklyChange charts the week-over-week change of the 7-day
// average hospital occupancy, in percent.
func (s *Service) HospitalWeeklyChange(ctx context.Context) error {
	series, err := s.aggregate(ctx, s.feeds.Hospitalisations, domain.Field(domain.FieldTotalIn))
	if err != nil {
		return err
	}
	change := domain.RateOfChange(domain.RollingAverage(series, averageWindow), averageWindow)
	return s.render(ctx, "hospital-weekly-change", "Weekly change of people in hospital (%)", change)
}

// DaysToSaturation projects the number of days until hospital occupancy
// reaches the available beds, from the occupancy at ref and the day before.
// A zero ref means yesterday, evaluated now.
func (s *Service) DaysToSaturation(ctx context.Context, ref time.Time) (float64, error) {
	if ref.IsZero() {
		ref = domain.Yesterday()
	}
	records, err := s.fetcher.Fetch(ctx, s.feeds.Hospitalisations)
	if err != nil {
		return 0, err
	}

	occ, err := domain.OccupancyAt(records, ref)
	if err != nil {
		s.metrics.Projections.WithLabelValues("error").Inc()
		return 0, err
	}
	days, err := occ.Project(s.opts.AvailableBeds)
	if err != nil {
		s.metrics.Projections.WithLabelValues("error").Inc()
		return 0, err
	}

	outcome := "projected"
	if occ.Change() == 0 || occ.Today == 0 {
		outcome = "degenerate"
	}
	s.metrics.Projections.WithLabelValues(outcome).Inc()
	s.metrics.DaysToSaturation.Set(days)
	s.logger.Info("saturation projected",
		"date", domain.FormatDate(ref),
		"today", occ.Today,
		"yesterday", occ.Yesterday,
		"beds", s.opts.AvailableBeds,
		"days", days,
	)
	return days, nil
}

// DateOfSaturation returns ref plus DaysToSaturation(ref) days. A zero ref
// means yesterday, evaluated now.
func (s *Service) DateOfSaturation(ctx context.Context, ref time.Time) (time.Time, error) {
	if ref.IsZero() {
		ref = domain.Yesterday()
	}
	days, err := s.DaysToSaturation(ctx, ref)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOfSaturation(ref, days), nil
}

func (s *Service) fieldChart(ctx context.Context, name string, feed domain.Feed, field, yLabel string) error {
	series, err := s.aggregate(ctx, feed, domain.Field(field))
	if err != nil {
		return err
	}
	return s.render(ctx, name, yLabel, series)
}

func (s *Service) ratioChart(ctx context.Context, name string, feed domain.Feed, field, yLabel string) error {
	other, err := s.fetcher.Fetch(ctx, feed)
	if err != nil {
		return err
	}
	tests, err := s.testSeries(ctx)
	if err != nil {
		return err
	}
	series, err := domain.Ratio(tests, other, field)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return s.render(ctx, name, yLabel, series)
}

// testSeries aggregates TESTS_ALL with a fixed zero baseline, so each value
// is the counter as published rather than a day-over-day difference.
func (s *Service) testSeries(ctx context.Context) (domain.Series, error) {
	s.logger.Warn("tests are differenced against a fixed zero baseline; values are the published counter")
	return s.aggregate(ctx, s.feeds.Tests, domain.Differenced(domain.FieldTestsAll, 0))
}

func (s *Service) aggregate(ctx context.Context, feed domain.Feed, extract domain.Extractor) (domain.Series, error) {
	records, err := s.fetcher.Fetch(ctx, feed)
	if err != nil {
		return nil, err
	}
	series, err := domain.Aggregate(records, extract)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", feed.Name, err)
	}
	return series, nil
}

func (s *Service) render(ctx context.Context, name, yLabel string, series domain.Series) error {
	c := domain.NewChart(name, yLabel, series)
	if s.opts.Smooth {
		c.Lines = append(c.Lines, domain.Line{
			Name:   fmt.Sprintf("%s (%d-day average)", yLabel, averageWindow),
			Series: domain.RollingAverage(series, averageWindow),
		})
		trend, err := domain.Trend(series, trendDegree)
		if err != nil {
			s.logger.Warn("trend line skipped", "chart", name, "error", err)
		} else {
			c.Lines = append(c.Lines, domain.Line{Name: "Trend", Series: trend})
		}
	}

	s.metrics.SeriesPoints.WithLabelValues(name).Set(float64(len(series)))
	s.logger.Debug("chart built", "chart", name, "points", len(series), "lines", len(c.Lines))
	return s.sink.Render(ctx, c)
}
