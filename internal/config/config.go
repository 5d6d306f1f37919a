package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Chart outputs.
const (
	OutputText  = "text"
	OutputPNG   = "png"
	OutputKafka = "kafka"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	HospitalisationsURL string
	TestsURL            string
	CasesURL            string

	AvailableBeds  float64
	FetchTimeout   time.Duration
	FetchRateLimit float64 // requests per second, 0 disables throttling

	LogLevel  string
	LogFormat string

	ChartOutput  string
	ChartDir     string
	KafkaBrokers []string
	KafkaTopic   string

	// MetricsFile, when set, receives the run's metrics in Prometheus text
	// format for the node_exporter textfile collector.
	MetricsFile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "60s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	beds, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("AVAILABLE_BEDS", "61600"), 64)
	if err != nil || beds <= 0 {
		return nil, errors.New("invalid AVAILABLE_BEDS")
	}

	rateLimit, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("FETCH_RATE_LIMIT", "1"), 64)
	if err != nil || rateLimit < 0 {
		return nil, errors.New("invalid FETCH_RATE_LIMIT")
	}

	cfg := &Config{
		HospitalisationsURL: sharedcfg.EnvOrDefault("EPISTAT_HOSPI_URL", "https://epistat.sciensano.be/Data/COVID19BE_HOSP.json"),
		TestsURL:            sharedcfg.EnvOrDefault("EPISTAT_TESTS_URL", "https://epistat.sciensano.be/Data/COVID19BE_tests.json"),
		CasesURL:            sharedcfg.EnvOrDefault("EPISTAT_CASES_URL", "https://epistat.sciensano.be/Data/COVID19BE_CASES_AGESEX.json"),
		AvailableBeds:       beds,
		FetchTimeout:        fetchTimeout,
		FetchRateLimit:      rateLimit,
		LogLevel:            sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ChartOutput:         sharedcfg.EnvOrDefault("CHART_OUTPUT", OutputText),
		ChartDir:            sharedcfg.EnvOrDefault("CHART_DIR", "."),
		KafkaBrokers:        sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:          sharedcfg.EnvOrDefault("KAFKA_TOPIC", "belcovid-daily-series"),
		MetricsFile:         os.Getenv("METRICS_FILE"),
	}

	switch cfg.ChartOutput {
	case OutputText, OutputPNG:
	case OutputKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when CHART_OUTPUT is kafka")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when CHART_OUTPUT is kafka")
		}
	default:
		return nil, fmt.Errorf("invalid CHART_OUTPUT %q", cfg.ChartOutput)
	}
	if cfg.HospitalisationsURL == "" || cfg.TestsURL == "" || cfg.CasesURL == "" {
		return nil, errors.New("EPISTAT_*_URL must not be empty")
	}

	return cfg, nil
}
