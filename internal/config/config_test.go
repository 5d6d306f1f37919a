package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://epistat.sciensano.be/Data/COVID19BE_HOSP.json", cfg.HospitalisationsURL)
	assert.Equal(t, "https://epistat.sciensano.be/Data/COVID19BE_tests.json", cfg.TestsURL)
	assert.Equal(t, "https://epistat.sciensano.be/Data/COVID19BE_CASES_AGESEX.json", cfg.CasesURL)
	assert.Equal(t, 61600.0, cfg.AvailableBeds)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1.0, cfg.FetchRateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, OutputText, cfg.ChartOutput)
	assert.Equal(t, ".", cfg.ChartDir)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "belcovid-daily-series", cfg.KafkaTopic)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("EPISTAT_HOSPI_URL", "http://mirror/hosp.json")
	t.Setenv("EPISTAT_TESTS_URL", "http://mirror/tests.json")
	t.Setenv("EPISTAT_CASES_URL", "http://mirror/cases.json")
	t.Setenv("AVAILABLE_BEDS", "52000")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("FETCH_RATE_LIMIT", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CHART_OUTPUT", "kafka")
	t.Setenv("CHART_DIR", "/tmp/charts")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "series")
	t.Setenv("METRICS_FILE", "/var/lib/node_exporter/belcovid.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://mirror/hosp.json", cfg.HospitalisationsURL)
	assert.Equal(t, "http://mirror/tests.json", cfg.TestsURL)
	assert.Equal(t, "http://mirror/cases.json", cfg.CasesURL)
	assert.Equal(t, 52000.0, cfg.AvailableBeds)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Zero(t, cfg.FetchRateLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, OutputKafka, cfg.ChartOutput)
	assert.Equal(t, "/tmp/charts", cfg.ChartDir)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "series", cfg.KafkaTopic)
	assert.Equal(t, "/var/lib/node_exporter/belcovid.prom", cfg.MetricsFile)
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_NegativeFetchTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_InvalidAvailableBeds(t *testing.T) {
	for _, v := range []string{"lots", "0", "-10"} {
		t.Setenv("AVAILABLE_BEDS", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "AVAILABLE_BEDS")
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("FETCH_RATE_LIMIT", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_RATE_LIMIT")
}

func TestLoad_InvalidChartOutput(t *testing.T) {
	t.Setenv("CHART_OUTPUT", "svg")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHART_OUTPUT")
}
