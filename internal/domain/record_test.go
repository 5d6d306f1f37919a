package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Number(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    float64
		wantErr bool
	}{
		{"float", 12.0, 12, false},
		{"int", 7, 7, false},
		{"int64", int64(9), 9, false},
		{"json number", json.Number("3.5"), 3.5, false},
		{"bad json number", json.Number("x"), 0, true},
		{"string", "12", 0, true},
		{"nil", nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Record{"V": tt.value}.Number("V")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_Date(t *testing.T) {
	d, ok := Record{"DATE": "2020-09-30"}.Date()
	assert.True(t, ok)
	assert.Equal(t, "2020-09-30", d)

	_, ok = Record{"REGION": "Wallonia"}.Date()
	assert.False(t, ok)
}

func TestSumAtDate(t *testing.T) {
	records := []Record{
		{"DATE": "2020-05-07", "c": 19.5},
		{"DATE": "2020-05-07", "c": 42.0},
		{"c": 20.4},
		{"DATE": "2020-05-06", "c": 31.8},
	}
	got, err := SumAtDate(records, "2020-05-07", "c")
	require.NoError(t, err)
	assert.Equal(t, 61.5, got)

	got, err = SumAtDate(records, "2020-05-08", "c")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2021-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2021-01-02", FormatDate(got))

	_, err = ParseDate("02/01/2021")
	require.Error(t, err)
}
