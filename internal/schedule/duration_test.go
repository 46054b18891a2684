package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration_ColonTime(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2:30:00", 2.5},
		{"1:00:00", 1},
		{"0:45:00", 0.75},
		{"0:15", 0.25},
		{"10:30:59", 10.5}, // seconds ignored
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseDuration(tt.input), 1e-9)
		})
	}
}

func TestParseDuration_NaturalLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"3 hours", 3},
		{"1 hour", 1},
		{"1 day", 24},
		{"2 days", 48},
		{"2 days 3 hours", 51},
		{"1.5 hours", 1.5},
		{"3 Hours", 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseDuration(tt.input), 1e-9)
		})
	}
}

func TestParseDuration_StructuredInterval(t *testing.T) {
	assert.InDelta(t, 2.25, ParseDuration(Interval{Hours: 2, Minutes: 15}), 1e-9)
	assert.InDelta(t, 0.5, ParseDuration(&Interval{Minutes: 30}), 1e-9)
	assert.Equal(t, 0.0, ParseDuration((*Interval)(nil)))
}

func TestParseDuration_NumericMinutes(t *testing.T) {
	assert.InDelta(t, 2.5, ParseDuration(150), 1e-9)
	assert.InDelta(t, 1.5, ParseDuration(90.0), 1e-9)
	assert.InDelta(t, 1.0, ParseDuration(int64(60)), 1e-9)
}

func TestParseDuration_FailsSoft(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"garbage", "soonish"},
		{"unsupported type", struct{}{}},
		{"bare number string", "90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, ParseDuration(tt.input))
		})
	}
}
