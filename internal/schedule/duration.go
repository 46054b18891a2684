package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Interval is a structured duration as delivered by the store's interval
// columns.
type Interval struct {
	Hours   float64
	Minutes float64
}

var (
	colonTimeRe = regexp.MustCompile(`^(\d+):(\d{1,2})(?::(\d{1,2}))?$`)
	hoursRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*hours?`)
	daysRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*days?`)
)

// ParseDuration converts the heterogeneous duration shapes found in
// reference data into an hour count. Numeric inputs are minutes. Strings
// are matched against the colon time format H:MM:SS (seconds ignored),
// then natural language "N hours" / "N days" (summed when both appear).
// Anything unparseable yields 0: duration fields are advisory, so the
// parser fails soft instead of erroring.
func ParseDuration(v any) float64 {
	switch d := v.(type) {
	case nil:
		return 0
	case Interval:
		return d.Hours + d.Minutes/60
	case *Interval:
		if d == nil {
			return 0
		}
		return d.Hours + d.Minutes/60
	case int:
		return float64(d) / 60
	case int64:
		return float64(d) / 60
	case float64:
		return d / 60
	case time.Duration:
		return d.Hours()
	case string:
		return parseDurationString(d)
	default:
		return 0
	}
}

func parseDurationString(s string) float64 {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0
	}

	if m := colonTimeRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		minutes, _ := strconv.ParseFloat(m[2], 64)
		return hours + minutes/60
	}

	total := 0.0
	matched := false
	if m := daysRe.FindStringSubmatch(s); m != nil {
		days, _ := strconv.ParseFloat(m[1], 64)
		total += days * 24
		matched = true
	}
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		total += hours
		matched = true
	}
	if !matched {
		return 0
	}
	return total
}

// hoursToDuration converts a fractional hour count to a time.Duration.
func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
