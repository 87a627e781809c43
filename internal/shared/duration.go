package shared

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sosodev/duration"
)

// ZeroDuration is substituted for durations that cannot be parsed.
const ZeroDuration = "00:00:00"

// ParseISODuration parses an ISO 8601 duration such as "PT2M2S" or "P1DT3H".
func ParseISODuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrInvalidInput)
	}

	parsed, err := duration.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q: %v", ErrInvalidInput, raw, err)
	}
	if parsed.Negative {
		return 0, fmt.Errorf("%w: negative duration %q", ErrInvalidInput, raw)
	}

	if nanos(parsed) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: duration %q overflows", ErrInvalidInput, raw)
	}
	d := parsed.ToTimeDuration()
	if d < 0 {
		return 0, fmt.Errorf("%w: duration %q overflows", ErrInvalidInput, raw)
	}
	return d, nil
}

// nanos is the length of d in nanoseconds computed in floating point, so it cannot wrap.
// Years are 365 days and months a twelfth of that, matching [duration.Duration.ToTimeDuration].
func nanos(d *duration.Duration) float64 {
	const year = 365 * 24 * float64(time.Hour)
	return d.Years*year +
		d.Months*year/12 +
		d.Weeks*7*24*float64(time.Hour) +
		d.Days*24*float64(time.Hour) +
		d.Hours*float64(time.Hour) +
		d.Minutes*float64(time.Minute) +
		d.Seconds*float64(time.Second)
}

// FormatClock renders d as zero-padded HH:MM:SS. Hours grow past two digits instead of wrapping.
func FormatClock(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// NormalizeDuration converts an ISO 8601 duration to HH:MM:SS.
//
// Parse failures are logged and yield [ZeroDuration] so one malformed value never fails a batch.
func NormalizeDuration(l *log.Logger, raw string) string {
	d, err := ParseISODuration(raw)
	if err != nil {
		if l != nil {
			l.Error("error parsing duration", "duration", raw, "err", err)
		}
		return ZeroDuration
	}
	return FormatClock(d)
}
