package vtt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// HH:MM:SS.mmm with unbounded hours, two-digit minutes/seconds, three-digit millis
var timestampShape = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})\.(\d{3})$`)

// ToSeconds converts an HH:MM:SS.mmm timestamp to seconds.
func ToSeconds(text string) (float64, error) {
	m := timestampShape.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}

	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])

	if min > 59 || sec > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}

	return float64(h)*3600 + float64(min)*60 + float64(sec) + float64(ms)/1000, nil
}

// ToTimestamp converts seconds to HH:MM:SS.mmm. Millisecond precision is
// preserved exactly: ToSeconds(ToTimestamp(x)) == x for non-negative x
// representable at millisecond resolution.
func ToTimestamp(seconds float64) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("%w: %f", ErrInvalidTimestampValue, seconds)
	}

	totalMillis := int64(math.Round(seconds * 1000))
	h := totalMillis / 3600000
	m := (totalMillis % 3600000) / 60000
	s := (totalMillis % 60000) / 1000
	ms := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms), nil
}

// mustTimestamp formats a known non-negative value; callers clamp first.
func mustTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	text, _ := ToTimestamp(seconds)
	return text
}
