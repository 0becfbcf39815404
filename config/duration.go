package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	errMalformedDuration = errors.New("malformed duration")
	errOverflowDuration  = errors.New("duration overflows")
)

// maxDurationMagnitude is the magnitude of math.MinInt64, the largest a
// negative duration can reach.
const maxDurationMagnitude uint64 = 1 << 63

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 2629746 * time.Second  // average Gregorian month
	year  = 31556952 * time.Second // average Gregorian year
)

//nolint:gochecknoglobals // lookup table
var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"µs": time.Microsecond,
	"μs": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  day,
	"w":  week,
	"mo": month,
	"M":  month,
	"y":  year,
}

// ParseDuration parses durations such as "90s", "1h30m", "2d" or "1y6mo".
//
// On top of the units understood by time.ParseDuration it accepts d (day),
// w (week), mo or M (month) and y (year). A string holding only an integer is
// multiplied by unit. Units are case-sensitive: "m" is a minute, "M" a month.
func ParseDuration(s string, unit time.Duration) (time.Duration, error) {
	if s == "" {
		return 0, errMalformedDuration
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if unit <= 0 {
			unit = time.Nanosecond
		}

		if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
			return 0, fmt.Errorf("%w: %q", errOverflowDuration, s)
		}

		return time.Duration(n) * unit, nil
	}

	rest := s
	negative := false

	switch rest[0] {
	case '-':
		negative = true
		rest = rest[1:]
	case '+':
		rest = rest[1:]
	}

	if rest == "" {
		return 0, fmt.Errorf("%w: %q", errMalformedDuration, s)
	}

	var total uint64

	for rest != "" {
		intPart, intDigits, remainder := leadingInt(rest)
		if intDigits < 0 {
			return 0, fmt.Errorf("%w: %q", errOverflowDuration, s)
		}

		rest = remainder

		var (
			frac       uint64
			scale      = 1.0
			fracDigits int
		)

		if rest != "" && rest[0] == '.' {
			frac, scale, fracDigits, rest = leadingFraction(rest[1:])
		}

		if intDigits == 0 && fracDigits == 0 {
			return 0, fmt.Errorf("%w: %q", errMalformedDuration, s)
		}

		unitEnd := strings.IndexFunc(rest, func(r rune) bool { return (r >= '0' && r <= '9') || r == '.' })
		if unitEnd < 0 {
			unitEnd = len(rest)
		}

		name := rest[:unitEnd]
		if name == "" {
			return 0, fmt.Errorf("%w: missing unit in %q", errMalformedDuration, s)
		}

		multiplier, ok := durationUnits[name]
		if !ok {
			return 0, fmt.Errorf("unknown duration unit %q in %q", name, s)
		}

		unitNanos := uint64(multiplier)

		if intPart > maxDurationMagnitude/unitNanos {
			return 0, fmt.Errorf("%w: %q", errOverflowDuration, s)
		}

		component := intPart * unitNanos

		if frac > 0 {
			component += uint64(float64(frac) * (float64(unitNanos) / scale))
			if component > maxDurationMagnitude {
				return 0, fmt.Errorf("%w: %q", errOverflowDuration, s)
			}
		}

		if component > maxDurationMagnitude-total {
			return 0, fmt.Errorf("%w: %q", errOverflowDuration, s)
		}

		total += component

		rest = rest[unitEnd:]
	}

	if negative {
		return -time.Duration(total), nil
	}

	if total > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", errOverflowDuration, s)
	}

	return time.Duration(total), nil
}

// leadingInt consumes the decimal digits at the start of s. digits is -1 when
// the value exceeds maxDurationMagnitude.
func leadingInt(s string) (value uint64, digits int, rest string) {
	i := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digit := uint64(s[i] - '0')
		if value > (maxDurationMagnitude-digit)/10 {
			return 0, -1, s
		}

		value = value*10 + digit
	}

	return value, i, s[i:]
}

// leadingFraction consumes the digits after a decimal point. Digits past the
// precision of uint64 are dropped; value / scale is the fraction.
func leadingFraction(s string) (value uint64, scale float64, digits int, rest string) {
	scale = 1
	overflow := false

	i := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if overflow {
			continue
		}

		if value > (math.MaxInt64-9)/10 {
			overflow = true

			continue
		}

		value = value*10 + uint64(s[i]-'0')
		scale *= 10
	}

	return value, scale, i, s[i:]
}
