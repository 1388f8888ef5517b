// Package dateparse turns a free-form date/time string into an absolute
// instant by trying a fixed, ordered list of interpretations and keeping the
// first that succeeds.
package dateparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Result is a successfully parsed instant. Time is always in UTC.
type Result struct {
	Time time.Time
	Tier Tier
}

type attempt struct {
	tier Tier
	try  func(string) (time.Time, bool)
}

// attempts is walked in order; each entry is independent and pure.
var attempts = []attempt{
	{TierUnix, tryUnix},
	{TierRFC3339, tryLayouts(rfc3339Layouts)},
	{TierRFC2822, tryRFC2822},
	{TierOffset, tryLayouts(offsetLayouts)},
	{TierNaive, tryLayouts(naiveLayouts)},
	{TierNaiveComma, withCommasNormalized(tryLayouts(naiveCommaLayouts))},
	{TierDate, tryLayouts(dateLayouts)},
	{TierDateComma, withCommasNormalized(tryLayouts(dateCommaLayouts))},
}

// Parse interprets s, which must already be trimmed. Inputs without an
// embedded offset are read as UTC.
func Parse(s string) (Result, error) {
	if s == "" {
		return Result{}, fmt.Errorf("%w: empty input", ErrParseFailure)
	}
	for _, a := range attempts {
		if t, ok := a.try(s); ok {
			return Result{Time: t.UTC(), Tier: a.tier}, nil
		}
	}
	return Result{}, fmt.Errorf("%w: %q", ErrParseFailure, s)
}

var errUnsupportedWidth = errors.New("not a unix timestamp width")

// parseUnix picks the unit purely from the string length: 10 digits are
// seconds, 13 milliseconds and 19 nanoseconds.
func parseUnix(s string) (time.Time, error) {
	switch len(s) {
	case 10, 13, 19:
	default:
		return time.Time{}, errUnsupportedWidth
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidInteger, s, err)
	}

	switch len(s) {
	case 10:
		return time.Unix(n, 0), nil
	case 13:
		return time.UnixMilli(n), nil
	default:
		return time.Unix(0, n), nil
	}
}

func tryUnix(s string) (time.Time, bool) {
	t, err := parseUnix(s)
	return t, err == nil
}

func tryLayouts(layouts []string) func(string) (time.Time, bool) {
	return func(s string) (time.Time, bool) {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				if strings.Contains(layout, twoDigitYear) && t.Year() == 1969 {
					t = t.AddDate(100, 0, 0)
				}
				return t, true
			}
		}
		return time.Time{}, false
	}
}

// tryRFC2822 swaps a trailing zone name for its numeric offset. Names
// outside obsZones are rejected rather than read as UTC.
func tryRFC2822(s string) (time.Time, bool) {
	if i := strings.LastIndexByte(s, ' '); i >= 0 && isLetters(s[i+1:]) {
		offset, ok := obsZones[strings.ToUpper(s[i+1:])]
		if !ok {
			return time.Time{}, false
		}
		s = s[:i+1] + offset
	}
	return tryLayouts(rfc2822Layouts)(s)
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// normalizeCommas turns "March 3, 2021" into "March 3 2021".
func normalizeCommas(s string) string {
	return strings.ReplaceAll(s, ", ", " ")
}

func withCommasNormalized(try func(string) (time.Time, bool)) func(string) (time.Time, bool) {
	return func(s string) (time.Time, bool) {
		return try(normalizeCommas(s))
	}
}
