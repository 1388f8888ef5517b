// Package datefmt renders an instant in the set of display forms offered by
// the date-formats workflow.
package datefmt

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/kyleking/alfred-workflows/internal/alfred"
)

const (
	// AltLayout matches a space-padded "day month year time" rendering.
	AltLayout = "_2 Jan 2006 15:04:05"

	rfc3339NanoFixed = "2006-01-02T15:04:05.000000000Z07:00"

	// rfc2822Layout leaves the day unpadded, unlike time.RFC1123Z.
	rfc2822Layout = "Mon, 2 Jan 2006 15:04:05 -0700"
)

var (
	minNano = time.Unix(0, math.MinInt64)
	maxNano = time.Unix(0, math.MaxInt64)
)

// Clock returns the current time. Variations takes one so output is stable
// under test.
type Clock func() time.Time

// Variations returns the display items for instant, in launcher order.
// The instant is shown in display; local is used for the "local timezone"
// entry and is usually time.Local.
func Variations(instant time.Time, display, local *time.Location, now Clock) []alfred.Item {
	dt := instant.In(display)
	since, sinceLabel := Relative(instant, now())

	return []alfred.Item{
		variation(strconv.FormatInt(dt.Unix(), 10), "UNIX timestamp - seconds"),
		variation(strconv.FormatInt(dt.UnixMilli(), 10), "UNIX timestamp - milliseconds"),
		variation(unixNanos(dt), "UNIX timestamp - nanoseconds"),
		variation(dt.Format(AltLayout), ""),
		variation(instant.In(local).Format(AltLayout), "Time in local timezone"),
		variation(dt.Format(rfc2822Layout), "rfc_2822"),
		variation(dt.Format(time.RFC3339), "rfc_3339 - iso8601 compatible"),
		variation(dt.Format(rfc3339NanoFixed), "rfc_3339_nano - iso8601 compatible"),
		variation(since, sinceLabel),
	}
}

// Relative describes the distance between instant and now as
// "Nd, Nh, Nm, Ns ago" (or "to go"), each unit truncated. The second return
// value is the matching subtitle.
func Relative(instant, now time.Time) (string, string) {
	// Whole seconds keep the arithmetic in range for any year time.Time
	// can represent; time.Duration overflows past ~292 years.
	secs := instant.Unix() - now.Unix()
	nanos := instant.Nanosecond() - now.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}

	attr, label := "to go", "Time until"
	if secs < 0 {
		attr, label = "ago", "Time since"
		secs = -secs
		if nanos > 0 {
			secs--
		}
	}

	days := secs / 86400
	hours := secs % 86400 / 3600
	minutes := secs % 3600 / 60
	seconds := secs % 60

	return fmt.Sprintf("%dd, %dh, %dm, %ds %s", days, hours, minutes, seconds, attr), label
}

// unixNanos renders "0" outside the years an int64 nanosecond count can hold.
func unixNanos(t time.Time) string {
	if t.Before(minNano) || t.After(maxNano) {
		return "0"
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

func variation(rendered, subtitle string) alfred.Item {
	return alfred.NewItem(rendered).
		Subtitle(subtitle).
		Arg(rendered).
		Build()
}
