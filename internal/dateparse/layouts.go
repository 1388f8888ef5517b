package dateparse

import "time"

// Every layout also accepts fractional seconds directly after the seconds
// field; time.Parse allows that without the layout spelling it out.

var rfc3339Layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
}

var rfc2822Layouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 -0700",
}

// obsZones are the RFC 2822 obsolete zone names, rewritten to numeric
// offsets before rfc2822Layouts are tried. time.Parse would otherwise read
// an unknown abbreviation as +0000.
var obsZones = map[string]string{
	"UT":  "+0000",
	"GMT": "+0000",
	"Z":   "+0000",
	"EST": "-0500",
	"EDT": "-0400",
	"CST": "-0600",
	"CDT": "-0500",
	"MST": "-0700",
	"MDT": "-0600",
	"PST": "-0800",
	"PDT": "-0700",
}

// offsetLayouts embed a numeric UTC offset.
var offsetLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04 -0700",
	"2006/01/02 15:04:05 -0700",
}

// naiveLayouts carry no offset and are read as UTC. Numeric month/day
// orders are US style.
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	"1/2/06 3:04:05 PM",
	"1/2/06 3:04 PM",
	"Jan 2 2006 15:04:05",
	"Jan 2 2006 3:04:05 PM",
	time.ANSIC,
	"2006年1月2日 15时4分5秒",
}

// naiveCommaLayouts are matched after comma normalization.
var naiveCommaLayouts = []string{
	"January 2 2006 15:04:05",
	"January 2 2006 15:04",
	"January 2 2006 3:04:05 PM",
	"January 2 2006 3:04 PM",
	"Jan 2 2006 15:04",
	"Jan 2 2006 3:04 PM",
	"Monday January 2 2006 15:04:05",
	"Mon Jan 2 2006 15:04:05",
	"2 January 2006 15:04:05",
}

// twoDigitYear marks layouts whose year is "06". Go pivots 69 to 1969;
// these inputs pivot it to 2069 so 00-69 are 20xx and 70-99 are 19xx.
const twoDigitYear = "/06"

// dateLayouts have no time component; the result is midnight UTC.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"1/2/2006",
	"1/2/06",
	"Jan 2 2006",
	"2 Jan 2006",
	"January 2 2006",
	"2006年1月2日",
}

// dateCommaLayouts are matched after comma normalization.
var dateCommaLayouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"Monday January 2 2006",
	"Mon Jan 2 2006",
	"2 January 2006",
}
