package dateparse

import (
	"fmt"
	"strings"
	"time"

	// Zone names must resolve even where the host has no zoneinfo.
	_ "time/tzdata"
)

// There is no real PST or CST zone, so the common abbreviations map to a
// representative IANA location.
var aliases = map[string]string{
	"pst": "America/Vancouver",
	"cst": "America/Winnipeg",
}

// ResolveZoneName applies the alias table. Unknown names pass through.
func ResolveZoneName(name string) string {
	if zone, ok := aliases[strings.ToLower(name)]; ok {
		return zone
	}
	return name
}

// ResolveLocation loads the display location for a user-supplied zone name.
func ResolveLocation(name string) (*time.Location, error) {
	zone := ResolveZoneName(name)
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimezone, name, err)
	}
	return loc, nil
}
