package dateparse

import "errors"

var (
	// ErrInvalidInteger is returned by the unix tier when a string of a
	// timestamp width is not a number. Parse treats it as a miss.
	ErrInvalidInteger = errors.New("failed to parse integer")

	// ErrParseFailure means no tier accepted the input.
	ErrParseFailure = errors.New("failed to parse DateTime")

	// ErrUnknownTimezone means a zone name did not resolve, after alias
	// substitution, to a known location.
	ErrUnknownTimezone = errors.New("unknown timezone")
)
