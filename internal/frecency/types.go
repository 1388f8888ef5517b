// Package frecency remembers which picker results were opened and scores
// them by how often and how recently that happened.
package frecency

import "time"

// Entry is the open history of one item, keyed by its launcher arg.
type Entry struct {
	Key        string
	Count      int
	LastUsedAt time.Time
}
