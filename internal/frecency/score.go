package frecency

import (
	"sort"
	"time"
)

// Score calculates the frecency score for an entry as of now.
// Higher scores indicate more frequently and recently used entries.
func Score(entry Entry, now time.Time) float64 {
	hoursSince := now.Sub(entry.LastUsedAt).Hours()
	var recency float64
	switch {
	case hoursSince < 1:
		recency = 4.0
	case hoursSince < 24:
		recency = 2.0
	case hoursSince < 168: // 1 week
		recency = 1.0
	default:
		recency = 0.5
	}
	return float64(entry.Count) * recency
}

// SortByFrecency sorts entries by score in descending order.
func SortByFrecency(entries []Entry, now time.Time) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Score(entries[i], now) > Score(entries[j], now)
	})
}

// Scores maps every entry's key to its score.
func Scores(entries []Entry, now time.Time) map[string]float64 {
	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		scores[e.Key] = Score(e, now)
	}
	return scores
}
