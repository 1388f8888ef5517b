package app

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/ui/panes"
)

// SearchLimit caps how many cache rows each keystroke loads.
const SearchLimit = 50

// Searcher is a workflow cache that can be queried by free text.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]alfred.Item, error)
}

// History records opened items and scores them for ranking.
type History interface {
	Record(ctx context.Context, key string, at time.Time) error
	Scores(ctx context.Context, now time.Time) (map[string]float64, error)
}

// searchResultMsg carries the hits for query. Stale results (for a query
// other than the current input) are dropped.
type searchResultMsg struct {
	query   string
	results []panes.Result
	err     error
}

func searchCmd(ctx context.Context, s Searcher, h History, now func() time.Time, query string) tea.Cmd {
	return func() tea.Msg {
		items, err := s.Search(ctx, query, SearchLimit)
		if err != nil {
			return searchResultMsg{query: query, err: err}
		}
		var scores map[string]float64
		if h != nil {
			// Ranking still works without history.
			scores, _ = h.Scores(ctx, now())
		}
		return searchResultMsg{query: query, results: Rank(query, items, scores)}
	}
}

type itemTitles []alfred.Item

func (t itemTitles) String(i int) string { return t[i].Title }
func (t itemTitles) Len() int            { return len(t) }

// Rank orders items by fuzzy score against query, breaking ties by the
// frecency score of each item's arg. Items the fuzzy matcher rejects keep
// their cache order after the ranked ones, since the LIKE search already
// matched them. An empty query orders by frecency alone.
func Rank(query string, items []alfred.Item, scores map[string]float64) []panes.Result {
	results := make([]panes.Result, 0, len(items))
	if query == "" {
		for _, item := range items {
			results = append(results, panes.Result{Item: item})
		}
		sort.SliceStable(results, func(i, j int) bool {
			return scores[results[i].Item.Arg] > scores[results[j].Item.Arg]
		})
		return results
	}

	matches := fuzzy.FindFrom(query, itemTitles(items))
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return scores[items[matches[i].Index].Arg] > scores[items[matches[j].Index].Arg]
	})

	ranked := make(map[int]bool, len(matches))
	for _, match := range matches {
		ranked[match.Index] = true
		results = append(results, panes.Result{Item: items[match.Index], MatchedIndexes: match.MatchedIndexes})
	}
	for i, item := range items {
		if !ranked[i] {
			results = append(results, panes.Result{Item: item})
		}
	}
	return results
}
