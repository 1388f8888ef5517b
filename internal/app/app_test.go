package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyleking/alfred-workflows/internal/alfred"
)

type fakeSearcher struct {
	items   []alfred.Item
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, limit int) ([]alfred.Item, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(_ context.Context, url string) error {
	f.opened = append(f.opened, url)
	return f.err
}

var testItems = []alfred.Item{
	{Title: "acme/api", Arg: alfred.OpenArg("https://github.com/acme/api")},
	{Title: "acme/web", Arg: alfred.OpenArg("https://github.com/acme/web")},
	{Title: "settings", Arg: "refresh"},
}

func newTestModel(t *testing.T, s *fakeSearcher, o *fakeOpener, copied *[]string) Model {
	t.Helper()
	m := New(context.Background(), Options{
		Title:    "test",
		Searcher: s,
		Opener:   o,
		Copy: func(text string) error {
			*copied = append(*copied, text)
			return nil
		},
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = updated.(Model)
	updated, _ = m.Update(m.search("")())
	return updated.(Model)
}

func TestModelLoadsInitialResults(t *testing.T) {
	s := &fakeSearcher{items: testItems}
	var copied []string
	m := newTestModel(t, s, &fakeOpener{}, &copied)

	if got := m.results.Len(); got != len(testItems) {
		t.Fatalf("results.Len() = %d, want %d", got, len(testItems))
	}
	if got := m.SelectedItem(); got == nil || got.Title != "acme/api" {
		t.Errorf("SelectedItem() = %v, want acme/api", got)
	}
	if len(s.queries) != 1 || s.queries[0] != "" {
		t.Errorf("queries = %q, want one empty query", s.queries)
	}
}

func TestModelDropsStaleResults(t *testing.T) {
	s := &fakeSearcher{items: testItems}
	var copied []string
	m := newTestModel(t, s, &fakeOpener{}, &copied)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("typing should schedule a search")
	}
	if m.input.Value() != "w" {
		t.Fatalf("input = %q, want %q", m.input.Value(), "w")
	}

	updated, _ = m.Update(searchResultMsg{query: "", results: Rank("", testItems[:1], nil)})
	m = updated.(Model)
	if got := m.results.Len(); got != len(testItems) {
		t.Errorf("stale result applied: Len() = %d, want %d", got, len(testItems))
	}

	updated, _ = m.Update(searchResultMsg{query: "w", results: Rank("w", testItems[1:2], nil)})
	m = updated.(Model)
	if got := m.results.Len(); got != 1 {
		t.Errorf("current result not applied: Len() = %d, want 1", got)
	}
}

func TestModelNavigation(t *testing.T) {
	var copied []string
	m := newTestModel(t, &fakeSearcher{items: testItems}, &fakeOpener{}, &copied)

	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, "acme/web"},
		{tea.KeyMsg{Type: tea.KeyCtrlN}, "settings"},
		{tea.KeyMsg{Type: tea.KeyDown}, "settings"},
		{tea.KeyMsg{Type: tea.KeyUp}, "acme/web"},
		{tea.KeyMsg{Type: tea.KeyCtrlP}, "acme/api"},
	}
	for _, tt := range tests {
		updated, _ := m.Update(tt.key)
		m = updated.(Model)
		if got := m.SelectedItem().Title; got != tt.want {
			t.Errorf("after %s: selected = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestModelOpenSelected(t *testing.T) {
	opener := &fakeOpener{}
	var copied []string
	m := newTestModel(t, &fakeSearcher{items: testItems}, opener, &copied)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("enter should return an open command")
	}
	msg := cmd()
	if len(opener.opened) != 1 || opener.opened[0] != "https://github.com/acme/api" {
		t.Fatalf("opened = %q", opener.opened)
	}

	_, cmd = m.Update(msg)
	if cmd == nil {
		t.Fatal("successful open should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg after open")
	}
}

func TestModelOpenErrorKeepsRunning(t *testing.T) {
	opener := &fakeOpener{err: errors.New("no browser")}
	var copied []string
	m := newTestModel(t, &fakeSearcher{items: testItems}, opener, &copied)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated, cmd := m.Update(cmd())
	m = updated.(Model)
	if cmd != nil {
		t.Error("failed open should not quit")
	}
	if !strings.Contains(m.View(), "no browser") {
		t.Error("View() should show the open error")
	}
}

func TestModelOpenIgnoresNonURLArgs(t *testing.T) {
	opener := &fakeOpener{}
	var copied []string
	m := newTestModel(t, &fakeSearcher{items: testItems}, opener, &copied)

	for i := 0; i < 2; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(Model)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on a non-URL arg should be a no-op")
	}
}

func TestModelCopySelected(t *testing.T) {
	var copied []string
	m := newTestModel(t, &fakeSearcher{items: testItems}, &fakeOpener{}, &copied)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatal("ctrl+y should return a copy command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if len(copied) != 1 || copied[0] != "https://github.com/acme/web" {
		t.Errorf("copied = %q", copied)
	}
	if !strings.Contains(m.View(), "copied https://github.com/acme/web") {
		t.Error("View() should report the copy")
	}
}

func TestModelQuit(t *testing.T) {
	var copied []string
	m := newTestModel(t, &fakeSearcher{items: testItems}, &fakeOpener{}, &copied)

	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s should quit", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestModelSearchError(t *testing.T) {
	s := &fakeSearcher{err: errors.New("database is locked")}
	var copied []string
	m := newTestModel(t, s, &fakeOpener{}, &copied)

	if m.results.Len() != 0 {
		t.Errorf("results.Len() = %d, want 0", m.results.Len())
	}
	if !strings.Contains(m.View(), "database is locked") {
		t.Error("View() should show the search error")
	}
}

func TestModelViewBeforeResize(t *testing.T) {
	m := New(context.Background(), Options{Searcher: &fakeSearcher{}})
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestRank(t *testing.T) {
	items := []alfred.Item{
		{Title: "zeta"},
		{Title: "web-app"},
		{Title: "alpha"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps order", "", []string{"zeta", "web-app", "alpha"}},
		{"match first, rest in order", "wa", []string{"web-app", "zeta", "alpha"}},
		{"no matches keeps order", "qq", []string{"zeta", "web-app", "alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.query, items, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.Item.Title != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, r.Item.Title, tt.want[i])
				}
			}
		})
	}
}

type fakeHistory struct {
	scores   map[string]float64
	recorded []string
}

func (f *fakeHistory) Record(_ context.Context, key string, _ time.Time) error {
	f.recorded = append(f.recorded, key)
	return nil
}

func (f *fakeHistory) Scores(context.Context, time.Time) (map[string]float64, error) {
	return f.scores, nil
}

func TestModelHistory(t *testing.T) {
	history := &fakeHistory{scores: map[string]float64{testItems[1].Arg: 4}}
	opener := &fakeOpener{}
	m := New(context.Background(), Options{
		Searcher: &fakeSearcher{items: testItems},
		Opener:   opener,
		History:  history,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = updated.(Model)
	updated, _ = m.Update(m.search("")())
	m = updated.(Model)

	if got := m.SelectedItem().Title; got != "acme/web" {
		t.Fatalf("most frecent item should lead, got %q", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cmd()
	if len(history.recorded) != 1 || history.recorded[0] != testItems[1].Arg {
		t.Errorf("recorded = %q, want the opened arg", history.recorded)
	}
}

func TestRankWithScores(t *testing.T) {
	items := []alfred.Item{
		{Title: "api-one", Arg: "a"},
		{Title: "api-two", Arg: "b"},
		{Title: "web", Arg: "c"},
	}
	scores := map[string]float64{"b": 2, "c": 8}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query orders by frecency", "", []string{"web", "api-two", "api-one"}},
		{"ties broken by frecency", "api", []string{"api-two", "api-one", "web"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.query, items, scores)
			for i, r := range got {
				if r.Item.Title != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, r.Item.Title, tt.want[i])
				}
			}
		})
	}
}

func TestModelDetails(t *testing.T) {
	var copied []string
	m := newTestModel(t, &fakeSearcher{items: testItems}, &fakeOpener{}, &copied)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.modal == nil {
		t.Fatal("tab should open the detail modal")
	}
	if !strings.Contains(m.View(), "https://github.com/acme/api") {
		t.Error("detail view should show the URL")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.modal != nil {
		t.Error("esc should close the modal")
	}
	if cmd != nil {
		t.Error("closing the modal should not quit")
	}
}
