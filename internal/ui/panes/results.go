// Package panes contains the list components of the browse picker.
package panes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/ui"
)

// Result is a search hit with the byte offsets in the title that matched
// the typed text.
type Result struct {
	Item           alfred.Item
	MatchedIndexes []int
}

// ResultsModel manages the result list pane.
type ResultsModel struct {
	results       []Result
	selectedIndex int
	focused       bool
	width         int
	height        int
	title         string
}

func NewResultsModel(title string) ResultsModel {
	return ResultsModel{title: title, focused: true}
}

// SetResults replaces the list and keeps the selection in range.
func (m *ResultsModel) SetResults(results []Result) {
	m.results = results
	if m.selectedIndex >= len(results) {
		m.selectedIndex = max(len(results)-1, 0)
	}
}

func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ResultsModel) SetFocused(focused bool) {
	m.focused = focused
}

func (m *ResultsModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

func (m *ResultsModel) MoveDown() {
	if m.selectedIndex < len(m.results)-1 {
		m.selectedIndex++
	}
}

func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	return m, nil
}

// View renders the pane with its border.
func (m ResultsModel) View() string {
	style := ui.PaneStyle(m.width, m.height, m.focused)
	return style.Render(ui.TitleStyle.Render(m.title) + "\n" + m.ViewContent())
}

// ViewContent renders the rows without the pane border. Only as many rows
// as fit in the pane are drawn, scrolled to keep the selection visible.
func (m ResultsModel) ViewContent() string {
	if len(m.results) == 0 {
		return ui.SubtitleStyle.Render("No matches")
	}

	first, last := m.visibleRange()
	textWidth := max(m.width-6, 10)

	var content strings.Builder
	for i := first; i < last; i++ {
		r := m.results[i]
		indicator := "  "
		titleStyle := ui.NormalStyle
		if i == m.selectedIndex {
			indicator = "> "
			titleStyle = ui.SelectedStyle
		}

		title := ui.TruncateWithEllipsis(r.Item.Title, textWidth)
		content.WriteString(indicator + highlight(title, r.MatchedIndexes, titleStyle))
		if r.Item.Subtitle != "" {
			content.WriteString("\n    " + ui.SubtitleStyle.Render(ui.TruncateWithEllipsis(r.Item.Subtitle, textWidth-2)))
		}
		if i < last-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// visibleRange returns the half-open row range that fits the pane. Each
// row takes two lines; the border and title take three.
func (m ResultsModel) visibleRange() (int, int) {
	rows := len(m.results)
	if m.height > 0 {
		rows = max((m.height-3)/2, 1)
	}
	first := 0
	if m.selectedIndex >= rows {
		first = m.selectedIndex - rows + 1
	}
	return first, min(first+rows, len(m.results))
}

// highlight styles the bytes of s at the matched offsets.
func highlight(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(ui.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedItem returns the highlighted item, or nil when the list is empty.
func (m ResultsModel) SelectedItem() *alfred.Item {
	if len(m.results) == 0 || m.selectedIndex >= len(m.results) {
		return nil
	}
	item := m.results[m.selectedIndex].Item
	return &item
}

func (m ResultsModel) SelectedIndex() int {
	return m.selectedIndex
}

func (m ResultsModel) Len() int {
	return len(m.results)
}
