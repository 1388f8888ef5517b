package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/ui"
)

// DetailModal shows every field of one item, scrollable when the values
// are longer than the screen.
type DetailModal struct {
	item     alfred.Item
	viewport viewport.Model
	done     bool
	keys     detailKeyMap
}

type detailKeyMap struct {
	Close key.Binding
}

func defaultDetailKeyMap() detailKeyMap {
	return detailKeyMap{
		Close: key.NewBinding(key.WithKeys("esc", "q", "tab")),
	}
}

// NewDetailModal creates a detail view of item sized to the terminal.
func NewDetailModal(item alfred.Item, width, height int) *DetailModal {
	m := &DetailModal{
		item:     item,
		viewport: viewport.New(max(width-4, 10), max(height-4, 3)),
		keys:     defaultDetailKeyMap(),
	}
	m.viewport.SetContent(m.content())
	return m
}

func (m *DetailModal) content() string {
	fields := []struct{ label, value string }{
		{"Title", m.item.Title},
		{"Subtitle", m.item.Subtitle},
		{"Autocomplete", m.item.Autocomplete},
		{"Arg", m.item.Arg},
	}
	if url, ok := alfred.URLFromArg(m.item.Arg); ok {
		fields = append(fields, struct{ label, value string }{"URL", url})
	}

	var s strings.Builder
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		s.WriteString(ui.SubtitleStyle.Render(f.label + ":"))
		s.WriteString("\n  ")
		s.WriteString(ui.NormalStyle.Render(f.value))
		s.WriteString("\n")
	}
	return s.String()
}

// Update handles input for the detail modal.
func (m *DetailModal) Update(msg tea.Msg) (Context, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-4, 3)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Close) {
			m.done = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail modal.
func (m *DetailModal) View() string {
	var s strings.Builder
	s.WriteString(ui.TitleStyle.Render("Details"))
	s.WriteString("\n\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(ui.HelpStyle.Render("Press Esc or q to close"))
	return s.String()
}

// IsDone returns true if the modal is finished.
func (m *DetailModal) IsDone() bool {
	return m.done
}

// Result returns the item shown.
func (m *DetailModal) Result() any {
	return m.item
}
