// Package app is the browse picker: a text input over a workflow cache with
// fuzzy-ranked results that can be opened or copied.
package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/ui"
	"github.com/kyleking/alfred-workflows/internal/ui/modal"
	"github.com/kyleking/alfred-workflows/internal/ui/panes"
)

// URLOpener opens a URL, usually in the browser.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// openedMsg reports the outcome of an open action.
type openedMsg struct {
	url string
	err error
}

// copiedMsg reports the outcome of a copy action.
type copiedMsg struct {
	text string
	err  error
}

// Model is the root bubbletea model for the picker.
type Model struct {
	ctx      context.Context
	searcher Searcher
	opener   URLOpener
	history  History
	now      func() time.Time
	copy     func(string) error
	logger   *zap.Logger

	input   textinput.Model
	results panes.ResultsModel
	modal   modal.Context
	keys    KeyMap

	status string
	err    error

	width  int
	height int
}

type Options struct {
	Title    string
	Searcher Searcher
	Opener   URLOpener
	// History is optional; without it results keep cache order.
	History History
	// Now defaults to time.Now.
	Now func() time.Time
	// Copy defaults to the system clipboard.
	Copy   func(string) error
	Logger *zap.Logger
}

// New creates a picker model. ctx bounds every search and open action.
func New(ctx context.Context, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "search"
	input.Prompt = "› "
	input.Focus()

	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		ctx:      ctx,
		searcher: opts.Searcher,
		opener:   opts.Opener,
		history:  opts.History,
		now:      opts.Now,
		copy:     opts.Copy,
		logger:   opts.Logger,
		input:    input,
		results:  panes.NewResultsModel(opts.Title),
		keys:     DefaultKeyMap(),
	}
}

// Init loads the unfiltered list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.search(""))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		m.results.SetSize(msg.Width, max(msg.Height-3, 3))
		if m.modal != nil {
			m.modal, _ = m.modal.Update(msg)
		}
		return m, nil

	case searchResultMsg:
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.err = msg.err
		if msg.err != nil {
			m.logger.Debug("search failed", zap.String("query", msg.query), zap.Error(msg.err))
			return m, nil
		}
		m.results.SetResults(msg.results)
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, tea.Quit

	case copiedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "copied " + msg.text
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		if m.modal.IsDone() {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.results.MoveUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.results.MoveDown()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()

	case key.Matches(msg, m.keys.Details):
		if item := m.results.SelectedItem(); item != nil {
			m.modal = modal.NewDetailModal(*item, m.width, m.height)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.status = ""
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, m.search(after))
	}
	return m, cmd
}

func (m Model) search(query string) tea.Cmd {
	return searchCmd(m.ctx, m.searcher, m.history, m.now, query)
}

func (m Model) openSelected() tea.Cmd {
	item := m.results.SelectedItem()
	if item == nil {
		return nil
	}
	url, ok := alfred.URLFromArg(item.Arg)
	if !ok {
		return nil
	}
	arg := item.Arg
	ctx, opener, history, now, logger := m.ctx, m.opener, m.history, m.now, m.logger
	return func() tea.Msg {
		if err := opener.Open(ctx, url); err != nil {
			return openedMsg{url: url, err: err}
		}
		if history != nil {
			if err := history.Record(ctx, arg, now()); err != nil {
				logger.Debug("failed to record history", zap.String("arg", arg), zap.Error(err))
			}
		}
		return openedMsg{url: url}
	}
}

func (m Model) copySelected() tea.Cmd {
	item := m.results.SelectedItem()
	if item == nil {
		return nil
	}
	text, copyFn := item.Arg, m.copy
	if url, ok := alfred.URLFromArg(text); ok {
		text = url
	}
	return func() tea.Msg {
		return copiedMsg{text: text, err: copyFn(text)}
	}
}

// SelectedItem exposes the highlighted result.
func (m Model) SelectedItem() *alfred.Item {
	return m.results.SelectedItem()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.modal != nil {
		return ui.PaneStyle(m.width, m.height, true).Render(m.modal.View())
	}

	footer := ui.HelpStyle.Render("[↑/↓] move  [enter] open  [ctrl+y] copy  [tab] details  [esc] quit")
	switch {
	case m.err != nil:
		footer = ui.ErrorStyle.Render(m.err.Error())
	case m.status != "":
		footer = ui.HelpStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		m.results.View(),
		footer,
	)
}

// Run starts the picker on the terminal and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
