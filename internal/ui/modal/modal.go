// Package modal contains overlays the picker shows on top of the result
// list.
package modal

import tea "github.com/charmbracelet/bubbletea"

// Context is an overlay that owns input until it reports IsDone.
type Context interface {
	Update(msg tea.Msg) (Context, tea.Cmd)
	View() string
	IsDone() bool
	Result() any
}
