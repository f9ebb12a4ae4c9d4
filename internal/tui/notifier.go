package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// StateChangedMsg tells the model a controller changed state and the view
// should be redrawn.
type StateChangedMsg struct{}

// Notifier forwards controller state changes into a running program. Notify
// before Attach is a no-op.
type Notifier struct {
	program atomic.Pointer[tea.Program]
}

// Attach binds the notifier to p.
func (n *Notifier) Attach(p *tea.Program) {
	n.program.Store(p)
}

// Notify is registered as a controller observer.
func (n *Notifier) Notify() {
	if p := n.program.Load(); p != nil {
		p.Send(StateChangedMsg{})
	}
}
