// Package panel models the visibility of a slide-over panel.
package panel

// State is the binary visibility of a panel.
type State string

const (
	Closed State = "closed"
	Open   State = "open"
)

// Panel is closed in its zero value.
type Panel struct {
	open bool
}

// Toggle flips the visibility and returns the new state.
func (p *Panel) Toggle() State {
	p.open = !p.open
	return p.State()
}

// Close forces the closed state and reports whether it changed.
func (p *Panel) Close() bool {
	if !p.open {
		return false
	}
	p.open = false
	return true
}

func (p Panel) IsOpen() bool { return p.open }

func (p Panel) State() State {
	if p.open {
		return Open
	}
	return Closed
}
