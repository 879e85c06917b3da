package components

import (
	"github.com/abhisek/secaware/internal/ui/theme"
)

// Button is a navigation button whose state follows the navigation gate.
type Button struct {
	Label   string
	Enabled bool
}

// NewButton creates a new button.
func NewButton(label string, enabled bool) Button {
	return Button{
		Label:   label,
		Enabled: enabled,
	}
}

// View renders the button.
func (b Button) View() string {
	if b.Enabled {
		return theme.ButtonEnabled.Render(b.Label)
	}
	return theme.ButtonDisabled.Render(b.Label)
}
