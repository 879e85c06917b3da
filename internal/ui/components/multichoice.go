package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. The cursor keeps moving after
// an answer so the learner can pick again; the parent decides what enter
// does.
type MultiChoice struct {
	Question      string
	Options       []string
	Selected      int
	Submitted     bool
	ChosenIndex   int
	ChosenCorrect bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the cursor with up/down or j/k.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// DigitIndex maps a "1".."9" key to an option index.
func (m MultiChoice) DigitIndex(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || len(key) != 1 || n < 1 || n > len(m.Options) {
		return 0, false
	}
	return n - 1, true
}

// Choose records the learner's answer at index i.
func (m *MultiChoice) Choose(i int, correct bool) {
	m.Selected = i
	m.Submitted = true
	m.ChosenIndex = i
	m.ChosenCorrect = correct
}

// PendingChange reports whether the cursor moved off the submitted answer.
func (m MultiChoice) PendingChange() bool {
	return !m.Submitted || m.Selected != m.ChosenIndex
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := ""
	if m.Question != "" {
		s = questionStyle.Render(m.Question) + "\n\n"
	}

	labels := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, labels[i], opt)

		switch {
		case m.Submitted && i == m.ChosenIndex && m.ChosenCorrect:
			s += theme.Correct.Render(line+"  ✓") + "\n"
		case m.Submitted && i == m.ChosenIndex:
			s += theme.Incorrect.Render(line+"  ✗") + "\n"
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
