package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestMultiChoiceDigitIndex(t *testing.T) {
	m := NewMultiChoice("", []string{"a", "b", "c"})
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"3", 2, true},
		{"4", 0, false},
		{"0", 0, false},
		{"x", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		got, ok := m.DigitIndex(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.key)
		}
	}
}

func TestMultiChoicePendingChange(t *testing.T) {
	m := NewMultiChoice("", []string{"a", "b"})
	assert.True(t, m.PendingChange())

	m.Choose(1, true)
	assert.False(t, m.PendingChange())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Selected)
	assert.True(t, m.PendingChange())
}

func TestMultiChoiceViewMarksAnswer(t *testing.T) {
	m := NewMultiChoice("¿Cuál?", []string{"a", "b"})
	m.Choose(0, false)
	assert.Contains(t, m.View(), "✗")

	m.Choose(1, true)
	assert.Contains(t, m.View(), "✓")
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}, {Label: "b"}, {Label: "c", Disabled: true}, {Label: "d"}})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)

	assert.Equal(t, 1, m.WithSelected(2).Selected, "disabled target is ignored")
}

func TestStrengthMeterWidth(t *testing.T) {
	for s := 0; s <= 4; s++ {
		assert.Equal(t, 4*3+3, lipgloss.Width(StrengthMeter(s, 4, 3)))
	}
}

func TestTextInputMaskToggle(t *testing.T) {
	ti := NewTextInput("", true, 10)
	assert.True(t, ti.Masked())
	ti.ToggleMask()
	assert.False(t, ti.Masked())
	ti.Model.SetValue("hola")
	assert.Equal(t, "hola", ti.Value())
}

func TestStepProgressLabel(t *testing.T) {
	assert.Equal(t, "Paso 2/4", StepProgress(1, 4, 40).Label)
}
