package module

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/ui/components"
	"github.com/abhisek/secaware/internal/ui/theme"
)

func (s *ModuleScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	step := s.seq.CurrentStep()

	var sections []string
	sections = append(sections,
		theme.Title.Render(s.seq.Module().Title),
		components.StepProgress(s.seq.StepIndex(), s.seq.StepCount(), cw).View(),
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmt.Sprintf("★ %d puntos", s.seq.Score())),
		theme.Subtitle.Render(step.Title),
	)

	if step.Info != nil {
		sections = append(sections, renderInfo(*step.Info, cw))
	}
	if ex, ok := s.exercise(); ok {
		sections = append(sections, s.renderExercise(step, ex, cw))
	}

	if step.CompletionMessage != "" && s.seq.IsAnswered() {
		sections = append(sections, theme.Correct.Render(step.CompletionMessage))
	}
	if s.seq.IsModuleComplete() {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("★ Módulo completado: %d/%d puntos", s.seq.Score(), s.seq.Module().MaxScore())))
	}
	if s.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Warning).Width(cw).Render(s.notice))
	}
	sections = append(sections, s.renderNav())

	body := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
	return lipgloss.NewStyle().MaxHeight(height).Render(
		lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
}

func renderInfo(info course.Info, cw int) string {
	var parts []string
	if info.Heading != "" {
		parts = append(parts, theme.CardTitle.Render(info.Heading))
	}
	for _, p := range info.Paragraphs {
		parts = append(parts, theme.Body.Width(cw).Render(p))
	}
	if len(info.Bullets) > 0 {
		var b strings.Builder
		for i, item := range info.Bullets {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("• " + item)
		}
		parts = append(parts, theme.Body.Width(cw).Render(b.String()))
	}
	for _, c := range info.Cards {
		parts = append(parts, components.InfoCard(c.Title, c.Body, cw-4))
	}
	return strings.Join(parts, "\n")
}

func (s *ModuleScreen) renderExercise(step course.Step, ex course.Exercise, cw int) string {
	var parts []string
	if n := len(step.Exercises); n > 1 {
		parts = append(parts, theme.Hint.Render(fmt.Sprintf("Ejercicio %d de %d", s.exIndex+1, n)))
	}
	if ex.Prompt != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(ex.Prompt))
	}

	switch ex.Kind {
	case course.ExerciseClassify:
		parts = append(parts, renderEmail(*ex.Email, cw), s.choice.View())
	case course.ExerciseStrength:
		parts = append(parts, s.renderStrength(ex))
	default:
		parts = append(parts, s.choice.View())
	}

	if v, ok := s.verdicts[ex.Key]; ok && v.Feedback != "" {
		style := theme.Incorrect
		mark := "✗ "
		if v.Correct {
			style = theme.Correct
			mark = "✓ "
		}
		text := mark + v.Feedback
		if v.Label != "" {
			text = mark + "[" + v.Label + "] " + v.Feedback
		}
		if v.Correct && s.seq.Awarded(ex.Key) {
			text += fmt.Sprintf("  (+%d)", ex.Points)
		}
		parts = append(parts, style.Width(cw).Render(text))
	}
	return strings.Join(parts, "\n")
}

func renderEmail(e course.Email, cw int) string {
	head := theme.Hint.Render("De: ") + theme.Body.Render(e.Sender) + "\n" +
		theme.Hint.Render("Asunto: ") + theme.CardTitle.Render(e.Subject)
	return theme.EmailCard.Width(cw - 4).Render(head + "\n\n" + theme.Body.Render(e.Body))
}

func (s *ModuleScreen) renderStrength(ex course.Exercise) string {
	live := course.PasswordStrength(s.input.Value(), ex.Strength.MinLength)
	mask := "Tab: mostrar"
	if !s.input.Masked() {
		mask = "Tab: ocultar"
	}
	lines := []string{
		s.input.View(),
		components.StrengthMeter(live, course.MaxStrength, 6) + "  " +
			theme.StrengthColor(live, course.MaxStrength).Render(fmt.Sprintf("%d/%d", live, course.MaxStrength)),
		theme.Hint.Render(fmt.Sprintf("Mínimo %d caracteres, mayúsculas, números y símbolos", ex.Strength.MinLength)),
		theme.Hint.Render(mask),
	}
	return strings.Join(lines, "\n")
}

func (s *ModuleScreen) renderNav() string {
	g := s.gate()
	next := components.NewButton("Siguiente →", g.CanAdvance)
	if s.seq.OnLastStep() {
		next = components.NewButton("Siguiente módulo →", g.CanCrossModuleBoundary)
		if s.seq.NextModuleID() == 0 {
			next.Label = "Finalizar curso →"
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.NewButton("← Anterior", g.CanRetreat).View(),
		"  ",
		next.View(),
	)
}

// joinList joins titles as "a, b y c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
}
