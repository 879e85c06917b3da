// Package layout draws the application chrome around the active screen: a
// header bar with the course progress and a footer bar with key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// ChromeHeight is the rows taken by the header and footer bars.
	ChromeHeight = 6

	compactWidth  = 100
	compactHeight = 30

	brand = "Guardianes Digitales"
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is the course progress shown on the right of the header.
type HeaderStats struct {
	Score     int
	Completed int
	Total     int
}

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// TooSmall reports whether the course cannot be drawn at this size.
func (s Size) TooSmall() bool {
	return s.Width < MinWidth || s.Height < MinHeight
}

// Compact reports whether screens should drop decorative sections.
func (s Size) Compact() bool {
	return s.Width < compactWidth || s.Height < compactHeight
}

// TooSmallMessage asks the learner to enlarge the terminal.
func (s Size) TooSmallMessage() string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("La ventana es demasiado pequeña para el curso.\n\nMínimo: %d x %d\nActual: %d x %d",
			MinWidth, MinHeight, s.Width, s.Height))
	return lipgloss.Place(s.Width, s.Height, lipgloss.Center, lipgloss.Center, msg)
}

// Frame is the chrome of one rendered screen.
type Frame struct {
	Title string
	Stats HeaderStats
	Hints []KeyHint
}

// Render draws the header and footer and gives body the rows in between.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	header := bar(width, f.headerRow(width-4))
	footer := bar(width, hintRow(f.Hints, width-4))

	rows := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if rows < 0 {
		rows = 0
	}
	content := lipgloss.NewStyle().Width(width).Height(rows).MaxHeight(rows).Render(body(width, rows))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// headerRow centres the screen title between the brand and the stats. The
// brand is dropped when it would crowd the title.
func (f Frame) headerRow(inner int) string {
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	stats := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmt.Sprintf("★ %d pts", f.Stats.Score)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✔ %d/%d", f.Stats.Completed, f.Stats.Total))

	side := (inner - lipgloss.Width(title)) / 2
	left := " "
	if side >= len(brand)+3 {
		left += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	}
	right := inner - side - lipgloss.Width(title)
	return padRight(left, side) + title + padLeft(stats, right)
}

// hintRow joins hints that fit in width. Hints that do not fit are dropped
// from the end, so screens list the most important keys first.
func hintRow(hints []KeyHint, width int) string {
	sep := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · ")
	row := " "
	for i, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		next := row + part
		if i > 0 {
			next = row + sep + part
		}
		if lipgloss.Width(next) > width {
			break
		}
		row = next
	}
	return row
}

func bar(width int, row string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(row)
}

func padRight(s string, w int) string {
	if d := w - lipgloss.Width(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func padLeft(s string, w int) string {
	if d := w - lipgloss.Width(s); d > 1 {
		return strings.Repeat(" ", d) + s
	}
	return " " + s
}
