package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	waterfall "github.com/grindlemire/go-waterfall"
	"github.com/grindlemire/go-waterfall/internal/fixture"
)

// Styles controls how cards and chrome are drawn.
type Styles struct {
	Card   lipgloss.Style
	Pinned lipgloss.Style
	Title  lipgloss.Style
	Tag    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Pinned: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFB347")).
			Padding(0, 1),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Tag:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	}
}

// RenderCard renders item as a bordered card exactly width cells wide.
func (s Styles) RenderCard(item waterfall.Item, width int) string {
	style := s.Card
	if item.IsInlineChild {
		style = s.Pinned
	}
	inner := max(1, width-style.GetHorizontalBorderSize())

	var b strings.Builder
	b.WriteString(s.Title.Render(fixture.Title(item)))
	if body := fixture.Body(item); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	if brick, ok := item.Payload.(fixture.Brick); ok && len(brick.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Tag.Render("#" + strings.Join(brick.Tags, " #")))
	}
	return style.Width(inner).Render(b.String())
}
