package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"evopet/internal/pet"
)

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}

	// Show animation if one is active
	if m.Animation.Type != AnimNone {
		return m.renderAnimation()
	}

	sections := []string{RenderHeader(m.Pet)}

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}
	if m.Output != "" {
		sections = append(sections, "", m.Output)
	}
	if m.Naming {
		sections = append(sections,
			"",
			gameStyles.heading.Render("Enter a name for your new pet: ")+m.NameInput+"_",
			gameStyles.status.Render("enter to confirm • esc to cancel"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.status.Render("Use arrows to move • enter to select • s/f/p/e/a/h/n shortcuts • q to quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderMenu() string {
	var items []string
	for i, item := range menuItems {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		items = append(items, fmt.Sprintf("%s %s", cursor, item.label))
	}

	return gameStyles.menuBox.Render(gameStyles.menu.Render(strings.Join(items, "\n")))
}

func (m Model) renderAnimation() string {
	frame := GetAnimationFrame(m.Animation)
	title := gameStyles.title.Render(m.Pet.Name())

	animStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(1, 2)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		animStyle.Render(frame),
	)
}
