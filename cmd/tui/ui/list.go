package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/recipebook/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ListModel struct {
	title    string
	recipes  []*models.Recipe
	cursor   int
	selected *models.Recipe
}

func NewListModel() *ListModel {
	return &ListModel{}
}

func (m *ListModel) SetRecipes(title string, recipes []*models.Recipe) {
	m.title = title
	m.recipes = recipes
	m.cursor = 0
	m.selected = nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func ago(t time.Time) string {
	since := time.Since(t)
	switch {
	case since < time.Hour:
		return fmt.Sprintf("%d min ago", int(since.Minutes()))
	case since < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(since.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(since.Hours()/24))
	}
}

func (m *ListModel) Update(msg tea.Msg) (*ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.recipes)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.recipes) > 0 {
				m.selected = m.recipes[m.cursor]
			}
		}
	}
	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	b.WriteString(centered(TitleStyle.MarginTop(1).Render(strings.ToUpper(m.title))))
	b.WriteString("\n\n")

	if len(m.recipes) == 0 {
		b.WriteString(centered(lipgloss.NewStyle().Foreground(Muted).Render("No recipes matched.")))
		b.WriteString("\n")
	}

	for i, recipe := range m.recipes {
		style := CardStyle
		if i == m.cursor {
			style = style.BorderForeground(Accent)
		}

		name := lipgloss.NewStyle().Foreground(Primary).Bold(true).Render(truncate(recipe.Name, 50))
		meta := lipgloss.NewStyle().Foreground(Muted).Render(recipe.Category + " • " + ago(recipe.Date))
		desc := lipgloss.NewStyle().Foreground(Text).Render(truncate(recipe.Description, 60))

		b.WriteString(centered(style.Render(lipgloss.JoinVertical(lipgloss.Left, name, meta, desc))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render(fmt.Sprintf("%d found  •  ↑/↓ navigate  •  enter open  •  esc back", len(m.recipes)))))

	return BoxStyle.Width(76).Render(b.String())
}
