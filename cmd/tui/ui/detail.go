package ui

import (
	"fmt"
	"strings"

	"github.com/Varun5711/recipebook/internal/models"
	"github.com/charmbracelet/lipgloss"
)

type DetailModel struct {
	recipe *models.Recipe
}

func NewDetailModel() *DetailModel {
	return &DetailModel{}
}

func (m *DetailModel) SetRecipe(recipe *models.Recipe) {
	m.recipe = recipe
}

func (m *DetailModel) View() string {
	if m.recipe == nil {
		return BoxStyle.Width(76).Render(InfoStyle.Render("Nothing selected."))
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.recipe.Name))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(m.recipe.Category + " • " + m.recipe.Date.Local().Format("2 Jan 2006 15:04")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(Text).Width(68).Render(m.recipe.Description))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ingredient := range m.recipe.Ingredients {
		b.WriteString(ItemStyle.Render("• " + ingredient))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("Directions"))
	b.WriteString("\n")
	for i, step := range m.recipe.Directions {
		b.WriteString(ItemStyle.Width(68).Render(fmt.Sprintf("%d. %s", i+1, step)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("esc back  •  q quit"))

	return BoxStyle.Width(76).Render(b.String())
}
