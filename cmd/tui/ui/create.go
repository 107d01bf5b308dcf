package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/recipebook/cmd/tui/client"
	"github.com/Varun5711/recipebook/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

type recipeCreatedMsg struct {
	id int64
}

type createErrorMsg struct {
	err error
}

// CreateModel collects a new recipe. Ingredients and directions are
// entered as ";"-separated lists.
type CreateModel struct {
	form   *form
	client *client.Client
}

func NewCreateModel(c *client.Client) *CreateModel {
	return &CreateModel{
		form: newForm("NEW RECIPE", "Separate ingredients and directions with ;",
			"tab next field  •  enter on last field saves  •  ctrl+l clear  •  esc back",
			&field{label: "Name"},
			&field{label: "Category"},
			&field{label: "Description"},
			&field{label: "Ingredients"},
			&field{label: "Directions"},
		),
		client: c,
	}
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (m *CreateModel) request() *models.RecipeRequest {
	return &models.RecipeRequest{
		Name:        m.form.value(0),
		Category:    m.form.value(1),
		Description: m.form.value(2),
		Ingredients: splitList(m.form.value(3)),
		Directions:  splitList(m.form.value(4)),
	}
}

func createCmd(c *client.Client, req *models.RecipeRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		id, err := c.CreateRecipe(ctx, req)
		if err != nil {
			return createErrorMsg{err: err}
		}
		return recipeCreatedMsg{id: id}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (*CreateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recipeCreatedMsg:
		m.form.reset()
		m.form.loading = false
		m.form.status = fmt.Sprintf("Saved as recipe %d", msg.id)
	case createErrorMsg:
		m.form.loading = false
		m.form.err = msg.err
	case tea.KeyMsg:
		if !m.form.handleKey(msg) {
			return m, nil
		}
		m.form.loading = true
		m.form.err = nil
		m.form.status = ""
		return m, createCmd(m.client, m.request())
	}
	return m, nil
}

func (m *CreateModel) View() string {
	return m.form.view()
}
