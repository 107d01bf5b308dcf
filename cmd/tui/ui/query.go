package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Varun5711/recipebook/cmd/tui/client"
	"github.com/Varun5711/recipebook/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

type queryMode int

const (
	queryCategory queryMode = iota
	queryName
	queryID
)

type recipesLoadedMsg struct {
	title   string
	recipes []*models.Recipe
}

type recipeLoadedMsg struct {
	recipe *models.Recipe
}

type queryErrorMsg struct {
	err error
}

// QueryModel asks for a single search term or recipe id.
type QueryModel struct {
	form   *form
	mode   queryMode
	client *client.Client
}

func NewQueryModel(c *client.Client) *QueryModel {
	return &QueryModel{
		form:   newForm("", "", "enter search  •  ctrl+l clear  •  esc back", &field{}),
		client: c,
	}
}

func (m *QueryModel) SetMode(mode queryMode) {
	m.mode = mode
	m.form.reset()

	switch mode {
	case queryCategory:
		m.form.title = "SEARCH BY CATEGORY"
		m.form.subtitle = "Exact category, any letter case."
		m.form.fields[0].label = "Category"
	case queryName:
		m.form.title = "SEARCH BY NAME"
		m.form.subtitle = "Any part of the recipe name."
		m.form.fields[0].label = "Name"
	case queryID:
		m.form.title = "OPEN RECIPE"
		m.form.subtitle = "Recipe ids are returned when a recipe is created."
		m.form.fields[0].label = "Id"
	}
}

func queryCmd(c *client.Client, mode queryMode, term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		switch mode {
		case queryID:
			id, err := strconv.ParseInt(term, 10, 64)
			if err != nil {
				return queryErrorMsg{err: fmt.Errorf("id must be a number")}
			}
			recipe, err := c.GetRecipe(ctx, id)
			if err != nil {
				return queryErrorMsg{err: err}
			}
			return recipeLoadedMsg{recipe: recipe}

		case queryCategory:
			recipes, err := c.SearchByCategory(ctx, term)
			if err != nil {
				return queryErrorMsg{err: err}
			}
			return recipesLoadedMsg{title: "Category: " + term, recipes: recipes}

		default:
			recipes, err := c.SearchByName(ctx, term)
			if err != nil {
				return queryErrorMsg{err: err}
			}
			return recipesLoadedMsg{title: "Name contains: " + term, recipes: recipes}
		}
	}
}

func (m *QueryModel) Update(msg tea.Msg) (*QueryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recipesLoadedMsg, recipeLoadedMsg:
		m.form.loading = false
	case queryErrorMsg:
		m.form.loading = false
		m.form.err = msg.err
	case tea.KeyMsg:
		if !m.form.handleKey(msg) {
			return m, nil
		}
		m.form.loading = true
		m.form.err = nil
		return m, queryCmd(m.client, m.mode, m.form.value(0))
	}
	return m, nil
}

func (m *QueryModel) View() string {
	return m.form.view()
}
