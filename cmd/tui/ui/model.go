package ui

import (
	"github.com/Varun5711/recipebook/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	AuthView View = iota
	MenuView
	QueryView
	ListView
	DetailView
	CreateView
)

type Model struct {
	currentView View
	// detailBack is where esc returns to from the detail view.
	detailBack View
	auth       *AuthModel
	menu       *MenuModel
	query      *QueryModel
	list       *ListModel
	detail     *DetailModel
	create     *CreateModel
	client     *client.Client
	width      int
	height     int

	isAuthenticated bool
	userEmail       string
}

func NewModel(c *client.Client) Model {
	return Model{
		currentView: AuthView,
		auth:        NewAuthModel(c),
		menu:        NewMenuModel(),
		query:       NewQueryModel(c),
		list:        NewListModel(),
		detail:      NewDetailModel(),
		create:      NewCreateModel(c),
		client:      c,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authSuccessMsg:
		m.isAuthenticated = true
		m.userEmail = msg.email
		m.auth, _ = m.auth.Update(msg)
		m.currentView = MenuView
		return m, nil

	case recipesLoadedMsg:
		m.query, _ = m.query.Update(msg)
		m.list.SetRecipes(msg.title, msg.recipes)
		m.currentView = ListView
		return m, nil

	case recipeLoadedMsg:
		m.query, _ = m.query.Update(msg)
		m.detail.SetRecipe(msg.recipe)
		m.detailBack = QueryView
		m.currentView = DetailView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			switch m.currentView {
			case MenuView, ListView, DetailView:
				return m, tea.Quit
			}

		case "esc":
			switch m.currentView {
			case DetailView:
				m.currentView = m.detailBack
				return m, nil
			case QueryView, ListView, CreateView:
				m.currentView = MenuView
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case AuthView:
		m.auth, cmd = m.auth.Update(msg)

	case MenuView:
		m.menu, cmd = m.menu.Update(msg)
		if m.menu.selected != -1 {
			switch menuItem(m.menu.selected) {
			case menuSearchCategory:
				m.query.SetMode(queryCategory)
				m.currentView = QueryView
			case menuSearchName:
				m.query.SetMode(queryName)
				m.currentView = QueryView
			case menuOpenByID:
				m.query.SetMode(queryID)
				m.currentView = QueryView
			case menuNewRecipe:
				m.create.form.reset()
				m.currentView = CreateView
			}
			m.menu.selected = -1
		}

	case QueryView:
		m.query, cmd = m.query.Update(msg)

	case ListView:
		m.list, cmd = m.list.Update(msg)
		if m.list.selected != nil {
			m.detail.SetRecipe(m.list.selected)
			m.list.selected = nil
			m.detailBack = ListView
			m.currentView = DetailView
		}

	case CreateView:
		m.create, cmd = m.create.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	var statusBar string
	if m.isAuthenticated && m.currentView != AuthView {
		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Foreground(Success).
			Padding(0, 2).
			Render("signed in as " + m.userEmail)
	}

	var mainContent string
	switch m.currentView {
	case AuthView:
		mainContent = m.auth.View()
	case MenuView:
		mainContent = m.menu.View()
	case QueryView:
		mainContent = m.query.View()
	case ListView:
		mainContent = m.list.View()
	case DetailView:
		mainContent = m.detail.View()
	case CreateView:
		mainContent = m.create.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
