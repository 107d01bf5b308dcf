package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/Varun5711/recipebook/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
)

type authSuccessMsg struct {
	email string
}

type authErrorMsg struct {
	err error
}

// AuthModel is the login screen; ctrl+s flips it into sign-up mode.
type AuthModel struct {
	form   *form
	signup bool
	client *client.Client
}

func NewAuthModel(c *client.Client) *AuthModel {
	m := &AuthModel{
		form: newForm("", "",
			"tab switch  •  enter submit  •  ctrl+s toggle sign up  •  ctrl+c quit",
			&field{label: "Email"},
			&field{label: "Password", masked: true},
		),
		client: c,
	}
	m.setMode(false)
	return m
}

func (m *AuthModel) setMode(signup bool) {
	m.signup = signup
	m.form.err = nil
	if signup {
		m.form.title = "SIGN UP"
		m.form.subtitle = "Passwords need at least 8 characters."
	} else {
		m.form.title = "LOGIN"
		m.form.subtitle = "Sign in to browse and share recipes."
	}
}

func authCmd(c *client.Client, signup bool, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if signup {
			if err := c.Register(ctx, email, password); err != nil {
				return authErrorMsg{err: err}
			}
		}

		resp, err := c.Login(ctx, email, password)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return authSuccessMsg{email: resp.Email}
	}
}

func (m *AuthModel) Update(msg tea.Msg) (*AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authSuccessMsg:
		m.form.loading = false
		m.form.reset()
	case authErrorMsg:
		m.form.loading = false
		m.form.err = msg.err
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.setMode(!m.signup)
			return m, nil
		}
		if !m.form.handleKey(msg) {
			return m, nil
		}

		email, password := m.form.value(0), m.form.fields[1].value
		if email == "" || password == "" {
			m.form.err = fmt.Errorf("email and password are required")
			return m, nil
		}

		m.form.loading = true
		m.form.err = nil
		return m, authCmd(m.client, m.signup, email, password)
	}
	return m, nil
}

func (m *AuthModel) View() string {
	return m.form.view()
}
