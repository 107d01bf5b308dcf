package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field struct {
	label  string
	value  string
	masked bool
}

func (f *field) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if runes := []rune(f.value); len(runes) > 0 {
			f.value = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		f.value += " "
	case tea.KeyRunes:
		f.value += string(msg.Runes)
	}
}

func (f *field) view(focused bool) string {
	style := InputStyle
	if focused {
		style = FocusedInputStyle
	}

	value := f.value
	if f.masked {
		value = strings.Repeat("•", len([]rune(f.value)))
	}

	label := LabelStyle.Width(15).Render(f.label + ":")
	return lipgloss.JoinHorizontal(lipgloss.Left, label, style.Width(50).Render(value))
}

// form is the text-entry block shared by the login, query and create views.
type form struct {
	title    string
	subtitle string
	help     string
	fields   []*field
	focus    int
	loading  bool
	status   string
	err      error
}

func newForm(title, subtitle, help string, fields ...*field) *form {
	return &form{title: title, subtitle: subtitle, help: help, fields: fields}
}

// handleKey edits the focused field and reports whether the form was
// submitted.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	if f.loading {
		return false
	}

	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	case "enter":
		if f.focus < len(f.fields)-1 {
			f.focus++
			return false
		}
		return true
	case "ctrl+l":
		f.reset()
	default:
		f.fields[f.focus].handleKey(msg)
	}
	return false
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f *form) reset() {
	for _, fld := range f.fields {
		fld.value = ""
	}
	f.focus = 0
	f.err = nil
	f.status = ""
}

func (f *form) view() string {
	var b strings.Builder

	b.WriteString(centered(TitleStyle.MarginTop(1).Render(f.title)))
	b.WriteString("\n")
	if f.subtitle != "" {
		b.WriteString(centered(lipgloss.NewStyle().Foreground(Muted).MarginBottom(1).Render(f.subtitle)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, fld := range f.fields {
		b.WriteString(centered(fld.view(i == f.focus)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case f.loading:
		b.WriteString(centered(InfoStyle.Render("Working...")))
		b.WriteString("\n")
	case f.err != nil:
		b.WriteString(centered(ErrorStyle.Render(f.err.Error())))
		b.WriteString("\n")
	case f.status != "":
		b.WriteString(centered(SuccessStyle.Render(f.status)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render(f.help)))

	return BoxStyle.Width(76).Render(b.String())
}

func centered(s string) string {
	return lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(s)
}
