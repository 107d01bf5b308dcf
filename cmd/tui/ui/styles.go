package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Kitchen palette
	Primary   = lipgloss.Color("#E07A3F") // Paprika
	Secondary = lipgloss.Color("#F2B880") // Apricot
	Accent    = lipgloss.Color("#7FB069") // Basil
	Success   = lipgloss.Color("#9BC53D") // Lime
	Warning   = lipgloss.Color("#F4D35E") // Saffron
	Error     = lipgloss.Color("#D1495B") // Tomato
	Muted     = lipgloss.Color("#8D8273") // Walnut
	Text      = lipgloss.Color("#FDF6EC") // Cream
	BgDark    = lipgloss.Color("#2B2118") // Espresso
	BgLight   = lipgloss.Color("#3D3024") // Cocoa

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 2).
			Width(70)
)
