package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Varun5711/recipebook/cmd/tui/client"
	"github.com/Varun5711/recipebook/cmd/tui/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defaultAPI := os.Getenv("RECIPEBOOK_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	apiURL := flag.String("api", defaultAPI, "base URL of the recipe API")
	flag.Parse()

	p := tea.NewProgram(
		ui.NewModel(client.New(*apiURL)),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
