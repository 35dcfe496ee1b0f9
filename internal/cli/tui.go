package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// recipeListModel - Interactive recipe selection
// =============================================================================

// recipeListModel is the bubbletea model for picking a recipe file.
type recipeListModel struct {
	Recipes  []string
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// newRecipeListModel creates a new recipe list model.
func newRecipeListModel(recipes []string) recipeListModel {
	return recipeListModel{
		Recipes: recipes,
		Height:  15,
	}
}

func (m recipeListModel) Init() tea.Cmd {
	return nil
}

func (m recipeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Recipes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Recipes[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m recipeListModel) View() string {
	var b strings.Builder
	b.WriteString(listDimStyle.Render("Select a recipe (↑/↓ move, enter select, q quit)"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Recipes) {
		end = len(m.Recipes)
	}
	for i := m.Offset; i < end; i++ {
		name := filepath.Base(m.Recipes[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("> " + name))
		} else {
			b.WriteString(listNormalStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickRecipeInteractive lists the *.toml files in dir and lets the user
// pick one. An empty return with nil error means the user quit without
// selecting.
func pickRecipeInteractive(dir string) (string, error) {
	recipes, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return "", err
	}
	if len(recipes) == 0 {
		return "", fmt.Errorf("no recipe files (*.toml) in %s", dir)
	}
	sort.Strings(recipes)

	model := newRecipeListModel(recipes)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(recipeListModel); ok {
		return m.Selected, nil
	}
	return "", nil
}
