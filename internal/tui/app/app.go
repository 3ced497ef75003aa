// Package app wires the preferences editor into a bubbletea program.
package app

import (
	"fmt"

	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/tui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgramRunner runs a bubbletea program.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner runs the program in the alternate screen.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Client runs the editor over a table.
type Client struct {
	runner ProgramRunner
}

// NewClient creates a Client. A nil runner uses DefaultProgramRunner.
func NewClient(runner ProgramRunner) *Client {
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}
	return &Client{runner: runner}
}

// Edit opens the editor and blocks until the user quits.
func (c *Client) Edit(table state.Table) error {
	if err := c.runner.Run(state.NewModel(table)); err != nil {
		colors.Error(fmt.Sprintf("Error running preferences editor: %v", err))
		return err
	}
	return nil
}
