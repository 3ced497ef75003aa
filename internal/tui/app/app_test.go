package app

import (
	"errors"
	"testing"

	"github.com/MrJer/automute/internal/network"
	"github.com/MrJer/automute/internal/storage"
	"github.com/MrJer/automute/internal/tui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptySource struct{}

func (emptySource) KnownNetworks() ([]network.KnownNetwork, error) { return nil, nil }

type recordingRunner struct {
	model tea.Model
	err   error
}

func (r *recordingRunner) Run(model tea.Model) error {
	r.model = model
	return r.err
}

func TestEditRunsModel(t *testing.T) {
	table := network.NewTable(emptySource{}, storage.NewMemoryStorage())
	runner := &recordingRunner{}

	require.NoError(t, NewClient(runner).Edit(table))
	assert.IsType(t, &state.Model{}, runner.model)
}

func TestEditReturnsRunnerError(t *testing.T) {
	table := network.NewTable(emptySource{}, storage.NewMemoryStorage())
	boom := errors.New("no tty")

	err := NewClient(&recordingRunner{err: boom}).Edit(table)
	assert.ErrorIs(t, err, boom)
}

func TestNewClientDefaultsRunner(t *testing.T) {
	c := NewClient(nil)
	assert.IsType(t, &DefaultProgramRunner{}, c.runner)
}
