/*
Copyright © 2026 The automute authors
*/
package main

import (
	"github.com/MrJer/automute/cmd"
	"github.com/spf13/cobra"
)

type prefsClient interface {
	EditPreferences() error
}

// NewPrefsCmd creates the prefs command with explicit dependencies.
func NewPrefsCmd(client prefsClient) *cobra.Command {
	if client == nil {
		panic("NewPrefsCmd: client dependency cannot be nil")
	}

	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Edit network actions interactively",
		Long: `Edit network actions interactively.

KEYS:
    ↑/k ↓/j      Move between networks
    ←/h →/l      Cycle the action
    m u n        Mute, Unmute, Do nothing
    r            Reload the known networks
    ?            Toggle help
    q, esc       Quit

Changes are saved immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.EditPreferences()
		},
	}

	return prefsCmd
}

var prefsCmd = NewPrefsCmd(client)

func init() {
	cmd.RootCmd.AddCommand(prefsCmd)
}
