/*
Copyright © 2026 The automute authors
*/
package main

import (
	"fmt"
	"sort"

	"github.com/MrJer/automute/cmd"
	"github.com/spf13/cobra"
)

type configClient interface {
	ConfigValues() map[string]string
	ConfigPath() string
	StorePath() string
}

// NewConfigCmd creates the config command with explicit dependencies.
func NewConfigCmd(client configClient) *cobra.Command {
	if client == nil {
		panic("NewConfigCmd: client dependency cannot be nil")
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect configuration.

Values come from defaults, then config.toml, then AUTOMUTE_* environment
variables.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			path := client.ConfigPath()
			if path == "" {
				path = "(none)"
			}
			fmt.Fprintf(w, "# config file: %s\n", path)
			store := client.StorePath()
			if store == "" {
				store = "(memory)"
			}
			fmt.Fprintf(w, "# store: %s\n", store)

			values := client.ConfigValues()
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "%s = %q\n", k, values[k])
			}
			return nil
		},
	}

	configCmd.AddCommand(showCmd)
	return configCmd
}

var configCmd = NewConfigCmd(client)

func init() {
	cmd.RootCmd.AddCommand(configCmd)
}
