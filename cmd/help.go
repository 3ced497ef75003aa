/*
Copyright © 2026 The automute authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show this help message",
	Long: `Show help for automute, or for one of its commands.

EXAMPLES:
    automute help
    automute help set`,
	RunE: runHelp,
}

// runHelp prints the root help, or the help of the command named by args.
func runHelp(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	if len(args) == 0 {
		return root.Help()
	}
	target, _, err := root.Find(args)
	if err != nil || target == root {
		return fmt.Errorf("unknown help topic %q", strings.Join(args, " "))
	}
	return target.Help()
}

func init() {
	RootCmd.SetHelpCommand(helpCmd)
}
