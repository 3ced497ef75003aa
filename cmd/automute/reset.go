/*
Copyright © 2026 The automute authors
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MrJer/automute/cmd"
	"github.com/MrJer/automute/internal/colors"
	"github.com/spf13/cobra"
)

type resetClient interface {
	ClearActions() (int, error)
}

// NewResetCmd creates the reset command with explicit dependencies.
func NewResetCmd(client resetClient) *cobra.Command {
	if client == nil {
		panic("NewResetCmd: client dependency cannot be nil")
	}

	var force bool

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget every network action",
		Long: `Forget every network action. Every network goes back to "Do nothing".

USAGE:
    automute reset [--force]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirmReset(cmd.InOrStdin(), cmd.OutOrStdout()) {
				colors.Info("Operation cancelled")
				return nil
			}
			n, err := client.ClearActions()
			if err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Forgot %d network action(s)", n))
			return nil
		},
	}

	resetCmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return resetCmd
}

// confirmReset asks the user for confirmation before clearing all actions.
func confirmReset(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Are you sure you want to forget every network action? (y/N): ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		// If we can't read, assume no
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

var resetCmd = NewResetCmd(client)

func init() {
	cmd.RootCmd.AddCommand(resetCmd)
}
