/*
Copyright © 2026 The automute authors
*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrJer/automute/cmd"
	"github.com/MrJer/automute/internal/daemon"
	"github.com/spf13/cobra"
)

type statusClient interface {
	Status(ctx context.Context) (daemon.Status, error)
}

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client statusClient) *cobra.Command {
	if client == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	var formatFlag string

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current network and last action",
		Long: `Show the current network and what AutoMute last did.

USAGE:
    automute status [OPTIONS]

OPTIONS:
    --format=<format>    Output format: text or json (default: text)

EXAMPLES:
    automute status
    automute status --format=json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), st, formatFlag)
		},
	}

	statusCmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text or json")
	return statusCmd
}

func writeStatus(w io.Writer, st daemon.Status, format string) error {
	switch format {
	case "", "text":
		if _, err := fmt.Fprintf(w, "%s\n%s\n", st.NetworkLabel, st.InfoLabel); err != nil {
			return err
		}
		if st.Muted != nil {
			state := "no"
			if *st.Muted {
				state = "yes"
			}
			_, err := fmt.Fprintf(w, "Output muted: %s\n", state)
			return err
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

var statusCmd = NewStatusCmd(client)

func init() {
	cmd.RootCmd.AddCommand(statusCmd)
}
