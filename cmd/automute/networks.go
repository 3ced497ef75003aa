/*
Copyright © 2026 The automute authors
*/
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MrJer/automute/cmd"
	"github.com/MrJer/automute/internal/network"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type networksClient interface {
	Networks() ([]network.Entry, error)
}

type networkView struct {
	SSID          string     `json:"ssid"`
	Name          string     `json:"name"`
	LastConnected *time.Time `json:"last_connected,omitempty"`
	Action        string     `json:"action"`
}

// NewNetworksCmd creates the networks command with explicit dependencies.
func NewNetworksCmd(client networksClient) *cobra.Command {
	if client == nil {
		panic("NewNetworksCmd: client dependency cannot be nil")
	}

	var jsonFlag bool

	networksCmd := &cobra.Command{
		Use:   "networks",
		Short: "List known networks and their actions",
		Long: `List every known network with the action taken when joining it.

"Not connected" is always first; the rest are ordered by when they were
last joined, most recent first.

USAGE:
    automute networks [--json]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := client.Networks()
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeNetworksJSON(cmd.OutOrStdout(), entries)
			}
			return writeNetworksTable(cmd.OutOrStdout(), entries)
		},
	}

	networksCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print JSON")
	return networksCmd
}

func writeNetworksJSON(w io.Writer, entries []network.Entry) error {
	views := make([]networkView, 0, len(entries))
	for _, e := range entries {
		v := networkView{SSID: e.SSID, Name: e.DisplayName(), Action: e.Action.String()}
		if !e.LastConnected.IsZero() {
			at := e.LastConnected
			v.LastConnected = &at
		}
		views = append(views, v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func writeNetworksTable(w io.Writer, entries []network.Entry) error {
	nameWidth := len("NETWORK")
	for _, e := range entries {
		if n := lipgloss.Width(e.DisplayName()); n > nameWidth {
			nameWidth = n
		}
	}

	header := lipgloss.NewStyle().Bold(true)
	if _, err := fmt.Fprintln(w, header.Render(fmt.Sprintf("%-*s  %-10s  %s", nameWidth, "NETWORK", "ACTION", "LAST CONNECTED"))); err != nil {
		return err
	}
	for _, e := range entries {
		last := "-"
		if !e.LastConnected.IsZero() {
			last = e.LastConnected.Local().Format("2006-01-02 15:04")
		}
		name := e.DisplayName()
		pad := nameWidth - lipgloss.Width(name)
		if _, err := fmt.Fprintf(w, "%s%*s  %-10s  %s\n", name, pad, "", e.Action.Description(), last); err != nil {
			return err
		}
	}
	return nil
}

var networksCmd = NewNetworksCmd(client)

func init() {
	cmd.RootCmd.AddCommand(networksCmd)
}
