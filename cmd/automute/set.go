/*
Copyright © 2026 The automute authors
*/
package main

import (
	"fmt"

	"github.com/MrJer/automute/cmd"
	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/network"
	"github.com/spf13/cobra"
)

type setClient interface {
	SetAction(ssid string, a action.Action) error
	ClearAction(ssid string) error
}

// NewSetCmd creates the set command with explicit dependencies.
func NewSetCmd(client setClient) *cobra.Command {
	if client == nil {
		panic("NewSetCmd: client dependency cannot be nil")
	}

	var (
		disconnected bool
		clearFlag    bool
	)

	setCmd := &cobra.Command{
		Use:   "set <ssid> <mute|unmute|nothing>",
		Short: "Choose what happens when joining a network",
		Long: `Choose what happens when joining a network.

USAGE:
    automute set <ssid> <mute|unmute|nothing>
    automute set --disconnected <mute|unmute|nothing>
    automute set --clear <ssid>

EXAMPLES:
    automute set "Office Wi-Fi" mute
    automute set Home unmute
    automute set --disconnected mute
    automute set --clear "Office Wi-Fi"`,
		Args: func(cmd *cobra.Command, args []string) error {
			want := 2
			if disconnected {
				want--
			}
			if clearFlag {
				want--
			}
			if len(args) != want {
				return fmt.Errorf("expected %d argument(s), got %d", want, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ssid := network.NotConnectedSSID
			if !disconnected {
				ssid = args[0]
				if ssid == "" {
					return fmt.Errorf("ssid cannot be empty; use --disconnected for the not connected entry")
				}
			}

			if clearFlag {
				if err := client.ClearAction(ssid); err != nil {
					return err
				}
				colors.Success(fmt.Sprintf("%s: %s (cleared)", network.DisplayName(ssid), action.DoNothing.Description()))
				return nil
			}

			a, err := action.Parse(args[len(args)-1])
			if err != nil {
				return err
			}
			if err := client.SetAction(ssid, a); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("%s: %s", network.DisplayName(ssid), a.Description()))
			return nil
		},
	}

	setCmd.Flags().BoolVar(&disconnected, "disconnected", false, "Set the action for when no network is connected")
	setCmd.Flags().BoolVar(&clearFlag, "clear", false, "Forget the stored action instead of setting one")
	return setCmd
}

var setCmd = NewSetCmd(client)

func init() {
	cmd.RootCmd.AddCommand(setCmd)
}
