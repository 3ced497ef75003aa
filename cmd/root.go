/*
Copyright © 2026 The automute authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/config"
	"github.com/MrJer/automute/internal/logging"
	"github.com/MrJer/automute/internal/version"
	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "automute",
	Short:         "Mute or unmute your Mac depending on the Wi-Fi network.",
	Long:          `Mute or unmute your Mac depending on the Wi-Fi network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug(fmt.Sprintf("logging shutdown: %v", err))
		}
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		colors.Error(err.Error())
		return err
	}
	return nil
}

// setup loads configuration and starts logging before any command runs.
func setup() error {
	config.Load()

	colors.SetDebug(debugFlag || config.GetBool("debug", false))
	colors.SetQuiet(quietFlag || config.GetBool("quiet", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.SetVersionTemplate("automute version {{.Version}}\n")

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational output")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			if cmd.Long != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", cmd.Long)
			}
			return
		}
		printHelpText(cmd)
	})
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"run",
		"status",
		"networks",
		"set",
		"prefs",
		"reset",
		"config",
		"version",
		"help",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	helpText := fmt.Sprintf(`automute %s

Mute or unmute your Mac depending on the Wi-Fi network.

USAGE:
    automute [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output
    -q, --quiet     Suppress informational output
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
