package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHelpText(t *testing.T) {
	rootCmd := &cobra.Command{Use: "automute", Short: "Test root"}
	// Added out of order; help must list them in the documented order.
	rootCmd.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version information"},
		&cobra.Command{Use: "set <ssid> <action>", Short: "Choose what happens when joining a network"},
		&cobra.Command{Use: "run", Short: "Watch the Wi-Fi network and apply actions"},
		&cobra.Command{Use: "status", Short: "Show the current network and last action"},
		&cobra.Command{Use: "unlisted", Short: "Should not appear"},
	)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	printHelpText(rootCmd)
	output := buf.String()

	for _, section := range []string{"USAGE:", "COMMANDS:", "OPTIONS:", "--debug", "-q, --quiet"} {
		assert.Contains(t, output, section)
	}
	assert.NotContains(t, output, "unlisted")

	run := strings.Index(output, "    run ")
	status := strings.Index(output, "    status ")
	set := strings.Index(output, "    set ")
	version := strings.Index(output, "    version ")
	require.True(t, run >= 0 && status >= 0 && set >= 0 && version >= 0, output)
	assert.Less(t, run, status)
	assert.Less(t, status, set)
	assert.Less(t, set, version)
}

func TestRunHelpForCommand(t *testing.T) {
	root := &cobra.Command{Use: "automute"}
	set := &cobra.Command{
		Use:   "set",
		Short: "Choose what happens when joining a network",
		Long:  "Choose what happens when joining a network, in detail.",
		Run:   func(*cobra.Command, []string) {},
	}
	help := &cobra.Command{Use: "help [command]", RunE: runHelp}
	root.AddCommand(set, help)

	var buf bytes.Buffer
	root.SetOut(&buf)

	require.NoError(t, runHelp(help, []string{"set"}))
	assert.Contains(t, buf.String(), "in detail.")

	err := runHelp(help, []string{"louder"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "louder")
}
