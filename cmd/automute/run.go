/*
Copyright © 2026 The automute authors
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJer/automute/cmd"
	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/config"
	"github.com/MrJer/automute/internal/daemon"
	"github.com/MrJer/automute/internal/monitor"
	"github.com/spf13/cobra"
)

type runOptions struct {
	Interval time.Duration
	Debounce int
	Watch    bool
}

type runClient interface {
	FirstLaunch() (bool, error)
	RunDaemon(ctx context.Context, opts runOptions) error
}

const firstLaunchHint = "Welcome to AutoMute. Choose what happens on each network with 'automute prefs'."

// NewRunCmd creates the run command with explicit dependencies.
func NewRunCmd(client runClient) *cobra.Command {
	if client == nil {
		panic("NewRunCmd: client dependency cannot be nil")
	}

	var (
		interval time.Duration
		debounce int
		noWatch  bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Watch the Wi-Fi network and apply actions",
		Long: `Watch the Wi-Fi network and mute or unmute when it changes.

The interface is polled every --interval. When the network disappears
while Wi-Fi stays on, the change is only acted on after --debounce
consecutive empty polls, so short drops are ignored.

USAGE:
    automute run [OPTIONS]

OPTIONS:
    --interval=<duration>   Poll interval (default from poll_interval, 5s)
    --debounce=<n>          Empty polls that confirm a drop (default from drop_debounce_ticks, 3)
    --no-watch              Do not reload when the known networks list changes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions{
				Interval: config.GetDuration("poll_interval", daemon.DefaultPollInterval),
				Debounce: config.GetInt("drop_debounce_ticks", monitor.DefaultDropDebounce),
				Watch:    config.GetBool("watch_known_networks", true),
			}
			if cmd.Flags().Changed("interval") {
				if interval <= 0 {
					return fmt.Errorf("--interval must be positive, got %s", interval)
				}
				opts.Interval = interval
			}
			if cmd.Flags().Changed("debounce") {
				if debounce < 1 {
					return fmt.Errorf("--debounce must be at least 1, got %d", debounce)
				}
				opts.Debounce = debounce
			}
			if noWatch {
				opts.Watch = false
			}

			first, err := client.FirstLaunch()
			if err != nil {
				colors.Warning(fmt.Sprintf("could not read launch state: %v", err))
			}
			if first {
				colors.Info(firstLaunchHint)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			colors.LogInfo(fmt.Sprintf("automute running (interval %s, debounce %d)", opts.Interval, opts.Debounce))
			return client.RunDaemon(ctx, opts)
		},
	}

	runCmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval")
	runCmd.Flags().IntVar(&debounce, "debounce", 0, "Consecutive empty polls that confirm a drop")
	runCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not watch the known networks file")
	return runCmd
}

var runCmd = NewRunCmd(client)

func init() {
	cmd.RootCmd.AddCommand(runCmd)
}
