package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/applier"
	"github.com/MrJer/automute/internal/audio"
	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/config"
	"github.com/MrJer/automute/internal/daemon"
	"github.com/MrJer/automute/internal/network"
	"github.com/MrJer/automute/internal/storage"
	"github.com/MrJer/automute/internal/tui/app"
	"github.com/MrJer/automute/internal/version"
	"github.com/MrJer/automute/internal/wifi"
	"github.com/benbjohnson/clock"
)

// appClient opens the store and table on first use, after the root
// command has loaded configuration.
type appClient struct {
	once  sync.Once
	err   error
	store storage.Storage
	table *network.Table
}

var client = &appClient{}

func (c *appClient) open() error {
	c.once.Do(func() {
		store, err := storage.NewFromConfig()
		if err != nil {
			c.err = fmt.Errorf("open store: %w", err)
			return
		}
		c.store = store
		c.table = network.NewTable(network.NewPlistSource(knownNetworksPath()), store)
		if err := c.table.Load(); err != nil {
			colors.Warning(fmt.Sprintf("could not read saved preferences: %v", err))
		}
	})
	return c.err
}

func knownNetworksPath() string {
	return config.Get("known_networks_path", config.DefaultKnownNetworksPath)
}

// Close releases the store.
func (c *appClient) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// FirstLaunch reports whether this is the first run and records that it happened.
func (c *appClient) FirstLaunch() (bool, error) {
	if err := c.open(); err != nil {
		return false, err
	}
	launched, err := c.store.LaunchedBefore()
	if err != nil {
		return false, err
	}
	if launched {
		return false, nil
	}
	return true, c.store.MarkLaunched()
}

// RunDaemon runs the poll loop until ctx is cancelled.
func (c *appClient) RunDaemon(ctx context.Context, opts runOptions) error {
	if err := c.open(); err != nil {
		return err
	}
	timeout := config.GetDuration("command_timeout", wifi.DefaultTimeout)
	iface := wifi.New(
		wifi.WithDevice(config.Get("wifi_interface", "")),
		wifi.WithTimeout(timeout),
	)
	clk := clock.New()
	applr := applier.New(audio.New(timeout), c.store, clk)

	daemonOpts := daemon.Options{
		PollInterval: opts.Interval,
		DropDebounce: opts.Debounce,
		Clock:        clk,
	}
	if opts.Watch {
		daemonOpts.WatchPath = knownNetworksPath()
	}
	return daemon.New(iface, c.table, applr, c.store, daemonOpts).Run(ctx)
}

// Status builds the status labels from persisted state and reads the
// current output mute state.
func (c *appClient) Status(ctx context.Context) (daemon.Status, error) {
	if err := c.open(); err != nil {
		return daemon.Status{}, err
	}
	st, err := daemon.StatusFromStore(c.store, c.table, time.Now())
	if err != nil {
		return daemon.Status{}, err
	}
	muter := audio.New(config.GetDuration("command_timeout", audio.DefaultTimeout))
	muted, err := muter.Muted(ctx)
	if err != nil {
		colors.Debug(fmt.Sprintf("read mute state: %v", err))
		return st, nil
	}
	st.Muted = &muted
	return st, nil
}

// Networks returns the ordered action table.
func (c *appClient) Networks() ([]network.Entry, error) {
	if err := c.open(); err != nil {
		return nil, err
	}
	return c.table.Networks(), nil
}

// SetAction stores the action for ssid.
func (c *appClient) SetAction(ssid string, a action.Action) error {
	if err := c.open(); err != nil {
		return err
	}
	return c.table.SetAction(ssid, a)
}

// ClearAction forgets the stored action for ssid.
func (c *appClient) ClearAction(ssid string) error {
	if err := c.open(); err != nil {
		return err
	}
	return c.table.ClearAction(ssid)
}

// EditPreferences opens the interactive editor.
func (c *appClient) EditPreferences() error {
	if err := c.open(); err != nil {
		return err
	}
	// JSON trace lines would tear the terminal UI.
	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()
	return app.NewClient(nil).Edit(c.table)
}

// ClearActions forgets every stored action.
func (c *appClient) ClearActions() (int, error) {
	if err := c.open(); err != nil {
		return 0, err
	}
	return c.store.ClearActions()
}

// ConfigValues returns the effective configuration.
func (c *appClient) ConfigValues() map[string]string {
	return config.All()
}

// ConfigPath returns the config file in use, if any.
func (c *appClient) ConfigPath() string {
	return config.FilePath()
}

// StorePath returns the database file in use, or "" when the store
// could not be opened or lives in memory.
func (c *appClient) StorePath() string {
	if err := c.open(); err != nil {
		return ""
	}
	if p, ok := c.store.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// Version returns the build version.
func (c *appClient) Version() string {
	return version.String()
}
