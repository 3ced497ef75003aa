// Package daemon runs the poll loop that watches the wireless network and
// applies the configured action whenever it changes.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/applier"
	"github.com/MrJer/automute/internal/colors"
	"github.com/MrJer/automute/internal/logging"
	"github.com/MrJer/automute/internal/monitor"
	"github.com/MrJer/automute/internal/network"
	"github.com/MrJer/automute/internal/wifi"
	"github.com/benbjohnson/clock"
)

// DefaultPollInterval is how often the wireless interface is read.
const DefaultPollInterval = 5 * time.Second

// Store holds the last stable SSID between runs and the per-network
// actions, which other processes may edit while the daemon runs.
type Store interface {
	GetAction(ssid string) (action.Action, bool, error)
	LastSSID() (string, bool, error)
	SetLastSSID(ssid string) error
}

// Options tunes the loop. Zero values select defaults.
type Options struct {
	PollInterval time.Duration
	DropDebounce int
	// WatchPath, when set, reloads the table whenever the file changes.
	WatchPath   string
	ReloadDelay time.Duration
	Clock       clock.Clock
}

// Daemon owns the monitor and drives it from a single goroutine.
type Daemon struct {
	wifi    wifi.Interface
	table   *network.Table
	applier *applier.Applier
	store   Store
	opts    Options
	clock   clock.Clock
	log     logging.Logger

	mu      sync.RWMutex
	monitor *monitor.Monitor
	current string
}

// New creates a Daemon.
func New(iface wifi.Interface, table *network.Table, app *applier.Applier, store Store, opts Options) *Daemon {
	if iface == nil {
		panic("daemon.New: wifi dependency cannot be nil")
	}
	if table == nil {
		panic("daemon.New: table dependency cannot be nil")
	}
	if app == nil {
		panic("daemon.New: applier dependency cannot be nil")
	}
	if store == nil {
		panic("daemon.New: store dependency cannot be nil")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.DropDebounce < 1 {
		opts.DropDebounce = monitor.DefaultDropDebounce
	}
	if opts.ReloadDelay <= 0 {
		opts.ReloadDelay = DefaultReloadDelay
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Daemon{
		wifi:    iface,
		table:   table,
		applier: app,
		store:   store,
		opts:    opts,
		clock:   opts.Clock,
		log:     logging.With("component", "daemon"),
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately.
func (d *Daemon) Run(ctx context.Context) error {
	last, err := d.init()
	if err != nil {
		return err
	}

	var reload <-chan struct{}
	if d.opts.WatchPath != "" {
		fw, err := watchFile(ctx, d.opts.WatchPath, d.opts.ReloadDelay, d.clock)
		if err != nil {
			colors.Warning(fmt.Sprintf("not watching known networks: %v", err))
		} else {
			defer fw.Close()
			reload = fw.C
		}
	}

	ticker := d.clock.Ticker(d.opts.PollInterval)
	defer ticker.Stop()

	d.log.Info("daemon started", "interval", d.opts.PollInterval.String(), "debounce", d.opts.DropDebounce, "last_ssid", last)
	d.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			d.log.Info("daemon stopped")
			return nil
		case <-ticker.C:
			d.Poll(ctx)
		case <-reload:
			if err := d.table.Load(); err != nil {
				d.log.Warn("reload known networks", "error", err)
			}
			colors.Debug("known networks reloaded")
		}
	}
}

// init seeds the monitor with the persisted last SSID.
func (d *Daemon) init() (string, error) {
	last, _, err := d.store.LastSSID()
	if err != nil {
		d.log.Warn("failed to read last network, starting disconnected", "error", err)
		last = ""
	}
	mon, err := monitor.New(last, d.opts.DropDebounce, d.clock)
	if err != nil {
		return "", fmt.Errorf("start monitor: %w", err)
	}
	d.mu.Lock()
	d.monitor = mon
	d.current = last
	d.mu.Unlock()
	return last, nil
}

// Poll reads the interface once and, if the stable network changed,
// applies the matching action. It must only be called from the loop.
func (d *Daemon) Poll(ctx context.Context) {
	d.mu.RLock()
	mon := d.monitor
	d.mu.RUnlock()
	if mon == nil {
		return
	}

	obs, err := d.wifi.Observe(ctx)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return
	case errors.Is(err, wifi.ErrNoInterface):
		obs = wifi.Observation{PoweredOn: false}
	default:
		// Treated as a drop so a flaky read is debounced like one.
		d.log.Warn("observe wireless interface", "error", err)
		obs = wifi.Observation{PoweredOn: true}
	}

	ev, changed := mon.Poll(obs)
	if !changed {
		return
	}
	d.handle(ctx, ev)
}

func (d *Daemon) handle(ctx context.Context, ev monitor.Event) {
	d.mu.Lock()
	d.current = ev.To
	d.mu.Unlock()

	if err := d.store.SetLastSSID(ev.To); err != nil {
		d.log.Warn("persist last network", "error", err)
	}

	act := d.actionFor(ev.To)
	d.log.Info("network changed", "from", ev.From, "to", ev.To, "reason", ev.Reason.String(), "action", act.String())
	colors.Info(fmt.Sprintf("%s: %s", network.DisplayName(ev.To), act.Description()))

	if err := d.applier.Apply(ctx, act); err != nil {
		colors.Error(fmt.Sprintf("failed to apply %s: %v", act, err))
	}
}

// actionFor reads the action at event time so that edits made by
// `automute set`, `prefs` or `reset` apply without a restart. A missing
// row means DoNothing; a read error falls back to the loaded table.
func (d *Daemon) actionFor(ssid string) action.Action {
	act, ok, err := d.store.GetAction(ssid)
	if err != nil {
		d.log.Warn("read network action, using loaded table", "ssid", ssid, "error", err)
		return d.table.Lookup(ssid)
	}
	if !ok {
		return action.DoNothing
	}
	return act
}

// Current returns the last stable SSID.
func (d *Daemon) Current() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Status builds the status labels from in-memory state.
func (d *Daemon) Status() Status {
	ssid := d.Current()
	var last *action.Record
	if rec, ok := d.applier.Last(); ok {
		last = &rec
	}
	return BuildStatus(ssid, d.actionFor(ssid), last, d.clock.Now())
}
