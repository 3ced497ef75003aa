package wifi

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const networksetup = "networksetup"

// Client observes the wireless interface through networksetup.
type Client struct {
	mu      sync.Mutex
	device  string
	timeout time.Duration
	run     Runner
}

// NewClient creates a networksetup-backed client. Most callers want New,
// which picks the right implementation for the platform.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout: DefaultTimeout,
		run:     execRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe reads the radio power state and, when powered on, the SSID.
func (c *Client) Observe(ctx context.Context) (Observation, error) {
	device, err := c.Device(ctx)
	if err != nil {
		return Observation{}, err
	}

	out, err := c.command(ctx, "-getairportpower", device)
	if err != nil {
		return Observation{}, err
	}
	powered, err := parseAirportPower(out)
	if err != nil {
		return Observation{}, err
	}
	if !powered {
		return Observation{PoweredOn: false}, nil
	}

	out, err = c.command(ctx, "-getairportnetwork", device)
	if err != nil {
		return Observation{PoweredOn: true}, err
	}
	ssid, err := parseAirportNetwork(out)
	if err != nil {
		return Observation{PoweredOn: true}, err
	}
	return Observation{SSID: ssid, PoweredOn: true}, nil
}

// Device returns the wireless device name, discovering and caching it
// on first use.
func (c *Client) Device(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device != "" {
		return c.device, nil
	}

	out, err := c.command(ctx, "-listallhardwareports")
	if err != nil {
		return "", err
	}
	device, ok := parseHardwarePorts(out)
	if !ok {
		return "", ErrNoInterface
	}
	c.device = device
	return device, nil
}

func (c *Client) command(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := c.run(ctx, networksetup, args...)
	if err != nil {
		return out, fmt.Errorf("networksetup %s: %w", args[0], err)
	}
	return out, nil
}
