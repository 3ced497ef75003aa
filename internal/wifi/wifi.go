// Package wifi reads the state of the wireless interface.
package wifi

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout bounds every external command.
const DefaultTimeout = 5 * time.Second

var (
	// ErrNoInterface is returned when the machine has no usable wireless
	// interface, or the platform is not supported.
	ErrNoInterface = errors.New("no wireless interface")

	// ErrCommandFailed is returned when networksetup exits with an error.
	ErrCommandFailed = errors.New("networksetup command failed")

	// ErrUnexpectedOutput is returned when networksetup output cannot be parsed.
	ErrUnexpectedOutput = errors.New("unexpected networksetup output")
)

// Observation is one reading of the wireless interface. An empty SSID
// means no network is associated.
type Observation struct {
	SSID      string `json:"ssid"`
	PoweredOn bool   `json:"powered_on"`
}

// Interface observes the wireless interface.
type Interface interface {
	Observe(ctx context.Context) (Observation, error)
}

// Option configures a Client.
type Option func(*Client)

// WithDevice pins the BSD device name (for example "en0") instead of
// discovering it.
func WithDevice(device string) Option {
	return func(c *Client) {
		c.device = device
	}
}

// WithTimeout sets the timeout for each networksetup invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRunner replaces the command runner.
func WithRunner(run Runner) Option {
	return func(c *Client) {
		if run != nil {
			c.run = run
		}
	}
}
