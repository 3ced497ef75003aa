// Package monitor decides when the associated wireless network has
// changed. It is fed one observation per poll and holds no I/O.
package monitor

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrJer/automute/internal/wifi"
	"github.com/benbjohnson/clock"
)

// DefaultDropDebounce is how many consecutive empty polls confirm a drop.
const DefaultDropDebounce = 3

// ErrInvalidDebounce is returned for a debounce count below one.
var ErrInvalidDebounce = errors.New("drop debounce must be at least 1")

// Reason explains why an event fired.
type Reason int

const (
	// Associated means a (different) network was joined.
	Associated Reason = iota
	// PoweredOff means the radio was switched off.
	PoweredOff
	// Dropped means the network disappeared while the radio stayed on
	// and did not come back within the debounce window.
	Dropped
)

func (r Reason) String() string {
	switch r {
	case Associated:
		return "associated"
	case PoweredOff:
		return "powered_off"
	case Dropped:
		return "dropped"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Event is emitted when the stable network changes.
type Event struct {
	From   string
	To     string
	Reason Reason
	At     time.Time
}

// Kind is the coarse state of the monitor.
type Kind int

const (
	Disconnected Kind = iota
	Connected
	Debouncing
)

func (k Kind) String() string {
	switch k {
	case Connected:
		return "connected"
	case Debouncing:
		return "debouncing"
	default:
		return "disconnected"
	}
}

// State is a snapshot of the monitor.
type State struct {
	Kind      Kind
	SSID      string
	Remaining int
}

// Monitor tracks the last stable SSID. It is not safe for concurrent use;
// the daemon drives it from a single goroutine.
type Monitor struct {
	clock      clock.Clock
	debounce   int
	last       string
	debouncing bool
	remaining  int
}

// New returns a monitor seeded with the last stable SSID ("" when
// disconnected or unknown).
func New(last string, debounce int, clk clock.Clock) (*Monitor, error) {
	if debounce < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDebounce, debounce)
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Monitor{clock: clk, debounce: debounce, last: last}, nil
}

// Last returns the last stable SSID.
func (m *Monitor) Last() string {
	return m.last
}

// State returns the current state.
func (m *Monitor) State() State {
	switch {
	case m.debouncing:
		return State{Kind: Debouncing, SSID: m.last, Remaining: m.remaining}
	case m.last != "":
		return State{Kind: Connected, SSID: m.last}
	default:
		return State{Kind: Disconnected}
	}
}

// Poll feeds one observation and reports whether the stable network changed.
func (m *Monitor) Poll(obs wifi.Observation) (Event, bool) {
	if obs.SSID == m.last {
		m.resetDebounce()
		return Event{}, false
	}
	if obs.SSID != "" {
		return m.fire(obs.SSID, Associated), true
	}
	if !obs.PoweredOn {
		return m.fire("", PoweredOff), true
	}

	if !m.debouncing {
		m.debouncing = true
		m.remaining = m.debounce
	}
	m.remaining--
	if m.remaining > 0 {
		return Event{}, false
	}
	return m.fire("", Dropped), true
}

func (m *Monitor) fire(to string, reason Reason) Event {
	ev := Event{From: m.last, To: to, Reason: reason, At: m.clock.Now()}
	m.last = to
	m.resetDebounce()
	return ev
}

func (m *Monitor) resetDebounce() {
	m.debouncing = false
	m.remaining = 0
}
