package daemon

import (
	"fmt"
	"time"

	"github.com/MrJer/automute/internal/action"
	"github.com/MrJer/automute/internal/network"
)

// Status is what the popup menu showed: the current network and a line
// describing the last thing that happened. Muted is set when the output
// mute state could be read.
type Status struct {
	SSID         string         `json:"ssid"`
	Network      string         `json:"network"`
	Action       action.Action  `json:"action"`
	LastAction   *action.Record `json:"last_action,omitempty"`
	NetworkLabel string         `json:"network_label"`
	InfoLabel    string         `json:"info_label"`
	Muted        *bool          `json:"muted,omitempty"`
}

// BuildStatus renders the labels for ssid. next is the action configured
// for ssid; last is the most recent applied action, if any.
func BuildStatus(ssid string, next action.Action, last *action.Record, now time.Time) Status {
	st := Status{
		SSID:         ssid,
		Network:      network.DisplayName(ssid),
		Action:       next,
		LastAction:   last,
		NetworkLabel: "Current wifi network: " + network.DisplayName(ssid),
	}

	if last == nil {
		st.InfoLabel = "Connecting to this network will: " + next.Description()
		return st
	}

	var what string
	switch last.Action {
	case action.Mute:
		what = "Muted volume"
	case action.Unmute:
		what = "Unmuted volume"
	default:
		if ssid != network.NotConnectedSSID {
			what = "Last connected"
		} else {
			what = "Disconnected"
		}
	}
	st.InfoLabel = what + " " + NaturalDate(last.At, now)
	return st
}

// NaturalDate formats t relative to now: "at 15:04" today, "Yesterday at
// 15:04", otherwise "Jan 2, 2006 at 15:04". t is shown in now's zone.
func NaturalDate(t, now time.Time) string {
	t = t.In(now.Location())
	hm := t.Format("15:04")

	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location())
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return "at " + hm
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday at " + hm
	default:
		return fmt.Sprintf("%s at %s", t.Format("Jan 2, 2006"), hm)
	}
}

// StatusSource is the persisted state a status report is built from.
type StatusSource interface {
	LastSSID() (string, bool, error)
	LastAction() (action.Record, bool, error)
}

// Lookup resolves the configured action for an SSID.
type Lookup interface {
	Lookup(ssid string) action.Action
}

// StatusFromStore builds a Status from persisted state, for use outside
// the running daemon.
func StatusFromStore(src StatusSource, table Lookup, now time.Time) (Status, error) {
	ssid, _, err := src.LastSSID()
	if err != nil {
		return Status{}, fmt.Errorf("read last network: %w", err)
	}
	var last *action.Record
	rec, ok, err := src.LastAction()
	if err != nil {
		return Status{}, fmt.Errorf("read last action: %w", err)
	}
	if ok {
		last = &rec
	}
	return BuildStatus(ssid, table.Lookup(ssid), last, now), nil
}
