// Package action defines what automute does when a network becomes current.
package action

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Action is one of the three per-network choices. The integer values are
// persisted and follow the order of the selector in the preferences editor.
type Action int

const (
	Mute Action = iota
	Unmute
	DoNothing
)

// ErrUnknownAction is returned by Parse for unrecognized names.
var ErrUnknownAction = errors.New("unknown action")

// All lists actions in selector order.
var All = []Action{Mute, Unmute, DoNothing}

// FromCode converts a stored code. Anything out of range, including the
// legacy -1 "unset" marker, reads as DoNothing.
func FromCode(code int) Action {
	a := Action(code)
	if !a.Valid() {
		return DoNothing
	}
	return a
}

// Valid reports whether a is one of the defined actions.
func (a Action) Valid() bool {
	return a >= Mute && a <= DoNothing
}

// Code returns the persisted integer form.
func (a Action) Code() int {
	return int(a)
}

// String returns the short name used on the command line.
func (a Action) String() string {
	switch a {
	case Mute:
		return "mute"
	case Unmute:
		return "unmute"
	case DoNothing:
		return "nothing"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Description is the human label shown in status output and the editor.
func (a Action) Description() string {
	switch a {
	case Mute:
		return "Mute"
	case Unmute:
		return "Unmute"
	default:
		return "Do nothing"
	}
}

// Next cycles forward through the selector, wrapping around.
func (a Action) Next() Action {
	return All[(indexOf(a)+1)%len(All)]
}

// Prev cycles backward through the selector, wrapping around.
func (a Action) Prev() Action {
	return All[(indexOf(a)+len(All)-1)%len(All)]
}

func indexOf(a Action) int {
	for i, candidate := range All {
		if candidate == a {
			return i
		}
	}
	return indexOf(DoNothing)
}

// Parse accepts the names printed by String plus a few spellings people type.
func Parse(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mute", "muted", "0":
		return Mute, nil
	case "unmute", "unmuted", "1":
		return Unmute, nil
	case "nothing", "none", "do-nothing", "donothing", "noop", "2":
		return DoNothing, nil
	default:
		return DoNothing, fmt.Errorf("%w: %q (want mute, unmute or nothing)", ErrUnknownAction, s)
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output uses names.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Record remembers the most recently applied action and when it happened.
type Record struct {
	Action Action    `json:"action"`
	At     time.Time `json:"at"`
}
