// Package audio controls the system output mute.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MrJer/automute/internal/colors"
)

// DefaultTimeout bounds each osascript invocation.
const DefaultTimeout = 5 * time.Second

var (
	// ErrUnsupported is returned on platforms without a mute backend.
	ErrUnsupported = errors.New("audio mute is not supported on this platform")

	// ErrScriptFailed is returned when osascript exits with an error.
	ErrScriptFailed = errors.New("osascript failed")
)

const (
	scriptMute    = `set volume with output muted`
	scriptUnmute  = `set volume without output muted`
	scriptIsMuted = `output muted of (get volume settings)`
)

// Muter sets and reads the system output mute.
type Muter interface {
	SetMuted(ctx context.Context, muted bool) error
	Muted(ctx context.Context) (bool, error)
}

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// Osascript mutes through AppleScript's volume settings.
type Osascript struct {
	timeout time.Duration
	run     Runner
}

// NewOsascript returns an osascript-backed Muter. A nil runner executes
// the real binary.
func NewOsascript(timeout time.Duration, run Runner) *Osascript {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if run == nil {
		run = execRunner
	}
	return &Osascript{timeout: timeout, run: run}
}

// SetMuted mutes or unmutes the default output device.
func (o *Osascript) SetMuted(ctx context.Context, muted bool) error {
	script := scriptUnmute
	if muted {
		script = scriptMute
	}
	if _, err := o.script(ctx, script); err != nil {
		return fmt.Errorf("set muted=%t: %w", muted, err)
	}
	colors.StructuredInfo("audio", "set_muted", "completed", nil, map[string]any{"muted": muted})
	return nil
}

// Muted reports whether the default output device is muted.
func (o *Osascript) Muted(ctx context.Context) (bool, error) {
	out, err := o.script(ctx, scriptIsMuted)
	if err != nil {
		return false, fmt.Errorf("read mute state: %w", err)
	}
	switch strings.TrimSpace(out) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		// "missing value" is returned when the output device has no mute control.
		return false, fmt.Errorf("%w: unexpected mute state %q", ErrScriptFailed, strings.TrimSpace(out))
	}
}

func (o *Osascript) script(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.run(ctx, "osascript", "-e", script)
}

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		colors.StructuredError("audio", "run", "failed", err, nil)
		return "", fmt.Errorf("%w: %v: %s", ErrScriptFailed, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
