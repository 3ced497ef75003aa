//go:build !darwin

package audio

import (
	"context"
	"time"
)

type unsupported struct{}

// New returns the platform Muter. Off macOS every call fails with
// ErrUnsupported.
func New(timeout time.Duration) Muter {
	return unsupported{}
}

func (unsupported) SetMuted(context.Context, bool) error { return ErrUnsupported }

func (unsupported) Muted(context.Context) (bool, error) { return false, ErrUnsupported }
