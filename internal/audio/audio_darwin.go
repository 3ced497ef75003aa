//go:build darwin

package audio

import "time"

// New returns the platform Muter.
func New(timeout time.Duration) Muter {
	return NewOsascript(timeout, nil)
}
