//go:build !darwin

package wifi

import "context"

type unsupported struct{}

// New returns the platform wireless interface. Only macOS is supported;
// elsewhere every observation fails with ErrNoInterface.
func New(opts ...Option) Interface {
	return unsupported{}
}

func (unsupported) Observe(context.Context) (Observation, error) {
	return Observation{}, ErrNoInterface
}
