//go:build darwin

package wifi

// New returns the platform wireless interface.
func New(opts ...Option) Interface {
	return NewClient(opts...)
}
