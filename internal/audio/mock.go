package audio

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMuter is a testify mock of Muter.
type MockMuter struct {
	mock.Mock
}

// SetMuted records the call and returns the configured error.
func (m *MockMuter) SetMuted(ctx context.Context, muted bool) error {
	args := m.Called(ctx, muted)
	return args.Error(0)
}

// Muted returns the configured state.
func (m *MockMuter) Muted(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
