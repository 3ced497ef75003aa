package wifi

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockInterface is a testify mock of Interface.
//
//	m := new(MockInterface)
//	m.On("Observe", mock.Anything).Return(Observation{SSID: "Home", PoweredOn: true}, nil)
type MockInterface struct {
	mock.Mock
}

// Observe returns the configured observation.
func (m *MockInterface) Observe(ctx context.Context) (Observation, error) {
	args := m.Called(ctx)
	return args.Get(0).(Observation), args.Error(1)
}
