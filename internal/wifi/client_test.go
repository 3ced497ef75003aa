package wifi

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeRunner answers networksetup invocations from a table keyed by the
// joined arguments.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("command run without a deadline")
	}
	if err := f.errs[key]; err != nil {
		return "", err
	}
	return f.outputs[key], nil
}

func TestObserveConnected(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{
		"-listallhardwareports":  hardwarePorts,
		"-getairportpower en0":   "Wi-Fi Power (en0): On\n",
		"-getairportnetwork en0": "Current Wi-Fi Network: Home\n",
	}}
	c := NewClient(WithRunner(f.run))

	obs, err := c.Observe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Observation{SSID: "Home", PoweredOn: true}, obs)

	_, err = c.Observe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, countCalls(f.calls, "-listallhardwareports"), "device is discovered once")
}

func TestObservePoweredOffSkipsNetworkQuery(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{
		"-getairportpower en1": "Wi-Fi Power (en1): Off\n",
	}}
	c := NewClient(WithDevice("en1"), WithRunner(f.run))

	obs, err := c.Observe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Observation{PoweredOn: false}, obs)
	assert.Equal(t, []string{"-getairportpower en1"}, f.calls)
}

func TestObserveNotAssociated(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{
		"-getairportpower en0":   "Wi-Fi Power (en0): On\n",
		"-getairportnetwork en0": "You are not associated with an AirPort network.\n",
	}}
	c := NewClient(WithDevice("en0"), WithRunner(f.run))

	obs, err := c.Observe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Observation{SSID: "", PoweredOn: true}, obs)
}

func TestObserveNoWifiHardware(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{
		"-listallhardwareports": "Hardware Port: Ethernet\nDevice: en0\n",
	}}
	c := NewClient(WithRunner(f.run))

	_, err := c.Observe(context.Background())
	require.ErrorIs(t, err, ErrNoInterface)
}

func TestObserveCommandFailure(t *testing.T) {
	f := &fakeRunner{errs: map[string]error{
		"-getairportpower en0": ErrCommandFailed,
	}}
	c := NewClient(WithDevice("en0"), WithRunner(f.run), WithTimeout(time.Second))

	_, err := c.Observe(context.Background())
	require.ErrorIs(t, err, ErrCommandFailed)
	assert.NotErrorIs(t, err, ErrNoInterface)
}

func TestMockInterface(t *testing.T) {
	m := new(MockInterface)
	m.On("Observe", mock.Anything).Return(Observation{SSID: "Cafe", PoweredOn: true}, nil).Once()

	obs, err := m.Observe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cafe", obs.SSID)
	m.AssertExpectations(t)
}

func countCalls(calls []string, key string) int {
	n := 0
	for _, c := range calls {
		if c == key {
			n++
		}
	}
	return n
}
