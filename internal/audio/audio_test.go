package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptRecorder struct {
	scripts []string
	out     string
	err     error
}

func (r *scriptRecorder) run(ctx context.Context, name string, args ...string) (string, error) {
	if name != "osascript" || len(args) != 2 || args[0] != "-e" {
		return "", errors.New("unexpected invocation")
	}
	r.scripts = append(r.scripts, args[1])
	return r.out, r.err
}

func TestSetMuted(t *testing.T) {
	r := &scriptRecorder{}
	o := NewOsascript(0, r.run)

	require.NoError(t, o.SetMuted(context.Background(), true))
	require.NoError(t, o.SetMuted(context.Background(), false))
	assert.Equal(t, []string{scriptMute, scriptUnmute}, r.scripts)
}

func TestSetMutedPropagatesFailure(t *testing.T) {
	r := &scriptRecorder{err: ErrScriptFailed}
	o := NewOsascript(0, r.run)

	err := o.SetMuted(context.Background(), true)
	require.ErrorIs(t, err, ErrScriptFailed)
}

func TestMuted(t *testing.T) {
	r := &scriptRecorder{out: "true\n"}
	o := NewOsascript(0, r.run)

	muted, err := o.Muted(context.Background())
	require.NoError(t, err)
	assert.True(t, muted)
	assert.Equal(t, []string{scriptIsMuted}, r.scripts)

	r.out = "false\n"
	muted, err = o.Muted(context.Background())
	require.NoError(t, err)
	assert.False(t, muted)

	r.out = "missing value\n"
	_, err = o.Muted(context.Background())
	require.ErrorIs(t, err, ErrScriptFailed)
}
