package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestWatchFileSignalsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "known.plist")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw, err := watchFile(ctx, path, 10*time.Millisecond, clock.New())
	require.NoError(t, err)
	defer fw.Close()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o644))
	select {
	case <-fw.C:
		t.Fatal("signalled for an unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	}
	select {
	case <-fw.C:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload signal")
	}
}

func TestWatchFileMissingDirectory(t *testing.T) {
	_, err := watchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "known.plist"), time.Millisecond, clock.New())
	require.Error(t, err)
}
