package wifi

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MrJer/automute/internal/colors"
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	start := time.Now()
	command := ""
	if len(args) > 0 {
		command = args[0]
	}
	colors.StructuredDebug("wifi", "run", "started", nil, map[string]any{"command": command})

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start).Seconds()
	if err != nil {
		colors.StructuredError("wifi", "run", "failed", err, map[string]any{"command": command, "duration_seconds": duration})
		return stdout.String(), fmt.Errorf("%w: %s %s: %v: %s", ErrCommandFailed, name, command, err, strings.TrimSpace(stderr.String()))
	}
	colors.StructuredDebug("wifi", "run", "completed", nil, map[string]any{"command": command, "duration_seconds": duration})
	return stdout.String(), nil
}
