// Package exec runs external programs behind an interface so callers can be
// tested without spawning processes.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor runs a program and reports its captured output.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// RealExecutor spawns real processes.
type RealExecutor struct{}

func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

// Execute runs name with args and waits for it to exit. A non-zero exit
// is returned as an error carrying the trimmed stderr.
func (e *RealExecutor) Execute(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), stderr.String(), fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return stdout.String(), stderr.String(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.String(), stderr.String(), nil
}
