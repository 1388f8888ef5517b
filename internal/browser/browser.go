// Package browser hands URLs to the platform's default opener.
package browser

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/kyleking/alfred-workflows/internal/exec"
)

// ErrNotHTTPS is returned by OpenHTTPS for anything that is not an https URL.
var ErrNotHTTPS = errors.New("refusing to open non-https url")

// Opener launches URLs through a CommandExecutor.
type Opener struct {
	Executor exec.CommandExecutor
	GOOS     string
}

// New returns an Opener for the running platform.
func New(executor exec.CommandExecutor) *Opener {
	return &Opener{Executor: executor, GOOS: runtime.GOOS}
}

// Open opens url with the default handler.
func Open(ctx context.Context, url string) error {
	return New(exec.NewRealExecutor()).Open(ctx, url)
}

func (o *Opener) Open(ctx context.Context, url string) error {
	name, args := o.command(url)
	if _, _, err := o.Executor.Execute(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// OpenHTTPS opens url only when it uses the https scheme.
func (o *Opener) OpenHTTPS(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: %q", ErrNotHTTPS, url)
	}
	return o.Open(ctx, url)
}

func (o *Opener) command(url string) (string, []string) {
	switch o.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
