//go:build !tinygo && !cgo

package hal

import (
	"context"
	"fmt"
)

// WindowConfig controls the desktop simulator.
type WindowConfig struct {
	Host  HostConfig
	Scale int
}

func RunWindow(_ context.Context, _ Runner, _ WindowConfig) error {
	return fmt.Errorf("window mode: %w without cgo (build with CGO_ENABLED=1)", ErrNotImplemented)
}
