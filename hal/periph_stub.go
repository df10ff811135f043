//go:build !tinygo && !(linux && periph)

package hal

import (
	"context"
	"fmt"
)

// PeriphAvailable reports whether this build can drive real hardware.
const PeriphAvailable = false

func RunPeriph(_ context.Context, _ Runner, _ PeriphConfig) error {
	return fmt.Errorf("periph backend: %w (build on linux with -tags periph)", ErrNotImplemented)
}
