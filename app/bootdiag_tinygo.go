//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync"
	"time"
)

var (
	diagMu   sync.Mutex
	diagLine string
)

// startDiag mirrors the latest snapshot to USB CDC every 250 ms so a board
// without a UART adapter can still be watched during bring-up.
func startDiag(c *Controller) {
	c.Observe(func(s Snapshot) {
		diagMu.Lock()
		diagLine = s.String()
		diagMu.Unlock()
	})

	go func() {
		for {
			diagMu.Lock()
			line := diagLine
			diagMu.Unlock()
			if line == "" {
				line = "<boot>"
			}
			if usb := machine.USBCDC; usb != nil {
				_, _ = usb.Write([]byte("diag: " + line + "\r\n"))
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}
