//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostClock counts milliseconds from creation. Sleep returns early once the
// clock is stopped so a blocked control cycle can wind down.
type hostClock struct {
	start time.Time
	done  chan struct{}
	once  sync.Once
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now(), done: make(chan struct{})}
}

func (c *hostClock) Millis() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}

func (c *hostClock) Sleep(ms uint64) {
	if ms == 0 {
		return
	}
	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-t.C:
	case <-c.done:
	}
}

func (c *hostClock) stop() {
	c.once.Do(func() { close(c.done) })
}
