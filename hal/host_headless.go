//go:build !tinygo

package hal

import (
	"context"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig
	// Duration stops the run after this long (0 = run until ctx is done).
	Duration time.Duration
	// OnPanel, if set, is called with the panel state every Every.
	OnPanel func(PanelState)
	Every   time.Duration
}

// RunHeadless runs the exhibit without opening a window. run executes on
// the calling goroutine.
func RunHeadless(ctx context.Context, run Runner, cfg HeadlessConfig) error {
	h := newHost(cfg.Host)
	defer h.close()

	var cancel context.CancelFunc
	if cfg.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// A blocked cycle (ritual playback) only notices ctx once Sleep returns.
	go func() {
		<-ctx.Done()
		h.clk.stop()
	}()

	if cfg.OnPanel != nil {
		every := cfg.Every
		if every <= 0 {
			every = time.Second
		}
		go watchPanel(ctx, h.panel, every, cfg.OnPanel)
	}

	err := run(ctx, h)
	if err == context.DeadlineExceeded && cfg.Duration > 0 {
		return nil
	}
	return err
}

func watchPanel(ctx context.Context, p *Panel, every time.Duration, fn func(PanelState)) {
	t := time.NewTicker(every)
	defer t.Stop()
	var seen uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s := p.State()
			if s.Version != seen {
				seen = s.Version
				fn(s)
			}
		}
	}
}
