//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal front-end.
type TerminalConfig struct {
	Host HostConfig
	// NudgeMs is how long one key press deflects the stick. Terminals only
	// report presses, so holding a key relies on auto-repeat.
	NudgeMs uint64
}

const defaultNudgeMs = 150

// RunTerminal shows the exhibit panel in the terminal. Arrow keys deflect
// the joystick; q, Esc or Ctrl-C quit. run executes on its own goroutine.
func RunTerminal(ctx context.Context, run Runner, cfg TerminalConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	h := newHost(cfg.Host)
	defer h.close()

	nudge := cfg.NudgeMs
	if nudge == 0 {
		nudge = defaultNudgeMs
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, h)
		cancel()
	}()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var drawn uint64
	drawTerminal(screen, h.panel.State())
	for {
		select {
		case <-ctx.Done():
			h.clk.stop()
			err := <-done
			if err == context.Canceled {
				return nil
			}
			return err
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					cancel()
					continue
				}
				if axis, sample, ok := stickKey(ev); ok {
					h.stick.Nudge(axis, sample, nudge)
				}
			case *tcell.EventResize:
				screen.Sync()
				drawTerminal(screen, h.panel.State())
			}
		case <-ticker.C:
			s := h.panel.State()
			if s.Version != drawn {
				drawn = s.Version
				drawTerminal(screen, s)
			}
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func stickKey(ev *tcell.EventKey) (Axis, int, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return AxisA, SampleMin, true
	case tcell.KeyRight:
		return AxisA, SampleMax, true
	case tcell.KeyUp:
		return AxisB, SampleMin, true
	case tcell.KeyDown:
		return AxisB, SampleMax, true
	}
	return 0, 0, false
}

// panelRows lays the panel out as fixed-width text.
func panelRows(s PanelState) []string {
	lamp := "( )"
	if s.Lamp {
		lamp = "(*)"
	}
	return []string{
		"+------------------+",
		fmt.Sprintf("| [%s]       %s |", s.Digits(), lamp),
		"+------------------+",
		"| " + s.Lines[0] + " |",
		"| " + s.Lines[1] + " |",
		"+------------------+",
		" arrows dial, q quits",
	}
}

func drawTerminal(screen tcell.Screen, s PanelState) {
	base := tcell.StyleDefault
	lcd := base.Foreground(tcell.NewRGBColor(8, 24, 8)).Background(tcell.NewRGBColor(64, 128, 32))
	digits := base.Foreground(tcell.ColorRed)
	lamp := base.Foreground(tcell.ColorYellow).Bold(s.Lamp)

	screen.Clear()
	for y, row := range panelRows(s) {
		for x, ch := range row {
			style := base
			switch {
			case (y == 3 || y == 4) && x >= 2 && x < 2+CharColumns:
				style = lcd
			case y == 1 && x >= 3 && x < 7:
				style = digits
			case y == 1 && x >= 15 && x < 18:
				style = lamp
			}
			screen.SetContent(x+1, y+1, ch, nil, style)
		}
	}
	screen.Show()
}
