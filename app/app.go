package app

import (
	"context"
	"fmt"

	"trail/hal"
	"trail/input"
	"trail/pulse"
	"trail/ritual"
	"trail/scroll"
)

// Controller owns all exhibit state and runs the control cycle.
//
// Every cycle samples the joystick, updates the digit editor, shows the
// number, checks for the target and, unless the ritual fired, services the
// scroll. Nothing here is safe for concurrent use; observers receive copies.
type Controller struct {
	cfg Config

	log hal.Logger
	clk hal.Clock
	js  hal.Joystick
	lcd hal.CharDisplay
	num hal.NumericDisplay
	ind hal.Indicator

	editor *input.Editor
	window *scroll.Window
	ritual *ritual.Ritual

	cycle     uint64
	now       uint64
	last      Snapshot
	observers []func(Snapshot)
}

// New wires a controller to h.
func New(h hal.HAL, cfg Config) (*Controller, error) {
	if h == nil {
		return nil, fmt.Errorf("app: nil hal")
	}
	clk := h.Clock()
	if clk == nil {
		return nil, fmt.Errorf("app: hal has no clock")
	}

	c := &Controller{
		cfg:    cfg,
		log:    h.Logger(),
		clk:    clk,
		js:     h.Joystick(),
		lcd:    h.CharDisplay(),
		num:    h.NumericDisplay(),
		ind:    h.Indicator(),
		editor: input.NewEditor(),
		window: scroll.New(cfg.Question),
	}

	rc := ritual.Config{
		Target:      cfg.Target,
		Message:     cfg.Message,
		Latch:       cfg.Latch,
		Cooperative: cfg.Cooperative,
		OnState:     func(ritual.State) { c.publish() },
	}
	r, err := ritual.New(rc, pulse.NewTable(), c.lcd, c.ind, clk, c.log)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	c.ritual = r
	return c, nil
}

// Boot draws the start screen: the head of the question on the top row and 0.
func (c *Controller) Boot() {
	if c.ind != nil {
		c.ind.SetActive(false)
	}
	if c.lcd != nil {
		c.lcd.Clear()
		c.lcd.SetCursor(0, 0)
		c.lcd.Print(c.window.View())
	}
	if c.num != nil {
		c.num.ShowDecimal(c.editor.Value())
	}
	mode := "blocking"
	if c.cfg.Cooperative {
		mode = "cooperative"
	}
	c.logf("boot: scheduling=%s latch=%t ritual=%dms", mode, c.cfg.Latch, c.ritual.TotalMs())
	c.now = c.clk.Millis()
	c.publish()
}

// Step runs one control cycle.
func (c *Controller) Step() {
	c.cycle++
	a, b := input.Read(c.js)
	c.now = c.clk.Millis()

	busy := c.ritual.Active()
	if !busy && c.editor.Update(a, b, c.now) {
		c.logf("edit: %v cursor=%d", c.editor.Digits(), c.editor.Cursor())
	}

	value := c.editor.Value()
	if c.num != nil {
		c.num.ShowDecimal(value)
	}

	c.ritual.Poll(c.now)
	finished := busy && !c.ritual.Active()
	if !c.ritual.Active() && !finished && c.ritual.Check(value, c.now) {
		c.now = c.clk.Millis()
		c.publish()
		return
	}

	if c.window.Poll(c.now) {
		c.renderScroll()
	}
	c.publish()
}

// renderScroll writes the window to the bottom row. While a cooperative
// ritual is on screen only the bottom row is rewritten.
func (c *Controller) renderScroll() {
	if c.lcd == nil {
		return
	}
	if c.cfg.TraceScroll {
		c.logf("scroll: offset=%d clear", c.window.Offset())
	}
	if !c.ritual.Active() {
		c.lcd.Clear()
	}
	c.lcd.SetCursor(0, 1)
	c.lcd.Print(c.window.View())
}

// Run boots and cycles until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	c.Boot()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c.Step()
		if c.cfg.PollMs > 0 {
			c.clk.Sleep(c.cfg.PollMs)
		}
	}
}

// Observe registers fn to receive a snapshot whenever the visible state changes.
// fn runs on the control cycle and must not block.
func (c *Controller) Observe(fn func(Snapshot)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

func (c *Controller) publish() {
	if len(c.observers) == 0 {
		return
	}
	s := c.Snapshot()
	if s.sameState(c.last) {
		return
	}
	c.last = s
	for _, fn := range c.observers {
		fn(s)
	}
}

func (c *Controller) logf(format string, args ...any) {
	if c.log == nil {
		return
	}
	c.log.WriteLineString(fmt.Sprintf(format, args...))
}

// Editor exposes the digit editor for inspection.
func (c *Controller) Editor() *input.Editor { return c.editor }

// Window exposes the scroll window for inspection.
func (c *Controller) Window() *scroll.Window { return c.window }

// Ritual exposes the match detector for inspection.
func (c *Controller) Ritual() *ritual.Ritual { return c.ritual }

// Cycles returns the number of completed control cycles.
func (c *Controller) Cycles() uint64 { return c.cycle }

// Run starts the exhibit with the default configuration and never returns
// (TinyGo entrypoint). A panic in the control cycle leaves a fault screen up.
func Run(h hal.HAL) {
	defer func() {
		if r := recover(); r != nil {
			showFault(h, r)
			select {}
		}
	}()

	c, err := New(h, DefaultConfig())
	if err != nil {
		showFault(h, err)
		select {}
	}
	startDiag(c)
	_ = c.Run(context.Background())
}
