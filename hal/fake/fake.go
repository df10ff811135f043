// Package fake provides deterministic HAL parts for tests. The clock only
// moves when told to, and Sleep advances it instantly.
package fake

import (
	"strings"
	"sync"

	"trail/hal"
)

// Clock is a manual millisecond clock.
type Clock struct {
	mu    sync.Mutex
	now   uint64
	slept uint64
	naps  int
}

// NewClock returns a clock reading start.
func NewClock(start uint64) *Clock { return &Clock{now: start} }

func (c *Clock) Millis() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by ms.
func (c *Clock) Sleep(ms uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += ms
	c.slept += ms
	c.naps++
}

// Advance moves the clock forward by ms without counting it as a sleep.
func (c *Clock) Advance(ms uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += ms
}

// Set moves the clock to t. Going backwards is ignored.
func (c *Clock) Set(t uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t > c.now {
		c.now = t
	}
}

// Slept returns the total time spent in Sleep.
func (c *Clock) Slept() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}

// Naps returns the number of Sleep calls.
func (c *Clock) Naps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.naps
}

// Joystick returns fixed samples until changed.
type Joystick struct {
	mu   sync.Mutex
	a, b int
}

// NewJoystick returns a centered joystick.
func NewJoystick() *Joystick {
	return &Joystick{a: hal.SampleCenter, b: hal.SampleCenter}
}

func (j *Joystick) Sample(axis hal.Axis) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	if axis == hal.AxisA {
		return j.a
	}
	return j.b
}

// Set changes both samples.
func (j *Joystick) Set(a, b int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.a, j.b = a, b
}

// Center releases the stick.
func (j *Joystick) Center() { j.Set(hal.SampleCenter, hal.SampleCenter) }

// CharDisplay records commands and keeps the resulting screen.
type CharDisplay struct {
	mu       sync.Mutex
	cells    [hal.CharRows][hal.CharColumns]rune
	col, row int
	clears   int
	ops      []string
}

// NewCharDisplay returns a blank display.
func NewCharDisplay() *CharDisplay {
	d := &CharDisplay{}
	d.blank()
	return d
}

func (d *CharDisplay) blank() {
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
	d.col, d.row = 0, 0
}

func (d *CharDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blank()
	d.clears++
	d.ops = append(d.ops, "clear")
}

func (d *CharDisplay) SetCursor(col, row int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.col, d.row = col, row
	d.ops = append(d.ops, "cursor")
}

func (d *CharDisplay) Print(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "print:"+text)
	if d.row < 0 || d.row >= hal.CharRows {
		return
	}
	for _, r := range text {
		if d.col >= 0 && d.col < hal.CharColumns {
			d.cells[d.row][d.col] = r
		}
		d.col++
	}
}

// Line returns one row with trailing spaces trimmed.
func (d *CharDisplay) Line(row int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if row < 0 || row >= hal.CharRows {
		return ""
	}
	return strings.TrimRight(string(d.cells[row][:]), " ")
}

// Clears returns the number of Clear calls.
func (d *CharDisplay) Clears() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

// Ops returns the recorded commands.
func (d *CharDisplay) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ops...)
}

// Reset forgets recorded commands, keeping the screen.
func (d *CharDisplay) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = nil
	d.clears = 0
}

// NumericDisplay remembers the last number shown.
type NumericDisplay struct {
	mu     sync.Mutex
	last   int
	writes int
}

func (d *NumericDisplay) ShowDecimal(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = n
	d.writes++
}

// Last returns the last number shown.
func (d *NumericDisplay) Last() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Writes returns the number of ShowDecimal calls.
func (d *NumericDisplay) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// Edge is one indicator level change.
type Edge struct {
	AtMs uint64
	On   bool
}

// Indicator records level changes stamped with a clock.
type Indicator struct {
	mu    sync.Mutex
	clk   hal.Clock
	on    bool
	edges []Edge
}

// NewIndicator returns an indicator stamping edges with clk.
func NewIndicator(clk hal.Clock) *Indicator { return &Indicator{clk: clk} }

func (i *Indicator) SetActive(on bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if on == i.on {
		return
	}
	i.on = on
	var at uint64
	if i.clk != nil {
		at = i.clk.Millis()
	}
	i.edges = append(i.edges, Edge{AtMs: at, On: on})
}

// Active returns the current level.
func (i *Indicator) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.on
}

// Edges returns the recorded level changes.
func (i *Indicator) Edges() []Edge {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]Edge(nil), i.edges...)
}

// Logger keeps every line.
type Logger struct {
	mu    sync.Mutex
	lines []string
}

func (l *Logger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *Logger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

// Lines returns the logged lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// HAL bundles the fakes. Joystick may be replaced before use.
type HAL struct {
	Clk *Clock
	JS  hal.Joystick
	LCD *CharDisplay
	Num *NumericDisplay
	Ind *Indicator
	Log *Logger
}

// New returns a HAL whose clock starts at start.
func New(start uint64) *HAL {
	clk := NewClock(start)
	return &HAL{
		Clk: clk,
		JS:  NewJoystick(),
		LCD: NewCharDisplay(),
		Num: &NumericDisplay{},
		Ind: NewIndicator(clk),
		Log: &Logger{},
	}
}

func (h *HAL) Logger() hal.Logger                 { return h.Log }
func (h *HAL) Clock() hal.Clock                   { return h.Clk }
func (h *HAL) Joystick() hal.Joystick             { return h.JS }
func (h *HAL) CharDisplay() hal.CharDisplay       { return h.LCD }
func (h *HAL) NumericDisplay() hal.NumericDisplay { return h.Num }
func (h *HAL) Indicator() hal.Indicator           { return h.Ind }

// Stick returns JS as the settable fake, or nil if it was replaced.
func (h *HAL) Stick() *Joystick {
	j, _ := h.JS.(*Joystick)
	return j
}
