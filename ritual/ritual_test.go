package ritual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail/hal/fake"
	"trail/pulse"
)

const fullRitualMs = 70500

func newRitual(t *testing.T, cfg Config) (*Ritual, *fake.HAL) {
	t.Helper()
	h := fake.New(1000)
	r, err := New(cfg, pulse.NewTable(), h.LCD, h.Ind, h.Clk, h.Log)
	require.NoError(t, err)
	return r, h
}

func TestTotalDuration(t *testing.T) {
	r, _ := newRitual(t, DefaultConfig())
	assert.Equal(t, uint64(fullRitualMs), r.TotalMs())
}

func TestNoMatchNoSideEffects(t *testing.T) {
	r, h := newRitual(t, DefaultConfig())
	assert.False(t, r.Check(1939, h.Clk.Millis()))
	assert.Empty(t, h.LCD.Ops())
	assert.Empty(t, h.Ind.Edges())
	assert.Equal(t, uint64(0), h.Clk.Slept())
}

func TestBlockingRitual(t *testing.T) {
	r, h := newRitual(t, DefaultConfig())
	start := h.Clk.Millis()

	require.True(t, r.Check(Target, start))

	assert.Equal(t, uint64(fullRitualMs), h.Clk.Millis()-start)
	assert.Equal(t, StateIdle, r.State())
	assert.Equal(t, StartLine, h.LCD.Line(0))
	assert.Equal(t, []string{"clear", "print:" + FeedbackLine, "clear", "print:" + StartLine}, h.LCD.Ops())

	edges := h.Ind.Edges()
	require.Len(t, edges, 4*pulse.CodeLen*2)
	assert.Equal(t, fake.Edge{AtMs: start + HoldMs + LeadInMs, On: true}, edges[0])
	assert.False(t, h.Ind.Active())
}

func TestBlockingRitualIsDeterministic(t *testing.T) {
	r, h := newRitual(t, DefaultConfig())

	require.True(t, r.Check(Target, h.Clk.Millis()))
	first := h.Ind.Edges()
	firstEnd := h.Clk.Millis()

	require.True(t, r.Check(Target, h.Clk.Millis()))
	second := h.Ind.Edges()[len(first):]
	require.Len(t, second, len(first))

	offset := firstEnd - 1000
	for i := range first {
		assert.Equal(t, first[i].On, second[i].On)
		assert.Equal(t, first[i].AtMs+offset, second[i].AtMs)
	}
	assert.Equal(t, uint64(2), r.Runs())
}

func TestLatchRequiresLeavingTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Latch = true
	r, h := newRitual(t, cfg)

	require.True(t, r.Check(Target, h.Clk.Millis()))
	assert.False(t, r.Check(Target, h.Clk.Millis()), "still on target")
	assert.False(t, r.Check(1941, h.Clk.Millis()))
	assert.True(t, r.Check(Target, h.Clk.Millis()), "back on target")
	assert.Equal(t, uint64(2), r.Runs())
}

func TestCooperativeRitual(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cooperative = true
	var states []State
	cfg.OnState = func(s State) { states = append(states, s) }
	r, h := newRitual(t, cfg)

	start := h.Clk.Millis()
	require.True(t, r.Check(Target, start))
	assert.Equal(t, StateHold, r.State())
	assert.Equal(t, FeedbackLine, h.LCD.Line(0))
	assert.Equal(t, uint64(0), h.Clk.Slept(), "never sleeps")

	assert.False(t, r.Check(Target, start), "no re-entry while active")

	h.Clk.Advance(HoldMs - 1)
	r.Poll(h.Clk.Millis())
	assert.Equal(t, StateHold, r.State())

	h.Clk.Advance(1)
	r.Poll(h.Clk.Millis())
	assert.Equal(t, StateLeadIn, r.State())
	assert.Equal(t, StartLine, h.LCD.Line(0))

	for r.Active() {
		h.Clk.Advance(1)
		r.Poll(h.Clk.Millis())
	}
	assert.Equal(t, uint64(fullRitualMs), h.Clk.Millis()-start)
	assert.Equal(t, []State{StateHold, StateLeadIn, StatePlaying, StateIdle}, states)
}

func TestCooperativeMatchesBlockingEdges(t *testing.T) {
	blocking, bh := newRitual(t, DefaultConfig())
	require.True(t, blocking.Check(Target, bh.Clk.Millis()))

	cfg := DefaultConfig()
	cfg.Cooperative = true
	coop, ch := newRitual(t, cfg)
	require.True(t, coop.Check(Target, ch.Clk.Millis()))
	for coop.Active() {
		ch.Clk.Advance(1)
		coop.Poll(ch.Clk.Millis())
	}

	assert.Equal(t, bh.Ind.Edges(), ch.Ind.Edges())
}

func TestCooperativeCatchUpInOnePoll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cooperative = true
	r, h := newRitual(t, cfg)

	require.True(t, r.Check(Target, h.Clk.Millis()))
	h.Clk.Advance(fullRitualMs)
	r.Poll(h.Clk.Millis())
	assert.Equal(t, StateIdle, r.State())
	assert.False(t, h.Ind.Active())
}

func TestNewRejectsBadConfig(t *testing.T) {
	h := fake.New(0)
	_, err := New(Config{Target: 10000, Message: Message}, nil, h.LCD, h.Ind, h.Clk, nil)
	assert.Error(t, err)
	_, err = New(Config{Target: Target, Message: 123456}, nil, h.LCD, h.Ind, h.Clk, nil)
	assert.Error(t, err)
	_, err = New(DefaultConfig(), nil, h.LCD, h.Ind, nil, nil)
	assert.Error(t, err)
}

func TestLogsEachCode(t *testing.T) {
	r, h := newRitual(t, DefaultConfig())
	require.True(t, r.Check(Target, h.Clk.Millis()))
	lines := h.Log.Lines()
	assert.Contains(t, lines, "code 1/4: ....-")
	assert.Contains(t, lines, "code 4/4 played")
	assert.Contains(t, lines, "ritual 1 done")
}
