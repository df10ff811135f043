package scroll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const question = "When was the first bombe built at Bletchley Park?"

func TestWindowStartsAtHead(t *testing.T) {
	w := New(question)
	assert.Equal(t, 0, w.Offset())
	assert.Equal(t, "When was the fir", w.View())
	assert.Equal(t, 49-Width, w.MaxOffset())
}

func TestWindowWaitsForInterval(t *testing.T) {
	w := New(question)
	assert.False(t, w.Poll(0))
	assert.False(t, w.Poll(IntervalMs-1))
	require.True(t, w.Poll(IntervalMs))
	assert.Equal(t, 1, w.Offset())
	assert.False(t, w.Poll(IntervalMs+IntervalMs-1))
	assert.True(t, w.Poll(2*IntervalMs))
	assert.Equal(t, 2, w.Offset())
}

func TestWindowWrapCycle(t *testing.T) {
	w := New(question)
	now := uint64(0)
	seen := map[int]bool{0: true}
	for i := 0; i < w.MaxOffset(); i++ {
		now += IntervalMs
		require.True(t, w.Poll(now))
		seen[w.Offset()] = true
	}
	assert.Equal(t, w.MaxOffset(), w.Offset())
	assert.Equal(t, " Bletchley Park?", w.View())

	now += IntervalMs
	require.True(t, w.Poll(now))
	assert.Equal(t, 0, w.Offset(), "wraps after the last full window")
	assert.Len(t, seen, w.MaxOffset()+1)
}

func TestWindowViewAlwaysFullWidth(t *testing.T) {
	w := New(question)
	now := uint64(0)
	for i := 0; i < 200; i++ {
		now += IntervalMs
		w.Poll(now)
		v := w.View()
		require.Len(t, []rune(v), Width)
		require.True(t, strings.Contains(question, v))
	}
}

func TestWindowSingleStepCatchUp(t *testing.T) {
	w := New(question)
	require.True(t, w.Poll(IntervalMs))
	// Starved for six intervals.
	require.True(t, w.Poll(IntervalMs+6*IntervalMs))
	assert.Equal(t, 2, w.Offset())
	assert.Equal(t, uint64(2), w.Advances())
	assert.False(t, w.Poll(IntervalMs+6*IntervalMs+1))
}

func TestWindowShortTextIsPadded(t *testing.T) {
	w := New("Hi")
	assert.Equal(t, "Hi"+strings.Repeat(" ", Width-2), w.View())
	require.True(t, w.Poll(IntervalMs))
	assert.Equal(t, 0, w.Offset())
}
