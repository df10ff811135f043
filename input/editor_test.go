package input

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail/hal"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		sample int
		want   Direction
	}{
		{Center, Neutral},
		{Center - Deadzone, Neutral},
		{Center - Deadzone - 1, Negative},
		{Center + Deadzone, Neutral},
		{Center + Deadzone + 1, Positive},
		{0, Negative},
		{4095, Positive},
		{-500, Negative},
		{70000, Positive},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.sample), "sample %d", tc.sample)
	}
}

func TestEditorFirstEditIncrementsSelectedDigit(t *testing.T) {
	e := NewEditor()
	require.True(t, e.Update(Neutral, Negative, 1000))
	assert.Equal(t, [DigitCount]uint8{1, 0, 0, 0}, e.Digits())
	assert.Equal(t, 0, e.Cursor())
	assert.Equal(t, 1000, e.Value())
}

func TestEditorBootDebounce(t *testing.T) {
	e := NewEditor()
	assert.False(t, e.Update(Positive, Neutral, 150))
	assert.False(t, e.Update(Positive, Neutral, DebounceMs))
	assert.True(t, e.Update(Positive, Neutral, DebounceMs+1))
}

func TestEditorDebounceRejectsEditExactlyOneIntervalLater(t *testing.T) {
	e := NewEditor()
	require.True(t, e.Update(Neutral, Negative, 1000))

	// Inside the window, its last millisecond included: rejected, and the
	// gate does not move.
	assert.False(t, e.Update(Neutral, Negative, 1100))
	assert.False(t, e.Update(Neutral, Negative, 1000+DebounceMs))
	assert.Equal(t, uint64(1000), e.LastEdit())
	assert.Equal(t, 1000, e.Value())

	require.True(t, e.Update(Neutral, Negative, 1000+DebounceMs+1))
	assert.Equal(t, 2000, e.Value())
}

func TestEditorNeutralPollDoesNotMoveGate(t *testing.T) {
	e := NewEditor()
	require.True(t, e.Update(Positive, Neutral, 500))
	assert.False(t, e.Update(Neutral, Neutral, 900))
	assert.Equal(t, uint64(500), e.LastEdit())
}

func TestEditorSustainedDeflectionRepeats(t *testing.T) {
	e := NewEditor()
	edits := 0
	for now := uint64(1000); now < 2000; now += 10 {
		if e.Update(Neutral, Negative, now) {
			edits++
		}
	}
	// Accepted at 1000, 1210, 1420, 1630, 1840.
	assert.Equal(t, 5, edits)
	assert.Equal(t, uint8(5), e.Digits()[0])
}

func TestEditorCursorWraps(t *testing.T) {
	e := NewEditor()
	now := uint64(1000)
	step := func(a Direction) {
		require.True(t, e.Update(a, Neutral, now))
		now += DebounceMs + 1
	}

	step(Negative)
	assert.Equal(t, 3, e.Cursor())
	step(Positive)
	assert.Equal(t, 0, e.Cursor())
	for i := 0; i < DigitCount; i++ {
		step(Positive)
	}
	assert.Equal(t, 0, e.Cursor())
}

func TestEditorDigitWraps(t *testing.T) {
	e := NewEditor()
	now := uint64(1000)

	require.True(t, e.Update(Neutral, Positive, now))
	assert.Equal(t, uint8(9), e.Digits()[0], "0 decrements to 9")

	now += DebounceMs + 1
	require.True(t, e.Update(Neutral, Negative, now))
	assert.Equal(t, uint8(0), e.Digits()[0], "9 increments to 0")
}

func TestEditorBothAxesInOnePoll(t *testing.T) {
	e := NewEditor()
	require.True(t, e.Update(Positive, Negative, 1000))
	assert.Equal(t, 1, e.Cursor())
	assert.Equal(t, [DigitCount]uint8{0, 1, 0, 0}, e.Digits(), "digit edit applies at the new cursor")
	assert.Equal(t, 100, e.Value())
}

func TestEditorInvariantsUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dirs := []Direction{Negative, Neutral, Positive}

	e := NewEditor()
	now := uint64(0)
	for i := 0; i < 20000; i++ {
		now += uint64(rng.Intn(300))
		e.Update(dirs[rng.Intn(3)], dirs[rng.Intn(3)], now)

		require.GreaterOrEqual(t, e.Cursor(), 0)
		require.Less(t, e.Cursor(), DigitCount)
		d := e.Digits()
		for _, x := range d {
			require.LessOrEqual(t, x, uint8(9))
		}
		require.Equal(t, int(d[0])*1000+int(d[1])*100+int(d[2])*10+int(d[3]), e.Value())
	}
}

func TestPlanDialReachesTarget(t *testing.T) {
	for _, target := range []int{0, 1, 1940, 9999, 5555, 4391, 70} {
		moves, err := PlanDial([DigitCount]uint8{}, 0, target)
		require.NoError(t, err)

		e := NewEditor()
		now := uint64(1000)
		for _, m := range moves {
			a, b := Neutral, Neutral
			if m.Axis == hal.AxisA {
				a = m.Dir
			} else {
				b = m.Dir
			}
			require.True(t, e.Update(a, b, now))
			now += DebounceMs + 1
		}
		assert.Equal(t, target, e.Value(), "target %d", target)
	}
}

func TestPlanDialShortestPath(t *testing.T) {
	moves, err := PlanDial([DigitCount]uint8{}, 0, 1940)
	require.NoError(t, err)
	// digit0 +1, cursor +1, digit1 -1 (0->9), cursor +1, digit2 +4.
	assert.Len(t, moves, 8)
}

func TestPlanDialRejectsOutOfRange(t *testing.T) {
	_, err := PlanDial([DigitCount]uint8{}, 0, 10000)
	assert.Error(t, err)
	_, err = PlanDial([DigitCount]uint8{}, 4, 1)
	assert.Error(t, err)
}
