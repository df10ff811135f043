package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail/hal/fake"
)

func TestTableNumerals(t *testing.T) {
	tab := NewTable()
	want := map[int]string{
		0: "-----",
		1: ".----",
		2: "..---",
		3: "...--",
		4: "....-",
		5: ".....",
		6: "-....",
		7: "--...",
		8: "---..",
		9: "----.",
	}
	for d, s := range want {
		c, ok := tab.Lookup(d)
		require.True(t, ok)
		assert.Equal(t, s, c.String(), "digit %d", d)
	}
	_, ok := tab.Lookup(10)
	assert.False(t, ok)
	_, ok = tab.Lookup(-1)
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	tab := NewTable()
	codes, err := tab.Encode(4391, 4)
	require.NoError(t, err)
	require.Len(t, codes, 4)
	assert.Equal(t, "....-", codes[0].String())
	assert.Equal(t, "...--", codes[1].String())
	assert.Equal(t, "----.", codes[2].String())
	assert.Equal(t, ".----", codes[3].String())

	codes, err = tab.Encode(7, 4)
	require.NoError(t, err)
	assert.Equal(t, "-----", codes[0].String(), "zero padded")

	_, err = tab.Encode(12345, 4)
	assert.Error(t, err)
	_, err = tab.Encode(-1, 4)
	assert.Error(t, err)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, uint64(2000), Short.DurationMs())
	assert.Equal(t, uint64(3500), Long.DurationMs())

	tab := NewTable()
	for d, want := range map[int]uint64{4: 11500, 3: 13000, 9: 16000, 1: 16000} {
		c, _ := tab.Lookup(d)
		assert.Equal(t, want, c.DurationMs(), "digit %d", d)
	}

	codes, err := tab.Encode(4391, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(11500+13000+16000+16000+4*SettleMs), TotalMs(codes))
}

func TestTimelineSumsToTotal(t *testing.T) {
	codes, err := NewTable().Encode(4391, 4)
	require.NoError(t, err)

	steps := Timeline(codes)
	assert.Len(t, steps, 4*(CodeLen*3+1))

	var sum uint64
	for _, st := range steps {
		sum += st.Ms
	}
	assert.Equal(t, TotalMs(codes), sum)
	assert.Equal(t, PhaseSettle, steps[len(steps)-1].Phase)
}

func TestPlayEdges(t *testing.T) {
	clk := fake.NewClock(0)
	ind := fake.NewIndicator(clk)
	tab := NewTable()
	four, _ := tab.Lookup(4)

	Play(ind, clk, []Code{four}, nil)

	assert.Equal(t, four.DurationMs()+SettleMs, clk.Millis())
	assert.Equal(t, []fake.Edge{
		{AtMs: 0, On: true}, {AtMs: 500, On: false},
		{AtMs: 2000, On: true}, {AtMs: 2500, On: false},
		{AtMs: 4000, On: true}, {AtMs: 4500, On: false},
		{AtMs: 6000, On: true}, {AtMs: 6500, On: false},
		{AtMs: 8000, On: true}, {AtMs: 10000, On: false},
	}, ind.Edges())
	assert.False(t, ind.Active())
}

func TestSequencerMatchesPlay(t *testing.T) {
	codes, err := NewTable().Encode(4391, 4)
	require.NoError(t, err)

	blockClk := fake.NewClock(100)
	blockInd := fake.NewIndicator(blockClk)
	Play(blockInd, blockClk, codes, nil)

	clk := fake.NewClock(100)
	ind := fake.NewIndicator(clk)
	seq := NewSequencer(ind, codes, nil)
	seq.Start(clk.Millis())
	for seq.Poll(clk.Millis()) {
		clk.Advance(1)
	}

	assert.Equal(t, blockClk.Millis(), clk.Millis())
	assert.Equal(t, blockInd.Edges(), ind.Edges())
}

func TestSequencerLatePollKeepsSchedule(t *testing.T) {
	codes, err := NewTable().Encode(4391, 4)
	require.NoError(t, err)

	var seen []Step
	seq := NewSequencer(nil, codes, func(st Step) { seen = append(seen, st) })
	seq.Start(0)

	// Poll rarely; the end time must not drift.
	now := uint64(0)
	for seq.Poll(now) {
		now += 777
	}
	total := TotalMs(codes)
	assert.GreaterOrEqual(t, now, total)
	assert.Less(t, now, total+777)
	assert.Len(t, seen, len(Timeline(codes)))
	assert.False(t, seq.Running())
}

func TestSequencerCurrent(t *testing.T) {
	one, _ := NewTable().Lookup(1)
	seq := NewSequencer(nil, []Code{one}, nil)
	_, ok := seq.Current()
	assert.False(t, ok)

	seq.Start(0)
	st, ok := seq.Current()
	require.True(t, ok)
	assert.Equal(t, PhaseOn, st.Phase)
	assert.Equal(t, Short, st.Kind)

	seq.Poll(ShortOnMs)
	st, _ = seq.Current()
	assert.Equal(t, PhaseRest, st.Phase)
	assert.Equal(t, uint64(ShortOnMs+ShortRestMs), seq.Deadline())
}
