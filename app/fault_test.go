package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail/hal/fake"
)

func TestShowFault(t *testing.T) {
	h := fake.New(0)
	h.Ind.SetActive(true)
	h.Num.ShowDecimal(1940)

	showFault(h, errors.New("ritual: pulse table missing digit 7"))

	assert.Equal(t, "FAULT", h.LCD.Line(0))
	assert.Equal(t, "ritual: pulse ta", h.LCD.Line(1))
	assert.False(t, h.Ind.Active())
	assert.Equal(t, 0, h.Num.Last())
	lines := h.Log.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "trail fault: ritual: pulse table missing digit 7", lines[len(lines)-1])
}

func TestWrapRunes(t *testing.T) {
	assert.Nil(t, wrapRunes("", 16))
	assert.Equal(t, []string{"short"}, wrapRunes("short", 16))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrapRunes("abcd efgh ij", 4))
	assert.Equal(t, []string{"äöü", "ß"}, wrapRunes("äöüß", 3))
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{Value: 1940, Cursor: 3, Ritual: "pulse", Runs: 1, ScrollOffset: 2, Seq: 0, Pulse: 1, Phase: "on"}
	assert.Equal(t, "value=1940 cursor=3 ritual=pulse runs=1 scroll=2 seq=0 pulse=1 on", s.String())
	s.Phase = ""
	assert.Equal(t, "value=1940 cursor=3 ritual=pulse runs=1 scroll=2", s.String())
}
