package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"trail/pulse"
)

func TestBuildDefaultMessage(t *testing.T) {
	tl, err := build(4391)
	require.NoError(t, err)

	assert.Equal(t, []string{"....-", "...--", "----.", ".----"}, tl.Codes)
	assert.Equal(t, uint64(70500), tl.TotalMs)

	first := tl.Steps[2]
	assert.Equal(t, uint64(6000), first.AtMs)
	assert.Equal(t, 4, first.Digit)
	assert.True(t, first.Indicator)

	last := tl.Steps[len(tl.Steps)-1]
	assert.Equal(t, "settle", last.Phase)
	assert.Equal(t, 1, last.Digit)
	assert.Equal(t, tl.TotalMs, last.AtMs+last.Ms)
}

func TestBuildPadsLeadingZeros(t *testing.T) {
	tl, err := build(7)
	require.NoError(t, err)
	assert.Equal(t, "-----", tl.Codes[0])
	assert.Equal(t, 0, tl.Steps[2].Digit)
	assert.Equal(t, 7, tl.Steps[len(tl.Steps)-1].Digit)

	_, err = build(10000)
	assert.Error(t, err)
}

func TestWriteYAML(t *testing.T) {
	tl, err := build(4391)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, tl))

	var back timeline
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, tl.TotalMs, back.TotalMs)
	assert.Len(t, back.Steps, 2+4*(pulse.CodeLen*3+1))
}

func TestWriteText(t *testing.T) {
	tl, err := build(4391)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, tl))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "message 4391: ....- ...-- ----. .----\n"))
	assert.Contains(t, out, "First letter: J")
	assert.Contains(t, out, "digit 4 pulse 5 long")
	assert.True(t, strings.HasSuffix(out, "total 70500 ms\n"))
}

func TestWAVLengthAndSilence(t *testing.T) {
	tl, err := build(4391)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeWAV(&buf, tl))

	b := buf.Bytes()
	require.GreaterOrEqual(t, len(b), 44)
	assert.Equal(t, "RIFF", string(b[0:4]))
	assert.Equal(t, "WAVE", string(b[8:12]))
	assert.Equal(t, 44+int(tl.TotalMs)*wavRate/1000*2, len(b))

	// Hold and lead-in are silent.
	quiet := 6000 * wavRate / 1000
	for i := 0; i < quiet; i++ {
		off := 44 + i*2
		require.Zero(t, b[off]|b[off+1], "sample %d", i)
	}
	// The first pulse sounds.
	off := 44 + quiet*2
	assert.NotZero(t, b[off]|b[off+1])
}

func TestWriteOutputFile(t *testing.T) {
	tl, err := build(4391)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ritual.txt")
	require.NoError(t, writeOutput(path, "TEXT", tl))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "message 4391: "))
	assert.True(t, strings.HasSuffix(string(b), "total 70500 ms\n"))
}

func TestWriteOutputUnknownFormatCreatesNothing(t *testing.T) {
	tl, err := build(4391)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ritual.mp3")
	require.Error(t, writeOutput(path, "mp3", tl))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteOutputReportsCreateError(t *testing.T) {
	tl, err := build(4391)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing", "ritual.wav")
	err = writeOutput(path, "wav", tl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}
