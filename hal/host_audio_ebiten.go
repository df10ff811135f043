//go:build !tinygo && cgo

package hal

import (
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
)

const (
	buzzerSampleRate = 44100
	buzzerHz         = 700
	buzzerAmplitude  = 6000
)

// hostBuzzer plays a square wave while high, like a piezo on the indicator
// line.
type hostBuzzer struct {
	on     atomic.Bool
	player *audio.Player
}

// newHostBuzzer returns nil if audio cannot start; the indicator then
// stays silent.
func newHostBuzzer(log zerolog.Logger) LED {
	b := &hostBuzzer{}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(buzzerSampleRate)
	}
	p, err := ctx.NewPlayer(&squareWave{on: &b.on, rate: ctx.SampleRate()})
	if err != nil {
		log.Warn().Err(err).Msg("buzzer unavailable")
		return nil
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()
	b.player = p
	return b
}

func (b *hostBuzzer) High() { b.on.Store(true) }
func (b *hostBuzzer) Low()  { b.on.Store(false) }

// squareWave is an endless 16-bit stereo stream, silent while on is false.
type squareWave struct {
	on    *atomic.Bool
	rate  int
	phase int
}

func (w *squareWave) Read(p []byte) (int, error) {
	half := w.rate / (2 * buzzerHz)
	if half <= 0 {
		half = 1
	}
	on := w.on.Load()
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		var s int16
		if on {
			s = buzzerAmplitude
			if (w.phase/half)%2 == 1 {
				s = -buzzerAmplitude
			}
		}
		w.phase++
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return n, nil
}
