//go:build !tinygo && !cgo

package hal

import "github.com/rs/zerolog"

// newHostBuzzer has no audio backend without cgo.
func newHostBuzzer(log zerolog.Logger) LED {
	log.Debug().Msg("buzzer needs cgo; indicator is silent")
	return nil
}
