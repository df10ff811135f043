package main

import (
	"bufio"
	"encoding/binary"
	"io"
)

const (
	wavRate      = 8000
	wavHz        = 700
	wavAmplitude = 6000
)

// writeWAV renders the indicator as a buzzer would sound it: a square wave
// while the indicator is high, silence otherwise. PCM16 mono.
func writeWAV(w io.Writer, tl *timeline) error {
	samples := tl.TotalMs * wavRate / 1000
	bw := bufio.NewWriter(w)
	if err := writeWAVHeader(bw, wavRate, 1, 16, uint32(samples*2)); err != nil {
		return err
	}

	half := uint64(wavRate / (2 * wavHz))
	var buf [2]byte
	var n uint64
	for _, e := range tl.Steps {
		end := (e.AtMs + e.Ms) * wavRate / 1000
		for ; n < end; n++ {
			var s int16
			if e.Indicator {
				s = wavAmplitude
				if (n/half)%2 == 1 {
					s = -wavAmplitude
				}
			}
			binary.LittleEndian.PutUint16(buf[:], uint16(s))
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func writeWAVHeader(w io.Writer, sampleRate uint32, channels uint16, bits uint16, dataBytes uint32) error {
	blockAlign := channels * (bits / 8)
	byteRate := sampleRate * uint32(blockAlign)

	var hdr [44]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], 36+dataBytes)
	copy(hdr[8:12], "WAVE")

	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], 1)
	binary.LittleEndian.PutUint16(hdr[22:24], channels)
	binary.LittleEndian.PutUint32(hdr[24:28], sampleRate)
	binary.LittleEndian.PutUint32(hdr[28:32], byteRate)
	binary.LittleEndian.PutUint16(hdr[32:34], blockAlign)
	binary.LittleEndian.PutUint16(hdr[34:36], bits)

	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataBytes)

	_, err := w.Write(hdr[:])
	return err
}
