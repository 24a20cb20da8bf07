package main

import (
	"fmt"
)

// Tape is an interleaved buffer of samples.
//
// Decoded audio files and the rendered mix are both kept on tapes.
// The length of samples is not required to be a multiple of
// nchannels: a file with an odd number of values keeps its
// trailing value.
type Tape struct {
	nchannels int
	nframes   int
	samples   []Smp
}

func (t *Tape) String() string {
	return fmt.Sprintf("Tape(nchannels=%d nframes=%d)", t.nchannels, t.nframes)
}

// Len returns the number of interleaved values on the tape.
func (t *Tape) Len() int {
	return len(t.samples)
}

// tapeFromSamples wraps an interleaved buffer without copying it.
func tapeFromSamples(nchannels int, samples []Smp) *Tape {
	return &Tape{
		nchannels: nchannels,
		nframes:   len(samples) / nchannels,
		samples:   samples,
	}
}
