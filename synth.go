package main

import (
	"maze.io/x/math32"
)

// Tone helpers. Nothing in the script grammar reaches them yet; they
// are the building blocks for a future synth(...) statement.

// SinSound returns value i of a sine tone at freq Hz, scaled by volume
// to the mixer's amplitude range around zero.
func SinSound(i, freq, volume, sampleRate float32) float32 {
	return math32.Sin(i*math32.Pi*2*freq/sampleRate) * volume * float32(Bias)
}

// RaisePitch scales base by 2^(1/semitones).
func RaisePitch(base, semitones float32) float32 {
	return base * math32.Pow(2, 1/semitones)
}
