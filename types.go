package main

// Smp is a single channel value of an interleaved buffer.
type Smp = float64
