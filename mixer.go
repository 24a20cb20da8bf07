package main

import (
	"text/scanner"
)

// Bias is the midpoint of the unsigned 16-bit style range the mixer
// works in. A buffer slot holding Bias is silent.
const Bias Smp = 32767

// Combine folds incoming into existing by averaging their deviations
// from Bias: ((existing-Bias)+(incoming-Bias))/2 + Bias. Bias cancels,
// and halving each operand first keeps Combine(v, v) == v exact.
func Combine(existing, incoming Smp) Smp {
	return existing/2 + incoming/2
}

// toBias maps a [-1, 1] sample value into the mixer's range.
func toBias(v Smp) Smp {
	return v*Bias + Bias
}

func fromBias(u Smp) Smp {
	return (u - Bias) / Bias
}

// renderLength returns the length of the output buffer: the end of the
// latest-starting instance, stretched to cover any earlier instance
// that ends later, rounded up to an even number of values.
func renderLength(instances []Instance) int {
	latest := instances[0]
	for _, in := range instances[1:] {
		if in.Offset > latest.Offset {
			latest = in
		}
	}
	n := latest.End()
	for _, in := range instances {
		if end := in.End(); end > n {
			n = end
		}
	}
	if n%2 != 0 {
		n++
	}
	return n
}

// Render mixes every instance of sched into one stereo tape. It
// returns a nil tape when nothing was scheduled. maxLength bounds the
// number of interleaved values; 0 means unbounded.
//
// The first value written to a slot is stored as is; each further
// instance covering the slot is folded in with Combine, in schedule
// order. Folding the first value into the Bias fill would halve it, so
// the copy is what lets a lone instance come out unchanged.
func Render(sched *Schedule, maxLength int) (*Tape, error) {
	if len(sched.Instances) == 0 {
		return nil, nil
	}
	length := renderLength(sched.Instances)
	if maxLength > 0 && length > maxLength {
		return nil, makeErr(AllocationError, scanner.Position{},
			"output of %d values exceeds the limit of %d", length, maxLength)
	}
	buf := make([]Smp, length)
	for i := range buf {
		buf[i] = Bias
	}
	covered := make([]bool, length)
	for _, in := range sched.Instances {
		for i, v := range in.Sample.Tape.samples {
			j := in.Offset + i
			if covered[j] {
				buf[j] = Combine(buf[j], toBias(v))
			} else {
				buf[j] = toBias(v)
				covered[j] = true
			}
		}
	}
	for i, u := range buf {
		buf[i] = fromBias(u)
	}
	logger.Debug("rendered", "instances", len(sched.Instances), "values", length)
	return tapeFromSamples(sched.channels, buf), nil
}
