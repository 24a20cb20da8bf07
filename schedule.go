package main

import (
	"math"
	"text/scanner"
)

// Instance is one scheduled trigger of a sample.
type Instance struct {
	Sample *Sample
	Row    int
	Offset int
}

// End returns the index one past the last value the instance covers.
func (in Instance) End() int {
	return in.Offset + in.Sample.Count()
}

// Schedule collects everything the parser produces: the sample
// registry and the ordered list of instances. The renderer only reads
// it.
type Schedule struct {
	Registry    *Registry
	Instances   []Instance
	bpm         float64
	sampleRate  int
	channels    int
	rowsPerBeat int
	limit       int
}

func NewSchedule(cfg Config) *Schedule {
	return &Schedule{
		Registry:    NewRegistry(cfg.MaxSamples),
		bpm:         cfg.BPM,
		sampleRate:  cfg.SampleRate,
		channels:    cfg.Channels,
		rowsPerBeat: cfg.RowsPerBeat,
		limit:       cfg.MaxInstances,
	}
}

// RowOffset converts a row index into an offset in the interleaved
// output buffer. The frame count is truncated before it is multiplied
// by the channel count, so offsets always land on a frame boundary.
func (s *Schedule) RowOffset(row int) int {
	seconds := float64(row) / float64(s.rowsPerBeat) * 60 / s.bpm
	frames := math.Floor(seconds * float64(s.sampleRate))
	return int(frames) * s.channels
}

// Add schedules sample at row.
func (s *Schedule) Add(sample *Sample, row int) (Instance, error) {
	if s.limit > 0 && len(s.Instances) >= s.limit {
		return Instance{}, makeErr(CapacityError, scanner.Position{},
			"too many sample instances: limit is %d", s.limit)
	}
	in := Instance{
		Sample: sample,
		Row:    row,
		Offset: s.RowOffset(row),
	}
	s.Instances = append(s.Instances, in)
	return in, nil
}
