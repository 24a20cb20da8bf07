package main

import (
	"text/scanner"
)

// Sample is a named, decoded audio buffer.
//
// Reloading a name swaps the tape of the existing Sample instead of
// creating a new one, so every Instance that already points at it
// plays the new data at render time.
type Sample struct {
	Name string
	Path string
	Tape *Tape
}

// Count returns the number of interleaved values in the sample.
func (s *Sample) Count() int {
	return s.Tape.Len()
}

// Registry owns all samples loaded by a script, keyed by exact name.
type Registry struct {
	samples []*Sample
	index   map[string]*Sample
	limit   int
}

// NewRegistry returns an empty registry holding at most limit
// samples; limit 0 means no limit.
func NewRegistry(limit int) *Registry {
	return &Registry{
		index: make(map[string]*Sample),
		limit: limit,
	}
}

func (r *Registry) Lookup(name string) *Sample {
	return r.index[name]
}

// Store inserts a new sample or replaces the tape of an existing one.
func (r *Registry) Store(name, path string, tape *Tape) (s *Sample, replaced bool, err error) {
	if s := r.index[name]; s != nil {
		s.Path = path
		s.Tape = tape
		return s, true, nil
	}
	if r.limit > 0 && len(r.samples) >= r.limit {
		return nil, false, makeErr(CapacityError, scanner.Position{},
			"too many samples: limit is %d", r.limit)
	}
	s = &Sample{Name: name, Path: path, Tape: tape}
	r.samples = append(r.samples, s)
	r.index[name] = s
	return s, false, nil
}

func (r *Registry) Len() int {
	return len(r.samples)
}

// Samples returns the samples in insertion order.
func (r *Registry) Samples() []*Sample {
	return r.samples
}
