package main

import "testing"

func TestRowOffset(t *testing.T) {
	sched := NewSchedule(DefaultConfig())
	tests := []struct {
		row  int
		want int
	}{
		{0, 0},
		{1, 16536}, // 8268.75 frames, truncated
		{2, 33074}, // 16537.5 frames, truncated
		{3, 49612},
		{4, 66150},
		{8, 132300},
	}
	for _, tt := range tests {
		if got := sched.RowOffset(tt.row); got != tt.want {
			t.Errorf("RowOffset(%d) = %d, want %d", tt.row, got, tt.want)
		}
	}
}

func TestRowOffsetIsFrameAligned(t *testing.T) {
	sched := NewSchedule(DefaultConfig())
	prev := -1
	for row := 0; row < 1000; row++ {
		off := sched.RowOffset(row)
		if off%2 != 0 {
			t.Fatalf("row %d: odd offset %d", row, off)
		}
		if off <= prev {
			t.Fatalf("row %d: offset %d not after %d", row, off, prev)
		}
		prev = off
	}
}

func TestRowOffsetFollowsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BPM = 120
	cfg.SampleRate = 48000
	sched := NewSchedule(cfg)
	// one beat at 120 bpm is half a second
	if got := sched.RowOffset(4); got != 48000 {
		t.Fatalf("got %d, want 48000", got)
	}
}

func TestScheduleAdd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInstances = 1
	sched := NewSchedule(cfg)
	s, _, err := sched.Registry.Store("kick", "kick.wav", stereo(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	in, err := sched.Add(s, 4)
	if err != nil {
		t.Fatal(err)
	}
	if in.Offset != 66150 || in.End() != 66152 {
		t.Fatalf("got %+v", in)
	}
	if _, err := sched.Add(s, 5); !IsKind(err, CapacityError) {
		t.Fatalf("got %v, want a capacity error", err)
	}
	if len(sched.Instances) != 1 {
		t.Fatalf("got %d instances, want 1", len(sched.Instances))
	}
}
