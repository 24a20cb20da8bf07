package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// setup writes a script and returns it with a config whose output
// goes to the same temporary directory.
func setup(t *testing.T, script string) (Config, string, string) {
	t.Helper()
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "song.rt")
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.OutputPath = filepath.Join(dir, "out.wav")
	return cfg, dir, scriptPath
}

func testPCM(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = (i*977)%65536 - 32768
	}
	return data
}

func assertNoOutput(t *testing.T, cfg Config) {
	t.Helper()
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Fatalf("output file exists: %v", err)
	}
}

func TestRunSinglePlayReproducesSample(t *testing.T) {
	cfg, dir, scriptPath := setup(t, "")
	data := testPCM(100)
	kickPath := filepath.Join(dir, "kick.wav")
	writeTestWav(t, kickPath, 2, 44100, data)
	script := fmt.Sprintf("kick = load(%q)\n{\nplay(kick)\n}\n", kickPath)
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Run(cfg, scriptPath, fileLoader{sampleRate: cfg.SampleRate}); err != nil {
		t.Fatal(err)
	}
	out := readTestWav(t, cfg.OutputPath)
	if out.Format.NumChannels != 2 || out.Format.SampleRate != 44100 {
		t.Fatalf("got format %+v", out.Format)
	}
	if len(out.Data) != len(data) {
		t.Fatalf("got %d values, want %d", len(out.Data), len(data))
	}
	// mixing against untouched silence must leave the signal alone
	for i, v := range data {
		if out.Data[i] != v {
			t.Fatalf("value %d: got %d, want %d", i, out.Data[i], v)
		}
	}
}

func TestRunSchedulesByRow(t *testing.T) {
	cfg, dir, scriptPath := setup(t, "")
	data := testPCM(100)
	writeTestWav(t, filepath.Join(dir, "kick.wav"), 2, 44100, data)
	script := fmt.Sprintf("kick = load(%q)\n{\nplay(kick)\n\n\n\nplay(kick)\n}\n", filepath.Join(dir, "kick.wav"))
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Run(cfg, scriptPath, fileLoader{sampleRate: cfg.SampleRate}); err != nil {
		t.Fatal(err)
	}
	out := readTestWav(t, cfg.OutputPath)
	if len(out.Data) != 66150+len(data) {
		t.Fatalf("got %d values, want %d", len(out.Data), 66150+len(data))
	}
	for i := len(data); i < 66150; i++ {
		if out.Data[i] != 0 {
			t.Fatalf("value %d: got %d, want silence", i, out.Data[i])
		}
	}
	for i, v := range data {
		if out.Data[66150+i] != v {
			t.Fatalf("value %d: got %d, want %d", 66150+i, out.Data[66150+i], v)
		}
	}
}

func TestRunFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name   string
		script string
		kind   ErrKind
		tweak  func(*Config)
	}{
		{"undefined sample", "{\nplay(ghost)\n}\n", ReferenceError, nil},
		{"syntax", "kick = load(\"kick.wav\")\n{\nplay(kick)\n", SyntaxError, nil},
		{"lex", "kick = load(\"kick.wav)\n", LexError, nil},
		{"missing sample file", "kick = load(\"missing.wav\")\n", IOError, nil},
		{"too many samples", "a = load(\"kick.wav\")\nb = load(\"kick.wav\")\n{\nplay(a)\n}\n", CapacityError,
			func(cfg *Config) { cfg.MaxSamples = 1 }},
		{"render too long", "a = load(\"kick.wav\")\n{\nplay(a)\n\n\n\n\nplay(a)\n}\n", AllocationError,
			func(cfg *Config) { cfg.MaxRenderLength = 1000 }},
		{"script too large", "a = load(\"kick.wav\")\n", LexError,
			func(cfg *Config) { cfg.MaxSourceSize = 8 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, scriptPath := setup(t, tt.script)
			if tt.tweak != nil {
				tt.tweak(&cfg)
			}
			err := Run(cfg, scriptPath, fakeLoader{"kick.wav": stereo(0.5, 0.5)})
			if KindOf(err) != tt.kind {
				t.Fatalf("got %v, want a %v", err, tt.kind)
			}
			assertNoOutput(t, cfg)
		})
	}
}

func TestRunMissingScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.wav")
	err := Run(cfg, filepath.Join(t.TempDir(), "missing.rt"), testLoader)
	if !IsKind(err, IOError) {
		t.Fatalf("got %v, want an io error", err)
	}
	assertNoOutput(t, cfg)
}

func TestRunWithoutPlaysWritesNothing(t *testing.T) {
	cfg, _, scriptPath := setup(t, "kick = load(\"kick.wav\")\n{\n}\n")
	if err := Run(cfg, scriptPath, testLoader); err != nil {
		t.Fatal(err)
	}
	assertNoOutput(t, cfg)
}
