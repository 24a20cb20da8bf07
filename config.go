package main

import (
	"fmt"
	"strconv"
	"text/scanner"
)

const (
	defaultBPM          = 80
	defaultSampleRate   = 44100
	defaultChannels     = 2
	defaultRowsPerBeat  = 4
	defaultOutputPath   = "out.wav"
	defaultMaxSamples   = 1024
	defaultMaxInstances = 1024
	defaultMaxSource    = 64 * 1024
)

// Environment variables consulted by ConfigFromEnv.
const (
	EnvLogLevel     = "ROWTAPE_LOG_LEVEL"
	EnvMaxSamples   = "ROWTAPE_MAX_SAMPLES"
	EnvMaxInstances = "ROWTAPE_MAX_INSTANCES"
	EnvMaxSource    = "ROWTAPE_MAX_SOURCE"
)

// Config holds the fixed rendering parameters and resource limits.
// A limit of zero means unlimited.
type Config struct {
	BPM             float64
	SampleRate      int
	Channels        int
	RowsPerBeat     int
	OutputPath      string
	MaxSamples      int
	MaxInstances    int
	MaxSourceSize   int
	MaxRenderLength int
	LogLevel        string
}

func DefaultConfig() Config {
	return Config{
		BPM:             defaultBPM,
		SampleRate:      defaultSampleRate,
		Channels:        defaultChannels,
		RowsPerBeat:     defaultRowsPerBeat,
		OutputPath:      defaultOutputPath,
		MaxSamples:      defaultMaxSamples,
		MaxInstances:    defaultMaxInstances,
		MaxSourceSize:   defaultMaxSource,
		MaxRenderLength: 60 * 60 * defaultSampleRate * defaultChannels,
		LogLevel:        "warn",
	}
}

func configErr(format string, args ...any) error {
	return makeErr(ConfigError, scanner.Position{}, format, args...)
}

func (cfg Config) Validate() error {
	if cfg.BPM <= 0 {
		return configErr("bpm must be positive, got %g", cfg.BPM)
	}
	if cfg.SampleRate <= 0 {
		return configErr("sample rate must be positive, got %d", cfg.SampleRate)
	}
	if cfg.Channels != 2 {
		return configErr("only stereo output is supported, got %d channels", cfg.Channels)
	}
	if cfg.RowsPerBeat <= 0 {
		return configErr("rows per beat must be positive, got %d", cfg.RowsPerBeat)
	}
	if cfg.OutputPath == "" {
		return configErr("empty output path")
	}
	limits := []struct {
		name string
		v    int
	}{
		{"max samples", cfg.MaxSamples},
		{"max instances", cfg.MaxInstances},
		{"max source size", cfg.MaxSourceSize},
		{"max render length", cfg.MaxRenderLength},
	}
	for _, l := range limits {
		if l.v < 0 {
			return configErr("%s must not be negative, got %d", l.name, l.v)
		}
	}
	if _, err := ResolveLogLevel(cfg.LogLevel); err != nil {
		return configErr("%v", err)
	}
	return nil
}

// ConfigFromEnv starts from DefaultConfig and applies the ROWTAPE_*
// overrides found through lookup (normally os.LookupEnv).
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvMaxSamples, &cfg.MaxSamples},
		{EnvMaxInstances, &cfg.MaxInstances},
		{EnvMaxSource, &cfg.MaxSourceSize},
	}
	for _, e := range ints {
		v, ok := lookup(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, configErr("%s: %v", e.name, err)
		}
		*e.dst = n
	}
	return cfg, cfg.Validate()
}

func (cfg Config) String() string {
	return fmt.Sprintf("Config(bpm=%g sr=%d out=%s)", cfg.BPM, cfg.SampleRate, cfg.OutputPath)
}
