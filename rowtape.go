package main

import (
	"log"
	"os"
)

// Compile parses src into a schedule, loading samples through loader.
func Compile(cfg Config, src []byte, filename string, loader SampleLoader) (*Schedule, error) {
	lex, err := NewLexer(src, filename, cfg.MaxSourceSize)
	if err != nil {
		return nil, err
	}
	sched := NewSchedule(cfg)
	if err := Parse(lex, loader, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// Run interprets the script at scriptPath and writes the mix to
// cfg.OutputPath. Nothing is written if any step fails or if the
// script schedules no samples.
func Run(cfg Config, scriptPath string, loader SampleLoader) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return wrapErr(IOError, err, "open %s", scriptPath)
	}
	src, err := ReadSource(f, scriptPath, cfg.MaxSourceSize)
	f.Close()
	if err != nil {
		return err
	}
	sched, err := Compile(cfg, src, scriptPath, loader)
	if err != nil {
		return err
	}
	tape, err := Render(sched, cfg.MaxRenderLength)
	if err != nil {
		return err
	}
	if tape == nil {
		logger.Warn("no samples scheduled, nothing written", "script", scriptPath)
		return nil
	}
	if err := writeWav(cfg.OutputPath, tape, cfg.SampleRate); err != nil {
		return err
	}
	logger.Info("wrote", "path", cfg.OutputPath, "tape", tape)
	return nil
}

func main() {
	log.SetFlags(0)
	cfg, err := ConfigFromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}
	if err := InitLogger(os.Stderr, cfg.LogLevel); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
	if len(os.Args) < 2 {
		log.Fatalf("Error: expected 1 command line argument but got none\n")
	}
	if err := Run(cfg, os.Args[1], fileLoader{sampleRate: cfg.SampleRate}); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}
