package main

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/scanner"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mitchellh/go-homedir"
)

const outputBitDepth = 16

// fileLoader decodes samples from disk. Files are kept at their native
// channel count; a sample rate other than sampleRate is only reported.
type fileLoader struct {
	sampleRate int
}

func (l fileLoader) LoadSample(path string) (*Tape, error) {
	resolved, err := homedir.Expand(path)
	if err != nil {
		return nil, wrapErr(IOError, err, "resolve %s", path)
	}
	var (
		tape *Tape
		sr   int
	)
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".wav", ".wave":
		tape, sr, err = loadWav(resolved)
	case ".mp3":
		tape, sr, err = loadMp3(resolved)
	default:
		return nil, makeErr(IOError, scanner.Position{}, "%s: unsupported audio format", path)
	}
	if err != nil {
		return nil, err
	}
	if sr != l.sampleRate {
		logger.Warn("sample rate mismatch, playing without conversion",
			"path", path, "rate", sr, "want", l.sampleRate)
	}
	logger.Debug("decoded", "path", resolved, "tape", tape, "rate", sr)
	return tape, nil
}

func loadWav(path string) (*Tape, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, wrapErr(IOError, err, "open %s", path)
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, makeErr(IOError, scanner.Position{}, "%s: not a valid WAV file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, wrapErr(IOError, err, "decode %s", path)
	}
	nchannels := buf.Format.NumChannels
	if nchannels <= 0 {
		return nil, 0, makeErr(IOError, scanner.Position{}, "%s: invalid channel count %d", path, nchannels)
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(d.BitDepth)
	}
	samples := make([]Smp, len(buf.Data))
	if bitDepth == 8 {
		// 8-bit WAV data is unsigned
		for i, v := range buf.Data {
			samples[i] = Smp(v-128) / 128
		}
	} else {
		scale := Smp(int64(1) << (bitDepth - 1))
		for i, v := range buf.Data {
			samples[i] = Smp(v) / scale
		}
	}
	return tapeFromSamples(nchannels, samples), buf.Format.SampleRate, nil
}

// loadMp3 decodes an MP3 file; the decoder always yields 16-bit
// little-endian stereo.
func loadMp3(path string) (*Tape, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, wrapErr(IOError, err, "open %s", path)
	}
	defer f.Close()
	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, wrapErr(IOError, err, "decode %s", path)
	}
	data, err := io.ReadAll(d)
	if err != nil {
		return nil, 0, wrapErr(IOError, err, "decode %s", path)
	}
	samples := make([]Smp, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[2*i:]))
		samples[i] = Smp(v) / 32768
	}
	return tapeFromSamples(2, samples), d.SampleRate(), nil
}

func quantize(v Smp) int {
	n := math.Round(v * 32768)
	return int(min(max(n, -32768), 32767))
}

// writeWav encodes t as 16-bit PCM. On failure the partial file is
// removed.
func writeWav(path string, t *Tape, sampleRate int) (err error) {
	intBuffer := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: t.nchannels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(t.samples)),
		SourceBitDepth: outputBitDepth,
	}
	for i, v := range t.samples {
		intBuffer.Data[i] = quantize(v)
	}
	out, err := os.Create(path)
	if err != nil {
		return wrapErr(IOError, err, "create %s", path)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = wrapErr(IOError, cerr, "close %s", path)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	e := wav.NewEncoder(out, sampleRate, outputBitDepth, t.nchannels, 1)
	if err := e.Write(intBuffer); err != nil {
		return wrapErr(IOError, err, "write %s", path)
	}
	if err := e.Close(); err != nil {
		return wrapErr(IOError, err, "write %s", path)
	}
	return nil
}
