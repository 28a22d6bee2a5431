// Package audio probes narration audio files for their real length.
package audio

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Info describes a probed WAV file.
type Info struct {
	Seconds     float64
	SampleRate  int
	NumChannels int
}

// Probe reads a WAV header and returns the audio length in seconds.
// Files whose header carries no usable duration fall back to a full
// PCM decode.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close; the file is read-only.
			_ = cerr
		}
	}()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("%s is not a valid wav file", path)
	}
	info := Info{
		SampleRate:  int(dec.SampleRate),
		NumChannels: int(dec.NumChans),
	}

	if d, err := dec.Duration(); err == nil && d > 0 {
		info.Seconds = round2(d.Seconds())
		return info, nil
	}

	var buf *audio.IntBuffer
	buf, err = dec.FullPCMBuffer()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read PCM buffer: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 || buf.Format.NumChannels <= 0 {
		return Info{}, fmt.Errorf("%s has no usable format data", path)
	}
	frames := len(buf.Data) / buf.Format.NumChannels
	info.Seconds = round2(float64(frames) / float64(buf.Format.SampleRate))
	info.SampleRate = buf.Format.SampleRate
	info.NumChannels = buf.Format.NumChannels
	return info, nil
}

// Duration returns just the audio length in seconds.
func Duration(path string) (float64, error) {
	info, err := Probe(path)
	if err != nil {
		return 0, err
	}
	return info.Seconds, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
