package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat is returned for clip files that are neither .wav nor
// .mp3 files.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// LoadClip loads a .wav or .mp3 file as mono clip. Only the first channel of
// multi channel files is used.
func LoadClip(path string) (Clip, error) {
	file, err := os.Open(path)
	if err != nil {
		return Clip{}, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var clip Clip
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		clip, err = decodeWAV(file)
	case ".mp3":
		clip, err = decodeMP3(file)
	default:
		return Clip{}, fmt.Errorf("%w '%s'", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Clip{}, fmt.Errorf("decoding file %s: %w", path, err)
	}
	if clip.SampleRate <= 0 || len(clip.Samples) == 0 {
		return Clip{}, fmt.Errorf("file %s contains no audio data", path)
	}
	return clip, nil
}

func decodeWAV(r io.ReadSeeker) (Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Clip{}, errors.New("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("wav: %w", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	channels := max(int(dec.NumChans), 1)
	samples := make([]float32, 0, len(floatBuf.Data)/channels)
	for i := 0; i < len(floatBuf.Data); i += channels {
		samples = append(samples, floatBuf.Data[i])
	}

	return Clip{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
	}, nil
}

// decodeMP3 decodes an mp3 stream, the decoder always outputs 16 bit little
// endian stereo samples.
func decodeMP3(r io.Reader) (Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Clip{}, fmt.Errorf("mp3: %w", err)
	}

	var samples []float32
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		// left channel only, 4 bytes per stereo sample
		for i := 0; i+1 < n; i += 4 {
			sample := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			samples = append(samples, float32(sample)/32768)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return Clip{}, fmt.Errorf("mp3: %w", err)
		}
	}

	return Clip{
		Samples:    samples,
		SampleRate: dec.SampleRate(),
	}, nil
}
