package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

// writeWAV writes 16 bit PCM samples to a wav file.
func writeWAV(t *testing.T, path string, sampleRate, channels int, data []int) {
	t.Helper()
	file, err := os.Create(path)
	assert.NoError(t, err)

	enc := wav.NewEncoder(file, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	assert.NoError(t, enc.Write(buf))
	assert.NoError(t, enc.Close())
	assert.NoError(t, file.Close())
}

func TestTone(t *testing.T) {
	clip := Tone(1000, 10*time.Millisecond, 8000)

	assert.Equal(t, 8000, clip.SampleRate)
	assert.Len(t, clip.Samples, 80)

	// 8 samples per period, half of them high
	expected := []float32{
		toneVolume, toneVolume, toneVolume, toneVolume,
		-toneVolume, -toneVolume, -toneVolume, -toneVolume,
	}
	assert.Equal(t, expected, clip.Samples[:8])
	assert.Equal(t, expected, clip.Samples[8:16])
}

func TestLoadClip_WAV(t *testing.T) {
	dir := t.TempDir()

	t.Run("mono", func(t *testing.T) {
		path := filepath.Join(dir, "mono.wav")
		writeWAV(t, path, 22050, 1, []int{0, 16384, -16384, -32768})

		clip, err := LoadClip(path)
		assert.NoError(t, err)
		assert.Equal(t, 22050, clip.SampleRate)
		assert.Equal(t, []float32{0, 0.5, -0.5, -1}, clip.Samples)
	})

	t.Run("stereo uses the first channel", func(t *testing.T) {
		path := filepath.Join(dir, "stereo.WAV")
		writeWAV(t, path, 44100, 2, []int{8192, 100, -8192, 100})

		clip, err := LoadClip(path)
		assert.NoError(t, err)
		assert.Equal(t, 44100, clip.SampleRate)
		assert.Equal(t, []float32{0.25, -0.25}, clip.Samples)
	})
}

func TestLoadClip_Errors(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "beep.ogg")
	assert.NoError(t, os.WriteFile(path, []byte("OggS"), 0o600))
	_, err := LoadClip(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	path = filepath.Join(dir, "broken.wav")
	assert.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o600))
	_, err = LoadClip(path)
	assert.Error(t, err)

	_, err = LoadClip(filepath.Join(dir, "missing.mp3"))
	assert.Error(t, err)
}

func TestMute(t *testing.T) {
	var beeper Beeper = Mute{}
	beeper.Beep()
}
