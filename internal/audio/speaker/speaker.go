// Package speaker plays audio clips on the host audio device.
package speaker

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrogolib/log"
)

// Player plays a clip on the host audio device. A beep restarts the clip
// unless it is still playing.
type Player struct {
	logger *log.Logger

	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
}

// deviceBufferSize is the buffer size of the audio device, it defines the
// latency of a beep.
const deviceBufferSize = 20 * time.Millisecond

// New creates the audio context and a player for the clip. Only one
// player can exist per process.
func New(logger *log.Logger, clip audio.Clip) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   clip.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   deviceBufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	p := &Player{
		logger: logger,
		ctx:    ctx,
		player: ctx.NewPlayer(bytes.NewReader(encodeFloat32LE(clip.Samples))),
	}
	logger.Debug("Audio initialized",
		log.Int("sample_rate", clip.SampleRate),
		log.Int("samples", len(clip.Samples)))
	return p, nil
}

// Beep starts the clip from the beginning if it is not playing.
func (p *Player) Beep() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil || p.player.IsPlaying() {
		return
	}

	if _, err := p.player.Seek(0, io.SeekStart); err != nil {
		p.logger.Error("Rewinding audio clip failed", log.Err(err))
		return
	}
	p.player.Play()
}

// Close stops the playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

// encodeFloat32LE converts samples to the byte stream format of the audio
// context.
func encodeFloat32LE(samples []float32) []byte {
	data := make([]byte, len(samples)*4)
	for i, sample := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(sample))
	}
	return data
}
