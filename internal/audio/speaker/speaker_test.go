package speaker

import (
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestEncodeFloat32LE(t *testing.T) {
	data := encodeFloat32LE([]float32{1, -0.5})
	assert.Len(t, data, 8)
	assert.Equal(t, math.Float32bits(1), uint32(data[0])|uint32(data[1])<<8|uint32(data[2])<<16|uint32(data[3])<<24)
	assert.Equal(t, math.Float32bits(-0.5), uint32(data[4])|uint32(data[5])<<8|uint32(data[6])<<16|uint32(data[7])<<24)
}
