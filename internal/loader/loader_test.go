package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	assert.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "PONG"), 246)
	writeFile(t, filepath.Join(dir, "tetris.ch8"), 494)
	writeFile(t, filepath.Join(dir, "BIG"), machine.MaxProgramSize+1)
	writeFile(t, filepath.Join(dir, "FULL"), machine.MaxProgramSize)

	l := New(log.NewTestLogger(t), dir)

	tests := []struct {
		name     string
		rom      string
		size     int
		notFound bool
		tooLarge bool
	}{
		{name: "name in rom directory", rom: "PONG", size: 246},
		{name: "extension is added", rom: "tetris", size: 494},
		{name: "full path", rom: filepath.Join(dir, "PONG"), size: 246},
		{name: "largest program", rom: "FULL", size: machine.MaxProgramSize},
		{name: "missing", rom: "INVADERS", notFound: true},
		{name: "too large", rom: "BIG", tooLarge: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := l.Load(tt.rom)
			switch {
			case tt.notFound:
				assert.True(t, IsNotFound(err))
			case tt.tooLarge:
				assert.True(t, errors.Is(err, machine.ErrRomTooLarge))
			default:
				assert.NoError(t, err)
				assert.Len(t, data, tt.size)
			}
		})
	}
}

func TestLoader_ResolveIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.Mkdir(filepath.Join(dir, "GAME"), 0o700))

	_, err := New(log.NewTestLogger(t), dir).Resolve("GAME")
	assert.True(t, IsNotFound(err))
}
