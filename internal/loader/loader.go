// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// romExtension is tried when a ROM name without extension is not found.
const romExtension = ".ch8"

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
	dir    string
}

// New creates a new ROM loader that resolves ROM names in the given
// directory.
func New(logger *log.Logger, dir string) *Loader {
	return &Loader{
		logger: logger,
		dir:    dir,
	}
}

// Resolve returns the path of a ROM. An existing path is used as is, other
// names are looked up in the ROM directory, with and without the .ch8
// extension.
func (l *Loader) Resolve(name string) (string, error) {
	candidates := []string{name}
	if l.dir != "" && !filepath.IsAbs(name) {
		candidates = append(candidates, filepath.Join(l.dir, name))
	}
	if filepath.Ext(name) == "" {
		names := candidates
		for _, candidate := range names {
			candidates = append(candidates, candidate+romExtension)
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("ROM '%s' not found in '%s': %w", name, l.dir, fs.ErrNotExist)
}

// Load resolves and reads a ROM.
func (l *Loader) Load(name string) ([]byte, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Loaded ROM", log.String("path", path), log.Int("size", len(data)))
	return data, nil
}

// ReadFile reads a ROM file and verifies that it fits into memory.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, machine.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) > machine.MaxProgramSize {
		return nil, fmt.Errorf("file %s: %w", path, machine.ErrRomTooLarge)
	}
	return data, nil
}

// IsNotFound returns whether the error was caused by a missing ROM.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
