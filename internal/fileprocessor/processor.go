// Package fileprocessor handles file loading and processing operations of
// the disassembler.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile disassembles the input file of the options and writes the
// listing to the output file, or stdout if no output is set.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Disassembler) error {
	program, err := loader.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	listing, err := Disassemble(ctx, logger, program, opts)
	if err != nil {
		return err
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if err := disasm.Write(writer, listing); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing listing: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	logger.Debug("Disassembled file",
		log.String("input", opts.Input),
		log.Int("lines", len(listing.Lines)))
	return nil
}

// Disassemble runs the disassembler on a program buffer.
func Disassemble(ctx context.Context, logger *log.Logger, program []byte,
	opts options.Disassembler) (*disasm.Listing, error) {

	dis, err := disasm.New(logger, program, disasm.Options{
		HexComments:    opts.HexComments,
		OffsetComments: opts.OffsetComments,
		ZeroBytes:      opts.ZeroBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up disassembler: %w", err)
	}

	listing, err := dis.Process(ctx)
	if err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}
	return listing, nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Disassembler) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

func createWriter(opts options.Disassembler) (io.WriteCloser, error) {
	if opts.Output == "" {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
