package disasm

import (
	"fmt"
	"io"
	"strings"
)

// Write writes the listing as assembly source.
func Write(w io.Writer, listing *Listing) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}

	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}

	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for _, line := range listing.Lines {
		if err := writeLine(w, line); err != nil {
			return fmt.Errorf("writing line at $%04X: %w", line.Address, err)
		}
	}

	return nil
}

func writeLine(w io.Writer, line Line) error {
	if line.Label != "" {
		if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
			return fmt.Errorf("writing label %s: %w", line.Label, err)
		}
	}

	text := "    " + line.Code
	if !line.IsCode() {
		text = "    " + formatData(line.Data)
	}

	if line.Comment == "" {
		if _, err := fmt.Fprintf(w, "%s\n", text); err != nil {
			return fmt.Errorf("writing code: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", text, line.Comment); err != nil {
		return fmt.Errorf("writing code with comment: %w", err)
	}
	return nil
}

func formatData(data []byte) string {
	var buf strings.Builder
	buf.WriteString(".byte ")
	for i, b := range data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "$%02X", b)
	}
	return buf.String()
}
