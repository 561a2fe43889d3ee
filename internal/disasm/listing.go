package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
)

// dataBytesPerLine is the maximum number of data bytes output per line.
const dataBytesPerLine = 8

// Line is a single line of a listing, either an instruction or data bytes.
type Line struct {
	Address uint16
	Label   string
	Code    string // empty for data lines
	Data    []byte
	Comment string
}

// IsCode returns whether the line contains an instruction.
func (l Line) IsCode() bool {
	return l.Code != ""
}

// Listing is the disassembled program.
type Listing struct {
	Lines []Line
}

// convertToListing converts the offsets into lines, grouping consecutive
// data bytes.
func (dis *Disasm) convertToListing() *Listing {
	listing := &Listing{}
	end := dis.endIndex()

	for index := 0; index < end; {
		offsetInfo := dis.offsets[index]
		address := uint16(ProgramStart + index)

		if offsetInfo.typ == codeOffset {
			line := Line{
				Address: address,
				Label:   offsetInfo.label,
				Code:    dis.formatCode(offsetInfo),
				Data:    dis.data[index : index+opcodeSize],
				Comment: offsetInfo.comment,
			}
			listing.Lines = append(listing.Lines, dis.addComments(line))
			index += opcodeSize
			continue
		}

		start := index
		index++
		for index < end && index-start < dataBytesPerLine &&
			dis.offsets[index].typ != codeOffset &&
			dis.offsets[index].label == "" && dis.offsets[index].comment == "" {
			index++
		}

		line := Line{
			Address: address,
			Label:   offsetInfo.label,
			Data:    dis.data[start:index],
			Comment: offsetInfo.comment,
		}
		listing.Lines = append(listing.Lines, dis.addComments(line))
	}

	return listing
}

// formatCode returns the code of an instruction with its destination address
// replaced by the label name.
func (dis *Disasm) formatCode(offsetInfo offset) string {
	ins := instruction.Decode(offsetInfo.word)
	var label string
	switch ins.Op {
	case instruction.Jump, instruction.Call, instruction.LoadIndex:
		label = dis.labelFor(ins.NNN())
	}

	name := offsetInfo.opcode.Instruction.Name
	if params := formatParams(ins, label); params != "" {
		return name + " " + params
	}
	return name
}

// addComments adds the enabled offset and hex comments to a line.
func (dis *Disasm) addComments(line Line) Line {
	var comments []string
	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", line.Address))
	}
	if dis.options.HexComments && line.IsCode() {
		comments = append(comments, fmt.Sprintf("%02X %02X", line.Data[0], line.Data[1]))
	}
	if line.Comment != "" {
		comments = append(comments, line.Comment)
	}
	line.Comment = strings.Join(comments, " ")
	return line
}

// endIndex returns the index after the last meaningful byte, trailing zero
// data bytes are dropped unless enabled by the options.
func (dis *Disasm) endIndex() int {
	if dis.options.ZeroBytes {
		return len(dis.data)
	}

	for i := len(dis.data) - 1; i >= 0; i-- {
		offsetInfo := dis.offsets[i]
		if dis.data[i] != 0 || offsetInfo.label != "" ||
			offsetInfo.typ == codeOffset || offsetInfo.typ == codeOperandOffset {
			return i + 1
		}
	}
	return 0
}
