package disasm

import (
	"fmt"
	"slices"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// processJumpDestinations generates label names for all branch and data
// reference destinations.
func (dis *Disasm) processJumpDestinations() {
	destinations := make([]uint16, 0, len(dis.branchDestinations))
	for dest := range dis.branchDestinations {
		destinations = append(destinations, dest)
	}
	slices.Sort(destinations)

	for _, address := range destinations {
		offsetInfo := dis.offsetInfo(address)
		if offsetInfo == nil {
			continue
		}

		if offsetInfo.label == "" {
			switch {
			case offsetInfo.callDestination:
				offsetInfo.label = fmt.Sprintf(funcNaming, address)
			case offsetInfo.typ == codeOffset || len(offsetInfo.branchFrom) > 0:
				offsetInfo.label = fmt.Sprintf(labelNaming, address)
			default:
				offsetInfo.label = fmt.Sprintf(dataNaming, address)
			}
		}

		// a destination inside the second byte of an instruction turns the
		// instruction into data
		if offsetInfo.typ == codeOperandOffset {
			dis.handleJumpIntoInstruction(address)
		}
	}
}

// handleJumpIntoInstruction converts the instruction that has a label inside
// its second byte into data.
func (dis *Disasm) handleJumpIntoInstruction(address uint16) {
	start := dis.offsetInfo(address - 1)
	if start == nil || start.typ != codeOffset {
		return
	}

	code, _ := Format(start.word)
	start.comment = "branch into instruction detected: " + code
	start.typ = dataOffset
	dis.offsetInfo(address).typ = dataOffset
}

// labelFor returns the label of a destination address, or an empty string
// if the address has none.
func (dis *Disasm) labelFor(address uint16) string {
	offsetInfo := dis.offsetInfo(address)
	if offsetInfo == nil {
		return ""
	}
	return offsetInfo.label
}
