package machine

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
)

// Step executes a single instruction: fetch, decode, execute, run the timer
// gate and advance PC by 2.
func (m *Machine) Step() error {
	word, err := m.Fetch()
	if err != nil {
		return err
	}

	ins := instruction.Decode(word)
	if err := m.Execute(ins); err != nil {
		return fmt.Errorf("executing %s at $%04X: %w", ins, m.PC, err)
	}

	m.tickTimers()
	m.PC += 2
	return nil
}

// Execute applies a decoded instruction to the machine state. It does not
// advance PC past the instruction, jumps and calls therefore store their
// target biased by -2.
func (m *Machine) Execute(ins instruction.Instruction) error {
	x, y := ins.X(), ins.Y()

	switch ins.Op {
	case instruction.ClearScreen:
		m.Display.clear()

	case instruction.Return:
		return m.ret()

	case instruction.Jump:
		m.PC = ins.NNN() - 2

	case instruction.Call:
		return m.call(ins.NNN())

	case instruction.SkipEqualImm:
		m.skipIf(m.V[x] == ins.NN())

	case instruction.SkipNotEqualImm:
		m.skipIf(m.V[x] != ins.NN())

	case instruction.SkipEqualReg:
		m.skipIf(m.V[x] == m.V[y])

	case instruction.SkipNotEqualReg:
		m.skipIf(m.V[x] != m.V[y])

	case instruction.LoadImm:
		m.V[x] = ins.NN()

	case instruction.AddImm:
		m.V[x] += ins.NN()

	case instruction.LoadReg, instruction.Or, instruction.And, instruction.Xor,
		instruction.AddReg, instruction.Sub, instruction.ShiftRight,
		instruction.SubReverse, instruction.ShiftLeft:
		m.executeArithmetic(ins.Op, x, y)

	case instruction.LoadIndex:
		m.I = ins.NNN()

	case instruction.JumpOffset:
		m.PC = ins.NNN() + uint16(m.V[0]) - 2

	case instruction.Random:
		m.V[x] = m.rand() & ins.NN()

	case instruction.Draw:
		return m.drawSprite(int(m.V[x]), int(m.V[y]), int(ins.N()))

	case instruction.SkipKeyPressed:
		m.skipIf(m.Keys.IsPressed(m.V[x]))

	case instruction.SkipKeyNotPressed:
		m.skipIf(!m.Keys.IsPressed(m.V[x]))

	case instruction.LoadDelay, instruction.WaitKey, instruction.SetDelay,
		instruction.SetSound, instruction.AddIndex, instruction.LoadFont,
		instruction.StoreBCD, instruction.StoreRegisters, instruction.LoadRegisters:
		return m.executeMisc(ins.Op, x)

	default:
		// 0NNN machine code routines are not supported and reported like
		// unknown words
		if m.onUnknown != nil {
			m.onUnknown(m.PC, ins.Word)
		}
	}

	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.PC += 2
	}
}

func (m *Machine) call(address uint16) error {
	if len(m.Stack) >= StackDepth {
		return fmt.Errorf("calling $%03X: %w", address, ErrStackOverflow)
	}
	m.Stack = append(m.Stack, m.PC)
	m.PC = address - 2
	return nil
}

func (m *Machine) ret() error {
	if len(m.Stack) == 0 {
		return ErrStackUnderflow
	}
	m.PC = m.Stack[len(m.Stack)-1]
	m.Stack = m.Stack[:len(m.Stack)-1]
	return nil
}

// executeArithmetic handles the 8XYN family. Flag writes happen in the same
// order as the registers are read, so VX or VY being VF observe an updated
// flag where the operation sets it first.
func (m *Machine) executeArithmetic(op instruction.Op, x, y uint8) {
	v := &m.V

	switch op {
	case instruction.LoadReg:
		v[x] = v[y]

	case instruction.Or:
		v[x] |= v[y]

	case instruction.And:
		v[x] &= v[y]

	case instruction.Xor:
		v[x] ^= v[y]

	case instruction.AddReg:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = byte(sum)
		if sum > 0xFF {
			v[FlagRegister] = 1
		} else {
			v[FlagRegister] = 0
		}

	case instruction.Sub:
		// equal operands leave the flag unchanged
		if v[x] < v[y] {
			v[FlagRegister] = 0
		} else if v[x] > v[y] {
			v[FlagRegister] = 1
		}
		v[x] -= v[y]

	case instruction.SubReverse:
		if v[y] < v[x] {
			v[FlagRegister] = 0
		} else if v[y] > v[x] {
			v[FlagRegister] = 1
		}
		v[x] = v[y] - v[x]

	case instruction.ShiftRight:
		src := m.shiftSource(x, y)
		v[FlagRegister] = v[src] & 0x01
		v[x] = v[src] >> 1

	case instruction.ShiftLeft:
		src := m.shiftSource(x, y)
		// the flag keeps the raw bit value 0x80, it is not normalized to 1
		v[FlagRegister] = v[src] & 0x80
		v[x] = v[src] << 1
	}
}

func (m *Machine) shiftSource(x, y uint8) uint8 {
	if m.shiftUsesVY {
		return y
	}
	return x
}

// executeMisc handles the FXNN family.
func (m *Machine) executeMisc(op instruction.Op, x uint8) error {
	switch op {
	case instruction.LoadDelay:
		m.V[x] = m.DelayTimer

	case instruction.WaitKey:
		// rewinding PC repeats this instruction until a key is pressed
		m.PC -= 2
		if code, ok := m.Keys.FirstPressed(); ok {
			m.V[x] = code
			m.PC += 2
		}

	case instruction.SetDelay:
		m.DelayTimer = m.V[x]

	case instruction.SetSound:
		m.SoundTimer = m.V[x]

	case instruction.AddIndex:
		m.I += uint16(m.V[x])

	case instruction.LoadFont:
		m.I = FontAddress + uint16(m.V[x])*GlyphSize

	case instruction.StoreBCD:
		if err := m.checkRange(m.I, 3); err != nil {
			return err
		}
		value := m.V[x]
		m.Memory[m.I] = value / 100
		m.Memory[m.I+1] = value % 100 / 10
		m.Memory[m.I+2] = value % 10

	case instruction.StoreRegisters:
		count := int(x) + 1
		if err := m.checkRange(m.I, count); err != nil {
			return err
		}
		copy(m.Memory[m.I:], m.V[:count])
		m.I += uint16(count)

	case instruction.LoadRegisters:
		count := int(x) + 1
		if err := m.checkRange(m.I, count); err != nil {
			return err
		}
		copy(m.V[:count], m.Memory[m.I:])
		m.I += uint16(count)
	}

	return nil
}
