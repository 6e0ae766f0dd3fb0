package cpu

import "math/bits"

// neg returns the 8-bit two's complement of v: neg(v)+v == 0 (mod
// 256). Subtraction is implemented throughout as addition of neg(op).
func neg(v byte) byte {
	return byte(-int16(v))
}

func evenParity(v byte) bool {
	return bits.OnesCount8(v)%2 == 0
}

// setLogicFlags updates S, Z, P from the given result, leaving AC and
// C to the caller (INR/DCR and the logic ops each have their own rule
// for those two).
func (m *Machine) setLogicFlags(v byte) {
	m.Regs.FlagS = v&0x80 != 0
	m.Regs.FlagZ = v == 0
	m.Regs.FlagP = evenParity(v)
}

// add performs A += operand (+1 if carryIn), setting C, AC, S, Z, P.
func (m *Machine) add(operand byte, carryIn bool) {
	var c byte
	if carryIn {
		c = 1
	}
	sum := uint16(m.Regs.A) + uint16(operand) + uint16(c)
	m.Regs.FlagAC = (m.Regs.A&0x0F)+(operand&0x0F)+c > 0x0F
	m.Regs.A = byte(sum)
	m.Regs.FlagC = sum > 0xFF
	m.setLogicFlags(m.Regs.A)
}

// sub performs A -= operand (+1 if carryIn) via two's-complement
// addition. C is borrow: set when no carry occurred out of bit 7.
func (m *Machine) sub(operand byte, carryIn bool) {
	if carryIn {
		operand++
	}
	n := neg(operand)
	sum := uint16(m.Regs.A) + uint16(n)
	m.Regs.A = byte(sum)
	m.Regs.FlagAC = (m.Regs.A&0x0F)+(n&0x0F) <= 0x0F
	m.Regs.FlagC = sum <= 0xFF
	m.setLogicFlags(m.Regs.A)
}

func (m *Machine) and(operand byte) {
	m.Regs.A &= operand
	m.Regs.FlagC = false
	m.setLogicFlags(m.Regs.A)
}

func (m *Machine) xor(operand byte) {
	m.Regs.A ^= operand
	m.Regs.FlagC = false
	m.Regs.FlagAC = false
	m.setLogicFlags(m.Regs.A)
}

func (m *Machine) or(operand byte) {
	m.Regs.A |= operand
	m.Regs.FlagC = false
	m.setLogicFlags(m.Regs.A)
}

func (m *Machine) cmp(operand byte) {
	a := m.Regs.A
	m.sub(operand, false)
	m.Regs.A = a
}

// aluOp dispatches one of the eight ALU operations (ADD/ADC/SUB/SBB/
// ANA/XRA/ORA/CMP) named by the 3-bit OP field shared by the
// register-operand and immediate-operand opcode families.
func (m *Machine) aluOp(op, operand byte) {
	switch op {
	case 0:
		m.add(operand, false)
	case 1:
		m.add(operand, m.Regs.FlagC)
	case 2:
		m.sub(operand, false)
	case 3:
		m.sub(operand, m.Regs.FlagC)
	case 4:
		m.and(operand)
	case 5:
		m.xor(operand)
	case 6:
		m.or(operand)
	case 7:
		m.cmp(operand)
	}
}

// daa is the decimal-adjust-accumulator quirk: two conditional
// additions, the second tested against the carry produced (or already
// set) by the first.
func (m *Machine) daa() {
	if m.Regs.A&0x0F > 9 || m.Regs.FlagAC {
		m.Regs.FlagAC = (m.Regs.A&0x0F)+0x06 > 0x0F
		sum := uint16(m.Regs.A) + 0x06
		m.Regs.A = byte(sum)
		m.Regs.FlagC = sum > 0xFF
		m.setLogicFlags(m.Regs.A)
	}
	if m.Regs.A&0xF0 > 0x90 || m.Regs.FlagC {
		sum := uint16(m.Regs.A) + 0x60
		m.Regs.A = byte(sum)
		if sum > 0xFF {
			m.Regs.FlagC = true
		}
		m.setLogicFlags(m.Regs.A)
	}
}
