package cpu

import "github.com/andy128k/rs580/mem"

// Fixed-bit masks and expected values for each instruction family in
// the decode table (spec §4.5). Each constant pair isolates the bits
// that are NOT part of a variable field; matchesFixed tests against
// them, and the matching field-extraction helper in decode.go pulls
// out RP/DDD/SSS/CCC/etc.
const (
	maskLXI, valLXI     = 0b11001111, 0b00000001
	maskSTAX, valSTAX   = 0b11101111, 0b00000010
	maskINX, valINX     = 0b11001111, 0b00000011
	maskINR, valINR     = 0b11000111, 0b00000100
	maskDCR, valDCR     = 0b11000111, 0b00000101
	maskMVI, valMVI     = 0b11000111, 0b00000110
	maskDAD, valDAD     = 0b11001111, 0b00001001
	maskLDAX, valLDAX   = 0b11101111, 0b00001010
	maskDCX, valDCX     = 0b11001111, 0b00001011
	maskMOV, valMOV     = 0b11000000, 0b01000000
	maskALUReg, valALUReg = 0b11000000, 0b10000000
	maskRcc, valRcc     = 0b11000111, 0b11000000
	maskJcc, valJcc     = 0b11000111, 0b11000010
	maskCcc, valCcc     = 0b11000111, 0b11000100
	maskPOP, valPOP     = 0b11001111, 0b11000001
	maskPUSH, valPUSH   = 0b11001111, 0b11000101
	maskALUImm, valALUImm = 0b11000111, 0b11000110
	maskRST, valRST     = 0b11000111, 0b11000111
)

// undocumented lists the opcode bytes the 8080 leaves unofficial; the
// spec's resolved open question treats every one of them as a no-op.
var undocumented = map[byte]bool{
	0x08: true, 0x10: true, 0x18: true, 0x20: true, 0x28: true, 0x30: true,
	0x38: true, 0xCB: true, 0xD9: true, 0xDD: true, 0xED: true, 0xFD: true,
}

// Step fetches the opcode at PC, decodes and executes exactly one
// instruction, and advances PC accordingly. If Halted is already true,
// Step does nothing.
func (m *Machine) Step() {
	if m.Halted {
		return
	}

	opcode := m.Memory.ReadByte(m.Regs.PC)

	switch {
	case opcode == 0x00:
		m.advance(1)

	case matchesFixed(opcode, maskLXI, valLXI):
		data := m.readWord(m.Regs.PC + 1)
		m.setPair(fieldRP(opcode), data)
		m.advance(3)

	case matchesFixed(opcode, maskSTAX, valSTAX):
		addr := m.getPair(fieldPairSelect(opcode))
		m.Memory.WriteByte(addr, m.Regs.A)
		m.advance(1)

	case opcode == 0x22: // SHLD
		addr := m.readWord(m.Regs.PC + 1)
		m.Memory.WriteByte(addr, m.Regs.L)
		m.Memory.WriteByte(addr+1, m.Regs.H)
		m.advance(3)

	case opcode == 0x32: // STA
		addr := m.readWord(m.Regs.PC + 1)
		m.Memory.WriteByte(addr, m.Regs.A)
		m.advance(3)

	case matchesFixed(opcode, maskINX, valINX):
		rp := fieldRP(opcode)
		m.setPair(rp, m.getPair(rp)+1)
		m.advance(1)

	case matchesFixed(opcode, maskINR, valINR):
		reg := fieldDDD(opcode)
		old := m.getLocation(reg)
		m.setLocation(reg, old+1)
		m.Regs.FlagAC = (old&0x0F)+1 > 0x0F
		m.setLogicFlags(m.getLocation(reg))
		m.advance(1)

	case matchesFixed(opcode, maskDCR, valDCR):
		reg := fieldDDD(opcode)
		old := m.getLocation(reg)
		m.setLocation(reg, old-1)
		m.Regs.FlagAC = (old&0x0F)+0x0F <= 0x0F
		m.setLogicFlags(m.getLocation(reg))
		m.advance(1)

	case matchesFixed(opcode, maskMVI, valMVI):
		data := m.Memory.ReadByte(m.Regs.PC + 1)
		m.setLocation(fieldDDD(opcode), data)
		m.advance(2)

	case opcode == 0x07: // RLC
		m.Regs.FlagC = m.Regs.A&0x80 != 0
		m.Regs.A = m.Regs.A<<1 | m.Regs.A>>7
		m.advance(1)

	case opcode == 0x0F: // RRC
		m.Regs.FlagC = m.Regs.A&0x01 != 0
		m.Regs.A = m.Regs.A>>1 | m.Regs.A<<7
		m.advance(1)

	case opcode == 0x17: // RAL
		carry := m.Regs.FlagC
		m.Regs.FlagC = m.Regs.A&0x80 != 0
		m.Regs.A <<= 1
		if carry {
			m.Regs.A |= 1
		}
		m.advance(1)

	case opcode == 0x1F: // RAR
		carry := m.Regs.FlagC
		m.Regs.FlagC = m.Regs.A&0x01 != 0
		m.Regs.A >>= 1
		if carry {
			m.Regs.A |= 0x80
		}
		m.advance(1)

	case matchesFixed(opcode, maskDAD, valDAD):
		sum := uint32(m.Regs.HL()) + uint32(m.getPair(fieldRP(opcode)))
		m.Regs.FlagC = sum > 0xFFFF
		m.Regs.SetHL(uint16(sum))
		m.advance(1)

	case matchesFixed(opcode, maskLDAX, valLDAX):
		m.Regs.A = m.Memory.ReadByte(m.getPair(fieldPairSelect(opcode)))
		m.advance(1)

	case opcode == 0x2A: // LHLD
		addr := m.readWord(m.Regs.PC + 1)
		m.Regs.L = m.Memory.ReadByte(addr)
		m.Regs.H = m.Memory.ReadByte(addr + 1)
		m.advance(3)

	case opcode == 0x3A: // LDA
		addr := m.readWord(m.Regs.PC + 1)
		m.Regs.A = m.Memory.ReadByte(addr)
		m.advance(3)

	case matchesFixed(opcode, maskDCX, valDCX):
		rp := fieldRP(opcode)
		m.setPair(rp, m.getPair(rp)-1)
		m.advance(1)

	case opcode == 0x27: // DAA
		m.daa()
		m.advance(1)

	case opcode == 0x2F: // CMA
		m.Regs.A = ^m.Regs.A
		m.advance(1)

	case opcode == 0x37: // STC
		m.Regs.FlagC = true
		m.advance(1)

	case opcode == 0x3F: // CMC
		m.Regs.FlagC = !m.Regs.FlagC
		m.advance(1)

	case opcode == 0x76: // HLT
		m.Halted = true

	case matchesFixed(opcode, maskMOV, valMOV):
		m.setLocation(fieldDDD(opcode), m.getLocation(fieldSSS(opcode)))
		m.advance(1)

	case matchesFixed(opcode, maskALUReg, valALUReg):
		m.aluOp(fieldALUOp(opcode), m.getLocation(fieldSSS(opcode)))
		m.advance(1)

	case matchesFixed(opcode, maskRcc, valRcc):
		if m.checkCond(fieldCCC(opcode)) {
			m.Regs.PC = m.pop()
		} else {
			m.advance(1)
		}

	case matchesFixed(opcode, maskJcc, valJcc):
		if m.checkCond(fieldCCC(opcode)) {
			m.Regs.PC = m.readWord(m.Regs.PC + 1)
		} else {
			m.advance(3)
		}

	case matchesFixed(opcode, maskCcc, valCcc):
		if m.checkCond(fieldCCC(opcode)) {
			target := m.readWord(m.Regs.PC + 1)
			m.push(m.Regs.PC + 3)
			m.Regs.PC = target
		} else {
			m.advance(3)
		}

	case matchesFixed(opcode, maskPOP, valPOP):
		m.setPairPSW(fieldRP(opcode), m.pop())
		m.advance(1)

	case matchesFixed(opcode, maskPUSH, valPUSH):
		m.push(m.getPairPSW(fieldRP(opcode)))
		m.advance(1)

	case opcode == 0xC3: // JMP
		m.Regs.PC = m.readWord(m.Regs.PC + 1)

	case opcode == 0xC9: // RET
		m.Regs.PC = m.pop()

	case opcode == 0xCD: // CALL
		target := m.readWord(m.Regs.PC + 1)
		m.push(m.Regs.PC + 3)
		m.Regs.PC = target

	case matchesFixed(opcode, maskALUImm, valALUImm):
		operand := m.Memory.ReadByte(m.Regs.PC + 1)
		m.aluOp(fieldALUOp(opcode), operand)
		m.advance(2)

	case matchesFixed(opcode, maskRST, valRST):
		m.push(m.Regs.PC + 1)
		m.Regs.PC = uint16(fieldRST(opcode)) << 3

	case opcode == 0xD3: // OUT
		port := m.Memory.ReadByte(m.Regs.PC + 1)
		m.Out(port, m.Regs.A)
		m.advance(2)

	case opcode == 0xDB: // IN
		port := m.Memory.ReadByte(m.Regs.PC + 1)
		m.Regs.A = m.Inp(port)
		m.advance(2)

	case opcode == 0xE3: // XTHL
		mem.Swap(m.Memory, m.Regs.SP, &m.Regs.L)
		mem.Swap(m.Memory, m.Regs.SP+1, &m.Regs.H)
		m.advance(1)

	case opcode == 0xE9: // PCHL
		m.Regs.PC = m.Regs.HL()

	case opcode == 0xF9: // SPHL
		m.Regs.SP = m.Regs.HL()
		m.advance(1)

	case opcode == 0xEB: // XCHG
		m.Regs.H, m.Regs.D = m.Regs.D, m.Regs.H
		m.Regs.L, m.Regs.E = m.Regs.E, m.Regs.L
		m.advance(1)

	case opcode == 0xF3: // DI
		m.advance(1)
		m.InterruptionEnabled = false

	case opcode == 0xFB: // EI
		m.advance(1)
		m.InterruptionEnabled = true

	case undocumented[opcode]:
		m.advance(1)

	default:
		// Unreachable for any of the 256 opcode values: every byte is
		// claimed by a documented family above or by the undocumented
		// table. Recorded rather than panicked, per the Machine.Err
		// contract.
		m.err = &faultError{opcode: opcode, pc: m.Regs.PC}
		m.advance(1)
	}
}
