package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andy128k/rs580/mem"
)

func newMachine(program ...byte) *Machine {
	ram := mem.NewDefaultRAM()
	for i, b := range program {
		ram.WriteByte(uint16(i), b)
	}
	return New(ram)
}

func TestDAAQuirk(t *testing.T) {
	m := newMachine()
	m.Regs.A = 0x9B
	m.daa()
	assert.Equal(t, byte(0x01), m.Regs.A)
	assert.True(t, m.Regs.FlagC)
	assert.True(t, m.Regs.FlagAC)
}

func TestNOPWrapsPC(t *testing.T) {
	m := newMachine()
	m.Regs.PC = 0xFFFF
	m.Step()
	assert.Equal(t, uint16(0x0000), m.Regs.PC)
}

func TestMVIThenADD(t *testing.T) {
	m := newMachine(0x3E, 0x08, 0x80) // MVI A,8 ; ADD B (B=0)
	m.Step()
	m.Step()
	assert.Equal(t, byte(8), m.Regs.A)
	assert.NoError(t, m.Err())
}

func TestSUIBorrow(t *testing.T) {
	m := newMachine(0xD6, 0x01) // SUI 1
	m.Regs.A = 0
	m.Step()
	assert.Equal(t, byte(0xFF), m.Regs.A)
	assert.True(t, m.Regs.FlagC)
	assert.True(t, m.Regs.FlagS)
	assert.False(t, m.Regs.FlagZ)
	assert.False(t, m.Regs.FlagAC)
}

func TestCallRetHalt(t *testing.T) {
	// CALL 0x0005 ; (at 3) HLT ; (at 5) RET
	m := newMachine(0xCD, 0x05, 0x00, 0x76, 0x00, 0xC9)
	m.Regs.SP = 0xFFFE
	m.Step() // CALL -> PC=5, pushes return addr 3
	assert.Equal(t, uint16(5), m.Regs.PC)
	m.Step() // RET -> PC=3
	assert.Equal(t, uint16(3), m.Regs.PC)
	m.Step() // HLT
	assert.True(t, m.Halted)
	assert.Equal(t, uint16(0xFFFE), m.Regs.SP)
}

func TestPushPopPairRoundTrip(t *testing.T) {
	m := newMachine()
	m.Regs.SP = 0xFFFE
	m.Regs.SetBC(0x1234)
	m.push(m.Regs.BC())
	m.Regs.SetBC(0)
	m.Regs.SetBC(m.pop())
	assert.Equal(t, uint16(0x1234), m.Regs.BC())
	assert.Equal(t, uint16(0xFFFE), m.Regs.SP)
}

func TestXCHGSelfInverse(t *testing.T) {
	m := newMachine(0xEB, 0xEB) // XCHG ; XCHG
	m.Regs.SetHL(0xAABB)
	m.Regs.SetDE(0x1122)
	m.Step()
	assert.Equal(t, uint16(0x1122), m.Regs.HL())
	assert.Equal(t, uint16(0xAABB), m.Regs.DE())
	m.Step()
	assert.Equal(t, uint16(0xAABB), m.Regs.HL())
	assert.Equal(t, uint16(0x1122), m.Regs.DE())
}

func TestNegIdentities(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := byte(v)
		assert.Equal(t, byte(0), b+neg(b))
	}
	assert.Equal(t, byte(0), neg(0))
}

func TestFlagsByteRoundTrip(t *testing.T) {
	var r Registers
	r.FlagS, r.FlagZ, r.FlagAC, r.FlagP, r.FlagC = true, false, true, false, true
	packed := r.FlagsByte()

	var r2 Registers
	r2.SetFlagsByte(packed)
	assert.Equal(t, r.FlagS, r2.FlagS)
	assert.Equal(t, r.FlagZ, r2.FlagZ)
	assert.Equal(t, r.FlagAC, r2.FlagAC)
	assert.Equal(t, r.FlagP, r2.FlagP)
	assert.Equal(t, r.FlagC, r2.FlagC)
}

// TestEveryOpcodeCompletesWithoutFault sweeps all 256 opcode bytes at
// several PC placements (including the wrap boundary) and asserts Step
// never leaves a fault recorded. Matches the original implementation's
// own conformance test.
func TestEveryOpcodeCompletesWithoutFault(t *testing.T) {
	placements := []uint16{0x0000, 0x0010, 0x1000, 0x7FFE, 0xFFFD, 0xFFFE, 0xFFFF, 0x4000}
	for _, pc := range placements {
		for op := 0; op < 256; op++ {
			m := newMachine()
			m.Regs.PC = pc
			m.Memory.WriteByte(pc, byte(op))
			m.Memory.WriteByte(pc+1, 0)
			m.Memory.WriteByte(pc+2, 0)
			m.Halted = false
			m.Step()
			assert.NoError(t, m.Err(), "opcode 0x%02X at 0x%04X faulted", op, pc)
		}
	}
}
