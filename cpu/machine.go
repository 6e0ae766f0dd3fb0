// Package cpu implements the Intel 8080 instruction set: registers,
// flags, the memory-mapped fetch/decode/execute loop, and the halt and
// interrupt-enable latches. It advances one instruction per Step call;
// it has no cycle counter and does not deliver interrupts (spec
// Non-goals).
package cpu

import (
	"log"

	"github.com/andy128k/rs580/mem"
)

// Machine is the 8080 CPU: its registers plus an owned memory device.
// It is fully encapsulated — no global state, no cyclic references.
type Machine struct {
	Regs Registers

	Halted              bool
	InterruptionEnabled bool

	Memory mem.Memory

	// Out and Inp are the host hooks behind the OUT/IN opcodes. They
	// default to logging and, for Inp, returning 0; a host wires real
	// I/O (or, as in this codebase, leaves it to memory-mapped
	// peripherals) by replacing them after construction.
	Out func(port, value byte)
	Inp func(port byte) byte

	err error
}

// New constructs a Machine with the given memory installed and
// registers zeroed. Interrupts start enabled, matching the original
// implementation; the host is expected to set PC to the ROM entry
// point afterward.
func New(memory mem.Memory) *Machine {
	m := &Machine{
		Memory:              memory,
		InterruptionEnabled: true,
	}
	m.Out = m.defaultOut
	m.Inp = m.defaultInp
	return m
}

func (m *Machine) defaultOut(port, value byte) {
	log.Printf("OUT: port 0x%02X data 0x%02X", port, value)
}

func (m *Machine) defaultInp(port byte) byte {
	log.Printf("IN: port 0x%02X", port)
	return 0
}

// Reset sets PC to 0. It does not clear Halted — a faithful
// reproduction of the original's behavior (see DESIGN.md); the host
// must assign a fresh PC and clear Halted itself if it wants a true
// restart.
func (m *Machine) Reset() {
	m.Regs.PC = 0
}

// Err returns the fault recorded by Step, if any. In normal operation —
// including every documented and listed-undocumented opcode byte — this
// stays nil; it exists so a genuinely unreachable decode failure is a
// typed, inspectable value instead of a panic.
func (m *Machine) Err() error {
	return m.err
}

func (m *Machine) readWord(addr uint16) uint16 { return mem.ReadWord(m.Memory, addr) }
func (m *Machine) writeWord(addr uint16, v uint16) { mem.WriteWord(m.Memory, addr, v) }

func (m *Machine) advance(n uint16) { m.Regs.PC += n }

// getPair reads register pair rp (0=BC 1=DE 2=HL 3=SP).
func (m *Machine) getPair(rp byte) uint16 {
	switch rp {
	case 0:
		return m.Regs.BC()
	case 1:
		return m.Regs.DE()
	case 2:
		return m.Regs.HL()
	default:
		return m.Regs.SP
	}
}

func (m *Machine) setPair(rp byte, v uint16) {
	switch rp {
	case 0:
		m.Regs.SetBC(v)
	case 1:
		m.Regs.SetDE(v)
	case 2:
		m.Regs.SetHL(v)
	default:
		m.Regs.SP = v
	}
}

// getPairPSW reads pair rp, with rp==3 meaning the PSW (flags:A) used
// by PUSH/POP, instead of SP.
func (m *Machine) getPairPSW(rp byte) uint16 {
	if rp == 3 {
		return pair(m.Regs.FlagsByte(), m.Regs.A)
	}
	return m.getPair(rp)
}

func (m *Machine) setPairPSW(rp byte, v uint16) {
	if rp == 3 {
		hi, lo := unpair(v)
		m.Regs.SetFlagsByte(hi)
		m.Regs.A = lo
		return
	}
	m.setPair(rp, v)
}

// getLocation reads operand D/S (0..5=B,C,D,E,H,L 6=(HL) 7=A).
func (m *Machine) getLocation(reg byte) byte {
	switch reg {
	case 0:
		return m.Regs.B
	case 1:
		return m.Regs.C
	case 2:
		return m.Regs.D
	case 3:
		return m.Regs.E
	case 4:
		return m.Regs.H
	case 5:
		return m.Regs.L
	case 6:
		return m.Memory.ReadByte(m.Regs.HL())
	default:
		return m.Regs.A
	}
}

func (m *Machine) setLocation(reg byte, v byte) {
	switch reg {
	case 0:
		m.Regs.B = v
	case 1:
		m.Regs.C = v
	case 2:
		m.Regs.D = v
	case 3:
		m.Regs.E = v
	case 4:
		m.Regs.H = v
	case 5:
		m.Regs.L = v
	case 6:
		m.Memory.WriteByte(m.Regs.HL(), v)
	default:
		m.Regs.A = v
	}
}

func (m *Machine) checkCond(cond byte) bool {
	switch cond {
	case 0:
		return !m.Regs.FlagZ
	case 1:
		return m.Regs.FlagZ
	case 2:
		return !m.Regs.FlagC
	case 3:
		return m.Regs.FlagC
	case 4:
		return !m.Regs.FlagP
	case 5:
		return m.Regs.FlagP
	case 6:
		return !m.Regs.FlagS
	default:
		return m.Regs.FlagS
	}
}

func (m *Machine) push(v uint16) {
	m.Regs.SP -= 2
	m.writeWord(m.Regs.SP, v)
}

func (m *Machine) pop() uint16 {
	v := m.readWord(m.Regs.SP)
	m.Regs.SP += 2
	return v
}
