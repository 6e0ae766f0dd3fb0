package cpu

import "github.com/andy128k/rs580/mask"

// Registers holds the 8080's full programmer-visible state: the eight
// 8-bit general-purpose registers (paired B:C, D:E, H:L), the five
// condition flags, and the two 16-bit pointer registers.
type Registers struct {
	A byte

	FlagS  bool // sign
	FlagZ  bool // zero
	FlagAC bool // auxiliary carry
	FlagP  bool // parity (even)
	FlagC  bool // carry

	B, C byte
	D, E byte
	H, L byte

	PC uint16
	SP uint16
}

func pair(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) }

func unpair(v uint16) (hi, lo byte) { return byte(v >> 8), byte(v) }

// BC, DE, HL return the register pairs as 16-bit values, high byte
// first.
func (r *Registers) BC() uint16 { return pair(r.B, r.C) }
func (r *Registers) DE() uint16 { return pair(r.D, r.E) }
func (r *Registers) HL() uint16 { return pair(r.H, r.L) }

func (r *Registers) SetBC(v uint16) { r.B, r.C = unpair(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = unpair(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = unpair(v) }

// Flag-byte (PSW) bit positions, 1-indexed from the MSB as the mask
// package expects: bit7=S, bit6=Z, bit4=AC, bit2=P, bit0=C. The unused
// bits (1, 3 and 5) read back as zero.
const (
	pswBitS  = mask.I1
	pswBitZ  = mask.I2
	pswBitAC = mask.I4
	pswBitP  = mask.I6
	pswBitC  = mask.I8
)

// FlagsByte packs the five flags into the Program Status Word.
func (r *Registers) FlagsByte() byte {
	var b byte
	b = mask.Set(b, pswBitS, boolBit(r.FlagS))
	b = mask.Set(b, pswBitZ, boolBit(r.FlagZ))
	b = mask.Set(b, pswBitAC, boolBit(r.FlagAC))
	b = mask.Set(b, pswBitP, boolBit(r.FlagP))
	b = mask.Set(b, pswBitC, boolBit(r.FlagC))
	return b
}

// SetFlagsByte unpacks a Program Status Word into the five flags.
func (r *Registers) SetFlagsByte(b byte) {
	r.FlagS = mask.IsSet(b, pswBitS)
	r.FlagZ = mask.IsSet(b, pswBitZ)
	r.FlagAC = mask.IsSet(b, pswBitAC)
	r.FlagP = mask.IsSet(b, pswBitP)
	r.FlagC = mask.IsSet(b, pswBitC)
}

func boolBit(v bool) byte {
	if v {
		return 1
	}
	return 0
}
