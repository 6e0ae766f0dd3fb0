package cpu

// Bit-field extraction for the 8080's opcode encoding. Every
// instruction family in the decode table (spec §4.5) is identified by
// a few fixed bits plus one or two variable fields; these helpers pull
// those fields out of the raw opcode byte.
//
//	DDD/SSS (operand): 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A
//	RP (pair):         0=BC 1=DE 2=HL 3=SP (or 3=PSW:A for PUSH/POP)
//	CCC (condition):   0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M

func fieldRP(opcode byte) byte { return (opcode >> 4) & 0x03 }

func fieldPairSelect(opcode byte) byte { return (opcode >> 4) & 0x01 } // STAX/LDAX: 0=BC, 1=DE

func fieldDDD(opcode byte) byte { return (opcode >> 3) & 0x07 }

func fieldSSS(opcode byte) byte { return opcode & 0x07 }

func fieldCCC(opcode byte) byte { return (opcode >> 3) & 0x07 }

func fieldALUOp(opcode byte) byte { return (opcode >> 3) & 0x07 }

func fieldRST(opcode byte) byte { return (opcode >> 3) & 0x07 }

// matchesFixed reports whether opcode agrees with pattern at every bit
// named in fixedMask (the bits NOT carrying a variable field).
func matchesFixed(opcode, fixedMask, fixedValue byte) bool {
	return opcode&fixedMask == fixedValue
}
