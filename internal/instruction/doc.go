// Package instruction decodes 16-bit CHIP-8 instruction words.
//
// # Decoding
//
// Decode looks the word up in the retrogolib CHIP-8 opcode table by its top
// nibble and the mask and value of each table entry. The table names the
// instruction, forms that share a name such as the ld family are told apart
// by the operand layout. Words in the 0x0 family that the table does not list
// are sys calls. The result is an Instruction value holding a Kind and the
// operand fields that were extracted from the word:
//
//	NNN: 12-bit address, the low 12 bits
//	NN:  8-bit constant, the low byte
//	N:   4-bit constant, the low nibble
//	X:   register index, bits 8-11
//	Y:   register index, bits 4-7
//
// # Disassembly
//
// Instruction.String renders the instruction in the assembler notation that
// the retroenv CHIP-8 disassembler outputs, for example "ld V1, $2A" or
// "drw V0, V1, $5".
package instruction
