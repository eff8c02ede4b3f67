package types

// Instruction is an uncompiled instruction: a program to invoke, the
// ordered account references it touches, and an opaque data payload.
// The order of Accounts is significant and is preserved verbatim into the
// compiled form.
type Instruction struct {
	ProgramID Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// NewInstruction creates an instruction from its parts.
func NewInstruction(programID Pubkey, accounts []AccountMeta, data []byte) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
}

// CompiledInstruction is an instruction rewritten to reference the
// message's account table by index instead of by address. It holds no
// reference back to the Instruction it was compiled from.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndices []uint8
	Data           []byte
}
