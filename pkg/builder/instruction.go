package builder

import "github.com/fortiblox/x1-txkit/pkg/types"

// InstructionBuilder assembles a single instruction: the program to
// invoke, its account references in order, and the opaque data payload.
type InstructionBuilder struct {
	programID types.Pubkey
	accounts  []types.AccountMeta
	data      []byte
}

// NewInstructionBuilder creates a builder for an instruction invoking the
// given program.
func NewInstructionBuilder(programID types.Pubkey) *InstructionBuilder {
	return &InstructionBuilder{programID: programID}
}

// Account appends one account reference with explicit flags.
func (b *InstructionBuilder) Account(pk types.Pubkey, isSigner, isWritable bool) *InstructionBuilder {
	b.accounts = append(b.accounts, types.AccountMeta{
		Pubkey:     pk,
		IsSigner:   isSigner,
		IsWritable: isWritable,
	})
	return b
}

// Accounts appends several account references in order.
func (b *InstructionBuilder) Accounts(metas ...types.AccountMeta) *InstructionBuilder {
	b.accounts = append(b.accounts, metas...)
	return b
}

// Data sets the instruction data payload.
func (b *InstructionBuilder) Data(data []byte) *InstructionBuilder {
	b.data = data
	return b
}

// Build returns the assembled instruction.
func (b *InstructionBuilder) Build() types.Instruction {
	return types.Instruction{
		ProgramID: b.programID,
		Accounts:  b.accounts,
		Data:      b.data,
	}
}
