// Package builder provides fluent helpers for assembling transactions.
// The builders accumulate instructions and delegate all ordering and
// encoding decisions to the compiler; they add nothing beyond input
// validation.
package builder

import (
	"errors"

	"github.com/fortiblox/x1-txkit/pkg/compiler"
	"github.com/fortiblox/x1-txkit/pkg/types"
)

// ErrNoInstructions is returned by Build when no instructions were added.
var ErrNoInstructions = errors.New("builder: transaction has no instructions")

// TransactionBuilder accumulates instructions for one transaction. A
// builder serves a single construction session and is not safe for
// concurrent use; build one transaction per builder.
type TransactionBuilder struct {
	feePayer        types.Pubkey
	recentBlockhash types.Hash
	instructions    []types.Instruction
}

// NewTransactionBuilder creates a builder for the given fee payer and
// recent blockhash.
func NewTransactionBuilder(feePayer types.Pubkey, recentBlockhash types.Hash) *TransactionBuilder {
	return &TransactionBuilder{
		feePayer:        feePayer,
		recentBlockhash: recentBlockhash,
	}
}

// SetRecentBlockhash replaces the blockhash, for callers that fetch it
// after assembling instructions.
func (b *TransactionBuilder) SetRecentBlockhash(blockhash types.Hash) *TransactionBuilder {
	b.recentBlockhash = blockhash
	return b
}

// AddInstruction appends one instruction.
func (b *TransactionBuilder) AddInstruction(ix types.Instruction) *TransactionBuilder {
	b.instructions = append(b.instructions, ix)
	return b
}

// AddInstructions appends several instructions in order.
func (b *TransactionBuilder) AddInstructions(ixs ...types.Instruction) *TransactionBuilder {
	b.instructions = append(b.instructions, ixs...)
	return b
}

// FeePayer returns the builder's fee payer.
func (b *TransactionBuilder) FeePayer() types.Pubkey {
	return b.feePayer
}

// Instructions returns the instructions accumulated so far.
func (b *TransactionBuilder) Instructions() []types.Instruction {
	return b.instructions
}

// Build compiles the accumulated instructions into a transaction with
// zeroed signature slots.
func (b *TransactionBuilder) Build() (*types.Transaction, error) {
	if len(b.instructions) == 0 {
		return nil, ErrNoInstructions
	}
	msg, err := compiler.Compile(b.feePayer, b.recentBlockhash, b.instructions)
	if err != nil {
		return nil, err
	}
	return types.NewTransaction(*msg), nil
}

// BuildVersioned compiles the accumulated instructions into a versioned
// transaction carrying a legacy message.
func (b *TransactionBuilder) BuildVersioned() (*types.VersionedTransaction, error) {
	if len(b.instructions) == 0 {
		return nil, ErrNoInstructions
	}
	msg, err := compiler.Compile(b.feePayer, b.recentBlockhash, b.instructions)
	if err != nil {
		return nil, err
	}
	return types.NewVersionedTransaction(types.VersionedMessage{Legacy: msg}), nil
}
