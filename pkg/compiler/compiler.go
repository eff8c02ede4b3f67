// Package compiler turns a fee payer, a recent blockhash, and a list of
// uncompiled instructions into a canonical message: a deduplicated,
// strictly ordered account table, a header describing its partitions, and
// the instructions rewritten to reference the table by index.
package compiler

import (
	"errors"
	"fmt"

	"github.com/fortiblox/x1-txkit/pkg/shortvec"
	"github.com/fortiblox/x1-txkit/pkg/types"
)

// MaxAccountKeys is the account table capacity. Compiled instructions
// reference the table with single-byte indices, so it can never hold more
// than 256 entries.
const MaxAccountKeys = 256

// Compilation errors.
var (
	// ErrTooManySignatures is returned when the required signer count
	// exceeds the single-byte header field.
	ErrTooManySignatures = errors.New("compiler: too many required signatures")

	// ErrTooManyAccounts is returned when the account table exceeds
	// MaxAccountKeys entries.
	ErrTooManyAccounts = errors.New("compiler: account table exceeds index capacity")

	// ErrMessageTooLarge is returned when the serialized transaction
	// would exceed the network packet ceiling.
	ErrMessageTooLarge = errors.New("compiler: serialized message exceeds packet ceiling")
)

// accountSet accumulates account references in first-seen order, OR-merging
// the flags of duplicate addresses. First-seen order is what makes
// compilation deterministic without a secondary sort.
type accountSet struct {
	index map[types.Pubkey]int
	metas []types.AccountMeta
}

func newAccountSet() *accountSet {
	return &accountSet{index: make(map[types.Pubkey]int)}
}

// add merges a reference into the set, preserving the position of the
// first occurrence.
func (s *accountSet) add(meta types.AccountMeta) {
	if i, ok := s.index[meta.Pubkey]; ok {
		s.metas[i].Merge(meta)
		return
	}
	s.index[meta.Pubkey] = len(s.metas)
	s.metas = append(s.metas, meta)
}

// Compile builds a canonical message from the fee payer, blockhash, and
// instructions.
//
// The fee payer always occupies table position 0 as a writable signer,
// regardless of any conflicting flags an instruction supplies for the same
// address. Every program address is registered as a read-only non-signer
// so instructions can reference it by index. The remaining accounts are
// partitioned into writable signers, read-only signers, writable
// non-signers, and read-only non-signers, each group preserving the order
// in which its addresses were first seen.
func Compile(feePayer types.Pubkey, recentBlockhash types.Hash, instructions []types.Instruction) (*types.Message, error) {
	set := newAccountSet()
	set.add(types.MetaSignerWritable(feePayer))

	for _, ix := range instructions {
		for _, meta := range ix.Accounts {
			set.add(meta)
		}
		// A program invoked but never passed as a data account must
		// still appear in the table.
		set.add(types.Meta(ix.ProgramID))
	}

	var writableSigners, readonlySigners, writableOthers, readonlyOthers []types.Pubkey
	for _, meta := range set.metas[1:] {
		switch {
		case meta.IsSigner && meta.IsWritable:
			writableSigners = append(writableSigners, meta.Pubkey)
		case meta.IsSigner:
			readonlySigners = append(readonlySigners, meta.Pubkey)
		case meta.IsWritable:
			writableOthers = append(writableOthers, meta.Pubkey)
		default:
			readonlyOthers = append(readonlyOthers, meta.Pubkey)
		}
	}

	numRequired := 1 + len(writableSigners) + len(readonlySigners)
	if numRequired > 255 {
		return nil, fmt.Errorf("%w: %d signers", ErrTooManySignatures, numRequired)
	}

	accountKeys := make([]types.Pubkey, 0, len(set.metas))
	accountKeys = append(accountKeys, feePayer)
	accountKeys = append(accountKeys, writableSigners...)
	accountKeys = append(accountKeys, readonlySigners...)
	accountKeys = append(accountKeys, writableOthers...)
	accountKeys = append(accountKeys, readonlyOthers...)

	if len(accountKeys) > MaxAccountKeys {
		return nil, fmt.Errorf("%w: %d accounts", ErrTooManyAccounts, len(accountKeys))
	}

	keyToIndex := make(map[types.Pubkey]uint8, len(accountKeys))
	for i, key := range accountKeys {
		keyToIndex[key] = uint8(i)
	}

	compiled := make([]types.CompiledInstruction, len(instructions))
	for i, ix := range instructions {
		indices := make([]uint8, len(ix.Accounts))
		for j, meta := range ix.Accounts {
			indices[j] = keyToIndex[meta.Pubkey]
		}
		compiled[i] = types.CompiledInstruction{
			ProgramIDIndex: keyToIndex[ix.ProgramID],
			AccountIndices: indices,
			Data:           ix.Data,
		}
	}

	msg := &types.Message{
		Header: types.MessageHeader{
			NumRequiredSignatures:       uint8(numRequired),
			NumReadonlySignedAccounts:   uint8(len(readonlySigners)),
			NumReadonlyUnsignedAccounts: uint8(len(readonlyOthers)),
		},
		AccountKeys:     accountKeys,
		RecentBlockhash: recentBlockhash,
		Instructions:    compiled,
	}

	// The size limit is checked against the real encoding rather than an
	// estimate, so the check can never drift from the codec.
	msgBytes, err := msg.Serialize()
	if err != nil {
		return nil, err
	}
	wireSize := shortvec.EncodedLen(uint16(numRequired)) + 64*numRequired + len(msgBytes)
	if wireSize > types.MaxTransactionSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLarge, wireSize, types.MaxTransactionSize)
	}

	return msg, nil
}
