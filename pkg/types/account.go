package types

// AccountMeta describes one account reference inside one instruction: the
// address plus whether the instruction requires it to sign and whether it
// may be written to.
//
// The same address may appear in several instructions with different flags.
// The message compiler merges duplicates by OR-ing the flags, so a
// requirement stated anywhere is never lost.
type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

// Meta returns a read-only, non-signer account reference.
func Meta(pk Pubkey) AccountMeta {
	return AccountMeta{Pubkey: pk}
}

// MetaWritable returns a writable, non-signer account reference.
func MetaWritable(pk Pubkey) AccountMeta {
	return AccountMeta{Pubkey: pk, IsWritable: true}
}

// MetaSigner returns a read-only signer account reference.
func MetaSigner(pk Pubkey) AccountMeta {
	return AccountMeta{Pubkey: pk, IsSigner: true}
}

// MetaSignerWritable returns a writable signer account reference.
func MetaSignerWritable(pk Pubkey) AccountMeta {
	return AccountMeta{Pubkey: pk, IsSigner: true, IsWritable: true}
}

// Merge ORs the flags of another reference to the same address into m.
// Signer or writable status is never downgraded by a later, weaker
// reference.
func (m *AccountMeta) Merge(other AccountMeta) {
	m.IsSigner = m.IsSigner || other.IsSigner
	m.IsWritable = m.IsWritable || other.IsWritable
}
