// Package types provides the core data model for offline transaction
// construction: fixed-width identifiers, account references, instructions,
// messages, and transactions, together with their exact wire codec.
//
// All types are plain values with structural equality. Nothing in this
// package performs I/O or signing; a built Transaction carries zeroed
// signature slots until an external signer fills them.
package types

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// Hash represents a 32-byte hash value, such as a recent blockhash.
type Hash [32]byte

// ZeroHash is an all-zero hash.
var ZeroHash Hash

// HashFromBytes creates a Hash from a byte slice.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != 32 {
		return Hash{}, fmt.Errorf("hash must be 32 bytes, got %d", len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// HashFromBase58 decodes a base58 string into a Hash.
func HashFromBase58(s string) (Hash, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid base58: %w", err)
	}
	return HashFromBytes(b)
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// String returns the base58 representation.
func (h Hash) String() string {
	return base58.Encode(h[:])
}

// Hex returns the hex representation.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Pubkey represents a 32-byte account or program address.
type Pubkey [32]byte

// ZeroPubkey is an all-zero pubkey.
var ZeroPubkey Pubkey

// Well-known program addresses. These are process-wide constants, not
// mutable state; callers reference them when assembling instructions.
var (
	SystemProgramID             = MustPubkeyFromBase58("11111111111111111111111111111111")
	TokenProgramID              = MustPubkeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	Token2022ProgramID          = MustPubkeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	AssociatedTokenProgramID    = MustPubkeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	MemoProgramID               = MustPubkeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
	ComputeBudgetProgramID      = MustPubkeyFromBase58("ComputeBudget111111111111111111111111111111")
	AddressLookupTableProgramID = MustPubkeyFromBase58("AddressLookupTab1e1111111111111111111111111")
	StakeProgramID              = MustPubkeyFromBase58("Stake11111111111111111111111111111111111111")
	VoteProgramID               = MustPubkeyFromBase58("Vote111111111111111111111111111111111111111")
	SysvarClockID               = MustPubkeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	SysvarRentID                = MustPubkeyFromBase58("SysvarRent111111111111111111111111111111111")
	SysvarInstructionsID        = MustPubkeyFromBase58("Sysvar1nstructions1111111111111111111111111")
)

// PubkeyFromBytes creates a Pubkey from a byte slice.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != 32 {
		return Pubkey{}, fmt.Errorf("pubkey must be 32 bytes, got %d", len(b))
	}
	var pk Pubkey
	copy(pk[:], b)
	return pk, nil
}

// PubkeyFromBase58 decodes a base58 string into a Pubkey.
func PubkeyFromBase58(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("invalid base58: %w", err)
	}
	return PubkeyFromBytes(b)
}

// MustPubkeyFromBase58 decodes a base58 string or panics.
func MustPubkeyFromBase58(s string) Pubkey {
	pk, err := PubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// Bytes returns the pubkey as a byte slice.
func (pk Pubkey) Bytes() []byte {
	return pk[:]
}

// String returns the base58 representation.
func (pk Pubkey) String() string {
	return base58.Encode(pk[:])
}

// IsZero returns true if the pubkey is all zeros.
func (pk Pubkey) IsZero() bool {
	return pk == ZeroPubkey
}

// Signature represents a 64-byte Ed25519 signature. A zero signature marks
// an unsigned slot; it is never a valid proof.
type Signature [64]byte

// ZeroSignature is an all-zero signature.
var ZeroSignature Signature

// SignatureFromBytes creates a Signature from a byte slice.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != 64 {
		return Signature{}, fmt.Errorf("signature must be 64 bytes, got %d", len(b))
	}
	var sig Signature
	copy(sig[:], b)
	return sig, nil
}

// SignatureFromBase58 decodes a base58 string into a Signature.
func SignatureFromBase58(s string) (Signature, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Signature{}, fmt.Errorf("invalid base58: %w", err)
	}
	return SignatureFromBytes(b)
}

// Bytes returns the signature as a byte slice.
func (sig Signature) Bytes() []byte {
	return sig[:]
}

// String returns the base58 representation.
func (sig Signature) String() string {
	return base58.Encode(sig[:])
}

// IsZero returns true if the signature is all zeros.
func (sig Signature) IsZero() bool {
	return sig == ZeroSignature
}

// Lamports represents an amount of the native token
// (1 SOL = 1_000_000_000 lamports).
type Lamports uint64

// SOL converts lamports to SOL.
func (l Lamports) SOL() float64 {
	return float64(l) / 1_000_000_000
}

// LamportsFromSOL converts SOL to lamports.
func LamportsFromSOL(sol float64) Lamports {
	return Lamports(sol * 1_000_000_000)
}
