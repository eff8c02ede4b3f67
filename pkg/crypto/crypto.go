// Package crypto adapts Ed25519 keys to the transaction model: generating
// keypairs, filling a transaction's signature slots, and verifying filled
// slots against the signer prefix of the account table.
//
// The primitives themselves come from Go's standard crypto/ed25519; this
// package only does the slot matching. Signature slot i always belongs to
// account table entry i.
package crypto

import "errors"

// Ed25519 sizes.
const (
	// PublicKeySize is the size of an Ed25519 public key in bytes.
	PublicKeySize = 32

	// SignatureSize is the size of an Ed25519 signature in bytes.
	SignatureSize = 64

	// SeedSize is the size of an Ed25519 seed in bytes.
	SeedSize = 32
)

// Common errors returned by the crypto package.
var (
	// ErrInvalidSeed is returned when a keypair seed has the wrong length.
	ErrInvalidSeed = errors.New("crypto: seed must be 32 bytes")

	// ErrUnknownSigner is returned when a signer's pubkey does not appear
	// in the signer prefix of the account table.
	ErrUnknownSigner = errors.New("crypto: signer is not a required signer of this transaction")

	// ErrMissingSignatures is returned when signing completes with
	// unfilled required slots.
	ErrMissingSignatures = errors.New("crypto: transaction is missing required signatures")

	// ErrSignatureCountMismatch is returned when a transaction's slot
	// count does not match its header.
	ErrSignatureCountMismatch = errors.New("crypto: signature count mismatch")

	// ErrVerificationFailed is returned when a signature does not verify
	// against its signer's public key.
	ErrVerificationFailed = errors.New("crypto: signature verification failed")

	// ErrNilTransaction is returned when a nil transaction is supplied.
	ErrNilTransaction = errors.New("crypto: nil transaction")
)

// VerificationError reports which signature slot failed verification.
type VerificationError struct {
	// SignatureIndex is the slot (and account table index) that failed.
	SignatureIndex int

	// SignerPubkey is the base58 form of the expected signer.
	SignerPubkey string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	return "crypto: verification failed for signer " + e.SignerPubkey + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *VerificationError) Unwrap() error {
	return e.Err
}
