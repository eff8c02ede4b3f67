package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/fortiblox/x1-txkit/pkg/types"
)

// Signer is the capability a transaction needs from a key holder: its
// address and the ability to sign arbitrary message bytes for it.
type Signer interface {
	Pubkey() types.Pubkey
	Sign(message []byte) (types.Signature, error)
}

// Keypair is an Ed25519 keypair implementing Signer.
type Keypair struct {
	priv ed25519.PrivateKey
	pub  types.Pubkey
}

// GenerateKeypair creates a new random keypair.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("crypto: generate keypair: %w", err)
	}
	var pk types.Pubkey
	copy(pk[:], pub)
	return &Keypair{priv: priv, pub: pk}, nil
}

// KeypairFromSeed derives a keypair from a 32-byte seed.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSeed, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var pk types.Pubkey
	copy(pk[:], priv.Public().(ed25519.PublicKey))
	return &Keypair{priv: priv, pub: pk}, nil
}

// KeypairFromBase58 derives a keypair from a base58-encoded 32-byte seed.
func KeypairFromBase58(s string) (*Keypair, error) {
	seed, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("crypto: invalid base58 seed: %w", err)
	}
	return KeypairFromSeed(seed)
}

// Pubkey returns the public key.
func (kp *Keypair) Pubkey() types.Pubkey {
	return kp.pub
}

// Sign signs message bytes with the private key.
func (kp *Keypair) Sign(message []byte) (types.Signature, error) {
	var sig types.Signature
	copy(sig[:], ed25519.Sign(kp.priv, message))
	return sig, nil
}

// SeedBase58 returns the base58 form of the private seed, for storage.
func (kp *Keypair) SeedBase58() string {
	return base58.Encode(kp.priv.Seed())
}
