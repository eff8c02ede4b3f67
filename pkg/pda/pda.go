// Package pda derives program-owned addresses from seed material.
//
// A program derived address is the sha256 hash of the caller's seeds, a
// single bump byte, the owning program's address, and a fixed
// domain-separation marker. The result is only accepted when it does NOT
// decompress to a point on the ed25519 curve: an on-curve result would be
// indistinguishable from a real keypair's public key, and no private key
// may ever exist for a program-owned address.
//
// Derivation is a pure function of its inputs. Identical seeds and program
// address always yield the identical address and bump.
package pda

import (
	"crypto/sha256"
	"errors"

	"filippo.io/edwards25519"

	"github.com/fortiblox/x1-txkit/pkg/types"
)

// Derivation limits. The hash input holds at most MaxSeeds segments
// including the bump byte, and no single seed may exceed MaxSeedLen bytes.
const (
	MaxSeeds   = 16
	MaxSeedLen = 32
)

// derivationMarker is the domain-separation tag appended to every
// derivation hash input.
const derivationMarker = "ProgramDerivedAddress"

// Errors returned by derivation.
var (
	// ErrSeedTooLong is returned when a seed exceeds MaxSeedLen bytes.
	ErrSeedTooLong = errors.New("pda: seed exceeds maximum length")

	// ErrTooManySeeds is returned when the seeds plus the bump byte
	// exceed MaxSeeds segments.
	ErrTooManySeeds = errors.New("pda: too many seeds")

	// ErrAddressOnCurve is returned when the candidate address lands on
	// the ed25519 curve and therefore cannot be used.
	ErrAddressOnCurve = errors.New("pda: derived address is on the ed25519 curve")

	// ErrBumpSeedExhausted is returned when every bump from 255 down to 0
	// produces an on-curve address. This is astronomically unlikely but
	// reachable by adversarial seed choice, so it is an error rather than
	// a panic.
	ErrBumpSeedExhausted = errors.New("pda: no viable bump seed found")
)

// CreateProgramAddress derives the address for the given seeds, bump byte,
// and program. It fails if a seed is too long, if the seeds plus the bump
// exceed the segment capacity, or if the resulting hash lands on the
// ed25519 curve.
func CreateProgramAddress(seeds [][]byte, bump uint8, programID types.Pubkey) (types.Pubkey, error) {
	if len(seeds)+1 > MaxSeeds {
		return types.ZeroPubkey, ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return types.ZeroPubkey, ErrSeedTooLong
		}
	}

	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{bump})
	h.Write(programID[:])
	h.Write([]byte(derivationMarker))

	var candidate types.Pubkey
	copy(candidate[:], h.Sum(nil))

	if IsOnCurve(candidate) {
		return types.ZeroPubkey, ErrAddressOnCurve
	}
	return candidate, nil
}

// FindProgramAddress finds the first viable derived address for the given
// seeds and program, trying bump bytes from 255 down to 0. The descending
// search makes the result deterministic: the same inputs always return the
// same address and bump.
func FindProgramAddress(seeds [][]byte, programID types.Pubkey) (types.Pubkey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := CreateProgramAddress(seeds, uint8(bump), programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrAddressOnCurve) {
			return types.ZeroPubkey, 0, err
		}
	}
	return types.ZeroPubkey, 0, ErrBumpSeedExhausted
}

// IsOnCurve reports whether the 32-byte value decompresses to a valid
// point on the ed25519 curve. Derived addresses must always fail this
// check.
func IsOnCurve(pk types.Pubkey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

// DeriveAssociatedTokenAddress derives the associated token account for a
// wallet and mint under the given token program.
func DeriveAssociatedTokenAddress(wallet, mint, tokenProgram types.Pubkey) (types.Pubkey, uint8, error) {
	seeds := [][]byte{
		wallet[:],
		tokenProgram[:],
		mint[:],
	}
	return FindProgramAddress(seeds, types.AssociatedTokenProgramID)
}
