package crypto

import (
	"fmt"

	"github.com/fortiblox/x1-txkit/pkg/types"
)

// SignTransaction fills the transaction's signature slots using the given
// signers and requires that every slot ends up filled. Each signer must
// correspond to an entry in the signer prefix of the account table; its
// signature lands in the slot matching that entry's table position.
func SignTransaction(tx *types.Transaction, signers ...Signer) error {
	if err := PartialSign(tx, signers...); err != nil {
		return err
	}
	if !tx.IsSigned() {
		return ErrMissingSignatures
	}
	return nil
}

// PartialSign fills the slots for the given signers and leaves the rest
// untouched, so signatures can be collected across parties in any order.
// Signing is idempotent per signer: re-signing overwrites the same slot.
func PartialSign(tx *types.Transaction, signers ...Signer) error {
	if tx == nil {
		return ErrNilTransaction
	}
	numRequired := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Signatures) != numRequired {
		return fmt.Errorf("%w: %d slots, header requires %d",
			ErrSignatureCountMismatch, len(tx.Signatures), numRequired)
	}

	msgBytes, err := tx.Message.Serialize()
	if err != nil {
		return err
	}

	for _, signer := range signers {
		slot := signerSlot(&tx.Message, signer.Pubkey())
		if slot < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownSigner, signer.Pubkey())
		}
		sig, err := signer.Sign(msgBytes)
		if err != nil {
			return fmt.Errorf("crypto: sign for %s: %w", signer.Pubkey(), err)
		}
		tx.Signatures[slot] = sig
	}
	return nil
}

// signerSlot returns the signature slot for a pubkey, or -1 when the
// pubkey is not a required signer.
func signerSlot(msg *types.Message, pk types.Pubkey) int {
	for i := 0; i < int(msg.Header.NumRequiredSignatures) && i < len(msg.AccountKeys); i++ {
		if msg.AccountKeys[i] == pk {
			return i
		}
	}
	return -1
}

// SignVersionedTransaction fills a versioned transaction's signature slots
// and requires that every slot ends up filled.
func SignVersionedTransaction(tx *types.VersionedTransaction, signers ...Signer) error {
	if tx == nil {
		return ErrNilTransaction
	}
	numRequired := int(tx.Message.Header().NumRequiredSignatures)
	if len(tx.Signatures) != numRequired {
		return fmt.Errorf("%w: %d slots, header requires %d",
			ErrSignatureCountMismatch, len(tx.Signatures), numRequired)
	}

	msgBytes, err := tx.Message.Serialize()
	if err != nil {
		return err
	}

	keys := tx.Message.AccountKeys()
	for _, signer := range signers {
		slot := -1
		pk := signer.Pubkey()
		for i := 0; i < numRequired && i < len(keys); i++ {
			if keys[i] == pk {
				slot = i
				break
			}
		}
		if slot < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownSigner, pk)
		}
		sig, err := signer.Sign(msgBytes)
		if err != nil {
			return fmt.Errorf("crypto: sign for %s: %w", pk, err)
		}
		tx.Signatures[slot] = sig
	}

	for _, sig := range tx.Signatures {
		if sig.IsZero() {
			return ErrMissingSignatures
		}
	}
	return nil
}
