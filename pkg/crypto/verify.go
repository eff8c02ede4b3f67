package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/fortiblox/x1-txkit/pkg/types"
)

// VerifySignature checks one Ed25519 signature over message bytes.
func VerifySignature(pk types.Pubkey, message []byte, sig types.Signature) bool {
	return ed25519.Verify(pk[:], message, sig[:])
}

// VerifyTransaction checks every required signature slot against the
// corresponding signer in the account table. It returns nil only when all
// slots are filled and valid; the first failure is reported with its slot
// index.
func VerifyTransaction(tx *types.Transaction) error {
	if tx == nil {
		return ErrNilTransaction
	}
	numRequired := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Signatures) != numRequired {
		return fmt.Errorf("%w: %d slots, header requires %d",
			ErrSignatureCountMismatch, len(tx.Signatures), numRequired)
	}
	if numRequired > len(tx.Message.AccountKeys) {
		return fmt.Errorf("%w: %d signers, %d account keys",
			ErrSignatureCountMismatch, numRequired, len(tx.Message.AccountKeys))
	}

	msgBytes, err := tx.Message.Serialize()
	if err != nil {
		return err
	}

	for i := 0; i < numRequired; i++ {
		pk := tx.Message.AccountKeys[i]
		if !VerifySignature(pk, msgBytes, tx.Signatures[i]) {
			return &VerificationError{
				SignatureIndex: i,
				SignerPubkey:   pk.String(),
				Err:            ErrVerificationFailed,
			}
		}
	}
	return nil
}
