package types

// MaxTransactionSize is the network packet ceiling for a serialized
// transaction, in bytes.
const MaxTransactionSize = 1232

// Transaction is a message plus one signature slot per required signer.
// Slot i holds the signature of AccountKeys[i]; a slot stays zero until an
// external signer fills it.
type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction wraps a compiled message with zeroed signature slots, one
// per required signer.
func NewTransaction(msg Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, msg.Header.NumRequiredSignatures),
		Message:    msg,
	}
}

// FeePayer returns the fee payer (the first entry of the account table).
func (tx *Transaction) FeePayer() Pubkey {
	if len(tx.Message.AccountKeys) == 0 {
		return ZeroPubkey
	}
	return tx.Message.AccountKeys[0]
}

// ID returns the transaction identifier (the first signature).
func (tx *Transaction) ID() Signature {
	if len(tx.Signatures) == 0 {
		return ZeroSignature
	}
	return tx.Signatures[0]
}

// IsSigned reports whether every required signature slot has been filled.
func (tx *Transaction) IsSigned() bool {
	required := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Signatures) < required {
		return false
	}
	for i := 0; i < required; i++ {
		if tx.Signatures[i].IsZero() {
			return false
		}
	}
	return true
}

// Serialize encodes the transaction into the wire format: the
// compact-count-prefixed signature section followed by the serialized
// message.
func (tx *Transaction) Serialize() ([]byte, error) {
	buf, err := appendCount(make([]byte, 0, 256), len(tx.Signatures), "signatures")
	if err != nil {
		return nil, err
	}
	for _, sig := range tx.Signatures {
		buf = append(buf, sig[:]...)
	}

	msgBytes, err := tx.Message.Serialize()
	if err != nil {
		return nil, err
	}
	return append(buf, msgBytes...), nil
}

// DeserializeTransaction decodes a transaction from bytes. It is the exact
// inverse of Serialize over well-formed inputs: decoding the output of
// Serialize yields an equal Transaction, bytewise.
//
// The decode is strict. Truncated sections, malformed count encodings, a
// header inconsistent with the account table, and bytes trailing the last
// instruction are all errors; instruction data is treated as opaque and
// never interpreted.
func DeserializeTransaction(data []byte) (*Transaction, error) {
	d := newDecoder(data)

	sigs, err := decodeSignatures(d)
	if err != nil {
		return nil, err
	}

	msg, err := decodeMessage(d)
	if err != nil {
		return nil, err
	}

	if err := d.finish(); err != nil {
		return nil, err
	}

	return &Transaction{
		Signatures: sigs,
		Message:    *msg,
	}, nil
}
