package types

import "fmt"

// Version prefix handling: a legacy message starts directly with the
// header, while a versioned message starts with one byte whose high bit is
// set and whose low seven bits carry the version number.
const versionPrefixMask = 0x80

// AddressTableLookup references addresses loaded from an on-chain lookup
// table: the table account plus the writable and readonly index lists.
type AddressTableLookup struct {
	AccountKey      Pubkey
	WritableIndexes []uint8
	ReadonlyIndexes []uint8
}

// MessageV0 is a version-0 message. It extends the legacy layout with
// address table lookups appended after the instructions.
type MessageV0 struct {
	Header              MessageHeader
	AccountKeys         []Pubkey
	RecentBlockhash     Hash
	Instructions        []CompiledInstruction
	AddressTableLookups []AddressTableLookup
}

// Serialize encodes the v0 message body, including the leading version
// byte.
func (m *MessageV0) Serialize() ([]byte, error) {
	legacy := Message{
		Header:          m.Header,
		AccountKeys:     m.AccountKeys,
		RecentBlockhash: m.RecentBlockhash,
		Instructions:    m.Instructions,
	}
	body, err := legacy.Serialize()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 1+len(body)+34*len(m.AddressTableLookups))
	buf = append(buf, versionPrefixMask|0)
	buf = append(buf, body...)

	if buf, err = appendCount(buf, len(m.AddressTableLookups), "address table lookups"); err != nil {
		return nil, err
	}
	for _, lookup := range m.AddressTableLookups {
		buf = append(buf, lookup.AccountKey[:]...)
		if buf, err = appendCount(buf, len(lookup.WritableIndexes), "writable indexes"); err != nil {
			return nil, err
		}
		buf = append(buf, lookup.WritableIndexes...)
		if buf, err = appendCount(buf, len(lookup.ReadonlyIndexes), "readonly indexes"); err != nil {
			return nil, err
		}
		buf = append(buf, lookup.ReadonlyIndexes...)
	}
	return buf, nil
}

// VersionedMessage holds either a legacy or a v0 message. Exactly one of
// Legacy and V0 is non-nil.
type VersionedMessage struct {
	Legacy *Message
	V0     *MessageV0
}

// IsLegacy reports whether this is a legacy message.
func (m *VersionedMessage) IsLegacy() bool {
	return m.Legacy != nil
}

// IsV0 reports whether this is a v0 message.
func (m *VersionedMessage) IsV0() bool {
	return m.V0 != nil
}

// Header returns the message header.
func (m *VersionedMessage) Header() MessageHeader {
	if m.Legacy != nil {
		return m.Legacy.Header
	}
	if m.V0 != nil {
		return m.V0.Header
	}
	return MessageHeader{}
}

// AccountKeys returns the static account table of the message. For v0
// messages this excludes addresses loaded through lookup tables.
func (m *VersionedMessage) AccountKeys() []Pubkey {
	if m.Legacy != nil {
		return m.Legacy.AccountKeys
	}
	if m.V0 != nil {
		return m.V0.AccountKeys
	}
	return nil
}

// RecentBlockhash returns the message's recent blockhash.
func (m *VersionedMessage) RecentBlockhash() Hash {
	if m.Legacy != nil {
		return m.Legacy.RecentBlockhash
	}
	if m.V0 != nil {
		return m.V0.RecentBlockhash
	}
	return ZeroHash
}

// Instructions returns the compiled instructions.
func (m *VersionedMessage) Instructions() []CompiledInstruction {
	if m.Legacy != nil {
		return m.Legacy.Instructions
	}
	if m.V0 != nil {
		return m.V0.Instructions
	}
	return nil
}

// Signers returns the pubkeys that must sign, in table order.
func (m *VersionedMessage) Signers() []Pubkey {
	keys := m.AccountKeys()
	n := int(m.Header().NumRequiredSignatures)
	if n > len(keys) {
		n = len(keys)
	}
	return keys[:n]
}

// Serialize encodes the message, emitting the version byte for v0.
func (m *VersionedMessage) Serialize() ([]byte, error) {
	if m.Legacy != nil {
		return m.Legacy.Serialize()
	}
	if m.V0 != nil {
		return m.V0.Serialize()
	}
	return nil, fmt.Errorf("versioned message has neither legacy nor v0 body")
}

// VersionedTransaction is a transaction whose message may be legacy or v0.
type VersionedTransaction struct {
	Signatures []Signature
	Message    VersionedMessage
}

// NewVersionedTransaction wraps a message with zeroed signature slots.
func NewVersionedTransaction(msg VersionedMessage) *VersionedTransaction {
	return &VersionedTransaction{
		Signatures: make([]Signature, msg.Header().NumRequiredSignatures),
		Message:    msg,
	}
}

// Serialize encodes the transaction into the wire format.
func (tx *VersionedTransaction) Serialize() ([]byte, error) {
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

// DeserializeVersionedTransaction decodes a transaction that may carry a
// legacy or a v0 message, applying the same strict validation as
// DeserializeTransaction.
func DeserializeVersionedTransaction(data []byte) (*VersionedTransaction, error) {
	d := newDecoder(data)

	sigs, err := decodeSignatures(d)
	if err != nil {
		return nil, err
	}

	prefix, err := d.byte("message version")
	if err != nil {
		return nil, err
	}

	var msg VersionedMessage
	if prefix&versionPrefixMask == 0 {
		// Legacy: the byte just read is the first header byte.
		d.off--
		legacy, err := decodeMessage(d)
		if err != nil {
			return nil, err
		}
		msg.Legacy = legacy
	} else {
		version := prefix &^ byte(versionPrefixMask)
		if version != 0 {
			return nil, d.fail("message version",
				fmt.Errorf("%w: %d", ErrUnsupportedVersion, version))
		}
		v0, err := decodeMessageV0(d)
		if err != nil {
			return nil, err
		}
		msg.V0 = v0
	}

	if err := d.finish(); err != nil {
		return nil, err
	}

	return &VersionedTransaction{
		Signatures: sigs,
		Message:    msg,
	}, nil
}

// decodeMessageV0 reads a v0 message body; the version byte has already
// been consumed.
func decodeMessageV0(d *decoder) (*MessageV0, error) {
	legacy, err := decodeMessage(d)
	if err != nil {
		return nil, err
	}

	numLookups, err := d.count("address table lookup count")
	if err != nil {
		return nil, err
	}
	lookups := make([]AddressTableLookup, numLookups)
	for i := range lookups {
		raw, err := d.bytes(32, fmt.Sprintf("lookup table %d key", i))
		if err != nil {
			return nil, err
		}
		copy(lookups[i].AccountKey[:], raw)

		numWritable, err := d.count(fmt.Sprintf("lookup table %d writable count", i))
		if err != nil {
			return nil, err
		}
		rawWritable, err := d.bytes(numWritable, fmt.Sprintf("lookup table %d writable indexes", i))
		if err != nil {
			return nil, err
		}
		lookups[i].WritableIndexes = make([]uint8, numWritable)
		copy(lookups[i].WritableIndexes, rawWritable)

		numReadonly, err := d.count(fmt.Sprintf("lookup table %d readonly count", i))
		if err != nil {
			return nil, err
		}
		rawReadonly, err := d.bytes(numReadonly, fmt.Sprintf("lookup table %d readonly indexes", i))
		if err != nil {
			return nil, err
		}
		lookups[i].ReadonlyIndexes = make([]uint8, numReadonly)
		copy(lookups[i].ReadonlyIndexes, rawReadonly)
	}

	return &MessageV0{
		Header:              legacy.Header,
		AccountKeys:         legacy.AccountKeys,
		RecentBlockhash:     legacy.RecentBlockhash,
		Instructions:        legacy.Instructions,
		AddressTableLookups: lookups,
	}, nil
}
