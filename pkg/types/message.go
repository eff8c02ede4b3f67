package types

import (
	"fmt"

	"github.com/fortiblox/x1-txkit/pkg/shortvec"
)

// MessageHeader describes how the message's account table is partitioned.
// The first NumRequiredSignatures entries are the signer accounts; the last
// NumReadonlySignedAccounts of those are read-only. The last
// NumReadonlyUnsignedAccounts of the remaining entries are read-only.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// Message is a compiled transaction message: the header, the canonical
// deduplicated account table, a recent blockhash, and the instructions in
// index-referenced form. A Message is immutable once compiled.
type Message struct {
	Header          MessageHeader
	AccountKeys     []Pubkey
	RecentBlockhash Hash
	Instructions    []CompiledInstruction
}

// Signers returns the account table prefix that must sign the message,
// in table order.
func (m *Message) Signers() []Pubkey {
	n := int(m.Header.NumRequiredSignatures)
	if n > len(m.AccountKeys) {
		n = len(m.AccountKeys)
	}
	return m.AccountKeys[:n]
}

// IsSigner reports whether the account at the given table index must sign.
func (m *Message) IsSigner(index int) bool {
	return index < int(m.Header.NumRequiredSignatures)
}

// IsWritable reports whether the account at the given table index may be
// written to, per the header partition.
func (m *Message) IsWritable(index int) bool {
	numSigned := int(m.Header.NumRequiredSignatures)
	numKeys := len(m.AccountKeys)
	if index < numSigned {
		return index < numSigned-int(m.Header.NumReadonlySignedAccounts)
	}
	return index < numKeys-int(m.Header.NumReadonlyUnsignedAccounts)
}

// Serialize encodes the message into the exact byte layout the network
// expects: the 3-byte header, the compact-count-prefixed account table,
// the recent blockhash, and the compact-count-prefixed instructions. These
// are also the bytes a signer signs.
func (m *Message) Serialize() ([]byte, error) {
	buf := make([]byte, 0, 256)

	buf = append(buf,
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	)

	var err error
	if buf, err = appendCount(buf, len(m.AccountKeys), "account table"); err != nil {
		return nil, err
	}
	for _, key := range m.AccountKeys {
		buf = append(buf, key[:]...)
	}

	buf = append(buf, m.RecentBlockhash[:]...)

	if buf, err = appendCount(buf, len(m.Instructions), "instructions"); err != nil {
		return nil, err
	}
	for _, ix := range m.Instructions {
		buf = append(buf, ix.ProgramIDIndex)
		if buf, err = appendCount(buf, len(ix.AccountIndices), "account indices"); err != nil {
			return nil, err
		}
		buf = append(buf, ix.AccountIndices...)
		if buf, err = appendCount(buf, len(ix.Data), "instruction data"); err != nil {
			return nil, err
		}
		buf = append(buf, ix.Data...)
	}

	return buf, nil
}

// DeserializeMessage decodes a legacy message from bytes. Trailing bytes
// after the last instruction are an error.
func DeserializeMessage(data []byte) (*Message, error) {
	d := newDecoder(data)
	msg, err := decodeMessage(d)
	if err != nil {
		return nil, err
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return msg, nil
}

// appendCount appends a compact-u16 count, rejecting sequences too long
// for the wire format.
func appendCount(buf []byte, n int, field string) ([]byte, error) {
	if n > 0xffff {
		return nil, fmt.Errorf("%s length %d exceeds wire format maximum %d", field, n, 0xffff)
	}
	return shortvec.Append(buf, uint16(n)), nil
}
