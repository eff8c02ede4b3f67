package types

import (
	"errors"
	"fmt"

	"github.com/fortiblox/x1-txkit/pkg/shortvec"
)

// Decode errors. Every decode failure wraps one of these sentinels inside
// a *DecodeError carrying the byte offset and the field being read.
var (
	// ErrTruncatedInput indicates the input ended before a declared
	// section was complete.
	ErrTruncatedInput = errors.New("types: truncated input")

	// ErrInconsistentHeader indicates the header's signature count
	// exceeds the account table length.
	ErrInconsistentHeader = errors.New("types: inconsistent message header")

	// ErrTrailingBytes indicates bytes remain after the last instruction.
	// The outer format is not self-delimiting, so extra bytes can only be
	// corruption.
	ErrTrailingBytes = errors.New("types: trailing bytes after transaction")

	// ErrUnsupportedVersion indicates a versioned message with a version
	// this package does not understand.
	ErrUnsupportedVersion = errors.New("types: unsupported message version")
)

// DecodeError describes a decode failure with enough context to diagnose
// a malformed transaction without re-parsing: the byte offset at which the
// failure was detected and the field being read.
type DecodeError struct {
	Offset int
	Field  string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s at offset %d: %v", e.Field, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decoder walks a byte buffer, tracking the offset for error reporting.
type decoder struct {
	buf []byte
	off int
}

func newDecoder(buf []byte) *decoder {
	return &decoder{buf: buf}
}

func (d *decoder) fail(field string, err error) error {
	return &DecodeError{Offset: d.off, Field: field, Err: err}
}

// count reads a compact-u16 count prefix.
func (d *decoder) count(field string) (int, error) {
	v, n, err := shortvec.Decode(d.buf[d.off:])
	if err != nil {
		if errors.Is(err, shortvec.ErrTruncated) {
			return 0, d.fail(field, fmt.Errorf("%w: %v", ErrTruncatedInput, err))
		}
		return 0, d.fail(field, err)
	}
	d.off += n
	return int(v), nil
}

// byte reads a single raw byte.
func (d *decoder) byte(field string) (byte, error) {
	if d.off >= len(d.buf) {
		return 0, d.fail(field, fmt.Errorf("%w: need 1 byte, 0 remain", ErrTruncatedInput))
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

// bytes reads n raw bytes without copying.
func (d *decoder) bytes(n int, field string) ([]byte, error) {
	if remain := len(d.buf) - d.off; remain < n {
		return nil, d.fail(field, fmt.Errorf("%w: need %d bytes, %d remain", ErrTruncatedInput, n, remain))
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// finish verifies the buffer was fully consumed.
func (d *decoder) finish() error {
	if remain := len(d.buf) - d.off; remain > 0 {
		return d.fail("end of input", fmt.Errorf("%w: %d bytes remain", ErrTrailingBytes, remain))
	}
	return nil
}

// decodeMessage reads a legacy message body starting at the current offset.
func decodeMessage(d *decoder) (*Message, error) {
	header, err := decodeHeader(d)
	if err != nil {
		return nil, err
	}

	keys, err := decodeAccountKeys(d)
	if err != nil {
		return nil, err
	}
	if int(header.NumRequiredSignatures) > len(keys) {
		return nil, d.fail("message header", fmt.Errorf(
			"%w: %d required signatures but only %d account keys",
			ErrInconsistentHeader, header.NumRequiredSignatures, len(keys)))
	}

	blockhashBytes, err := d.bytes(32, "recent blockhash")
	if err != nil {
		return nil, err
	}
	var blockhash Hash
	copy(blockhash[:], blockhashBytes)

	instructions, err := decodeInstructions(d)
	if err != nil {
		return nil, err
	}

	return &Message{
		Header:          header,
		AccountKeys:     keys,
		RecentBlockhash: blockhash,
		Instructions:    instructions,
	}, nil
}

func decodeHeader(d *decoder) (MessageHeader, error) {
	raw, err := d.bytes(3, "message header")
	if err != nil {
		return MessageHeader{}, err
	}
	return MessageHeader{
		NumRequiredSignatures:       raw[0],
		NumReadonlySignedAccounts:   raw[1],
		NumReadonlyUnsignedAccounts: raw[2],
	}, nil
}

func decodeAccountKeys(d *decoder) ([]Pubkey, error) {
	numKeys, err := d.count("account table count")
	if err != nil {
		return nil, err
	}
	keys := make([]Pubkey, numKeys)
	for i := range keys {
		raw, err := d.bytes(32, fmt.Sprintf("account key %d", i))
		if err != nil {
			return nil, err
		}
		copy(keys[i][:], raw)
	}
	return keys, nil
}

func decodeInstructions(d *decoder) ([]CompiledInstruction, error) {
	numIx, err := d.count("instruction count")
	if err != nil {
		return nil, err
	}
	instructions := make([]CompiledInstruction, numIx)
	for i := range instructions {
		programIDIndex, err := d.byte(fmt.Sprintf("instruction %d program index", i))
		if err != nil {
			return nil, err
		}

		numIndices, err := d.count(fmt.Sprintf("instruction %d account indices count", i))
		if err != nil {
			return nil, err
		}
		rawIndices, err := d.bytes(numIndices, fmt.Sprintf("instruction %d account indices", i))
		if err != nil {
			return nil, err
		}
		indices := make([]uint8, numIndices)
		copy(indices, rawIndices)

		dataLen, err := d.count(fmt.Sprintf("instruction %d data length", i))
		if err != nil {
			return nil, err
		}
		rawData, err := d.bytes(dataLen, fmt.Sprintf("instruction %d data", i))
		if err != nil {
			return nil, err
		}
		// Instruction data is opaque at this layer; copy it verbatim.
		data := make([]byte, dataLen)
		copy(data, rawData)

		instructions[i] = CompiledInstruction{
			ProgramIDIndex: programIDIndex,
			AccountIndices: indices,
			Data:           data,
		}
	}
	return instructions, nil
}

func decodeSignatures(d *decoder) ([]Signature, error) {
	numSigs, err := d.count("signature count")
	if err != nil {
		return nil, err
	}
	sigs := make([]Signature, numSigs)
	for i := range sigs {
		raw, err := d.bytes(64, fmt.Sprintf("signature %d", i))
		if err != nil {
			return nil, err
		}
		copy(sigs[i][:], raw)
	}
	return sigs, nil
}
