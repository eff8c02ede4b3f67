// Package shortvec implements the compact-u16 length encoding used by the
// transaction wire format.
//
// A length is serialized in 1 to 3 bytes. Each byte stores 7 bits of the
// value, least significant group first, with the high bit set when another
// byte follows:
//
//	1 byte:  0xxxxxxx                    0 - 127
//	2 bytes: 1xxxxxxx 0yyyyyyy           128 - 16383
//	3 bytes: 1xxxxxxx 1yyyyyyy 000000zz  16384 - 65535
//
// Decoding is strict: only the canonical (shortest) form of a value is
// accepted, so every value has exactly one byte representation and encoded
// messages round-trip bit-exactly.
package shortvec

import "errors"

// MaxEncodedLen is the maximum number of bytes a compact-u16 occupies.
// Three 7-bit groups cover 21 bits, more than enough for a u16; a fourth
// byte always indicates corrupt input.
const MaxEncodedLen = 3

// Errors returned by Decode.
var (
	// ErrMalformedLength is returned when an encoding is non-canonical,
	// continues past the third byte, or decodes to a value above 65535.
	ErrMalformedLength = errors.New("shortvec: malformed length encoding")

	// ErrTruncated is returned when the input ends before the encoding
	// terminates.
	ErrTruncated = errors.New("shortvec: truncated length encoding")
)

// EncodedLen returns the number of bytes Encode will produce for v.
func EncodedLen(v uint16) int {
	switch {
	case v < 0x80:
		return 1
	case v < 0x4000:
		return 2
	default:
		return 3
	}
}

// Append appends the canonical encoding of v to buf and returns the
// extended slice.
func Append(buf []byte, v uint16) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}

// Encode returns the canonical encoding of v.
func Encode(v uint16) []byte {
	return Append(make([]byte, 0, MaxEncodedLen), v)
}

// Decode reads a compact-u16 from the start of buf. It returns the decoded
// value and the number of bytes consumed.
//
// Decode rejects non-canonical encodings: a zero continuation byte after the
// first byte (a padded encoding of a value that fits in fewer bytes), a
// continuation bit on the third byte, and any encoding whose value exceeds
// 65535.
func Decode(buf []byte) (uint16, int, error) {
	var val uint32
	for n := 0; n < MaxEncodedLen; n++ {
		if n >= len(buf) {
			return 0, 0, ErrTruncated
		}
		b := buf[n]
		if b == 0 && n != 0 {
			// A trailing zero group means the previous byte's
			// continuation bit was unnecessary.
			return 0, 0, ErrMalformedLength
		}
		done := b&0x80 == 0
		if n == MaxEncodedLen-1 && !done {
			return 0, 0, ErrMalformedLength
		}
		val |= uint32(b&0x7f) << (7 * n)
		if val > 0xffff {
			return 0, 0, ErrMalformedLength
		}
		if done {
			return uint16(val), n + 1, nil
		}
	}
	return 0, 0, ErrMalformedLength
}
