package shortvec

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncode_KnownValues(t *testing.T) {
	cases := []struct {
		value uint16
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{5, []byte{0x05}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{256, []byte{0x80, 0x02}},
		{300, []byte{0xac, 0x02}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{65535, []byte{0xff, 0xff, 0x03}},
	}

	for _, c := range cases {
		got := Encode(c.value)
		if !bytes.Equal(got, c.want) {
			t.Errorf("Encode(%d) = %x, want %x", c.value, got, c.want)
		}
	}
}

func TestEncodedLen(t *testing.T) {
	cases := []struct {
		value uint16
		want  int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{65535, 3},
	}

	for _, c := range cases {
		if got := EncodedLen(c.value); got != c.want {
			t.Errorf("EncodedLen(%d) = %d, want %d", c.value, got, c.want)
		}
	}
}

func TestEncodedLen_MatchesEncode(t *testing.T) {
	for v := 0; v <= 65535; v += 13 {
		if got, want := EncodedLen(uint16(v)), len(Encode(uint16(v))); got != want {
			t.Fatalf("EncodedLen(%d) = %d but Encode produced %d bytes", v, got, want)
		}
	}
}

func TestDecode_Roundtrip(t *testing.T) {
	values := []uint16{0, 1, 2, 127, 128, 129, 255, 256, 300, 1000, 16383, 16384, 32767, 65534, 65535}

	for _, v := range values {
		enc := Encode(v)
		got, n, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) failed: %v", v, err)
		}
		if got != v {
			t.Errorf("Decode(Encode(%d)) = %d", v, got)
		}
		if n != len(enc) {
			t.Errorf("Decode(Encode(%d)) consumed %d bytes, encoded %d", v, n, len(enc))
		}
	}
}

func TestDecode_TrailingBytesIgnored(t *testing.T) {
	buf := append(Encode(300), 0xde, 0xad)
	v, n, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v != 300 || n != 2 {
		t.Errorf("Decode = (%d, %d), want (300, 2)", v, n)
	}
}

func TestDecode_Truncated(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x80},
		{0xff},
		{0x80, 0x80},
	}

	for _, buf := range cases {
		_, _, err := Decode(buf)
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("Decode(%x) = %v, want ErrTruncated", buf, err)
		}
	}
}

func TestDecode_NonCanonical(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
	}{
		{"alias of zero", []byte{0x80, 0x00}},
		{"alias of one", []byte{0x81, 0x00}},
		{"two byte alias", []byte{0x80, 0x80, 0x00}},
		{"continuation on third byte", []byte{0x80, 0x80, 0x80, 0x01}},
		{"value above u16 range", []byte{0xff, 0xff, 0x7f}},
		{"third byte overflow", []byte{0x80, 0x80, 0x04}},
	}

	for _, c := range cases {
		_, _, err := Decode(c.buf)
		if !errors.Is(err, ErrMalformedLength) {
			t.Errorf("%s: Decode(%x) = %v, want ErrMalformedLength", c.name, c.buf, err)
		}
	}
}

func TestDecode_MaxEncodedLen(t *testing.T) {
	enc := Encode(65535)
	if len(enc) != MaxEncodedLen {
		t.Errorf("Encode(65535) is %d bytes, want MaxEncodedLen = %d", len(enc), MaxEncodedLen)
	}
}

func TestAppend(t *testing.T) {
	buf := []byte{0xaa}
	buf = Append(buf, 300)
	want := []byte{0xaa, 0xac, 0x02}
	if !bytes.Equal(buf, want) {
		t.Errorf("Append = %x, want %x", buf, want)
	}
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Encode(uint16(i))
	}
}

func BenchmarkDecode(b *testing.B) {
	enc := Encode(300)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = Decode(enc)
	}
}
