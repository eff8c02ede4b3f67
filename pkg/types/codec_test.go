package types

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"reflect"
	"testing"
)

func sampleMessage() Message {
	keys := make([]Pubkey, 4)
	for i := range keys {
		keys[i][0] = byte(i + 1)
	}
	return Message{
		Header: MessageHeader{
			NumRequiredSignatures:       1,
			NumReadonlySignedAccounts:   0,
			NumReadonlyUnsignedAccounts: 2,
		},
		AccountKeys:     keys,
		RecentBlockhash: sha256.Sum256([]byte("blockhash")),
		Instructions: []CompiledInstruction{
			{ProgramIDIndex: 3, AccountIndices: []uint8{0, 1}, Data: []byte{9, 9, 9}},
			{ProgramIDIndex: 2, AccountIndices: []uint8{1}, Data: nil},
		},
	}
}

func sampleTransaction() *Transaction {
	tx := NewTransaction(sampleMessage())
	for i := range tx.Signatures[0] {
		tx.Signatures[0][i] = byte(i)
	}
	return tx
}

func TestMessage_SerializeLayout(t *testing.T) {
	msg := sampleMessage()
	data, err := msg.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// header
	if data[0] != 1 || data[1] != 0 || data[2] != 2 {
		t.Errorf("header bytes = %v", data[:3])
	}
	// account table count, then 4 keys of 32 bytes
	if data[3] != 4 {
		t.Errorf("account count byte = %d, want 4", data[3])
	}
	if !bytes.Equal(data[4:36], msg.AccountKeys[0][:]) {
		t.Error("first account key bytes mismatch")
	}
	// blockhash follows the table
	blockhashOff := 4 + 4*32
	if !bytes.Equal(data[blockhashOff:blockhashOff+32], msg.RecentBlockhash[:]) {
		t.Error("blockhash bytes mismatch")
	}
	// instruction count
	if data[blockhashOff+32] != 2 {
		t.Errorf("instruction count byte = %d, want 2", data[blockhashOff+32])
	}
}

func TestMessage_Roundtrip(t *testing.T) {
	msg := sampleMessage()
	data, err := msg.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	got, err := DeserializeMessage(data)
	if err != nil {
		t.Fatalf("DeserializeMessage failed: %v", err)
	}

	reencoded, err := got.Serialize()
	if err != nil {
		t.Fatalf("re-Serialize failed: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Error("decode/encode should be bit-exact")
	}
	if got.Header != msg.Header {
		t.Error("header mismatch after roundtrip")
	}
	if !reflect.DeepEqual(got.AccountKeys, msg.AccountKeys) {
		t.Error("account keys mismatch after roundtrip")
	}
}

func TestTransaction_Roundtrip(t *testing.T) {
	tx := sampleTransaction()
	data, err := tx.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	got, err := DeserializeTransaction(data)
	if err != nil {
		t.Fatalf("DeserializeTransaction failed: %v", err)
	}
	reencoded, err := got.Serialize()
	if err != nil {
		t.Fatalf("re-Serialize failed: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Error("transaction roundtrip should be bit-exact")
	}
	if got.Signatures[0] != tx.Signatures[0] {
		t.Error("signature mismatch after roundtrip")
	}
}

func TestDeserializeTransaction_TruncatedEveryPrefix(t *testing.T) {
	data, err := sampleTransaction().Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Every proper prefix must fail, and truncation must never be
	// silently accepted.
	for n := 0; n < len(data); n++ {
		_, err := DeserializeTransaction(data[:n])
		if err == nil {
			t.Fatalf("prefix of %d bytes decoded without error", n)
		}
		if !errors.Is(err, ErrTruncatedInput) {
			t.Fatalf("prefix of %d bytes: got %v, want ErrTruncatedInput", n, err)
		}
	}
}

func TestDeserializeTransaction_TrailingBytes(t *testing.T) {
	data, err := sampleTransaction().Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	_, err = DeserializeTransaction(append(data, 0x00))
	if !errors.Is(err, ErrTrailingBytes) {
		t.Errorf("expected ErrTrailingBytes, got %v", err)
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatal("error should be a *DecodeError")
	}
	if de.Offset != len(data) {
		t.Errorf("offset = %d, want %d", de.Offset, len(data))
	}
}

func TestDeserializeMessage_InconsistentHeader(t *testing.T) {
	msg := sampleMessage()
	msg.Header.NumRequiredSignatures = uint8(len(msg.AccountKeys) + 1)

	data, err := msg.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	_, err = DeserializeMessage(data)
	if !errors.Is(err, ErrInconsistentHeader) {
		t.Errorf("expected ErrInconsistentHeader, got %v", err)
	}
}

func TestDecodeError_ReportsFieldAndOffset(t *testing.T) {
	data, err := sampleTransaction().Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	_, err = DeserializeTransaction(data[:len(data)-1])
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error should be a *DecodeError: %v", err)
	}
	if de.Field == "" {
		t.Error("decode error should name the field")
	}
	if de.Offset < 0 || de.Offset > len(data) {
		t.Errorf("offset %d out of range", de.Offset)
	}
}

func TestDeserializeTransaction_MalformedCount(t *testing.T) {
	// Non-canonical signature count encoding: 0x80 0x00 aliases zero.
	_, err := DeserializeTransaction([]byte{0x80, 0x00})
	if err == nil {
		t.Fatal("non-canonical count should be rejected")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error should be a *DecodeError: %v", err)
	}
}

func TestVersionedTransaction_LegacyRoundtrip(t *testing.T) {
	msg := sampleMessage()
	vtx := NewVersionedTransaction(VersionedMessage{Legacy: &msg})
	for i := range vtx.Signatures[0] {
		vtx.Signatures[0][i] = byte(i)
	}

	data, err := vtx.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Legacy bytes are identical with and without the versioned wrapper.
	plain, err := (&Transaction{Signatures: vtx.Signatures, Message: msg}).Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !bytes.Equal(data, plain) {
		t.Error("legacy versioned encoding should match the plain encoding")
	}

	got, err := DeserializeVersionedTransaction(data)
	if err != nil {
		t.Fatalf("DeserializeVersionedTransaction failed: %v", err)
	}
	if !got.Message.IsLegacy() {
		t.Fatal("decoded message should be legacy")
	}
	reencoded, err := got.Serialize()
	if err != nil {
		t.Fatalf("re-Serialize failed: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Error("roundtrip should be bit-exact")
	}
}

func TestVersionedTransaction_V0Roundtrip(t *testing.T) {
	base := sampleMessage()
	var tableKey Pubkey
	tableKey[0] = 0x77

	v0 := &MessageV0{
		Header:          base.Header,
		AccountKeys:     base.AccountKeys,
		RecentBlockhash: base.RecentBlockhash,
		Instructions:    base.Instructions,
		AddressTableLookups: []AddressTableLookup{
			{
				AccountKey:      tableKey,
				WritableIndexes: []uint8{0, 3},
				ReadonlyIndexes: []uint8{7},
			},
		},
	}

	vtx := NewVersionedTransaction(VersionedMessage{V0: v0})
	for i := range vtx.Signatures[0] {
		vtx.Signatures[0][i] = byte(i + 1)
	}

	data, err := vtx.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	got, err := DeserializeVersionedTransaction(data)
	if err != nil {
		t.Fatalf("DeserializeVersionedTransaction failed: %v", err)
	}
	if !got.Message.IsV0() {
		t.Fatal("decoded message should be v0")
	}
	if !reflect.DeepEqual(got.Message.V0.AddressTableLookups, v0.AddressTableLookups) {
		t.Error("address table lookups mismatch after roundtrip")
	}
	reencoded, err := got.Serialize()
	if err != nil {
		t.Fatalf("re-Serialize failed: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Error("v0 roundtrip should be bit-exact")
	}
}

func TestDeserializeVersionedTransaction_UnsupportedVersion(t *testing.T) {
	// Zero signatures, then a version prefix of 1.
	data := []byte{0x00, versionPrefixMask | 0x01}
	_, err := DeserializeVersionedTransaction(data)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestVersionedMessage_Accessors(t *testing.T) {
	msg := sampleMessage()
	vm := VersionedMessage{Legacy: &msg}

	if vm.Header() != msg.Header {
		t.Error("Header mismatch")
	}
	if !reflect.DeepEqual(vm.AccountKeys(), msg.AccountKeys) {
		t.Error("AccountKeys mismatch")
	}
	if vm.RecentBlockhash() != msg.RecentBlockhash {
		t.Error("RecentBlockhash mismatch")
	}
	if len(vm.Signers()) != int(msg.Header.NumRequiredSignatures) {
		t.Error("Signers length mismatch")
	}
}

func BenchmarkTransaction_Serialize(b *testing.B) {
	tx := sampleTransaction()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tx.Serialize()
	}
}

func BenchmarkDeserializeTransaction(b *testing.B) {
	data, err := sampleTransaction().Serialize()
	if err != nil {
		b.Fatalf("Serialize failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DeserializeTransaction(data)
	}
}
