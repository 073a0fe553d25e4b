package subtle

import "testing"

func TestPRFDeterministic(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	p1 := NewPRF(key)
	p2 := NewPRF(key)

	msg1 := []byte{0x01, 0x02, 0x03, 0x04}
	msg2 := append([]byte(nil), msg1...)

	p1.Execute(msg1, 0xF0, 0xFF, 0x0F, 0xFF)
	p2.Execute(msg2, 0xF0, 0xFF, 0x0F, 0xFF)

	if string(msg1) != string(msg2) {
		t.Fatalf("same key and input gave different output: %x vs %x", msg1, msg2)
	}
}

func TestPRFLeavesInputBitsUntouched(t *testing.T) {
	key := make([]byte, 32)
	p := NewPRF(key)

	msg := []byte{0xAB, 0xCD}
	original := append([]byte(nil), msg...)

	// zeroIn/inVal = 0xF0 keeps the high nibble of byte 0 as "input";
	// zeroOut/outVal = 0x0F marks the low nibble as "output".
	p.Execute(msg, 0xF0, 0xF0, 0x0F, 0x0F)

	if msg[0]&0xF0 != original[0]&0xF0 {
		t.Fatalf("input-half bits of byte 0 changed: got %02x, want high nibble %02x", msg[0], original[0]&0xF0)
	}
}

func TestPRFKeySensitivity(t *testing.T) {
	key1 := make([]byte, 32)
	key2 := make([]byte, 32)
	key2[0] = 0x01

	msg1 := []byte{0x10, 0x20, 0x30}
	msg2 := append([]byte(nil), msg1...)

	NewPRF(key1).Execute(msg1, 0xF0, 0xFF, 0x0F, 0xFF)
	NewPRF(key2).Execute(msg2, 0xF0, 0xFF, 0x0F, 0xFF)

	if string(msg1) == string(msg2) {
		t.Fatal("different keys produced identical output")
	}
}

func TestPRFHandlesMultiBlockMessages(t *testing.T) {
	key := make([]byte, 32)
	msg := make([]byte, 100) // forces SHA3-256's 32-byte output to be re-hashed
	for i := range msg {
		msg[i] = byte(i)
	}
	original := append([]byte(nil), msg...)

	NewPRF(key).Execute(msg, 0xF0, 0xFF, 0x0F, 0xFF)

	if string(msg) == string(original) {
		t.Fatal("Execute left a 100-byte message unchanged")
	}
}
