package tinkfpe

import (
	"testing"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
)

func createKeysetHandleFromKey(t *testing.T, key []byte) *keyset.Handle {
	t.Helper()
	keyData := &tink_go_proto.KeyData{
		TypeUrl:         FPEKeyTypeURL,
		Value:           key,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}
	keysetKey := &tink_go_proto.Keyset_Key{
		KeyData:          keyData,
		KeyId:            123456789,
		Status:           tink_go_proto.KeyStatusType_ENABLED,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: 123456789,
		Key:          []*tink_go_proto.Keyset_Key{keysetKey},
	}
	buf := &keyset.MemReaderWriter{Keyset: ks}
	handle, err := insecurecleartextkeyset.Read(buf)
	if err != nil {
		t.Fatalf("insecurecleartextkeyset.Read: %v", err)
	}
	return handle
}

func TestKeyManagerPrimitive(t *testing.T) {
	keyManager := NewKeyManager()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	primitive, err := keyManager.Primitive(key)
	if err != nil {
		t.Fatalf("KeyManager.Primitive() failed: %v", err)
	}
	got, ok := primitive.([]byte)
	if !ok {
		t.Fatalf("Primitive() returned %T, want []byte", primitive)
	}
	if string(got) != string(key) {
		t.Error("Primitive() did not preserve the key bytes")
	}
}

func TestKeyManagerPrimitiveRejectsShortKey(t *testing.T) {
	keyManager := NewKeyManager()
	if _, err := keyManager.Primitive([]byte("too-short")); err == nil {
		t.Fatal("Primitive() with a short key should fail")
	}
}

func TestKeyManagerDoesSupport(t *testing.T) {
	keyManager := NewKeyManager()

	if !keyManager.DoesSupport(FPEKeyTypeURL) {
		t.Errorf("KeyManager should support %s", FPEKeyTypeURL)
	}
	if keyManager.DoesSupport("invalid-type-url") {
		t.Error("KeyManager should not support invalid type URL")
	}
}

func TestKeyManagerTypeURL(t *testing.T) {
	keyManager := NewKeyManager()
	if keyManager.TypeURL() != FPEKeyTypeURL {
		t.Errorf("Expected TypeURL %s, got %s", FPEKeyTypeURL, keyManager.TypeURL())
	}
}

func TestKeyManagerNewKeyData(t *testing.T) {
	keyManager := NewKeyManager()

	kd, err := keyManager.NewKeyData(nil)
	if err != nil {
		t.Fatalf("NewKeyData(nil): %v", err)
	}
	if len(kd.Value) != minKeyLen {
		t.Errorf("NewKeyData(nil) produced a %d-byte key, want %d", len(kd.Value), minKeyLen)
	}

	kd2, err := keyManager.NewKeyData([]byte{48})
	if err != nil {
		t.Fatalf("NewKeyData([48]): %v", err)
	}
	if len(kd2.Value) != 48 {
		t.Errorf("NewKeyData([48]) produced a %d-byte key, want 48", len(kd2.Value))
	}

	if _, err := keyManager.NewKeyData([]byte{8}); err == nil {
		t.Fatal("NewKeyData with an 8-byte template should fail")
	}
}

func TestNewKeysetHandleFromKeyRoundTrip(t *testing.T) {
	if _, err := getOrRegisterKeyManager(); err != nil {
		t.Fatalf("getOrRegisterKeyManager: %v", err)
	}
	key := make([]byte, 32)
	for i := range key {
		key[i] = 0x17
	}
	handle, err := NewKeysetHandleFromKey(key)
	if err != nil {
		t.Fatalf("NewKeysetHandleFromKey: %v", err)
	}

	f, err := New(handle, "[0-9]{1,5}", "[0-9]{1,5}")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c, err := f.Encrypt("12345")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	p, err := f.Decrypt(c)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if p != "12345" {
		t.Fatalf("round trip got %q, want %q", p, "12345")
	}
}

func TestNewRejectsNilHandle(t *testing.T) {
	if _, err := New(nil, "[0-9]{1,5}", "[0-9]{1,5}"); err == nil {
		t.Fatal("New(nil, ...) should fail")
	}
}

func TestNewWithHandBuiltKeyset(t *testing.T) {
	if _, err := getOrRegisterKeyManager(); err != nil {
		t.Fatalf("getOrRegisterKeyManager: %v", err)
	}
	key := make([]byte, 32)
	handle := createKeysetHandleFromKey(t, key)

	f, err := New(handle, "[A-Z][a-z]{1,4}", "[a-z]{2,6}")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c, err := f.Encrypt("Ab")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := f.Decrypt(c); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
}
