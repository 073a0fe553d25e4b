// Package tinkfpe registers the regex-domain FPE cipher as a Tink
// registry.KeyManager, so its keys can be generated, stored, and rotated
// through a github.com/google/tink/go keyset.Handle the same way any other
// Tink primitive is.
package tinkfpe

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"
)

// FPEKeyTypeURL is the type URL this package registers its key manager
// under. It is scoped to this module rather than google.crypto.tink's own
// namespace, since this is not a standard Tink primitive.
const FPEKeyTypeURL = "type.googleapis.com/github.com.vladimir-ea.field-encryption.RegexFpeKey"

// minKeyLen is the shortest key ExpandRoundKeys accepts: SHA3-256's output
// size, the size HKDF-Expand requires of a pseudorandom key passed in
// directly.
const minKeyLen = 32

// KeyManager implements registry.KeyManager for regex-domain FPE keys. The
// key material it manages is an opaque byte string: the regular expressions
// an FPE instance encrypts between are a property of the call site (New),
// not the key, the same way an AEAD's associated data is a call-site
// parameter rather than part of the keyset.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new FPE key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{typeURL: FPEKeyTypeURL}
}

// Primitive returns the raw key bytes carried by a keyset entry. This
// package's factory function (New) is responsible for turning that key,
// plus an input/output regex pair, into an *fpe.FPE.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	if len(serializedKey) < minKeyLen {
		return nil, fmt.Errorf("tinkfpe: key too short: %d bytes (minimum %d)", len(serializedKey), minKeyLen)
	}
	key := make([]byte, len(serializedKey))
	copy(key, serializedKey)
	return key, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey is unsupported: this key manager only produces keys through
// NewKeyData, which returns the wire KeyData form the registry actually
// stores keysets as.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	return nil, fmt.Errorf("tinkfpe: NewKey not supported, use NewKeyData")
}

// NewKeyData creates a new KeyData from the given key template. The
// template's Value, if non-empty, is a single byte giving the key length in
// bytes; it defaults to 32 (minKeyLen).
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	keySize := minKeyLen
	if len(serializedKeyTemplate) > 0 {
		keySize = int(serializedKeyTemplate[0])
		if keySize < minKeyLen {
			return nil, fmt.Errorf("tinkfpe: invalid key size in template: %d bytes (minimum %d)", keySize, minKeyLen)
		}
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to generate random key: %w", err)
	}

	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           key,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}, nil
}

var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate creates a key template for 32-byte regex-FPE keys, the
// minimum size: ExpandRoundKeys uses the whole master key as its initial
// HKDF pseudorandom key, so longer keys (see NewKeyData) are also accepted
// and every byte of them is read.
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          FPEKeyTypeURL,
		Value:            []byte{minKeyLen},
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// NewKeysetHandleFromKey creates a keyset handle from a raw key (e.g., from
// an HSM). key must be at least 32 bytes.
//
// Note: this creates an unencrypted keyset. In production, consider
// encrypting the keyset before storing it using keyset.Write() with an
// AEAD.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("tinkfpe: invalid key size: %d bytes (minimum %d)", len(key), minKeyLen)
	}

	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)

	keyData := &tink_go_proto.KeyData{
		TypeUrl:         FPEKeyTypeURL,
		Value:           key,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}
	keysetKey := &tink_go_proto.Keyset_Key{
		KeyData:          keyData,
		KeyId:            keyID,
		Status:           tink_go_proto.KeyStatusType_ENABLED,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key:          []*tink_go_proto.Keyset_Key{keysetKey},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
