package tinkfpe

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vladimir-ea/field-encryption"
)

// New builds an *fpe.FPE from a Tink keyset handle's primary key and an
// input/output regex pair. This is the main entry point for users who want
// their FPE master key managed through a Tink keyset rather than passed in
// as a raw byte slice.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	f, err := tinkfpe.New(handle, `[0-9]{3}-[0-9]{2}-[0-9]{4}`, `[a-z]{9}`)
//	if err != nil {
//	    return err
//	}
//	token, err := f.Encrypt("123-45-6789")
func New(handle *keyset.Handle, inputRegex, outputRegex string) (*fpe.FPE, error) {
	if handle == nil {
		return nil, fmt.Errorf("tinkfpe: keyset handle cannot be nil")
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to get primitives from handle: %w", err)
	}
	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("tinkfpe: no primary key found in keyset")
	}
	keyID := primary.KeyID
	if keyID == 0 {
		return nil, fmt.Errorf("tinkfpe: invalid key ID in primary entry")
	}

	ks := insecurecleartextkeyset.KeysetMaterial(handle)

	var keyBytes []byte
	for _, k := range ks.Key {
		if k.KeyId != keyID {
			continue
		}
		keyData := k.KeyData
		if keyData == nil {
			continue
		}
		switch keyData.GetKeyMaterialType() {
		case tink_go_proto.KeyData_SYMMETRIC:
			keyBytes = keyData.Value
		default:
			return nil, fmt.Errorf("tinkfpe: unsupported key material type %v", keyData.GetKeyMaterialType())
		}
		break
	}
	if keyBytes == nil {
		return nil, fmt.Errorf("tinkfpe: key with ID %d not found or unsupported key type", keyID)
	}

	return fpe.New(inputRegex, outputRegex, keyBytes)
}
