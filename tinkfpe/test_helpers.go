package tinkfpe

import (
	"github.com/google/tink/go/core/registry"
)

// getOrRegisterKeyManager gets the KeyManager, registering it if necessary.
// This is a safer version that checks if registration is needed.
func getOrRegisterKeyManager() (*KeyManager, error) {
	keyManager := NewKeyManager()

	// Check if this type URL is already supported
	// If it is, the KeyManager is already registered
	_, err := registry.GetKeyManager(FPEKeyTypeURL)
	if err == nil {
		// Already registered, return a new instance (they're stateless)
		return keyManager, nil
	}

	// Not registered yet, so register it
	if err := registry.RegisterKeyManager(keyManager); err != nil {
		return nil, err
	}

	return keyManager, nil
}
