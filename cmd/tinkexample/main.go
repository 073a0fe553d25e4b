// Command tinkexample demonstrates persisting a regex-FPE key through a
// Tink keyset file so tokens stay consistent across separate runs.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/vladimir-ea/field-encryption/tinkfpe"
)

const (
	inputRegex  = `[0-9]{3}-[0-9]{2}-[0-9]{4}`
	outputRegex = `[a-z]{9}`
)

func main() {
	keyManager := tinkfpe.NewKeyManager()
	if err := registry.RegisterKeyManager(keyManager); err != nil {
		log.Fatalf("failed to register FPE key manager: %v", err)
	}

	keysetFile := "fpe_keyset.json"
	var handle *keyset.Handle
	var err error

	if _, statErr := os.Stat(keysetFile); statErr == nil {
		handle, err = loadKeyset(keysetFile)
		if err != nil {
			log.Fatalf("failed to load existing keyset: %v", err)
		}
		fmt.Printf("loaded existing keyset from %s (tokens will be consistent)\n", keysetFile)
	} else {
		handle, err = keyset.NewHandle(tinkfpe.KeyTemplate())
		if err != nil {
			log.Fatalf("failed to create keyset handle: %v", err)
		}
		fmt.Println("created new keyset handle using tinkfpe.KeyTemplate()")

		// insecurecleartextkeyset is unencrypted and is only appropriate for
		// an example: production keysets should be written with an AEAD via
		// keyset.Write().
		if err := storeKeyset(handle, keysetFile); err != nil {
			log.Fatalf("failed to store keyset: %v", err)
		}
		fmt.Printf("keyset stored to %s (will be reused on future runs)\n", keysetFile)
	}

	f, err := tinkfpe.New(handle, inputRegex, outputRegex)
	if err != nil {
		log.Fatalf("failed to build FPE instance: %v", err)
	}

	plaintext := "123-45-6789"
	ciphertext, err := f.Encrypt(plaintext)
	if err != nil {
		log.Fatalf("failed to encrypt: %v", err)
	}
	decrypted, err := f.Decrypt(ciphertext)
	if err != nil {
		log.Fatalf("failed to decrypt: %v", err)
	}

	fmt.Printf("Plaintext:  %s\n", plaintext)
	fmt.Printf("Ciphertext: %s\n", ciphertext)
	fmt.Printf("Decrypted:  %s\n", decrypted)
	fmt.Printf("Match:      %v\n", plaintext == decrypted)
}

func storeKeyset(handle *keyset.Handle, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := keyset.NewJSONWriter(file)
	return insecurecleartextkeyset.Write(handle, writer)
}

func loadKeyset(filename string) (*keyset.Handle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := keyset.NewJSONReader(file)
	return insecurecleartextkeyset.Read(reader)
}
