// Package fpe implements format-preserving encryption (FPE) between two
// finite regular languages.
//
// Given an input regular expression, an output regular expression whose
// language is at least as large, and a secret key, FPE encrypts any string
// accepted by the input regex to a ciphertext accepted by the output regex,
// such that decryption recovers the original string exactly. It is a
// deterministic, keyed bijection restricted to L(input) -> L(output).
//
// Both regular expressions must describe finite languages: unbounded
// expressions such as `[0-9]+` or `.*` are rejected at construction time.
// The output language must have at least as many strings as the input
// language.
//
// Encryption ranks a plaintext into its lexicographic position within the
// input language, runs that position through a small balanced Feistel
// cipher keyed by HKDF/SHA3-256 round keys, and cycle-walks the result until
// it lands inside the output domain's size, before unranking it back into a
// string accepted by the output regex. Decryption runs the same pipeline
// with the domains and the Feistel direction swapped.
//
// Example:
//
//	f, err := fpe.New(
//	    `[A-Z][a-z]{1,4} [A-Z][a-z]{1,4}!`,
//	    `[a-z]{5} [a-z]{7}`,
//	    key,
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cipherText, err := f.Encrypt("Hello World!")
//	plainText, err := f.Decrypt(cipherText) // == "Hello World!"
//
// A single FPE instance owns mutable hash state internal to its round
// functions and is not safe for concurrent use; build one instance per
// goroutine, or guard it with a mutex.
//
// Subpackages: subtle holds the low-level DFA, key-schedule, PRF and
// Feistel primitives that fpe composes; tinkfpe registers those primitives
// as a github.com/google/tink/go primitive so keys can be managed through a
// Tink keyset.Handle.
package fpe
