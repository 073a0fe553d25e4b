package subtle

import (
	"crypto/hkdf"
	"crypto/sha3"
	"fmt"
)

// roundKeyInfo is the public, fixed HKDF info parameter used to derive every
// round key: 32 bytes, each equal to 0x17. Bit-exact by construction: it is
// a package-level array literal, not computed.
var roundKeyInfo = [32]byte{
	0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17,
	0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17,
	0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17,
	0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17, 0x17,
}

const roundKeyLen = 32 // SHA3-256 output size

// ExpandRoundKeys derives rounds independent 32-byte round keys from a
// master key using iterated HKDF-Expand(SHA3-256, info). Each round's
// expanded output becomes both that round's key and the pseudorandom key
// fed into the next round's HKDF-Expand, so round key i depends on every
// round key before it.
//
// rounds must be odd: an even round count can't be inverted by the
// alternating-swap discipline Feistel uses for Encrypt/Decrypt. key must be
// at least 32 bytes (SHA3-256's output size, the size HKDF-Expand requires
// of a pseudorandom key passed in directly).
func ExpandRoundKeys(key []byte, rounds int) ([]*PRF, error) {
	if rounds%2 == 0 {
		return nil, fmt.Errorf("%w: round count %d must be odd", errEvenRoundCount, rounds)
	}
	if len(key) < roundKeyLen {
		return nil, fmt.Errorf("%w: key length %d, need at least %d", errInvalidKeyLength, len(key), roundKeyLen)
	}

	prfs := make([]*PRF, rounds)
	prk := key
	info := string(roundKeyInfo[:])
	for i := 0; i < rounds; i++ {
		next, err := hkdf.Expand(sha3.New256, prk, info, roundKeyLen)
		if err != nil {
			return nil, fmt.Errorf("%w: round %d: %v", errInvalidKeyExpansion, i, err)
		}
		prfs[i] = NewPRF(next)
		prk = next
	}
	return prfs, nil
}
