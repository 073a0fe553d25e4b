package subtle

import (
	"crypto/sha3"
	"hash"
)

// PRF is a single Feistel round function: a keyed, deterministic byte
// stream derived from SHA3-256, XORed into the bits of a block that the
// caller marks as "output" while leaving the bits marked "input" untouched.
//
// PRF reuses one hash.Hash across calls (the same scratch-state trick
// fasaxc-permutation's FeistelSHAKE128 uses its sha3.SHAKE for) so Execute
// performs no allocation; as a consequence a PRF value is not safe for
// concurrent use, and a single goroutine must not call Execute reentrantly
// on the same PRF (e.g. from within another Execute call).
type PRF struct {
	key    []byte
	digest hash.Hash
}

// NewPRF builds a round PRF from a 32-byte round key, as produced by
// ExpandRoundKeys.
func NewPRF(key []byte) *PRF {
	k := make([]byte, len(key))
	copy(k, key)
	return &PRF{key: k, digest: sha3.New256()}
}

// Execute XORs a pseudo-random byte stream into msg's "output" bits while
// leaving its "input" bits untouched, per the round contract in the cipher
// this package implements:
//
//   - zeroIn / inVal select the input-half bits: the first byte of msg uses
//     zeroIn, every subsequent byte uses inVal.
//   - zeroOut / outVal select the output-half bits to XOR into, with the
//     same first-byte/rest split.
//
// The digest is reset and re-seeded with the round key, then fed msg's
// input-half bits one byte at a time; the resulting digest block is walked
// across msg to produce the output stream, re-hashing the previous block
// whenever more bytes are needed than one digest produces (SHA3-256: 32).
func (p *PRF) Execute(msg []byte, zeroIn, inVal, zeroOut, outVal byte) {
	d := p.digest
	d.Reset()
	_, _ = d.Write(p.key)

	mask := zeroIn
	for i := range msg {
		b := msg[i] & mask
		_, _ = d.Write([]byte{b})
		mask = inVal
	}

	output := d.Sum(nil)

	inMask := zeroIn
	outMask := zeroOut
	offset := 0
	for i := range msg {
		msg[i] = (msg[i] & inMask) | (msg[i] ^ (output[offset] & outMask))
		inMask = inVal
		outMask = outVal

		offset++
		if offset == len(output) {
			d.Reset()
			_, _ = d.Write(output)
			output = d.Sum(nil)
			offset = 0
		}
	}
}
