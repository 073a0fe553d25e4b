package subtle

import "fmt"

// Feistel is a balanced Feistel cipher over a fixed-width byte block, built
// from an odd-length sequence of round PRFs. An odd round count is what
// lets Encrypt and Decrypt share the same half-swap discipline and still
// invert each other.
type Feistel struct {
	prfs []*PRF
}

// NewFeistel wraps prfs (in round order) as a Feistel cipher. len(prfs)
// must be odd.
func NewFeistel(prfs []*PRF) (*Feistel, error) {
	if len(prfs)%2 == 0 {
		return nil, fmt.Errorf("%w: got %d rounds", errEvenRoundCount, len(prfs))
	}
	return &Feistel{prfs: prfs}, nil
}

// Encrypt runs msg forward through every round, in order.
//
// Only the low bits bits of msg's first byte are live; every other byte of
// msg is fully live. Splitting the block in half bitwise (shift = bits/2)
// gives two byte masks, zeroRight and zeroLeft, for that first byte, and
// the constant nibble masks 0xF0/0x0F for every byte after it. Each round
// swaps which half is "input" and which is "output", the same alternation
// fasaxc-permutation's FFX/FeistelSHAKE128 round loops use to swap A/B.
func (f *Feistel) Encrypt(msg []byte, bits uint) {
	shift := bits / 2
	zeroRight := byte(0xFF >> (8 - shift))
	zeroLeft := zeroRight << shift
	left, right := byte(0xF0), byte(0x0F)

	for _, prf := range f.prfs {
		prf.Execute(msg, zeroLeft, left, zeroRight, right)
		left, right = right, left
		zeroLeft, zeroRight = zeroRight, zeroLeft
	}
}

// Decrypt runs msg through the same rounds in reverse order, with the same
// swap discipline, undoing Encrypt exactly.
func (f *Feistel) Decrypt(msg []byte, bits uint) {
	shift := bits / 2
	zeroRight := byte(0xFF >> (8 - shift))
	zeroLeft := zeroRight << shift
	left, right := byte(0xF0), byte(0x0F)

	for i := len(f.prfs) - 1; i >= 0; i-- {
		f.prfs[i].Execute(msg, zeroLeft, left, zeroRight, right)
		left, right = right, left
		zeroLeft, zeroRight = zeroRight, zeroLeft
	}
}
