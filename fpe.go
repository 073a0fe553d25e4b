package fpe

import (
	"math/big"
	"math/bits"
	"unicode/utf8"

	"github.com/vladimir-ea/field-encryption/subtle"
)

// rounds is the Feistel round count this package fixes at 7. It is always
// odd, so subtle.NewFeistel's EvenRoundCount failure is unreachable through
// this package's public API.
const rounds = 7

// FPE encrypts strings accepted by an input regular expression into
// strings accepted by an output regular expression, and back, using a
// cycle-walking Feistel cipher over the two languages' rank/unrank
// bijections.
//
// An FPE instance owns the round PRFs' mutable hash state; it is not safe
// for concurrent use, and a single goroutine must not call Encrypt/Decrypt
// reentrantly on the same instance.
type FPE struct {
	in, out  *RegexDomain
	feistel  *subtle.Feistel
	trimByte int
	topBits  uint
}

// New builds an FPE instance. inputRegex and outputRegex must each describe
// a finite language (an unbounded expression like `[0-9]+` fails with
// InfiniteRegex); the output language must have at least as many strings as
// the input language. key must be at least 32 bytes.
func New(inputRegex, outputRegex string, key []byte) (*FPE, error) {
	in, err := NewRegexDomain(inputRegex)
	if err != nil {
		return nil, err
	}
	out, err := NewRegexDomain(outputRegex)
	if err != nil {
		return nil, err
	}
	// size(R_out) == 0 would drive topBits to 0 below: reject explicitly
	// rather than build a Feistel cipher over an empty block.
	if out.Size() == 0 {
		return nil, newErr(KindOutputDomainTooSmall)
	}
	if in.Size() > out.Size() {
		return nil, newErr(KindOutputDomainTooSmall)
	}

	prfs, err := subtle.ExpandRoundKeys(key, rounds)
	if err != nil {
		switch {
		case subtle.IsEvenRoundCount(err):
			return nil, newErr(KindEvenRoundCount)
		case subtle.IsInvalidKeyLength(err):
			return nil, newErrValue(KindInvalidKeyLength, len(key))
		default:
			return nil, newErrValue(KindInvalidKeyExpansion, err.Error())
		}
	}
	feistel, err := subtle.NewFeistel(prfs)
	if err != nil {
		return nil, newErr(KindEvenRoundCount)
	}

	trimBytes, topBits := blockLayout(out.Size())

	return &FPE{
		in:       in,
		out:      out,
		feistel:  feistel,
		trimByte: trimBytes,
		topBits:  topBits,
	}, nil
}

// blockLayout computes how much of the 16-byte (128-bit) big-endian rank
// buffer is live: zeroBits counts the leading zero bits of size within that
// 128-bit space (64 of them are the unused upper half, since size always
// fits in a uint64; the rest come from size's own leading zeros).
// trimBytes is the whole bytes that can be skipped outright; topBits is how
// many of the low bits of the first live byte are actually part of the
// block, rounded up to an even count so the Feistel split (shift =
// topBits/2) divides those bits into two equal halves.
func blockLayout(size uint64) (trimBytes int, topBits uint) {
	zeroBits := 64 + bits.LeadingZeros64(size)
	trimBytes = zeroBits / 8
	topBits = uint(8 - zeroBits%8)
	if topBits%2 != 0 {
		topBits++
	}
	return trimBytes, topBits
}

// Encrypt ranks s in the input language, cycle-walks it through the
// Feistel cipher, and unranks the result in the output language.
func (f *FPE) Encrypt(s string) (string, error) {
	return f.execute(s, f.in, f.out, f.feistel.Encrypt)
}

// Decrypt is Encrypt's inverse: rank in the output language, cycle-walk
// through the Feistel cipher run backwards, unrank in the input language.
func (f *FPE) Decrypt(s string) (string, error) {
	return f.execute(s, f.out, f.in, f.feistel.Decrypt)
}

func (f *FPE) execute(s string, from, to *RegexDomain, op func([]byte, uint)) (string, error) {
	r, ok := from.Rank([]byte(s))
	if !ok {
		return "", newErrValue(KindInvalidInput, s)
	}

	buf := make([]byte, 16)
	new(big.Int).SetUint64(r).FillBytes(buf)

	// Cycle-walking loop: outputOffset starts at to.Size(), a sentinel
	// guaranteed to be >= to.Size(), so the Feistel cipher runs at least
	// once even when r already happens to land in range.
	outSize := to.Size()
	outputOffset := outSize
	for outputOffset >= outSize {
		op(buf[f.trimByte:], f.topBits)
		// trimByte >= 8 always (to.Size() fits in a uint64, so the top
		// half of the 128-bit block never carries a live bit), so the
		// permuted value always fits back into a uint64.
		outputOffset = new(big.Int).SetBytes(buf).Uint64()
	}

	t, ok := to.Unrank(outputOffset)
	if !ok {
		return "", newErrValue(KindInvalidOutputOffset, outputOffset)
	}
	if !utf8.Valid(t) {
		return "", newErrValue(KindInvalidStringBytes, t)
	}
	return string(t), nil
}
