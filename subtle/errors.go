package subtle

import "errors"

// Sentinel errors subtle returns; the parent fpe package maps these onto
// its own Kind taxonomy with errors.Is so that subtle stays independent of
// fpe (and importable on its own, the same layering tinkfpe already uses
// around the rest of this module).
var (
	errEvenRoundCount      = errors.New("subtle: round count must be odd")
	errInvalidKeyLength    = errors.New("subtle: invalid key length")
	errInvalidKeyExpansion = errors.New("subtle: invalid key expansion")
)

// IsEvenRoundCount reports whether err originated from an even round count
// passed to ExpandRoundKeys or NewFeistel.
func IsEvenRoundCount(err error) bool { return errors.Is(err, errEvenRoundCount) }

// IsInvalidKeyLength reports whether err originated from a too-short key
// passed to ExpandRoundKeys.
func IsInvalidKeyLength(err error) bool { return errors.Is(err, errInvalidKeyLength) }

// IsInvalidKeyExpansion reports whether err originated from an HKDF
// expansion failure in ExpandRoundKeys.
func IsInvalidKeyExpansion(err error) bool { return errors.Is(err, errInvalidKeyExpansion) }
