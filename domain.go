package fpe

import "github.com/vladimir-ea/field-encryption/subtle"

// RegexDomain wraps a compiled, anchored regular expression as a finite
// language and exposes the rank/unrank bijection between that language and
// the integer interval [0, Size()), ordered by ascending byte-lexicographic
// order. It is the Go translation of original_source/domain.rs's
// RegexDomain, ported from a regex_automata-backed sparse DFA to the
// subtle.DFA this module builds over regexp/syntax.
type RegexDomain struct {
	dfa         *subtle.DFA
	size        uint64
	stateCount  map[int]uint64
	stateInputs map[int][]byte
}

// maxDomainSize bounds the in-memory uint64 representation of a domain's
// size. spec.md's 128-bit ceiling is honored at the wire-format level (the
// Feistel block is a 16-byte, i.e. 128-bit, big-endian integer in fpe.go);
// this narrower, 64-bit ceiling is this module's Open Question resolution
// for in-memory counters, documented in DESIGN.md: no regex this package
// can realistically enumerate needs more than 64 bits of state count.
const maxDomainSize = ^uint64(0)

// NewRegexDomain compiles pattern and walks its DFA once to build the
// rank/unrank tables, detecting infinite languages along the way.
func NewRegexDomain(pattern string) (*RegexDomain, error) {
	dfa, err := subtle.NewDFA(pattern)
	if err != nil {
		return nil, newErrWrap(KindAutomatonError, err)
	}

	d := &RegexDomain{
		dfa:         dfa,
		stateCount:  make(map[int]uint64),
		stateInputs: make(map[int][]byte),
	}

	size, err := d.scan(dfa.Start(), nil)
	if err != nil {
		return nil, err
	}
	d.size = size
	return d, nil
}

// scan performs the single depth-first walk spec.md §4.4.1 describes:
// for every state it records the ascending list of live input bytes and
// the number of strings accepted from that state, and fails with
// InfiniteRegex the moment the walk reaches a state already on the current
// DFS stack (a cycle among live states, which lets accepted strings be
// pumped to unbounded length).
func (d *RegexDomain) scan(s int, visiting []int) (uint64, error) {
	onStack := func(t int) bool {
		for _, v := range visiting {
			if v == t {
				return true
			}
		}
		return false
	}

	var count uint64
	var inputs []byte

	for b := 0; b < 256; b++ {
		t := d.dfa.Next(s, byte(b))
		if !d.dfa.IsDead(t) {
			inputs = append(inputs, byte(b))
		}

		if cached, ok := d.stateCount[t]; ok {
			count += cached
			continue
		}

		var local uint64
		if onStack(t) {
			return 0, newErr(KindInfiniteRegex)
		}
		if d.dfa.IsMatch(t) {
			local = 1
		}
		if !d.dfa.IsDead(t) {
			sub, err := d.scan(t, append(visiting, t))
			if err != nil {
				return 0, err
			}
			if local > maxDomainSize-sub {
				return 0, newErr(KindDomainTooBig)
			}
			local += sub
		}
		d.stateCount[t] = local
		if count > maxDomainSize-local {
			return 0, newErr(KindDomainTooBig)
		}
		count += local
	}

	d.stateInputs[s] = inputs
	return count, nil
}

// Size returns the number of distinct byte strings accepted.
func (d *RegexDomain) Size() uint64 { return d.size }

// Rank returns the lexicographic index of w in L(R), and false if w is not
// accepted. This is spec.md §4.4.2's offset, ported from
// original_source/domain.rs's offset_inner: ascending bytes smaller than
// the one actually present in w contribute their whole subtree's count;
// the matching byte recurses one position further into w.
func (d *RegexDomain) Rank(w []byte) (uint64, bool) {
	return d.rank(d.dfa.Start(), 0, w, 0)
}

func (d *RegexDomain) rank(s int, count uint64, w []byte, index int) (uint64, bool) {
	if index >= len(w) {
		return 0, false
	}
	for _, b := range d.stateInputs[s] {
		t := d.dfa.Next(s, b)
		if b == w[index] {
			index++
			if index == len(w) {
				if d.dfa.IsMatch(t) {
					return count, true
				}
				return 0, false
			}
			if d.dfa.IsMatch(t) {
				count++
			}
			return d.rank(t, count, w, index)
		}
		count += d.stateCount[t]
	}
	return 0, false
}

// Unrank returns the offset-th string in L(R) in ascending lexicographic
// order, and false if offset is not in [0, Size()). This is spec.md
// §4.4.3's nth: the string is built in reverse (each recursive call
// appends its byte on return) and reversed once at the top, the same
// tail-friendly shape as original_source/domain.rs's nth_inner.
func (d *RegexDomain) Unrank(offset uint64) ([]byte, bool) {
	if offset >= d.size {
		return nil, false
	}
	_, w, ok := d.unrank(d.dfa.Start(), offset, 0)
	if !ok {
		return nil, false
	}
	for i, j := 0, len(w)-1; i < j; i, j = i+1, j-1 {
		w[i], w[j] = w[j], w[i]
	}
	return w, true
}

func (d *RegexDomain) unrank(s int, offset, count uint64) (uint64, []byte, bool) {
	for _, b := range d.stateInputs[s] {
		t := d.dfa.Next(s, b)
		if cached := d.stateCount[t]; offset > count+cached {
			count += cached
			continue
		}
		if d.dfa.IsMatch(t) {
			if count == offset {
				return count, []byte{b}, true
			}
			count++
		}
		sub, tail, ok := d.unrank(t, offset, count)
		if ok {
			return sub, append(tail, b), true
		}
		count = sub
	}
	return count, nil, false
}
