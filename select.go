package ghost

import "bytes"

// layerOverhead is the fixed per-entry cost charged when scoring a
// substitution: the token byte plus the pattern-length byte that every
// dictionary entry costs regardless of its pattern.
const layerOverhead = 2

// savings is the estimated net effect of substituting a pattern:
// count*(length-1) bytes removed from the payload, minus the fixed entry
// overhead. It is an upper bound; the substitution pass recomputes the
// applied count after resolving overlaps.
func savings(c candidate) int {
	return c.count*(len(c.pattern)-1) - layerOverhead
}

// layerWireSize is the full encoded size of one dictionary entry:
// maxLength uvarint, token byte, pattern-length uvarint, pattern bytes.
func layerWireSize(maxLength, patternLen int) int {
	return uvarintLen(uint64(maxLength)) + 1 + uvarintLen(uint64(patternLen)) + patternLen
}

func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// selectCandidate picks the single best candidate across all lengths.
// Ordering is strict so selection is deterministic regardless of extractor
// output order: larger savings, then longer pattern, then lexicographically
// smaller pattern bytes, then smaller first offset. found is false when no
// candidate exists at all; a best with non-positive savings is still
// returned so the caller can distinguish "nothing repeats" from "nothing
// worth substituting".
func selectCandidate(perLength [][]candidate) (best candidate, bestSavings int, found bool) {
	for _, list := range perLength {
		for _, c := range list {
			s := savings(c)
			if !found || better(c, s, best, bestSavings) {
				best, bestSavings, found = c, s, true
			}
		}
	}
	return best, bestSavings, found
}

func better(c candidate, s int, best candidate, bestS int) bool {
	if s != bestS {
		return s > bestS
	}
	if len(c.pattern) != len(best.pattern) {
		return len(c.pattern) > len(best.pattern)
	}
	if d := bytes.Compare(c.pattern, best.pattern); d != 0 {
		return d < 0
	}
	return c.first < best.first
}
