package ghost

// freeToken returns the numerically smallest byte value that does not occur
// anywhere in buf. ok is false when all 256 values are present, in which case
// no unambiguous substitution token exists. Picking the smallest free value
// keeps output reproducible across runs on identical input.
func freeToken(buf []byte) (token byte, ok bool) {
	var present [256]bool
	for _, b := range buf {
		present[b] = true
	}
	for v := 0; v < 256; v++ {
		if !present[v] {
			return byte(v), true
		}
	}
	return 0, false
}
