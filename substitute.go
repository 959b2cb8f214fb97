package ghost

import "bytes"

// substitute rewrites buf with every non-overlapping occurrence of pattern
// replaced by token, scanning left to right. A position consumed by a match
// is not reconsidered, so overlapping occurrences are resolved greedily and
// applied can be lower than the extractor's occurrence count.
func substitute(buf, pattern []byte, token byte) (out []byte, applied int) {
	out = make([]byte, 0, len(buf))
	for i := 0; i < len(buf); {
		if len(buf)-i >= len(pattern) && bytes.Equal(buf[i:i+len(pattern)], pattern) {
			out = append(out, token)
			i += len(pattern)
			applied++
			continue
		}
		out = append(out, buf[i])
		i++
	}
	return out, applied
}
