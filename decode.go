package ghost

import (
	"bytes"
	"fmt"
)

// Decompress reconstructs the original buffer by undoing the container's
// layers in reverse creation order: every occurrence of a layer's token is
// replaced by its pattern. Replacement is unambiguous because the token was
// reserved absent from the buffer at encode time.
//
// The result is verified against the stored original length and XXH64 digest;
// a disagreement returns ErrDecodeMismatch rather than silently corrupt data.
func Decompress(c *Container) ([]byte, error) {
	buf := append([]byte(nil), c.Payload...)
	for i := len(c.Layers) - 1; i >= 0; i-- {
		l := c.Layers[i]
		if len(l.Pattern) == 0 {
			return nil, fmt.Errorf("%w: layer %d has empty pattern", ErrInvalidFormat, i)
		}
		buf = bytes.ReplaceAll(buf, []byte{l.Token}, l.Pattern)
	}
	if uint64(len(buf)) != c.origLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", ErrDecodeMismatch, len(buf), c.origLen)
	}
	if digestOf(buf) != c.digest {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrDecodeMismatch)
	}
	return buf, nil
}
