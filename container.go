package ghost

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	containerMagic   = "GHST"
	containerVersion = 1

	// Decode-time sanity bounds; a valid container can always be re-encoded
	// within them.
	maxLayerCount = 1 << 24
	maxPatternLen = 1 << 24
	maxPayloadLen = 1 << 32
)

// A Layer records one applied substitution: in the payload that follows it,
// every occurrence of Token stands for Pattern. Layers are appended in
// application order and never modified afterwards; decoding consumes them in
// reverse.
type Layer struct {
	// Token is the byte value that was absent from the buffer when the
	// substitution was applied.
	Token byte
	// Pattern is the byte sequence the token replaced (1..MaxLength bytes).
	Pattern []byte
	// MaxLength is the pattern-length limit in force for the run that
	// produced this layer. Recorded per layer so containers built from runs
	// with different limits stay self-describing.
	MaxLength int
}

// A Container is the persisted artifact: the ordered layer list, the final
// payload, and the length and XXH64 digest of the original buffer used to
// detect corruption on decode.
type Container struct {
	Layers  []Layer
	Payload []byte

	origLen uint64
	digest  uint64
}

// OriginalLen reports the size in bytes of the buffer the container was
// built from.
func (c *Container) OriginalLen() int { return int(c.origLen) }

// IsContainer reports whether data starts with the container magic marker.
// It distinguishes a previously produced archive from raw input bytes.
func IsContainer(data []byte) bool {
	return len(data) >= len(containerMagic) && string(data[:len(containerMagic)]) == containerMagic
}

// MarshalBinary serializes the container:
//
//	magic(4) | version(1) | layerCount(uvarint)
//	layerCount × [ maxLength(uvarint) | token(1) | patternLen(uvarint) | pattern ]
//	payloadLen(uvarint) | payload | originalLen(uvarint) | xxh64(8, LE)
//
// Layer order is significant and preserved exactly; decoding in forward order
// is not generally valid.
func (c *Container) MarshalBinary() ([]byte, error) {
	dst := make([]byte, 0, c.wireSize())
	dst = append(dst, containerMagic...)
	dst = append(dst, containerVersion)
	dst = binary.AppendUvarint(dst, uint64(len(c.Layers)))
	for i, l := range c.Layers {
		if len(l.Pattern) == 0 {
			return nil, fmt.Errorf("%w: layer %d has empty pattern", ErrInvalidFormat, i)
		}
		if l.MaxLength < len(l.Pattern) {
			return nil, fmt.Errorf("%w: layer %d pattern longer than its max length", ErrInvalidFormat, i)
		}
		dst = binary.AppendUvarint(dst, uint64(l.MaxLength))
		dst = append(dst, l.Token)
		dst = binary.AppendUvarint(dst, uint64(len(l.Pattern)))
		dst = append(dst, l.Pattern...)
	}
	dst = binary.AppendUvarint(dst, uint64(len(c.Payload)))
	dst = append(dst, c.Payload...)
	dst = binary.AppendUvarint(dst, c.origLen)
	dst = binary.LittleEndian.AppendUint64(dst, c.digest)
	return dst, nil
}

func (c *Container) wireSize() int {
	n := len(containerMagic) + 1 + uvarintLen(uint64(len(c.Layers)))
	for _, l := range c.Layers {
		n += layerWireSize(l.MaxLength, len(l.Pattern))
	}
	n += uvarintLen(uint64(len(c.Payload))) + len(c.Payload)
	n += uvarintLen(c.origLen) + 8
	return n
}

// ParseContainer deserializes container bytes. It fails with ErrInvalidFormat
// on a bad magic marker or version, truncation, a layer with a zero pattern
// length or one that runs past the available bytes, or trailing garbage.
func ParseContainer(data []byte) (*Container, error) {
	r := wireReader{buf: data}

	magic, err := r.bytes(len(containerMagic), "magic")
	if err != nil {
		return nil, err
	}
	if string(magic) != containerMagic {
		return nil, fmt.Errorf("%w: bad magic % x", ErrInvalidFormat, magic)
	}
	version, err := r.byte("version")
	if err != nil {
		return nil, err
	}
	if version != containerVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, version)
	}

	layerCount, err := r.uvarint("layer count")
	if err != nil {
		return nil, err
	}
	if layerCount > maxLayerCount {
		return nil, fmt.Errorf("%w: layer count %d too large", ErrInvalidFormat, layerCount)
	}

	c := &Container{}
	if layerCount > 0 {
		c.Layers = make([]Layer, 0, layerCount)
	}
	for i := uint64(0); i < layerCount; i++ {
		maxLength, err := r.uvarint("layer max length")
		if err != nil {
			return nil, err
		}
		if maxLength == 0 || maxLength > maxPatternLen {
			return nil, fmt.Errorf("%w: layer %d has max length %d", ErrInvalidFormat, i, maxLength)
		}
		token, err := r.byte("layer token")
		if err != nil {
			return nil, err
		}
		patternLen, err := r.uvarint("layer pattern length")
		if err != nil {
			return nil, err
		}
		if patternLen == 0 {
			return nil, fmt.Errorf("%w: layer %d has zero pattern length", ErrInvalidFormat, i)
		}
		if patternLen > maxLength {
			return nil, fmt.Errorf("%w: layer %d pattern length %d exceeds max length %d",
				ErrInvalidFormat, i, patternLen, maxLength)
		}
		pattern, err := r.bytes(int(patternLen), "layer pattern")
		if err != nil {
			return nil, err
		}
		c.Layers = append(c.Layers, Layer{
			Token:     token,
			Pattern:   append([]byte(nil), pattern...),
			MaxLength: int(maxLength),
		})
	}

	payloadLen, err := r.uvarint("payload length")
	if err != nil {
		return nil, err
	}
	if payloadLen > maxPayloadLen {
		return nil, fmt.Errorf("%w: payload length %d too large", ErrInvalidFormat, payloadLen)
	}
	payload, err := r.bytes(int(payloadLen), "payload")
	if err != nil {
		return nil, err
	}
	c.Payload = append([]byte(nil), payload...)

	c.origLen, err = r.uvarint("original length")
	if err != nil {
		return nil, err
	}
	digest, err := r.bytes(8, "checksum")
	if err != nil {
		return nil, err
	}
	c.digest = binary.LittleEndian.Uint64(digest)

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidFormat, r.remaining())
	}
	return c, nil
}

// wireReader is a cursor over container bytes. Every read reports truncation
// as ErrInvalidFormat with the name of the field being decoded.
type wireReader struct {
	buf []byte
	pos int
}

func (r *wireReader) remaining() int { return len(r.buf) - r.pos }

func (r *wireReader) bytes(n int, field string) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: truncated %s at offset %d", ErrInvalidFormat, field, r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *wireReader) byte(field string) (byte, error) {
	b, err := r.bytes(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *wireReader) uvarint(field string) (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad %s at offset %d", ErrInvalidFormat, field, r.pos)
	}
	r.pos += n
	return v, nil
}

func digestOf(data []byte) uint64 { return xxhash.Sum64(data) }
