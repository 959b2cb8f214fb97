// Package ghost implements a reversible dictionary-substitution byte
// compressor. It finds repeated byte sequences in a buffer and replaces them
// with single-byte tokens that do not occur anywhere in the buffer, recording
// each substitution as a dictionary layer so the transform can be inverted
// exactly.
//
// Compression runs in rounds. Each round counts every repeated subsequence up
// to a maximum length, picks the one whose replacement shrinks the container
// the most, allocates a free byte value as its token, and rewrites the buffer.
// Rounds continue until the requested iteration count is reached or no further
// reduction is possible (no repeated pattern, no free byte value, or no
// candidate with positive net savings). Early termination is not an error; the
// partial result is always a valid, decodable container.
//
// A container produced by a previous run can be compressed again: its existing
// layers are kept as an immutable prefix and new layers stack on top.
//
//	c, info, err := ghost.Compress(ctx, data, &ghost.Options{Iterations: -1, MaxLength: 8})
//	...
//	out, err := ghost.Decompress(c)
//
// Correctness contract is strict reversibility, not compression ratio: inputs
// without exploitable repetition, or without spare byte values, pass through
// unchanged.
package ghost
