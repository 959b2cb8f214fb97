package ghost

import "context"

// A StopReason explains why a compression run ended. None of these are
// errors; the run always returns the best partial result obtained.
type StopReason int

const (
	// StopRounds: the requested number of rounds completed.
	StopRounds StopReason = iota
	// StopNoCandidate: no subsequence up to the length limit repeats.
	StopNoCandidate
	// StopNoCapacity: all 256 byte values occur in the buffer, so no
	// unambiguous token can be allocated.
	StopNoCapacity
	// StopNoGain: the best remaining substitution would not shrink the
	// container.
	StopNoGain
	// StopCanceled: the context was canceled between rounds.
	StopCanceled
)

func (s StopReason) String() string {
	switch s {
	case StopRounds:
		return "rounds completed"
	case StopNoCandidate:
		return "no repeated pattern"
	case StopNoCapacity:
		return "no free byte value"
	case StopNoGain:
		return "no size gain"
	case StopCanceled:
		return "canceled"
	}
	return "unknown"
}

// RunInfo reports the outcome of one compression run.
type RunInfo struct {
	// Rounds is the number of substitution rounds actually executed, which
	// may be less than requested.
	Rounds int
	// Stop is the reason the run ended.
	Stop StopReason
}

// Compress builds a container from raw input bytes. The input is copied; the
// caller keeps ownership of data. Terminal round conditions are reported via
// RunInfo, not as errors: a run that could not reduce the input at all
// succeeds with zero rounds and a payload equal to the input.
//
// Cancellation is cooperative and checked only between rounds; a canceled run
// returns the layers accumulated so far as a fully decodable container.
func Compress(ctx context.Context, data []byte, opts *Options) (*Container, *RunInfo, error) {
	c := &Container{
		Payload: append([]byte(nil), data...),
		origLen: uint64(len(data)),
		digest:  digestOf(data),
	}
	info, err := run(ctx, c, opts)
	if err != nil {
		return nil, nil, err
	}
	return c, info, nil
}

// Recompress stacks further layers onto an existing container, treating its
// payload as the new input buffer. The existing layer list is an immutable
// prefix; new layers append after it, so gains from separate runs (possibly
// with different options) accumulate in one reversible history. The original
// buffer's integrity data is preserved verbatim.
func Recompress(ctx context.Context, c *Container, opts *Options) (*RunInfo, error) {
	return run(ctx, c, opts)
}

func run(ctx context.Context, c *Container, opts *Options) (*RunInfo, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	info := &RunInfo{Stop: StopRounds}
	for round := 0; o.Iterations < 0 || round < o.Iterations; round++ {
		if ctx.Err() != nil {
			info.Stop = StopCanceled
			break
		}
		stop, applied := step(c, o)
		if !applied {
			info.Stop = stop
			break
		}
		info.Rounds++
	}
	return info, nil
}

// step runs one round: extract, select, allocate, substitute. It appends one
// layer and shrinks the payload, or reports the terminal condition hit.
// Terminal conditions cannot improve without new data, so the driver stops on
// the first one.
func step(c *Container, o Options) (StopReason, bool) {
	perLength := extractRepeats(c.Payload, o.MaxLength, o.Workers)

	best, estimated, found := selectCandidate(perLength)
	if !found {
		return StopNoCandidate, false
	}
	if estimated <= 0 {
		return StopNoGain, false
	}

	token, ok := freeToken(c.Payload)
	if !ok {
		return StopNoCapacity, false
	}

	// The estimate counted overlapping occurrences; only the applied count
	// from the actual pass justifies keeping the layer.
	shrunk, applied := substitute(c.Payload, best.pattern, token)
	if applied < 2 || applied*(len(best.pattern)-1) <= layerOverhead {
		return StopNoGain, false
	}

	c.Payload = shrunk
	c.Layers = append(c.Layers, Layer{
		Token:     token,
		Pattern:   best.pattern,
		MaxLength: o.MaxLength,
	})
	return StopRounds, true
}
