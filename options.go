package ghost

import (
	"fmt"
	"runtime"
)

// Options configures a compression run.
type Options struct {
	// Iterations is the maximum number of substitution rounds to run;
	// -1 means unbounded (run until no further reduction is possible).
	Iterations int
	// MaxLength is the longest pattern length considered, in bytes (≥ 1).
	MaxLength int
	// Workers bounds the extractor's parallel per-length counting passes.
	// 0 means runtime.NumCPU.
	Workers int
}

// DefaultOptions returns options for an unbounded run with patterns up to
// 8 bytes.
func DefaultOptions() *Options {
	return &Options{Iterations: -1, MaxLength: 8}
}

// resolveOptions validates opts and fills in defaults. A nil opts means
// DefaultOptions.
func resolveOptions(opts *Options) (Options, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.Iterations < -1 {
		return o, fmt.Errorf("%w: iterations %d", ErrInvalidArgument, o.Iterations)
	}
	if o.MaxLength < 1 {
		return o, fmt.Errorf("%w: max length %d", ErrInvalidArgument, o.MaxLength)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o, nil
}
