package ghost

import "errors"

// Sentinel errors. Terminal round conditions (no candidate, no free token, no
// gain) are not errors; they are reported as a StopReason on the RunInfo.
var (
	// ErrInvalidArgument is returned for out-of-range options
	// (Iterations < -1, MaxLength < 1) before any work begins.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidFormat is returned when container bytes are malformed or
	// truncated. No partial recovery is attempted.
	ErrInvalidFormat = errors.New("invalid container format")
	// ErrDecodeMismatch is returned when the decoded buffer does not match
	// the length and checksum recorded at compression time.
	ErrDecodeMismatch = errors.New("decoded data fails integrity check")
)
