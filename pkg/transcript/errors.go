package transcript

import "errors"

// ErrFormat covers a truncated file, a manifest shorter than ManifestSize,
// or a declared point count that does not fit in the remaining bytes.
var ErrFormat = errors.New("transcript: malformed file")

// ErrInvalidPoint is returned when a decoded G1 or G2 point fails its
// curve equation, or is the point at infinity where a finite point was
// expected.
var ErrInvalidPoint = errors.New("transcript: invalid point")
