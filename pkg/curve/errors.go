package curve

import "errors"

// ErrZeroCoordinate is returned by the batch normalizer when a point's Z
// coordinate is zero before the shared inversion runs — the caller handed
// it a point at infinity where a finite one was expected.
var ErrZeroCoordinate = errors.New("curve: zero Z coordinate in batch normalization")
