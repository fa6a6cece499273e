package ceremony

import "errors"

var (
	// ErrChainBroken is returned when the same-ratio pairing check between
	// the previous transcript's anchor and the current transcript's lead
	// point fails.
	ErrChainBroken = errors.New("ceremony: chain linkage broken")

	// ErrG1PowerSequenceInvalid and ErrG2PowerSequenceInvalid are returned
	// when a transcript's own G1 or G2 point sequence fails the
	// same-ratio powering check.
	ErrG1PowerSequenceInvalid = errors.New("ceremony: g1 power sequence invalid")
	ErrG2PowerSequenceInvalid = errors.New("ceremony: g2 power sequence invalid")

	// ErrManifestInvalid is returned when a manifest field violates the
	// chain or set invariants.
	ErrManifestInvalid = errors.New("ceremony: manifest invariant violated")

	// ErrSetIncomplete is returned when a full ceremony's shard manifests
	// do not sum to the declared totals.
	ErrSetIncomplete = errors.New("ceremony: manifest set incomplete")
)
