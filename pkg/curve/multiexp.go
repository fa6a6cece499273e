package curve

import (
	"github.com/consensys/gnark-crypto/ecc"
)

// MultiExpG1 computes Σ scalars[i]·points[i] via the capability library's
// Pippenger/Bos-Coster multi-exponentiation. scalars is not mutated by
// this wrapper, but gnark-crypto's own implementation may still touch its
// backing array internally — callers in a loop should pass a fresh copy
// per call (§9 Open Question).
func MultiExpG1(points []G1Affine, scalars []Scalar) (G1Jac, error) {
	var out G1Jac
	if len(points) == 0 {
		return out, nil
	}
	_, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{})
	return out, err
}

// MultiExpG2 is the G2 analogue of MultiExpG1.
func MultiExpG2(points []G2Affine, scalars []Scalar) (G2Jac, error) {
	var out G2Jac
	if len(points) == 0 {
		return out, nil
	}
	_, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{})
	return out, err
}
