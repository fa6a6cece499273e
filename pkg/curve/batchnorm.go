package curve

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// BatchNormalizeG1 converts a slice of Jacobian G1 points to affine form
// using Montgomery's batch-inversion trick: a single field inversion
// services the whole batch instead of one inversion per point. points is
// consumed (its Z coordinates end up set to one) and the affine results
// are returned in a fresh slice.
func BatchNormalizeG1(points []G1Jac) ([]G1Affine, error) {
	n := len(points)
	out := make([]G1Affine, n)
	if n == 0 {
		return out, nil
	}

	prefix := make([]fp.Element, n)
	prefix[0].SetOne()
	for i := 1; i < n; i++ {
		if points[i-1].Z.IsZero() {
			return nil, ErrZeroCoordinate
		}
		prefix[i].Mul(&prefix[i-1], &points[i-1].Z)
	}
	if points[n-1].Z.IsZero() {
		return nil, ErrZeroCoordinate
	}

	var acc fp.Element
	acc.Mul(&prefix[n-1], &points[n-1].Z)
	acc.Inverse(&acc)

	for i := n - 1; i >= 0; i-- {
		var zInv, zzInv fp.Element
		zInv.Mul(&acc, &prefix[i])
		zzInv.Square(&zInv)

		out[i].X.Mul(&points[i].X, &zzInv)
		out[i].Y.Mul(&points[i].Y, &zzInv)
		out[i].Y.Mul(&out[i].Y, &zInv)

		acc.Mul(&acc, &points[i].Z)
		points[i].Z.SetOne()
	}
	return out, nil
}

// BatchNormalizeG2 is the G2 analogue of BatchNormalizeG1, operating over
// the quadratic extension field Fqe = bn254.E2 instead of Fq.
func BatchNormalizeG2(points []G2Jac) ([]G2Affine, error) {
	n := len(points)
	out := make([]G2Affine, n)
	if n == 0 {
		return out, nil
	}

	prefix := make([]bn254.E2, n)
	prefix[0].SetOne()
	for i := 1; i < n; i++ {
		if points[i-1].Z.IsZero() {
			return nil, ErrZeroCoordinate
		}
		prefix[i].Mul(&prefix[i-1], &points[i-1].Z)
	}
	if points[n-1].Z.IsZero() {
		return nil, ErrZeroCoordinate
	}

	var acc bn254.E2
	acc.Mul(&prefix[n-1], &points[n-1].Z)
	acc.Inverse(&acc)

	for i := n - 1; i >= 0; i-- {
		var zInv, zzInv bn254.E2
		zInv.Mul(&acc, &prefix[i])
		zzInv.Square(&zInv)

		out[i].X.Mul(&points[i].X, &zzInv)
		out[i].Y.Mul(&points[i].Y, &zzInv)
		out[i].Y.Mul(&out[i].Y, &zInv)

		acc.Mul(&acc, &points[i].Z)
		points[i].Z.SetOne()
	}
	return out, nil
}
