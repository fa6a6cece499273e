package curve

import (
	"runtime"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/sync/errgroup"
)

// RatioG1 and RatioG2 hold the two aggregated multi-exponentiation results
// produced by same-ratio preprocessing (§4.6.1): the "numerator" and
// "denominator" of a powering sequence under one random challenge.
type RatioG1 struct {
	LHS, RHS G1Jac
}

type RatioG2 struct {
	LHS, RHS G2Jac
}

func numWorkers(n int) int {
	w := runtime.NumCPU()
	if w < 4 {
		w = 4
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// challengePowers returns z^1, z^2, ..., z^n as a contiguous scalar slice.
func challengePowers(z Scalar, n int) []Scalar {
	out := make([]Scalar, n)
	if n == 0 {
		return out
	}
	out[0] = z
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], &z)
	}
	return out
}

// SameRatioPreprocessG1 draws a random challenge z and computes
//
//	lhs = Σ z^{i+1}·points[i],  rhs = Σ z^{i+1}·points[i+1]
//
// over worker-partitioned ranges of points, as the first stage of a
// same-ratio check. Fewer than two points is the degenerate case and
// yields the identity on both sides without drawing a challenge.
func SameRatioPreprocessG1(points []G1Affine) (RatioG1, error) {
	var ratio RatioG1
	n := len(points) - 1
	if n <= 0 {
		return ratio, nil
	}
	z, err := RandomScalar()
	if err != nil {
		return ratio, err
	}
	scalars := challengePowers(z, n)

	workers := numWorkers(n)
	chunk := (n + workers - 1) / workers
	lhsParts := make([]G1Jac, workers)
	rhsParts := make([]G1Jac, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			cfg := ecc.MultiExpConfig{}
			lhsScalars := append([]Scalar(nil), scalars[start:end]...)
			if _, err := lhsParts[w].MultiExp(points[start:end], lhsScalars, cfg); err != nil {
				return err
			}
			rhsScalars := append([]Scalar(nil), scalars[start:end]...)
			if _, err := rhsParts[w].MultiExp(points[start+1:end+1], rhsScalars, cfg); err != nil {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ratio, err
	}
	for w := 0; w < workers; w++ {
		ratio.LHS.AddAssign(&lhsParts[w])
		ratio.RHS.AddAssign(&rhsParts[w])
	}
	return ratio, nil
}

// SameRatioPreprocessG2 is the G2 analogue of SameRatioPreprocessG1.
func SameRatioPreprocessG2(points []G2Affine) (RatioG2, error) {
	var ratio RatioG2
	n := len(points) - 1
	if n <= 0 {
		return ratio, nil
	}
	z, err := RandomScalar()
	if err != nil {
		return ratio, err
	}
	scalars := challengePowers(z, n)

	workers := numWorkers(n)
	chunk := (n + workers - 1) / workers
	lhsParts := make([]G2Jac, workers)
	rhsParts := make([]G2Jac, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			cfg := ecc.MultiExpConfig{}
			lhsScalars := append([]Scalar(nil), scalars[start:end]...)
			if _, err := lhsParts[w].MultiExp(points[start:end], lhsScalars, cfg); err != nil {
				return err
			}
			rhsScalars := append([]Scalar(nil), scalars[start:end]...)
			if _, err := rhsParts[w].MultiExp(points[start+1:end+1], rhsScalars, cfg); err != nil {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ratio, err
	}
	for w := 0; w < workers; w++ {
		ratio.LHS.AddAssign(&lhsParts[w])
		ratio.RHS.AddAssign(&rhsParts[w])
	}
	return ratio, nil
}

// SameRatio tests e(-g1.lhs, g2.lhs)·e(g1.rhs, g2.rhs) = 1 via a double
// Miller loop and one final exponentiation, collapsing what would
// otherwise be N individual pairing checks into two.
func SameRatio(g1 RatioG1, g2 RatioG2) (bool, error) {
	var lhsAff, rhsAff G1Affine
	lhsAff.FromJacobian(&g1.LHS)
	rhsAff.FromJacobian(&g1.RHS)
	lhsAff.Neg(&lhsAff)

	var g2LhsAff, g2RhsAff G2Affine
	g2LhsAff.FromJacobian(&g2.LHS)
	g2RhsAff.FromJacobian(&g2.RHS)

	return bn254.PairingCheck(
		[]G1Affine{lhsAff, rhsAff},
		[]G2Affine{g2LhsAff, g2RhsAff},
	)
}
