// Package rangeproof computes and verifies the range-evaluation points
// H_k used by downstream range-proof protocols (C10, C11).
package rangeproof

import (
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"srsceremony/pkg/curve"
)

func numCPUFloor4() int {
	n := runtime.NumCPU()
	if n < 4 {
		n = 4
	}
	return n
}

// ErrInsufficientSRS is returned when the SRS supplied to EvaluateRange
// has fewer points than the generator polynomial's degree requires.
var ErrInsufficientSRS = errors.New("rangeproof: srs shorter than generator polynomial requires")

// DefaultBatchSize is the chunk width used to split the (k, i) plane
// into cache-friendly batches when the caller doesn't pick one.
const DefaultBatchSize = 1 << 14

// EvaluateRange computes H_k for every k in [0, n], where n = len(g)-1 is
// the generator polynomial's degree, using the coefficient recurrence of
// §4.8: H_0 sums g_1..g_n directly against p[1..n]; H_k for k≠0 divides
// (g(X) - g(k)) by (X - k) via the recurrence q_{k,0} = g_0·(-k)^-1,
// q_{k,i} = (g_i - q_{k,i-1})·(-k)^-1, batched along i in chunks of
// batchSize so large inputs stay cache-friendly and each batch's scalars
// are freshly copied before the multi-exp call.
//
// progress, if non-nil, is invoked once per completed k with the total
// count processed so far.
func EvaluateRange(g []curve.Scalar, p []curve.G1Affine, batchSize int, progress func(done int64)) ([]curve.G1Affine, error) {
	if len(g) == 0 {
		return nil, nil
	}
	n := len(g) - 1
	if len(p) < n+1 {
		return nil, fmt.Errorf("%w: need %d points, have %d", ErrInsufficientSRS, n+1, len(p))
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	hJac := make([]curve.G1Jac, n+1)
	var done atomic.Int64

	workers := numCPUFloor4()
	sem := make(chan struct{}, workers)
	var eg errgroup.Group
	for k := 0; k <= n; k++ {
		k := k
		sem <- struct{}{}
		eg.Go(func() error {
			defer func() { <-sem }()
			var err error
			if k == 0 {
				hJac[k], err = evaluateH0(g, p, batchSize)
			} else {
				hJac[k], err = evaluateHk(g, p, uint64(k), batchSize)
			}
			if err != nil {
				return err
			}
			if progress != nil {
				progress(done.Add(1))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return curve.BatchNormalizeG1(hJac)
}

// evaluateH0 computes H_0 = Σ_{i=1}^{n} g_i · p[i], batched along i.
func evaluateH0(g []curve.Scalar, p []curve.G1Affine, batchSize int) (curve.G1Jac, error) {
	n := len(g) - 1
	var acc curve.G1Jac
	for s := 1; s <= n; s += batchSize {
		e := s + batchSize
		if e > n+1 {
			e = n + 1
		}
		scalars := append([]curve.Scalar(nil), g[s:e]...)
		partial, err := curve.MultiExpG1(p[s:e], scalars)
		if err != nil {
			return acc, err
		}
		acc.AddAssign(&partial)
	}
	return acc, nil
}

// evaluateHk computes H_k for k ≠ 0 via the quotient-coefficient
// recurrence, batched along i with the tail coefficient carried across
// batch boundaries as the seed fa.
func evaluateHk(g []curve.Scalar, p []curve.G1Affine, k uint64, batchSize int) (curve.G1Jac, error) {
	n := len(g) - 1

	var negK curve.Scalar
	negK.SetBigInt(new(big.Int).SetUint64(k))
	negK.Neg(&negK)
	var negKInv curve.Scalar
	negKInv.Inverse(&negK)

	var acc curve.G1Jac
	var fa curve.Scalar
	fa.SetZero()
	first := true

	for s := 0; s < n; s += batchSize {
		e := s + batchSize
		if e > n {
			e = n
		}
		L := e - s
		qs := make([]curve.Scalar, L)
		prev := fa
		for j := 0; j < L; j++ {
			idx := s + j
			var num curve.Scalar
			if first && j == 0 {
				num = g[idx]
			} else {
				num.Sub(&g[idx], &prev)
			}
			var q curve.Scalar
			q.Mul(&num, &negKInv)
			qs[j] = q
			prev = q
		}
		first = false
		fa = prev

		partial, err := curve.MultiExpG1(p[s:e], qs)
		if err != nil {
			return acc, err
		}
		acc.AddAssign(&partial)
	}
	return acc, nil
}
