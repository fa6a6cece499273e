package ceremony

import (
	"math/big"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"srsceremony/pkg/curve"
)

// workerCount returns hardware_concurrency with a floor of 4, matching
// the historical setup tool's thread-pool sizing.
func workerCount() int {
	n := runtime.NumCPU()
	if n < 4 {
		n = 4
	}
	return n
}

// partition splits [0, total) into up to workers contiguous ranges, with
// any remainder folded into the last range.
func partition(total, workers int) [][2]int {
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}
	chunk := total / workers
	ranges := make([][2]int, 0, workers)
	start := 0
	for w := 0; w < workers; w++ {
		end := start + chunk
		if w == workers-1 {
			end = total
		}
		if start < end {
			ranges = append(ranges, [2]int{start, end})
		}
		start = end
	}
	return ranges
}

// scalarPow computes y^k using the field's own modular exponentiation,
// the idiom the corpus uses (e.g. `ginv.Exp(accGInv, bm)` in the FRI
// verifier) rather than a round trip through math/big and the field
// modulus.
func scalarPow(y curve.Scalar, k uint64) curve.Scalar {
	var out curve.Scalar
	out.Exp(y, new(big.Int).SetUint64(k))
	return out
}

// ExponentiateG1 raises each of points[i] to the power y^(globalOffset+i+1),
// partitioning the work across a fixed worker-thread pool. progress is
// bumped by weight once per point processed across every worker, live as
// the job runs, so the driver can read a moving count while it works.
func ExponentiateG1(points []curve.G1Jac, y curve.Scalar, globalOffset uint64, weight int64, progress *atomic.Int64) error {
	ranges := partition(len(points), workerCount())
	var g errgroup.Group
	for _, r := range ranges {
		start, end := r[0], r[1]
		g.Go(func() error {
			acc := scalarPow(y, globalOffset+uint64(start)+1)
			accBig := curve.ScalarToBigInt(&acc)
			for i := start; i < end; i++ {
				points[i] = curve.ExpG1(&points[i], accBig)
				acc.Mul(&acc, &y)
				accBig = curve.ScalarToBigInt(&acc)
				progress.Add(weight)
			}
			return nil
		})
	}
	return g.Wait()
}

// ExponentiateG2 is the G2 analogue of ExponentiateG1.
func ExponentiateG2(points []curve.G2Jac, y curve.Scalar, globalOffset uint64, weight int64, progress *atomic.Int64) error {
	ranges := partition(len(points), workerCount())
	var g errgroup.Group
	for _, r := range ranges {
		start, end := r[0], r[1]
		g.Go(func() error {
			acc := scalarPow(y, globalOffset+uint64(start)+1)
			accBig := curve.ScalarToBigInt(&acc)
			for i := start; i < end; i++ {
				points[i] = curve.ExpG2(&points[i], accBig)
				acc.Mul(&acc, &y)
				accBig = curve.ScalarToBigInt(&acc)
				progress.Add(weight)
			}
			return nil
		})
	}
	return g.Wait()
}
