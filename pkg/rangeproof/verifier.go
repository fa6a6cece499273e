package rangeproof

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/sync/errgroup"

	"srsceremony/pkg/curve"
)

// ErrRangeSetInvalid is returned when the aggregated range-verifier
// pairing check fails.
var ErrRangeSetInvalid = errors.New("rangeproof: range set invalid")

// ErrInvalidShardPoint is returned when a shard contains a point that is
// off-curve or at infinity.
var ErrInvalidShardPoint = errors.New("rangeproof: invalid point in range shard")

// ShardSize is the fixed number of points per on-disk range shard.
const ShardSize = 1000

// compressedG1Size is gnark-crypto's compressed G1 encoding width: the
// x-coordinate with the y-parity bit folded into its top bit. This is
// deliberately the opposite trust boundary from pkg/transcript's
// uncompressed 64-byte points — the two formats are never interchanged.
const compressedG1Size = 32

// ShardPath returns the conventional path of range shard n within dir.
func ShardPath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("range_shard_%d.dat", n))
}

// ReadRangeShards loads a sequence of fixed-size compressed-point shards
// in parallel, decompressing and on-curve-checking every point. total is
// the expected total point count; shards are read in increasing index
// order but loaded concurrently.
func ReadRangeShards(dir string, total int) ([]curve.G1Affine, error) {
	if total <= 0 {
		return nil, nil
	}
	numShards := (total + ShardSize - 1) / ShardSize
	out := make([]curve.G1Affine, total)

	var eg errgroup.Group
	for s := 0; s < numShards; s++ {
		s := s
		eg.Go(func() error {
			start := s * ShardSize
			end := start + ShardSize
			if end > total {
				end = total
			}
			pts, err := readShardFile(ShardPath(dir, s), end-start)
			if err != nil {
				return err
			}
			copy(out[start:end], pts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readShardFile(path string, count int) ([]curve.G1Affine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) != count*compressedG1Size {
		return nil, fmt.Errorf("%w: %s has %d bytes, want %d", ErrInvalidShardPoint, path, len(data), count*compressedG1Size)
	}
	out := make([]curve.G1Affine, count)
	for i := 0; i < count; i++ {
		if err := out[i].Unmarshal(data[i*compressedG1Size : (i+1)*compressedG1Size]); err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrInvalidShardPoint, i, err)
		}
		if out[i].IsInfinity() || !out[i].IsOnCurve() {
			return nil, fmt.Errorf("%w: point %d is infinity or off-curve", ErrInvalidShardPoint, i)
		}
	}
	return out, nil
}

// WriteRangeShards splits points into fixed ShardSize-width compressed
// shard files under dir, the on-disk counterpart ReadRangeShards loads.
func WriteRangeShards(dir string, points []curve.G1Affine) error {
	numShards := (len(points) + ShardSize - 1) / ShardSize
	for s := 0; s < numShards; s++ {
		start := s * ShardSize
		end := start + ShardSize
		if end > len(points) {
			end = len(points)
		}
		buf := make([]byte, (end-start)*compressedG1Size)
		for i, p := range points[start:end] {
			b := p.Bytes()
			copy(buf[i*compressedG1Size:], b[:])
		}
		if err := os.WriteFile(ShardPath(dir, s), buf, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// VerifyRangeSet implements §4.9: for every k, R'_k = k·R_k + h; a random
// challenge α aggregates L = Σ α^{i+1}·R_i and R = Σ α^{i+1}·R'_i, and the
// whole set is valid iff e(-L, τ2)·e(R, G2::one()) = 1 — one double-Miller
// pairing regardless of how many points were published.
func VerifyRangeSet(points []curve.G1Affine, tau2 curve.G2Affine, h curve.G1Affine) (bool, error) {
	n := len(points)
	if n == 0 {
		return false, ErrRangeSetInvalid
	}

	primed := make([]curve.G1Affine, n)
	hJac := curve.G1Jac{}
	hJac.FromAffine(&h)
	for k, r := range points {
		var rJac curve.G1Jac
		rJac.FromAffine(&r)
		scaled := curve.ExpG1(&rJac, big.NewInt(int64(k)))
		scaled.AddAssign(&hJac)
		primed[k].FromJacobian(&scaled)
	}

	alpha, err := curve.RandomScalar()
	if err != nil {
		return false, err
	}
	powers := make([]curve.Scalar, n)
	powers[0] = alpha
	for i := 1; i < n; i++ {
		powers[i].Mul(&powers[i-1], &alpha)
	}

	lScalars := append([]curve.Scalar(nil), powers...)
	lJac, err := curve.MultiExpG1(points, lScalars)
	if err != nil {
		return false, err
	}
	rScalars := append([]curve.Scalar(nil), powers...)
	rJac, err := curve.MultiExpG1(primed, rScalars)
	if err != nil {
		return false, err
	}

	var lAff, rAff curve.G1Affine
	lAff.FromJacobian(&lJac)
	lAff.Neg(&lAff)
	rAff.FromJacobian(&rJac)

	ok, err := bn254.PairingCheck(
		[]curve.G1Affine{lAff, rAff},
		[]curve.G2Affine{tau2, curve.G2Generator()},
	)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrRangeSetInvalid
	}
	return true, nil
}
