// Package generator builds the generator polynomial G(X) = ∏(X − k) used
// by the range evaluator (C9), and persists it in the native on-disk
// format consumed by pkg/rangeproof.
package generator

import (
	"math/big"

	"srsceremony/pkg/curve"
)

// poly is a coefficient slice, low-degree first.
type poly []curve.Scalar

// polyMul computes the textbook convolution of a and b.
func polyMul(a, b poly) poly {
	if len(a) == 0 || len(b) == 0 {
		return poly{}
	}
	out := make(poly, len(a)+len(b)-1)
	for i := range out {
		out[i].SetZero()
	}
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			var term curve.Scalar
			term.Mul(&ai, &bj)
			out[i+j].Add(&out[i+j], &term)
		}
	}
	return out
}

// linearFactor returns the coefficients of (X − k), low-degree first:
// [−k, 1].
func linearFactor(k uint64) poly {
	var negK, one curve.Scalar
	negK.SetBigInt(new(big.Int).SetUint64(k))
	negK.Neg(&negK)
	one.SetOne()
	return poly{negK, one}
}

// constantOne is the padding polynomial used to round the factor count
// up to a power of two without changing the product.
func constantOne() poly {
	var one curve.Scalar
	one.SetOne()
	return poly{one}
}

// nextPowerOfTwo returns the smallest power of two ≥ n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// BuildGeneratorPolynomial computes the coefficients of
// G(X) = ∏_{k=0}^{n} (X − k), low-degree first, via logarithmic-depth
// pairwise convolution (§4.7): n+1 linear factors are padded to the next
// power of two with constant-1 polynomials, then combined in
// ⌈log2(N)⌉ rounds of pairwise multiplication.
func BuildGeneratorPolynomial(n uint64) []curve.Scalar {
	factorCount := int(n + 1)
	N := nextPowerOfTwo(factorCount)

	polys := make([]poly, N)
	for k := 0; k < factorCount; k++ {
		polys[k] = linearFactor(uint64(k))
	}
	for k := factorCount; k < N; k++ {
		polys[k] = constantOne()
	}

	for width := N; width > 1; width /= 2 {
		next := make([]poly, width/2)
		for i := 0; i < width/2; i++ {
			next[i] = polyMul(polys[2*i], polys[2*i+1])
		}
		polys = next
	}

	result := polys[0]
	for len(result) > 1 && result[len(result)-1].IsZero() {
		result = result[:len(result)-1]
	}
	out := make([]curve.Scalar, len(result))
	copy(out, result)
	return out
}
