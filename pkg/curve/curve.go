// Package curve wraps the BN254 (alt_bn128) field and group arithmetic
// supplied by gnark-crypto behind the small surface the ceremony needs:
// scalars, the two prime-order groups, fixed-base exponentiation, batch
// affine conversion, and the same-ratio pairing check. Everything in this
// package is a thin adapter — the actual field/group/pairing math is the
// capability library's, not ours.
package curve

import (
	"crypto/rand"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Scalar is an element of Fr, the prime-order scalar field of BN254.
type Scalar = fr.Element

// G1Affine, G1Jac, G2Affine, G2Jac re-export the curve's point
// representations so callers never need to import gnark-crypto directly.
type (
	G1Affine = bn254.G1Affine
	G1Jac    = bn254.G1Jac
	G2Affine = bn254.G2Affine
	G2Jac    = bn254.G2Jac
)

// RandomScalar draws a uniform element of Fr using a cryptographically
// secure source. This is the only place a participant's secret scalar is
// ever produced.
func RandomScalar() (Scalar, error) {
	var s Scalar
	if _, err := s.SetRandom(); err != nil {
		return s, err
	}
	return s, nil
}

// ScalarToBigInt returns the regular (non-Montgomery) big.Int value of s.
func ScalarToBigInt(s *Scalar) *big.Int {
	return s.BigInt(new(big.Int))
}

// G1Generator and G2Generator return the canonical generators of the two
// groups, in both affine and Jacobian form.
func G1Generator() G1Affine {
	_, _, g1, _ := bn254.Generators()
	return g1
}

func G2Generator() G2Affine {
	_, _, _, g2 := bn254.Generators()
	return g2
}

func G1GeneratorJac() G1Jac {
	g1, _, _, _ := bn254.Generators()
	return g1
}

func G2GeneratorJac() G2Jac {
	_, g2, _, _ := bn254.Generators()
	return g2
}

// ScalarFromReader draws a scalar from an arbitrary entropy source (or
// crypto/rand when r is nil), reducing 32 read bytes modulo the field
// order; a seeded reader makes the result deterministic.
func ScalarFromReader(r interface {
	Read(p []byte) (int, error)
}) (Scalar, error) {
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, fr.Bytes)
	if _, err := r.Read(buf); err != nil {
		return Scalar{}, err
	}
	var s Scalar
	s.SetBytes(buf)
	return s, nil
}
