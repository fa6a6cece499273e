package rangeproof

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"srsceremony/pkg/curve"
	"srsceremony/pkg/generator"
)

// buildTestSRS returns p[0..n] = x^0·G1, x^1·G1, ..., x^n·G1.
func buildTestSRS(t *testing.T, x curve.Scalar, n int) []curve.G1Affine {
	t.Helper()
	gen := curve.G1GeneratorJac()
	out := make([]curve.G1Affine, n+1)
	var xPow big.Int
	xPow.SetInt64(1)
	xBig := curve.ScalarToBigInt(&x)
	mod := scalarModulusForTest()
	for i := 0; i <= n; i++ {
		jac := curve.ExpG1(&gen, &xPow)
		out[i].FromJacobian(&jac)
		xPow.Mul(&xPow, xBig)
		xPow.Mod(&xPow, mod)
	}
	return out
}

func scalarModulusForTest() *big.Int {
	return fr.Modulus()
}

// S6 — Range evaluator: H_k computed with batch sizes 1, 2, 4, 8 (16, 8, 4
// and 2 batches over a degree-16 polynomial) are identical.
func TestEvaluateRangeBatchingIsConsistent(t *testing.T) {
	const degree = 16
	g := generator.BuildGeneratorPolynomial(degree - 1) // degree "degree" polynomial
	require.Len(t, g, degree+1)

	x, err := curve.RandomScalar()
	require.NoError(t, err)
	p := buildTestSRS(t, x, degree)

	var reference []curve.G1Affine
	for _, batch := range []int{1, 2, 4, 8} {
		h, err := EvaluateRange(g, p, batch, nil)
		require.NoError(t, err)
		require.Len(t, h, degree+1)
		if reference == nil {
			reference = h
			continue
		}
		for i := range h {
			require.True(t, reference[i].Equal(&h[i]), "batch size %d diverged at k=%d", batch, i)
		}
	}
}

// Property 7: H_k satisfies x·H_k − k·H_k = H_0, checked via the pairing
// aggregation of VerifyRangeSet with τ2 = x·G2 and h = H_0.
func TestVerifyRangeSetAcceptsGenuineEvaluation(t *testing.T) {
	const degree = 8
	g := generator.BuildGeneratorPolynomial(degree - 1)
	x, err := curve.RandomScalar()
	require.NoError(t, err)
	p := buildTestSRS(t, x, degree)

	h, err := EvaluateRange(g, p, 3, nil)
	require.NoError(t, err)
	require.Len(t, h, degree+1)

	g2Gen := curve.G2GeneratorJac()
	tau2Jac := curve.ExpG2(&g2Gen, curve.ScalarToBigInt(&x))
	var tau2 curve.G2Affine
	tau2.FromJacobian(&tau2Jac)

	ok, err := VerifyRangeSet(h, tau2, h[0])
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRangeSetRejectsTamperedPoint(t *testing.T) {
	const degree = 8
	g := generator.BuildGeneratorPolynomial(degree - 1)
	x, err := curve.RandomScalar()
	require.NoError(t, err)
	p := buildTestSRS(t, x, degree)

	h, err := EvaluateRange(g, p, 3, nil)
	require.NoError(t, err)

	g2Gen := curve.G2GeneratorJac()
	tau2Jac := curve.ExpG2(&g2Gen, curve.ScalarToBigInt(&x))
	var tau2 curve.G2Affine
	tau2.FromJacobian(&tau2Jac)

	tampered := append([]curve.G1Affine(nil), h...)
	tampered[3] = p[0] // replace one H_k with an unrelated point

	ok, err := VerifyRangeSet(tampered, tau2, h[0])
	if err == nil {
		require.False(t, ok)
	} else {
		require.ErrorIs(t, err, ErrRangeSetInvalid)
	}
}
