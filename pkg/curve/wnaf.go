package curve

import "math/big"

// ExpG1 computes scalar·base via gnark-crypto's ScalarMultiplication and
// returns the result in Jacobian form. base is not mutated.
func ExpG1(base *G1Jac, scalar *big.Int) G1Jac {
	var out G1Jac
	out.ScalarMultiplication(base, scalar)
	return out
}

// ExpG2 is the G2 analogue of ExpG1.
func ExpG2(base *G2Jac, scalar *big.Int) G2Jac {
	var out G2Jac
	out.ScalarMultiplication(base, scalar)
	return out
}
