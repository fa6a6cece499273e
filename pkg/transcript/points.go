package transcript

import (
	"srsceremony/pkg/curve"
)

func encodeG1(p curve.G1Affine, dst []byte) {
	x := p.X.Bytes()
	y := p.Y.Bytes()
	copy(dst[0:32], x[:])
	copy(dst[32:64], y[:])
}

func decodeG1(src []byte) (curve.G1Affine, error) {
	var p curve.G1Affine
	p.X.SetBytes(src[0:32])
	p.Y.SetBytes(src[32:64])
	if p.IsInfinity() || !p.IsOnCurve() {
		return p, ErrInvalidPoint
	}
	return p, nil
}

func encodeG2(p curve.G2Affine, dst []byte) {
	x0 := p.X.A0.Bytes()
	x1 := p.X.A1.Bytes()
	y0 := p.Y.A0.Bytes()
	y1 := p.Y.A1.Bytes()
	copy(dst[0:32], x0[:])
	copy(dst[32:64], x1[:])
	copy(dst[64:96], y0[:])
	copy(dst[96:128], y1[:])
}

func decodeG2(src []byte) (curve.G2Affine, error) {
	var p curve.G2Affine
	p.X.A0.SetBytes(src[0:32])
	p.X.A1.SetBytes(src[32:64])
	p.Y.A0.SetBytes(src[64:96])
	p.Y.A1.SetBytes(src[96:128])
	if p.IsInfinity() || !p.IsOnCurve() {
		return p, ErrInvalidPoint
	}
	return p, nil
}
