// Package codec implements the low-level byte-order and checksum
// primitives the transcript format is built on: fixed-width big-endian
// integers and a Blake2b-512 digest over a byte range.
package codec

import "encoding/binary"

// Uint256Size is the width in bytes of a serialized 256-bit unsigned
// integer (four 64-bit limbs).
const Uint256Size = 32

// WriteUint256BE writes v (four 64-bit limbs, least-significant first, as
// produced by gnark-crypto's Bits()) into a 32-byte big-endian buffer:
// limb[3] lands at offset 0, limb[0] at offset 24.
func WriteUint256BE(limbs [4]uint64, dst []byte) {
	_ = dst[31]
	for i := 0; i < 4; i++ {
		binary.BigEndian.PutUint64(dst[(3-i)*8:], limbs[i])
	}
}

// ReadUint256BE is the inverse of WriteUint256BE.
func ReadUint256BE(src []byte) (limbs [4]uint64) {
	_ = src[31]
	for i := 0; i < 4; i++ {
		limbs[i] = binary.BigEndian.Uint64(src[(3-i)*8:])
	}
	return limbs
}

// WriteUint32BE writes a manifest field in network byte order.
func WriteUint32BE(v uint32, dst []byte) {
	binary.BigEndian.PutUint32(dst, v)
}

// ReadUint32BE is the inverse of WriteUint32BE.
func ReadUint32BE(src []byte) uint32 {
	return binary.BigEndian.Uint32(src)
}
