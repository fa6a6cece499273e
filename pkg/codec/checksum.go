package codec

import (
	"bytes"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// ChecksumSize is the width in bytes of the trailing transcript digest.
const ChecksumSize = blake2b.Size // 64

// ErrChecksumMismatch is returned by ValidateChecksum when the trailing
// digest disagrees with a fresh computation over the message bytes.
var ErrChecksumMismatch = errors.New("codec: checksum mismatch")

// CreateChecksum returns the Blake2b-512 digest of message.
func CreateChecksum(message []byte) [ChecksumSize]byte {
	return blake2b.Sum512(message)
}

// ValidateChecksum recomputes the digest over buffer[0:messageLength] and
// compares it byte-for-byte against the ChecksumSize bytes that follow.
// buffer must be at least messageLength+ChecksumSize bytes long.
func ValidateChecksum(buffer []byte, messageLength int) error {
	if len(buffer) < messageLength+ChecksumSize {
		return errors.New("codec: buffer too short for checksum")
	}
	got := blake2b.Sum512(buffer[:messageLength])
	want := buffer[messageLength : messageLength+ChecksumSize]
	if !bytes.Equal(got[:], want) {
		return ErrChecksumMismatch
	}
	return nil
}
