package generator

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/mmap"

	"srsceremony/pkg/curve"
)

// The generator-polynomial cache (§6.2) is produced and consumed by the
// same build on the same architecture; it is not a portable wire format
// like the transcript. An eight-byte magic tag guards against the
// transcript's big-endian format ever being confused with this one, per
// the "endianness hazards" design note.
const (
	fileMagic   = "SRSGENv1"
	scalarWidth = 32
)

// ErrGeneratorFormat is returned when a generator-polynomial file is
// truncated or carries the wrong magic tag.
var ErrGeneratorFormat = errors.New("generator: malformed file")

// WriteGeneratorFile writes coeffs as a tagged, length-prefixed array.
// Coefficients are stored via Scalar's regular (non-Montgomery) transform
// so the file never needs knowledge of the field implementation's
// internal limb layout to be re-read — only the host's own build ever
// opens it, per §6.2, but the encoding itself stays simple.
func WriteGeneratorFile(path string, coeffs []curve.Scalar) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(fileMagic); err != nil {
		return err
	}
	var lenBuf [8]byte
	binary.NativeEndian.PutUint64(lenBuf[:], uint64(len(coeffs)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	var buf [scalarWidth]byte
	for _, c := range coeffs {
		b := c.Bytes()
		copy(buf[:], b[:])
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadGeneratorFile reads back a file written by WriteGeneratorFile.
func ReadGeneratorFile(path string) ([]curve.Scalar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < len(fileMagic)+8 {
		return nil, ErrGeneratorFormat
	}
	if string(data[:len(fileMagic)]) != fileMagic {
		return nil, ErrGeneratorFormat
	}
	off := len(fileMagic)
	n := binary.NativeEndian.Uint64(data[off : off+8])
	off += 8

	want := off + int(n)*scalarWidth
	if len(data) != want {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrGeneratorFormat, want, len(data))
	}

	out := make([]curve.Scalar, n)
	for i := range out {
		start := off + i*scalarWidth
		out[i].SetBytes(data[start : start+scalarWidth])
	}
	return out, nil
}

// ReadGeneratorFileMapped reads back a file written by WriteGeneratorFile
// through a read-only memory-mapped view rather than first copying the
// raw file bytes into the heap; it is the path cmd/rangeeval uses. The
// returned slice still holds every decoded coefficient in memory, so its
// size is the same as the file's payload.
func ReadGeneratorFileMapped(path string) ([]curve.Scalar, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	header := make([]byte, len(fileMagic)+8)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneratorFormat, err)
	}
	if string(header[:len(fileMagic)]) != fileMagic {
		return nil, ErrGeneratorFormat
	}
	n := binary.NativeEndian.Uint64(header[len(fileMagic):])
	off := int64(len(header))

	want := off + int64(n)*scalarWidth
	if int64(r.Len()) != want {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrGeneratorFormat, want, r.Len())
	}

	out := make([]curve.Scalar, n)
	var buf [scalarWidth]byte
	for i := range out {
		if _, err := r.ReadAt(buf[:], off+int64(i)*scalarWidth); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGeneratorFormat, err)
		}
		out[i].SetBytes(buf[:])
	}
	return out, nil
}
