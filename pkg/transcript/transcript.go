package transcript

import (
	"fmt"
	"os"
	"path/filepath"

	"srsceremony/pkg/codec"
	"srsceremony/pkg/curve"
)

// PathIn returns the conventional input transcript path for shard n.
func PathIn(dir string, n uint32) string {
	return filepath.Join(dir, fmt.Sprintf("transcript%d.dat", n))
}

// PathOut returns the conventional output transcript path for shard n —
// the file the active participant writes.
func PathOut(dir string, n uint32) string {
	return filepath.Join(dir, fmt.Sprintf("transcript%d_out.dat", n))
}

// ReadManifest reads only the 28-byte header of the transcript at path.
func ReadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	var buf [ManifestSize]byte
	if _, err := readFull(f, buf[:]); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return unmarshalManifest(buf[:]), nil
}

// ReadTranscript reads the whole transcript file at path, validates its
// trailing checksum, and decodes the manifest plus both point arrays.
func ReadTranscript(path string) (Manifest, []curve.G1Affine, []curve.G2Affine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, nil, nil, err
	}
	if len(data) < ManifestSize+codec.ChecksumSize {
		return Manifest{}, nil, nil, ErrFormat
	}

	m := unmarshalManifest(data[:ManifestSize])
	expected := m.Size()
	if uint64(len(data)) != expected {
		return Manifest{}, nil, nil, fmt.Errorf("%w: declared size %d, file has %d bytes", ErrFormat, expected, len(data))
	}

	payloadLen := len(data) - codec.ChecksumSize
	if err := codec.ValidateChecksum(data, payloadLen); err != nil {
		return Manifest{}, nil, nil, err
	}

	g1, err := decodeG1Array(data[ManifestSize:], int(m.NumG1Points))
	if err != nil {
		return Manifest{}, nil, nil, err
	}
	g2Start := ManifestSize + int(m.NumG1Points)*G1PointSize
	g2, err := decodeG2Array(data[g2Start:], int(m.NumG2Points))
	if err != nil {
		return Manifest{}, nil, nil, err
	}
	return m, g1, g2, nil
}

func decodeG1Array(src []byte, n int) ([]curve.G1Affine, error) {
	out := make([]curve.G1Affine, n)
	for i := 0; i < n; i++ {
		p, err := decodeG1(src[i*G1PointSize : (i+1)*G1PointSize])
		if err != nil {
			return nil, fmt.Errorf("g1[%d]: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func decodeG2Array(src []byte, n int) ([]curve.G2Affine, error) {
	out := make([]curve.G2Affine, n)
	for i := 0; i < n; i++ {
		p, err := decodeG2(src[i*G2PointSize : (i+1)*G2PointSize])
		if err != nil {
			return nil, fmt.Errorf("g2[%d]: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

// clampRange resolves a possibly-negative offset ("counted from the end")
// and a requested count against a total length, returning [start, end).
func clampRange(offset int64, count int, total int64) (int64, int64) {
	start := offset
	if start < 0 {
		start = total + start
	}
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + int64(count)
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	return start, end
}

// ReadG1Slice reads a windowed range of G1 points directly from disk
// without loading the whole transcript, seeking to the byte offset of the
// requested range.
func ReadG1Slice(path string, offset int64, count int) ([]curve.G1Affine, error) {
	m, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	start, end := clampRange(offset, count, int64(m.NumG1Points))
	if start >= end {
		return []curve.G1Affine{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := end - start
	buf := make([]byte, n*G1PointSize)
	byteOffset := int64(ManifestSize) + start*G1PointSize
	if _, err := f.ReadAt(buf, byteOffset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return decodeG1Array(buf, int(n))
}

// ReadG2Slice is the G2 analogue of ReadG1Slice.
func ReadG2Slice(path string, offset int64, count int) ([]curve.G2Affine, error) {
	m, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	start, end := clampRange(offset, count, int64(m.NumG2Points))
	if start >= end {
		return []curve.G2Affine{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := end - start
	buf := make([]byte, n*G2PointSize)
	g2Base := int64(ManifestSize) + int64(m.NumG1Points)*G1PointSize
	byteOffset := g2Base + start*G2PointSize
	if _, err := f.ReadAt(buf, byteOffset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return decodeG2Array(buf, int(n))
}

// WriteTranscript lays out the manifest, G1 array, G2 array and trailing
// checksum into one buffer and writes it atomically: to a temp file in the
// same directory, then renamed into place, so a reader never observes a
// partially written transcript.
func WriteTranscript(path string, m Manifest, g1 []curve.G1Affine, g2 []curve.G2Affine) error {
	m.NumG1Points = uint32(len(g1))
	m.NumG2Points = uint32(len(g2))
	size := m.Size()
	buf := make([]byte, size)

	m.marshal(buf[:ManifestSize])
	off := ManifestSize
	for _, p := range g1 {
		encodeG1(p, buf[off:off+G1PointSize])
		off += G1PointSize
	}
	for _, p := range g2 {
		encodeG2(p, buf[off:off+G2PointSize])
		off += G2PointSize
	}

	digest := codec.CreateChecksum(buf[:off])
	copy(buf[off:], digest[:])

	return writeFileAtomic(path, buf)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".transcript-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
