package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"srsceremony/pkg/curve"
)

func randomG1Points(t *testing.T, n int) []curve.G1Affine {
	t.Helper()
	gen := curve.G1Generator()
	out := make([]curve.G1Affine, n)
	for i := range out {
		s, err := curve.RandomScalar()
		require.NoError(t, err)
		out[i].ScalarMultiplication(&gen, curve.ScalarToBigInt(&s))
	}
	return out
}

func randomG2Points(t *testing.T, n int) []curve.G2Affine {
	t.Helper()
	gen := curve.G2Generator()
	out := make([]curve.G2Affine, n)
	for i := range out {
		s, err := curve.RandomScalar()
		require.NoError(t, err)
		out[i].ScalarMultiplication(&gen, curve.ScalarToBigInt(&s))
	}
	return out
}

func TestWriteReadTranscriptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript0_out.dat")

	m := Manifest{
		TranscriptNumber: 0,
		TotalTranscripts: 1,
		TotalG1Points:    8,
		TotalG2Points:    2,
		StartFrom:        0,
	}
	g1 := randomG1Points(t, 8)
	g2 := randomG2Points(t, 3)

	require.NoError(t, WriteTranscript(path, m, g1, g2))

	gotM, gotG1, gotG2, err := ReadTranscript(path)
	require.NoError(t, err)
	require.Equal(t, uint32(8), gotM.NumG1Points)
	require.Equal(t, uint32(3), gotM.NumG2Points)
	require.Equal(t, m.TotalG1Points, gotM.TotalG1Points)
	require.Len(t, gotG1, 8)
	require.Len(t, gotG2, 3)
	for i := range g1 {
		require.True(t, g1[i].Equal(&gotG1[i]))
	}
	for i := range g2 {
		require.True(t, g2[i].Equal(&gotG2[i]))
	}
}

func TestReadTranscriptDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript0_out.dat")

	m := Manifest{TotalTranscripts: 1, TotalG1Points: 4}
	require.NoError(t, WriteTranscript(path, m, randomG1Points(t, 4), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)/2] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, _, _, err = ReadTranscript(path)
	require.Error(t, err)
}

func TestReadG1SliceNegativeOffset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript0_out.dat")

	m := Manifest{TotalTranscripts: 1, TotalG1Points: 10}
	g1 := randomG1Points(t, 10)
	require.NoError(t, WriteTranscript(path, m, g1, nil))

	last2, err := ReadG1Slice(path, -2, 2)
	require.NoError(t, err)
	require.Len(t, last2, 2)
	require.True(t, g1[8].Equal(&last2[0]))
	require.True(t, g1[9].Equal(&last2[1]))
}

func TestReadG1SliceClampsOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript0_out.dat")
	m := Manifest{TotalTranscripts: 1, TotalG1Points: 4}
	require.NoError(t, WriteTranscript(path, m, randomG1Points(t, 4), nil))

	beyond, err := ReadG1Slice(path, 100, 5)
	require.NoError(t, err)
	require.Empty(t, beyond)

	overrun, err := ReadG1Slice(path, 2, 100)
	require.NoError(t, err)
	require.Len(t, overrun, 2)
}

func TestManifestSizeMatchesLayout(t *testing.T) {
	m := Manifest{NumG1Points: 3, NumG2Points: 2}
	require.EqualValues(t, 28+3*64+2*128+64, m.Size())
}

func TestDecodeRejectsOffCurvePoint(t *testing.T) {
	var buf [G1PointSize]byte
	buf[31] = 1 // x=1
	buf[63] = 1 // y=1; 1^2 != 1^3+3 on BN254
	_, err := decodeG1(buf[:])
	require.ErrorIs(t, err, ErrInvalidPoint)
}
