package ceremony

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"srsceremony/pkg/curve"
	"srsceremony/pkg/transcript"
)

func genesisShardWork(n uint64) ShardWork {
	g1Gen := curve.G1GeneratorJac()
	g2Gen := curve.G2GeneratorJac()
	g1 := make([]curve.G1Jac, n)
	g2 := make([]curve.G2Jac, n)
	for i := range g1 {
		g1[i] = g1Gen
	}
	for i := range g2 {
		g2[i] = g2Gen
	}
	return ShardWork{
		Manifest: transcript.Manifest{
			TranscriptNumber: 0,
			TotalTranscripts: 1,
			TotalG1Points:    uint32(n),
			TotalG2Points:    uint32(n),
			NumG1Points:      uint32(n),
			NumG2Points:      uint32(n),
			StartFrom:        0,
		},
		G1: g1,
		G2: g2,
	}
}

// S1 — Genesis only.
func TestGenesisShardProducesAnchorAndCorrectCounts(t *testing.T) {
	dir := t.TempDir()
	work := genesisShardWork(8)

	y, err := curve.RandomScalar()
	require.NoError(t, err)

	var progress atomic.Int64
	out, path, err := ProcessShard(dir, work, y, &progress)
	require.NoError(t, err)
	require.Equal(t, uint32(8), out.NumG1Points)
	require.Equal(t, uint32(9), out.NumG2Points) // +1 genesis anchor

	m, g1, g2, err := transcript.ReadTranscript(path)
	require.NoError(t, err)
	require.Equal(t, uint32(8), m.NumG1Points)
	require.Equal(t, uint32(9), m.NumG2Points)

	yBig := curve.ScalarToBigInt(&y)
	var wantG1 curve.G1Affine
	gen1 := curve.G1Generator()
	wantG1.ScalarMultiplication(&gen1, yBig)
	require.True(t, wantG1.Equal(&g1[0]))

	gen2 := curve.G2Generator()
	var wantG2 curve.G2Affine
	wantG2.ScalarMultiplication(&gen2, yBig)
	require.True(t, wantG2.Equal(&g2[0]))
	// the trailing anchor is also y·G2, recomputed independently
	require.True(t, wantG2.Equal(&g2[len(g2)-1]))
}

// S2 — Two participants: composing y_A then y_B on the generator matches
// direct exponentiation by y_A·y_B (property 5).
func TestTwoParticipantCompositionMatchesDirectExponent(t *testing.T) {
	dir := t.TempDir()
	workA := genesisShardWork(4)

	yA, err := curve.RandomScalar()
	require.NoError(t, err)
	var progressA atomic.Int64
	_, pathA, err := ProcessShard(dir, workA, yA, &progressA)
	require.NoError(t, err)

	mA, g1A, g2A, err := transcript.ReadTranscript(pathA)
	require.NoError(t, err)

	// strip the anchor before re-exponentiating, as the next participant does
	g2AStripped := g2A[:len(g2A)-1]
	mA.NumG2Points--

	g1Jac := make([]curve.G1Jac, len(g1A))
	for i := range g1A {
		g1Jac[i].FromAffine(&g1A[i])
	}
	g2Jac := make([]curve.G2Jac, len(g2AStripped))
	for i := range g2AStripped {
		g2Jac[i].FromAffine(&g2AStripped[i])
	}

	workB := ShardWork{Manifest: mA, G1: g1Jac, G2: g2Jac}
	yB, err := curve.RandomScalar()
	require.NoError(t, err)
	var progressB atomic.Int64
	_, pathB, err := ProcessShard(dir, workB, yB, &progressB)
	require.NoError(t, err)

	_, g1B, _, err := transcript.ReadTranscript(pathB)
	require.NoError(t, err)

	var yProduct big.Int
	yProduct.Mul(curve.ScalarToBigInt(&yA), curve.ScalarToBigInt(&yB))
	yProduct.Mod(&yProduct, scalarModulusBigForTest())

	gen1 := curve.G1Generator()
	var want curve.G1Affine
	want.ScalarMultiplication(&gen1, &yProduct)
	require.True(t, want.Equal(&g1B[0]))
}

func scalarModulusBigForTest() *big.Int {
	return fr.Modulus()
}

// S3 — Sharded ceremony: driver.CreateInitial lays out three shards with
// the expected per-shard counts and the set validator accepts the result.
func TestCreateInitialShardedCeremony(t *testing.T) {
	dir := t.TempDir()
	buf := &bytes.Buffer{}
	d := NewDriver(dir, buf)

	y, err := curve.RandomScalar()
	require.NoError(t, err)
	require.NoError(t, d.CreateInitial(17, 5, 8, y))

	var manifests []transcript.Manifest
	for n := uint32(0); n < 3; n++ {
		m, err := transcript.ReadManifest(transcript.PathOut(dir, n))
		require.NoError(t, err)
		manifests = append(manifests, m)
	}
	require.Equal(t, uint32(8), manifests[0].NumG1Points)
	require.Equal(t, uint32(8), manifests[1].NumG1Points)
	require.Equal(t, uint32(1), manifests[2].NumG1Points)
	require.Equal(t, uint32(6), manifests[0].NumG2Points) // 5 real + the genesis anchor
	require.NoError(t, ValidateManifestSet(17, 5, manifests))
}

// S5 — Bad chain: a transcript not actually built atop the claimed
// predecessor fails ChainBroken.
func TestValidateTranscriptRejectsBadChain(t *testing.T) {
	dir := t.TempDir()

	workA := genesisShardWork(4)
	yA, err := curve.RandomScalar()
	require.NoError(t, err)
	var progressA atomic.Int64
	_, pathA, err := ProcessShard(dir, workA, yA, &progressA)
	require.NoError(t, err)
	_, g1A, g2A, err := transcript.ReadTranscript(pathA)
	require.NoError(t, err)

	// an unrelated "other chain" genesis transcript
	workOther := genesisShardWork(4)
	yOther, err := curve.RandomScalar()
	require.NoError(t, err)
	var progressOther atomic.Int64
	_, pathOther, err := ProcessShard(dir, workOther, yOther, &progressOther)
	require.NoError(t, err)
	_, g1Other, _, err := transcript.ReadTranscript(pathOther)
	require.NoError(t, err)

	prevLast := g1A[len(g1A)-1]
	anchor := g2A[len(g2A)-1]

	in := VerifyInputs{
		G1X:        g1Other, // built from a different chain entirely
		G2X:        nil,
		PrevLastG1: &prevLast,
		PrevAnchor: &anchor,
	}
	err = ValidateTranscript(in)
	require.ErrorIs(t, err, ErrChainBroken)
}

// Property 6: chain linkage holds iff B really continues A.
func TestValidateTranscriptChainLinkageHolds(t *testing.T) {
	dir := t.TempDir()
	workA := genesisShardWork(4)
	yA, err := curve.RandomScalar()
	require.NoError(t, err)
	var progressA atomic.Int64
	_, pathA, err := ProcessShard(dir, workA, yA, &progressA)
	require.NoError(t, err)
	mA, g1A, g2A, err := transcript.ReadTranscript(pathA)
	require.NoError(t, err)

	g2AStripped := g2A[:len(g2A)-1]
	mA.NumG2Points--
	g1Jac := make([]curve.G1Jac, len(g1A))
	for i := range g1A {
		g1Jac[i].FromAffine(&g1A[i])
	}
	g2Jac := make([]curve.G2Jac, len(g2AStripped))
	for i := range g2AStripped {
		g2Jac[i].FromAffine(&g2AStripped[i])
	}
	workB := ShardWork{Manifest: mA, G1: g1Jac, G2: g2Jac}
	yB, err := curve.RandomScalar()
	require.NoError(t, err)
	var progressB atomic.Int64
	_, pathB, err := ProcessShard(dir, workB, yB, &progressB)
	require.NoError(t, err)
	_, g1B, g2B, err := transcript.ReadTranscript(pathB)
	require.NoError(t, err)

	prevLastG1 := g1A[len(g1A)-1]
	anchor := g2A[len(g2A)-1]

	require.NoError(t, ValidateTranscript(VerifyInputs{
		G1X:        g1B,
		G2X:        g2B,
		G2_0:       g2B[0], // yA·yB·G2::one(), the combined-secret genesis key
		PrevLastG1: &prevLastG1,
		PrevAnchor: &anchor,
	}))
}

// Property 8: manifest set validator.
func TestValidateManifestSetDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	buf := &bytes.Buffer{}
	d := NewDriver(dir, buf)
	y, err := curve.RandomScalar()
	require.NoError(t, err)
	require.NoError(t, d.CreateInitial(17, 5, 8, y))

	var manifests []transcript.Manifest
	for n := uint32(0); n < 3; n++ {
		m, err := transcript.ReadManifest(transcript.PathOut(dir, n))
		require.NoError(t, err)
		manifests = append(manifests, m)
	}
	require.NoError(t, ValidateManifestSet(17, 5, manifests))

	tampered := append([]transcript.Manifest(nil), manifests...)
	tampered[1].NumG1Points = 1
	require.ErrorIs(t, ValidateManifestSet(17, 5, tampered), ErrSetIncomplete)

	missing := manifests[:2]
	require.ErrorIs(t, ValidateManifestSet(17, 5, missing), ErrSetIncomplete)
}

// Property 9: zeroization. After Zero, the backing scalar's memory reads
// all zero bytes.
func TestSecretZeroClearsMemory(t *testing.T) {
	s, err := NewSecret()
	require.NoError(t, err)

	notZero := false
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&s.y)), unsafe.Sizeof(s.y))
	for _, b := range raw {
		if b != 0 {
			notZero = true
			break
		}
	}
	require.True(t, notZero, "secret should be nonzero before Zero is called (probability of a zero scalar is negligible)")

	s.Zero()
	raw = unsafe.Slice((*byte)(unsafe.Pointer(&s.y)), unsafe.Sizeof(s.y))
	for _, b := range raw {
		require.Zero(t, b)
	}
}

func TestRunControlLoopCreateAndProcess(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	d := NewDriver(dir, out)

	secret, err := NewSecret()
	require.NoError(t, err)
	in := bytes.NewBufferString("create 4 1 4\n")
	require.NoError(t, d.RunControlLoop(in, secret))
	require.FileExists(t, filepath.Join(dir, "transcript0_out.dat"))
	require.Contains(t, out.String(), "wrote 0")
	require.Contains(t, out.String(), "creating 0:")

	// rename the output into an input for a second participant run
	require.NoError(t, os.Rename(
		filepath.Join(dir, "transcript0_out.dat"),
		filepath.Join(dir, "transcript0.dat"),
	))

	secret2, err := NewSecret()
	require.NoError(t, err)
	in2 := bytes.NewBufferString("process 0\n")
	require.NoError(t, d.RunControlLoop(in2, secret2))
	require.FileExists(t, filepath.Join(dir, "transcript0_out.dat"))
}
