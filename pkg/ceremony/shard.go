package ceremony

import (
	"sync/atomic"

	"srsceremony/pkg/curve"
	"srsceremony/pkg/transcript"
)

// Weights for the G1 and G2 jobs of a shard, reflecting the relative cost
// of a G2 versus a G1 group operation. They feed only progress-percentage
// reporting, never correctness.
const (
	WeightG1 = 2
	WeightG2 = 9
)

// ShardWork is the input to ProcessShard: one shard's manifest and point
// arrays, already loaded and (for shard 0) stripped of any stale anchor.
type ShardWork struct {
	Manifest transcript.Manifest
	G1       []curve.G1Jac
	G2       []curve.G2Jac
	// GlobalOffsetG1 and GlobalOffsetG2 are the position of element 0 of
	// G1/G2 within the overall SRS, i.e. Manifest.StartFrom for both in
	// the common case.
	GlobalOffsetG1 uint64
	GlobalOffsetG2 uint64
}

// ProcessShard runs the full per-shard workflow of §4.5.1: exponentiate
// G1 then G2, append the genesis anchor for shard 0, batch-normalize both
// arrays, and write the output transcript. progress is bumped by
// WeightG1 per G1 point and WeightG2 per G2 point processed.
func ProcessShard(dir string, work ShardWork, y curve.Scalar, progress *atomic.Int64) (transcript.Manifest, string, error) {
	out := work.Manifest

	if err := ExponentiateG1(work.G1, y, work.GlobalOffsetG1, WeightG1, progress); err != nil {
		return transcript.Manifest{}, "", err
	}
	if err := ExponentiateG2(work.G2, y, work.GlobalOffsetG2, WeightG2, progress); err != nil {
		return transcript.Manifest{}, "", err
	}

	g2 := work.G2
	if out.TranscriptNumber == 0 {
		anchor := genesisAnchor(y)
		g2 = append(g2, anchor)
		out.NumG2Points++
	}

	g1Affine, err := curve.BatchNormalizeG1(work.G1)
	if err != nil {
		return transcript.Manifest{}, "", err
	}
	g2Affine, err := curve.BatchNormalizeG2(g2)
	if err != nil {
		return transcript.Manifest{}, "", err
	}

	path := transcript.PathOut(dir, out.TranscriptNumber)
	if err := transcript.WriteTranscript(path, out, g1Affine, g2Affine); err != nil {
		return transcript.Manifest{}, "", err
	}
	return out, path, nil
}

// genesisAnchor computes y^1 · G2::one(), the trailing point appended
// only to shard 0 so the next participant can prove chain linkage. It is
// always recomputed from the live secret, never copied from disk, per
// the "recompute, don't copy" rule of the historical source.
func genesisAnchor(y curve.Scalar) curve.G2Jac {
	gen := curve.G2GeneratorJac()
	yBig := curve.ScalarToBigInt(&y)
	return curve.ExpG2(&gen, yBig)
}
