package ceremony

import (
	"srsceremony/pkg/curve"
	"srsceremony/pkg/transcript"
)

// VerifyInputs bundles the artifacts validate_transcript (§4.6.3) needs
// for one transcript: its own powering sequences, plus whatever links it
// to the transcript it was built from. The *PrevLastG1 family is nil for
// the first transcript of a chain, in which case the homomorphism checks
// fall back to prepending the group generator instead.
type VerifyInputs struct {
	G1X []curve.G1Affine
	G2X []curve.G2Affine

	// G2_0 is the G1-check's fixed verification key: the ceremony-wide
	// genesis x·G2 point (shard 0's anchor), identical for every shard of
	// the ceremony. It is passed explicitly rather than derived from
	// G2X[0] because most shards carry zero G2 points (§4.6.3 only runs
	// the G2 homomorphism check when |g2_x| > 1), and a shard's own
	// (possibly empty) G2X is not the key the G1 check verifies against.
	G2_0 curve.G2Affine

	// PrevLastG1 is the last point of the previous transcript's G1 array.
	PrevLastG1 *curve.G1Affine
	// PrevLastG2 is the previous transcript's last power point in G2,
	// skipping its trailing anchor if the previous shard was the genesis
	// shard.
	PrevLastG2 *curve.G2Affine
	// PrevAnchor is the previous transcript's trailing y-anchor (only
	// present when the previous shard was the genesis shard).
	PrevAnchor *curve.G2Affine
}

// ValidateTranscript implements §4.6.3: it checks chain linkage against
// the predecessor (if any), then that the G1 and G2 sequences are each
// valid powering sequences of one another's represented exponent.
func ValidateTranscript(in VerifyInputs) error {
	if len(in.G1X) == 0 {
		return ErrManifestInvalid
	}
	g1_0 := in.G1X[0]

	if in.PrevLastG1 != nil && in.PrevAnchor != nil {
		linkG1, err := curve.SameRatioPreprocessG1([]curve.G1Affine{*in.PrevLastG1, g1_0})
		if err != nil {
			return err
		}
		linkG2, err := curve.SameRatioPreprocessG2([]curve.G2Affine{*in.PrevAnchor, curve.G2Generator()})
		if err != nil {
			return err
		}
		ok, err := curve.SameRatio(linkG1, linkG2)
		if err != nil {
			return err
		}
		if !ok {
			return ErrChainBroken
		}
	}

	g1Lead := curve.G1Generator()
	if in.PrevLastG1 != nil {
		g1Lead = *in.PrevLastG1
	}
	fullG1 := append([]curve.G1Affine{g1Lead}, in.G1X...)
	ratioG1, err := curve.SameRatioPreprocessG1(fullG1)
	if err != nil {
		return err
	}
	fixedG2, err := curve.SameRatioPreprocessG2([]curve.G2Affine{in.G2_0, curve.G2Generator()})
	if err != nil {
		return err
	}
	ok, err := curve.SameRatio(ratioG1, fixedG2)
	if err != nil {
		return err
	}
	if !ok {
		return ErrG1PowerSequenceInvalid
	}

	if len(in.G2X) > 1 {
		g2Lead := curve.G2Generator()
		if in.PrevLastG2 != nil {
			g2Lead = *in.PrevLastG2
		}
		fullG2 := append([]curve.G2Affine{g2Lead}, in.G2X...)
		ratioG2, err := curve.SameRatioPreprocessG2(fullG2)
		if err != nil {
			return err
		}
		fixedG1, err := curve.SameRatioPreprocessG1([]curve.G1Affine{g1_0, curve.G1Generator()})
		if err != nil {
			return err
		}
		ok, err := curve.SameRatio(fixedG1, ratioG2)
		if err != nil {
			return err
		}
		if !ok {
			return ErrG2PowerSequenceInvalid
		}
	}
	return nil
}

// ValidateManifestChain implements §4.6.4: adjacency and monotonicity
// between two manifests of the same ceremony.
func ValidateManifestChain(prev, cur transcript.Manifest) error {
	if prev.TotalTranscripts != cur.TotalTranscripts ||
		prev.TotalG1Points != cur.TotalG1Points ||
		prev.TotalG2Points != cur.TotalG2Points {
		return ErrManifestInvalid
	}
	sameShard := prev.TranscriptNumber == 0 && cur.TranscriptNumber == 0
	adjacent := cur.TranscriptNumber == prev.TranscriptNumber+1
	if !adjacent && !sameShard {
		return ErrManifestInvalid
	}
	if cur.NumG1Points > prev.NumG1Points || cur.NumG2Points > prev.NumG2Points {
		return ErrManifestInvalid
	}
	if cur.StartFrom < prev.StartFrom {
		return ErrManifestInvalid
	}
	return nil
}

// ValidateManifestSet implements §4.6.5: a full ceremony's shard
// manifests must sum to the declared totals, with the G2 total adjusted
// for the genesis shard's extra anchor point.
func ValidateManifestSet(totalG1, totalG2 uint64, manifests []transcript.Manifest) error {
	var sumG1, sumG2 uint64
	for _, m := range manifests {
		if uint64(m.TotalG1Points) != totalG1 || uint64(m.TotalG2Points) != totalG2 {
			return ErrSetIncomplete
		}
		sumG1 += uint64(m.NumG1Points)
		sumG2 += uint64(m.NumG2Points)
	}
	if sumG1 != totalG1 {
		return ErrSetIncomplete
	}
	if sumG2 == 0 || sumG2-1 != totalG2 {
		return ErrSetIncomplete
	}
	return nil
}
