// Package transcript implements the on-disk ceremony transcript format:
// a fixed manifest header, an uncompressed G1 point array, an uncompressed
// G2 point array, and a trailing Blake2b-512 checksum over everything
// before it.
package transcript

import (
	"srsceremony/pkg/codec"
)

// ManifestSize is the fixed width of the transcript header in bytes.
const ManifestSize = 28

// G1PointSize and G2PointSize are the uncompressed on-disk point widths.
const (
	G1PointSize = 64
	G2PointSize = 128
)

// Manifest is the 28-byte transcript header. All fields are manifest-wide
// shard bookkeeping; see the field comments for the invariants that bind
// them across a ceremony's shards.
type Manifest struct {
	// TranscriptNumber is this shard's 0-based index.
	TranscriptNumber uint32
	// TotalTranscripts is the shard count of the whole ceremony.
	TotalTranscripts uint32
	// TotalG1Points and TotalG2Points are full-ceremony totals, identical
	// across every shard's manifest.
	TotalG1Points uint32
	TotalG2Points uint32
	// NumG1Points and NumG2Points are the counts carried by this shard.
	NumG1Points uint32
	NumG2Points uint32
	// StartFrom is the global starting power index: position StartFrom+i
	// of this shard stores g^(x^(StartFrom+i+1)).
	StartFrom uint32
}

func (m Manifest) marshal(dst []byte) {
	codec.WriteUint32BE(m.TranscriptNumber, dst[0:4])
	codec.WriteUint32BE(m.TotalTranscripts, dst[4:8])
	codec.WriteUint32BE(m.TotalG1Points, dst[8:12])
	codec.WriteUint32BE(m.TotalG2Points, dst[12:16])
	codec.WriteUint32BE(m.NumG1Points, dst[16:20])
	codec.WriteUint32BE(m.NumG2Points, dst[20:24])
	codec.WriteUint32BE(m.StartFrom, dst[24:28])
}

func unmarshalManifest(src []byte) Manifest {
	return Manifest{
		TranscriptNumber: codec.ReadUint32BE(src[0:4]),
		TotalTranscripts: codec.ReadUint32BE(src[4:8]),
		TotalG1Points:    codec.ReadUint32BE(src[8:12]),
		TotalG2Points:    codec.ReadUint32BE(src[12:16]),
		NumG1Points:      codec.ReadUint32BE(src[16:20]),
		NumG2Points:      codec.ReadUint32BE(src[20:24]),
		StartFrom:        codec.ReadUint32BE(src[24:28]),
	}
}

// Size returns the total on-disk byte length of a transcript with this
// manifest: header + G1 array + G2 array + checksum.
func (m Manifest) Size() uint64 {
	return uint64(ManifestSize) +
		uint64(m.NumG1Points)*G1PointSize +
		uint64(m.NumG2Points)*G2PointSize +
		uint64(codec.ChecksumSize)
}
