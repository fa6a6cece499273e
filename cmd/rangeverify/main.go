// Command rangeverify runs the range verifier (C11) over a published set
// of compressed range shards against a τ2 pairing anchor and auxiliary
// point h.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"srsceremony/pkg/core"
	"srsceremony/pkg/rangeproof"
	"srsceremony/pkg/transcript"
)

func main() {
	core.InitLogging(os.Getenv("SRS_LOG_LEVEL"))

	if len(os.Args) != 5 {
		fmt.Fprintf(os.Stderr, "usage: %s <range_shard_dir> <num_points> <srs_transcript_path> <h_point_index>\n", os.Args[0])
		os.Exit(1)
	}
	dir := os.Args[1]
	total, err := strconv.Atoi(os.Args[2])
	if err != nil || total <= 0 {
		log.Error().Msg("num_points must be a positive integer")
		os.Exit(1)
	}
	srsPath := os.Args[3]
	hIdx, err := strconv.ParseInt(os.Args[4], 10, 64)
	if err != nil {
		log.Error().Msg("h_point_index must be an integer")
		os.Exit(1)
	}

	log.Info().Str("dir", dir).Int("total", total).Msg("loading range shards")
	points, err := rangeproof.ReadRangeShards(dir, total)
	if err != nil {
		log.Error().Err(err).Msg("failed to load range shards")
		os.Exit(1)
	}

	_, _, g2x, err := transcript.ReadTranscript(srsPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read srs transcript")
		os.Exit(1)
	}
	if len(g2x) == 0 {
		log.Error().Msg("srs transcript has no g2 anchor to use as tau2")
		os.Exit(1)
	}
	tau2 := g2x[len(g2x)-1]

	hPoints, err := transcript.ReadG1Slice(srsPath, hIdx, 1)
	if err != nil || len(hPoints) != 1 {
		log.Error().Err(err).Msg("failed to read h anchor point")
		os.Exit(1)
	}

	ok, err := rangeproof.VerifyRangeSet(points, tau2, hPoints[0])
	if err != nil {
		log.Error().Err(err).Msg("range set verification failed")
		os.Exit(1)
	}
	if !ok {
		log.Error().Msg("range set rejected")
		os.Exit(1)
	}
	log.Info().Msg("range set valid")
}
