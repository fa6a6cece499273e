// Command rangeeval runs the range evaluator (C10) over a ceremony's
// final SRS transcript and a generator-polynomial file, writing the
// resulting H_k points as compressed range shards (C11 wire format).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"srsceremony/pkg/core"
	"srsceremony/pkg/generator"
	"srsceremony/pkg/rangeproof"
	"srsceremony/pkg/transcript"
)

func main() {
	core.InitLogging(os.Getenv("SRS_LOG_LEVEL"))

	if len(os.Args) < 4 || len(os.Args) > 5 {
		fmt.Fprintf(os.Stderr, "usage: %s <srs_transcript_path> <generator_path> <output_dir> [batch_size]\n", os.Args[0])
		os.Exit(1)
	}
	srsPath, genPath, outDir := os.Args[1], os.Args[2], os.Args[3]

	batchSize := rangeproof.DefaultBatchSize
	if len(os.Args) == 5 {
		n, err := strconv.Atoi(os.Args[4])
		if err != nil || n <= 0 {
			log.Error().Msg("batch_size must be a positive integer")
			os.Exit(1)
		}
		batchSize = n
	}

	log.Info().Str("srs", srsPath).Msg("loading srs")
	_, g1, _, err := transcript.ReadTranscript(srsPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read srs transcript")
		os.Exit(1)
	}

	log.Info().Str("generator", genPath).Msg("loading generator polynomial")
	coeffs, err := generator.ReadGeneratorFileMapped(genPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read generator polynomial")
		os.Exit(1)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Error().Err(err).Msg("failed to create output directory")
		os.Exit(1)
	}

	progress := func(n int64) {
		log.Info().Int64("k_done", n).Int("degree", len(coeffs)-1).Msg("range evaluation progress")
	}

	h, err := rangeproof.EvaluateRange(coeffs, g1, batchSize, progress)
	if err != nil {
		log.Error().Err(err).Msg("range evaluation failed")
		os.Exit(1)
	}

	if err := rangeproof.WriteRangeShards(outDir, h); err != nil {
		log.Error().Err(err).Msg("failed to write range shards")
		os.Exit(1)
	}
	log.Info().Int("points", len(h)).Str("dir", outDir).Msg("range evaluation complete")
}
