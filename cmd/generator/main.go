// Command generator builds a generator-polynomial file (C9) of degree n+1
// from the n+1 roots 0..n, for later use by cmd/rangeeval.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"srsceremony/pkg/core"
	"srsceremony/pkg/generator"
)

func main() {
	core.InitLogging(os.Getenv("SRS_LOG_LEVEL"))

	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <n> <output_path>\n", os.Args[0])
		os.Exit(1)
	}

	n, err := strconv.ParseUint(os.Args[1], 10, 64)
	if err != nil {
		log.Error().Err(err).Msg("n must be a non-negative integer")
		os.Exit(1)
	}
	path := os.Args[2]

	log.Info().Uint64("n", n).Msg("building generator polynomial")
	coeffs := generator.BuildGeneratorPolynomial(n)

	if err := generator.WriteGeneratorFile(path, coeffs); err != nil {
		log.Error().Err(err).Msg("failed to write generator file")
		os.Exit(1)
	}
	log.Info().Int("coefficients", len(coeffs)).Str("path", path).Msg("generator polynomial written")
}
