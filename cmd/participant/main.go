// Command participant is the ceremony driver's (C6/C7) CLI surface. It
// speaks two protocols: §6.3's stdin `create`/`process` command channel,
// used when stdin is piped (a coordinating process drives it), and §6.4's
// one-shot argv mode, used when stdin is a terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"srsceremony/pkg/ceremony"
	"srsceremony/pkg/core"
	"srsceremony/pkg/transcript"
)

func main() {
	core.InitLogging(os.Getenv("SRS_LOG_LEVEL"))

	if len(os.Args) < 2 || len(os.Args) > 4 {
		fmt.Fprintf(os.Stderr, "usage: %s <transcript_dir> [<initial_num_g1> [<initial_num_g2>]]\n", os.Args[0])
		os.Exit(1)
	}
	dir := os.Args[1]

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Error().Str("dir", dir).Msg("transcript directory not found")
		os.Exit(1)
	}

	driver := ceremony.NewDriver(dir, os.Stdout)

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		secret, err := ceremony.NewSecret()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate participant secret")
			os.Exit(1)
		}
		if err := driver.RunControlLoop(os.Stdin, secret); err != nil {
			log.Error().Err(err).Msg("control loop failed")
			os.Exit(1)
		}
		os.Exit(0)
	}

	secret, err := ceremony.NewSecret()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate participant secret")
		os.Exit(1)
	}
	defer secret.Zero()

	if len(os.Args) >= 3 {
		g1, err1 := strconv.ParseUint(os.Args[2], 10, 64)
		g2 := uint64(1)
		var err2 error
		if len(os.Args) == 4 {
			g2, err2 = strconv.ParseUint(os.Args[3], 10, 64)
		}
		if err1 != nil || err2 != nil {
			log.Error().Msg("initial point counts must be integers")
			secret.Zero()
			os.Exit(1)
		}
		pointsPerTranscript := core.DefaultConfig().PointsPerTranscript
		log.Info().Uint64("g1", g1).Uint64("g2", g2).Msg("creating initial ceremony")
		if err := driver.CreateInitial(g1, g2, pointsPerTranscript, secret.Value()); err != nil {
			log.Error().Err(err).Msg("initial creation failed")
			secret.Zero()
			os.Exit(1)
		}
		return
	}

	if !hasExistingTranscript(dir) {
		log.Error().Str("dir", dir).Msg("no transcript files found and no initial sizes given")
		secret.Zero()
		os.Exit(1)
	}

	log.Info().Str("dir", dir).Msg("processing existing ceremony")
	if err := driver.ProcessExisting(secret.Value()); err != nil {
		log.Error().Err(err).Msg("processing failed")
		secret.Zero()
		os.Exit(1)
	}
}

func hasExistingTranscript(dir string) bool {
	_, err := os.Stat(transcript.PathIn(filepath.Clean(dir), 0))
	return err == nil
}
