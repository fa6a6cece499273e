// Package core holds configuration and process-wide logging setup shared
// by every command in this module.
package core

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config describes the parameters of a single ceremony run. A participant,
// driver, or verifier process all read the same shape; each only looks at
// the fields relevant to its role.
type Config struct {
	// NumG1Points and NumG2Points size the structured reference string:
	// the ceremony carries NumG1Points G1 elements and NumG2Points G2
	// elements in total, across all of its shards.
	NumG1Points uint64
	NumG2Points uint64

	// PointsPerTranscript bounds how many G1 points a single transcript
	// file holds; a ceremony with more points than this is split across
	// multiple numbered transcript files.
	PointsPerTranscript uint64

	// TranscriptDir is where transcript*.dat files are read from and
	// written to.
	TranscriptDir string

	// NumThreads records a worker pool size. No worker pool in this module
	// reads it: the exponentiation, verification and range-evaluation
	// pools always size themselves to max(runtime.NumCPU(), 4).
	NumThreads int

	// LogLevel is one of zerolog's level strings ("debug", "info",
	// "warn", "error"); empty defaults to "info".
	LogLevel string
}

// DefaultConfig returns the parameters used by the reference ceremony: enough
// G1 points for a shifted KZG-style SRS, one G2 power plus the genesis
// anchor, and a four-million-point-per-shard split.
func DefaultConfig() *Config {
	return &Config{
		NumG1Points:         1 << 20,
		NumG2Points:         2,
		PointsPerTranscript: 1 << 22,
		TranscriptDir:       "./transcripts",
		LogLevel:            "info",
	}
}

// InitLogging configures the global zerolog logger to write leveled
// diagnostics to stderr — transcript and proof bytes never share a stream
// with log output.
func InitLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}
