package ceremony

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"srsceremony/pkg/curve"
	"srsceremony/pkg/transcript"
)

// Driver scans a ceremony directory, decides whether to create initial
// transcripts or process an existing chain, drives the per-shard engine
// (C6), and speaks the §6.3 stdin command / stdout event protocol.
type Driver struct {
	Dir    string
	Events io.Writer
}

func NewDriver(dir string, events io.Writer) *Driver {
	return &Driver{Dir: dir, Events: events}
}

func (d *Driver) emit(format string, args ...any) {
	fmt.Fprintf(d.Events, format+"\n", args...)
}

// shardPlan is one row of the initial shard layout computed by
// CreateInitial.
type shardPlan struct {
	manifest transcript.Manifest
}

// planShards computes the per-shard manifest layout of §4.5.2 without
// allocating any point data.
func planShards(totalG1, totalG2, pointsPerShard uint64) []shardPlan {
	maxTotal := totalG1
	if totalG2 > maxTotal {
		maxTotal = totalG2
	}
	totalTranscripts := (maxTotal + pointsPerShard - 1) / pointsPerShard
	if totalTranscripts == 0 {
		totalTranscripts = 1
	}

	plans := make([]shardPlan, totalTranscripts)
	for s := uint64(0); s < totalTranscripts; s++ {
		startFrom := s * pointsPerShard
		numG1 := clampCount(pointsPerShard, totalG1, startFrom)
		numG2 := clampCount(pointsPerShard, totalG2, startFrom)
		plans[s] = shardPlan{manifest: transcript.Manifest{
			TranscriptNumber: uint32(s),
			TotalTranscripts: uint32(totalTranscripts),
			TotalG1Points:    uint32(totalG1),
			TotalG2Points:    uint32(totalG2),
			NumG1Points:      uint32(numG1),
			NumG2Points:      uint32(numG2),
			StartFrom:        uint32(startFrom),
		}}
	}
	return plans
}

func clampCount(pointsPerShard, total, startFrom uint64) uint64 {
	if startFrom >= total {
		return 0
	}
	remaining := total - startFrom
	if remaining < pointsPerShard {
		return remaining
	}
	return pointsPerShard
}

// CreateInitial implements §4.5.2: it lays out the shard plan, announces
// expected output sizes on the event channel, then fills every shard with
// the group generator and runs it through ProcessShard.
func (d *Driver) CreateInitial(totalG1, totalG2, pointsPerShard uint64, y curve.Scalar) error {
	plans := planShards(totalG1, totalG2, pointsPerShard)

	announce := make([]string, len(plans))
	for i, p := range plans {
		announce[i] = fmt.Sprintf("%d:%d", i, p.manifest.Size())
	}
	d.emit("creating %s", strings.Join(announce, " "))

	totalWork := totalWeightedWork(totalG1, totalG2)
	var progress atomic.Int64
	stopProgress := d.startProgressReporter(&progress, totalWork)
	defer stopProgress()

	g1Gen := curve.G1GeneratorJac()
	g2Gen := curve.G2GeneratorJac()

	for _, p := range plans {
		g1 := make([]curve.G1Jac, p.manifest.NumG1Points)
		for i := range g1 {
			g1[i] = g1Gen
		}
		g2 := make([]curve.G2Jac, p.manifest.NumG2Points)
		for i := range g2 {
			g2[i] = g2Gen
		}

		work := ShardWork{
			Manifest:       p.manifest,
			G1:             g1,
			G2:             g2,
			GlobalOffsetG1: uint64(p.manifest.StartFrom),
			GlobalOffsetG2: uint64(p.manifest.StartFrom),
		}
		if _, _, err := ProcessShard(d.Dir, work, y, &progress); err != nil {
			return err
		}
		d.emit("wrote %d", p.manifest.TranscriptNumber)
	}
	return nil
}

// ProcessExisting implements §4.5.3: it walks transcript<n>.dat while the
// file exists, strips shard 0's stale anchor, and re-exponentiates each
// shard in turn.
func (d *Driver) ProcessExisting(y curve.Scalar) error {
	var n uint32
	for {
		path := transcript.PathIn(d.Dir, n)
		if _, err := os.Stat(path); err != nil {
			break
		}
		if err := d.processOne(n, y); err != nil {
			return err
		}
		n++
	}
	return nil
}

// ProcessOne processes a single existing shard index, for the §6.3
// `process <n>` command.
func (d *Driver) ProcessOne(n uint32, y curve.Scalar) error {
	return d.processOne(n, y)
}

func (d *Driver) processOne(n uint32, y curve.Scalar) error {
	path := transcript.PathIn(d.Dir, n)
	m, g1Aff, g2Aff, err := transcript.ReadTranscript(path)
	if err != nil {
		return err
	}

	if n == 0 && len(g2Aff) > 0 {
		g2Aff = g2Aff[:len(g2Aff)-1]
		m.NumG2Points--
	}

	initial := min64(uint64(m.NumG1Points), uint64(m.StartFrom))*WeightG1 +
		min64(uint64(m.NumG2Points), uint64(m.StartFrom))*WeightG2

	totalWork := totalWeightedWork(uint64(m.TotalG1Points), uint64(m.TotalG2Points))
	var progress atomic.Int64
	progress.Store(int64(initial))
	stopProgress := d.startProgressReporter(&progress, totalWork)
	defer stopProgress()

	g1 := make([]curve.G1Jac, len(g1Aff))
	for i := range g1Aff {
		g1[i].FromAffine(&g1Aff[i])
	}
	g2 := make([]curve.G2Jac, len(g2Aff))
	for i := range g2Aff {
		g2[i].FromAffine(&g2Aff[i])
	}

	work := ShardWork{
		Manifest:       m,
		G1:             g1,
		G2:             g2,
		GlobalOffsetG1: uint64(m.StartFrom),
		GlobalOffsetG2: uint64(m.StartFrom),
	}
	if _, _, err := ProcessShard(d.Dir, work, y, &progress); err != nil {
		return err
	}
	d.emit("wrote %d", n)
	return nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func totalWeightedWork(totalG1, totalG2 uint64) uint64 {
	w := totalG1*WeightG1 + totalG2*WeightG2
	if w == 0 {
		return 1
	}
	return w
}

// startProgressReporter emits a `progress <percent>` event once per
// second while a job runs, reading the shared progress counter with a
// relaxed load. Returns a stop function to call once the job completes.
func (d *Driver) startProgressReporter(progress *atomic.Int64, totalWork uint64) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pct := float64(progress.Load()) / float64(totalWork) * 100
				d.emit("progress %.2f", pct)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

// RunControlLoop reads newline-delimited commands from in and dispatches
// them per §6.3: `create <g1> <g2> <per_transcript>` and `process <n>`.
// The secret is zeroed on every return path.
func (d *Driver) RunControlLoop(in io.Reader, y *Secret) error {
	defer y.Zero()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "create":
			if len(fields) != 4 {
				return fmt.Errorf("ceremony: malformed create command %q", line)
			}
			g1, err1 := strconv.ParseUint(fields[1], 10, 64)
			g2, err2 := strconv.ParseUint(fields[2], 10, 64)
			per, err3 := strconv.ParseUint(fields[3], 10, 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return fmt.Errorf("ceremony: malformed create command %q", line)
			}
			if err := d.CreateInitial(g1, g2, per, y.Value()); err != nil {
				return err
			}
		case "process":
			if len(fields) != 2 {
				return fmt.Errorf("ceremony: malformed process command %q", line)
			}
			n, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return fmt.Errorf("ceremony: malformed process command %q", line)
			}
			if err := d.ProcessOne(uint32(n), y.Value()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("ceremony: unknown command %q", fields[0])
		}
	}
	return scanner.Err()
}
