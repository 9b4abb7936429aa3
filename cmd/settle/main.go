// Package main runs headless drop-and-settle simulations across a batch of
// seeds and reports rest-state and determinism metrics. Useful for checking
// that solver tuning changes still let bodies come to rest on the floor.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tiltbox/config"
	"github.com/pthm-cable/tiltbox/game"
)

// seedResult holds the settle metrics for one simulation run.
type seedResult struct {
	Seed          int64
	Bodies        int
	MeanRestY     float64
	MaxSpeed      float64
	Deterministic bool
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	mode := flag.String("mode", "well", "Scene mode: well, box or orbit")
	seeds := flag.Int("seeds", 5, "Number of seeds to run")
	maxTicks := flag.Int("max-ticks", 1200, "Simulation length per run in ticks")
	outputPath := flag.String("output", "", "CSV output path (empty = stdout summary only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	results := make([]seedResult, 0, *seeds)
	for i := 0; i < *seeds; i++ {
		seed := int64(i*1000 + 42)
		first := runOnce(seed, *mode, *maxTicks)
		second := runOnce(seed, *mode, *maxTicks)

		res := seedResult{
			Seed:          seed,
			Bodies:        len(first),
			Deterministic: sameStates(first, second),
		}
		var ys []float64
		for _, s := range first {
			ys = append(ys, s.position.Y)
			if s.speed > res.MaxSpeed {
				res.MaxSpeed = s.speed
			}
		}
		res.MeanRestY = stat.Mean(ys, nil)
		results = append(results, res)

		fmt.Printf("seed %d: bodies=%d mean_rest_y=%.4f max_speed=%.4f deterministic=%v\n",
			seed, res.Bodies, res.MeanRestY, res.MaxSpeed, res.Deterministic)
	}

	summarize(results)

	if *outputPath != "" {
		if err := writeCSV(*outputPath, results); err != nil {
			log.Fatalf("writing results: %v", err)
		}
	}
}

// bodyState is the final-state sample taken from one dynamic body.
type bodyState struct {
	position r3.Vec
	speed    float64
}

// runOnce simulates maxTicks headless ticks from a fresh game and samples the
// dynamic bodies.
func runOnce(seed int64, mode string, maxTicks int) []bodyState {
	g := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Headless: true,
		Mode:     mode,
	})
	defer g.Unload()

	for int(g.Tick()) < maxTicks {
		g.UpdateHeadless()
	}

	var states []bodyState
	for _, b := range g.Physics().Bodies() {
		if !b.Dynamic() {
			continue
		}
		states = append(states, bodyState{
			position: b.Position,
			speed:    r3.Norm(b.Velocity),
		})
	}
	return states
}

// sameStates reports whether two runs produced bit-identical body states.
func sameStates(a, b []bodyState) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].position != b[i].position || a[i].speed != b[i].speed {
			return false
		}
	}
	return true
}

// summarize prints aggregate statistics across the batch.
func summarize(results []seedResult) {
	var restYs, maxSpeeds []float64
	allDeterministic := true
	for _, r := range results {
		restYs = append(restYs, r.MeanRestY)
		maxSpeeds = append(maxSpeeds, r.MaxSpeed)
		if !r.Deterministic {
			allDeterministic = false
		}
	}
	meanY, stdY := stat.MeanStdDev(restYs, nil)
	fmt.Printf("\nbatch: seeds=%d rest_y_mean=%.4f rest_y_std=%.4f max_speed_mean=%.4f deterministic=%v\n",
		len(results), meanY, stdY, stat.Mean(maxSpeeds, nil), allDeterministic)

	// Rest height should land near a body's half extent above the floor for
	// every seed; a large spread points at a solver instability.
	const restSpreadLimit = 0.25
	if stdY > restSpreadLimit {
		fmt.Printf("warning: rest height spread %.4f exceeds %.4f\n", stdY, restSpreadLimit)
	}
}

// writeCSV dumps the per-seed results.
func writeCSV(path string, results []seedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"seed", "bodies", "mean_rest_y", "max_speed", "deterministic"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Bodies),
			strconv.FormatFloat(r.MeanRestY, 'f', 6, 64),
			strconv.FormatFloat(r.MaxSpeed, 'f', 6, 64),
			strconv.FormatBool(r.Deterministic),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
