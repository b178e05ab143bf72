// Package main provides the sweep runner for UAV-MEC experiments.
// Sweeps one parameter across a range of values, runs the optimization engine
// per point and collects metrics as CSV and JSON.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/elektrokombinacija/uav-mec-research/internal/config"
	"github.com/elektrokombinacija/uav-mec-research/internal/sim"
)

// SweepResult stores the outcome of one sweep point.
type SweepResult struct {
	Timestamp     string  `json:"timestamp"`
	GoVersion     string  `json:"go_version"`
	OS            string  `json:"os"`
	Arch          string  `json:"arch"`
	Scenario      string  `json:"scenario"`
	Param         string  `json:"param"`
	Value         float64 `json:"value"`
	Rounds        int     `json:"rounds"`
	OptimalRounds int     `json:"optimal_rounds"`
	State         string  `json:"state"`
	EnergyComm    float64 `json:"energy_comm"`
	EnergyLocal   float64 `json:"energy_local"`
	EnergyUAV     float64 `json:"energy_uav"`
	EnergyFlight  float64 `json:"energy_flight"`
	EnergyTotal   float64 `json:"energy_total"`
	PathLength    float64 `json:"path_length"`
	MaxVelocity   float64 `json:"max_velocity"`
	RuntimeMs     float64 `json:"runtime_ms"`
	Failed        bool    `json:"failed"`
}

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "base YAML scenario file (required)")
		param        = flag.String("param", "vmax", "parameter to sweep: vmax | l_total")
		from         = flag.Float64("from", 1, "sweep start value")
		to           = flag.Float64("to", 10, "sweep end value")
		steps        = flag.Int("steps", 10, "number of sweep points")
		workers      = flag.Int("workers", runtime.NumCPU(), "parallel runs")
		outDir       = flag.String("out", "results", "output directory")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "error: -scenario is required")
		os.Exit(1)
	}
	base, err := config.Load(*scenarioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	cfgs, values, err := buildRuns(base, *scenarioPath, *param, *from, *to, *steps)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	runner := sim.NewRunner(*workers, log)
	metrics := runner.RunAll(cfgs)

	results := make([]*SweepResult, len(metrics))
	for i, m := range metrics {
		results[i] = toResult(filepath.Base(*scenarioPath), *param, values[i], m)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	stamp := time.Now().UTC().Format("20060102_150405")
	csvPath := filepath.Join(*outDir, fmt.Sprintf("sweep_%s_%s.csv", *param, stamp))
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("sweep_%s_%s.json", *param, stamp))
	if err := writeCSV(results, csvPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := writeJSON(results, jsonPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	printSummary(results)
	fmt.Printf("\nwrote %s and %s\n", csvPath, jsonPath)
}

// buildRuns clones the base scenario once per sweep point, overriding the
// swept parameter. Each clone gets its own instance so runs stay independent.
func buildRuns(base *config.Scenario, name, param string, from, to float64, steps int) ([]sim.RunConfig, []float64, error) {
	if steps < 1 {
		return nil, nil, fmt.Errorf("steps must be at least 1")
	}
	cfgs := make([]sim.RunConfig, 0, steps)
	values := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		v := from
		if steps > 1 {
			v = from + float64(i)*(to-from)/float64(steps-1)
		}
		sc := *base
		sc.Devices = append([]config.DeviceSpec(nil), base.Devices...)
		switch param {
		case "vmax":
			sc.Simulation.Vmax = v
		case "l_total":
			sc.Simulation.LTotal = v
			for j := range sc.Devices {
				sc.Devices[j].Load = 0 // fall back to l_total
			}
		default:
			return nil, nil, fmt.Errorf("unknown sweep parameter %q", param)
		}
		inst, err := sc.Instance()
		if err != nil {
			return nil, nil, fmt.Errorf("sweep point %s=%v: %w", param, v, err)
		}
		cfgs = append(cfgs, sim.RunConfig{
			Label:    fmt.Sprintf("%s=%g", param, v),
			Instance: inst,
		})
		values = append(values, v)
	}
	return cfgs, values, nil
}

func toResult(scenario, param string, value float64, m sim.Metrics) *SweepResult {
	r := &SweepResult{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Scenario:  scenario,
		Param:     param,
		Value:     value,
		RuntimeMs: float64(m.Wall.Microseconds()) / 1000.0,
		Failed:    m.Err != nil,
	}
	if m.Err != nil {
		return r
	}
	r.Rounds = m.Rounds
	r.OptimalRounds = m.OptimalRounds
	r.State = m.State.String()
	r.EnergyComm = m.Energy.Comm
	r.EnergyLocal = m.Energy.Local
	r.EnergyUAV = m.Energy.UAVCompute
	r.EnergyFlight = m.Energy.Flight
	r.EnergyTotal = m.Energy.Total
	r.PathLength = m.PathLength
	r.MaxVelocity = m.MaxVelocity
	return r
}

func writeCSV(results []*SweepResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "go_version", "os", "arch", "scenario",
		"param", "value", "rounds", "optimal_rounds", "state",
		"energy_comm", "energy_local", "energy_uav", "energy_flight", "energy_total",
		"path_length", "max_velocity", "runtime_ms", "failed",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Timestamp, r.GoVersion, r.OS, r.Arch, r.Scenario,
			r.Param, fmt.Sprintf("%g", r.Value),
			fmt.Sprintf("%d", r.Rounds), fmt.Sprintf("%d", r.OptimalRounds), r.State,
			fmt.Sprintf("%.3f", r.EnergyComm), fmt.Sprintf("%.3f", r.EnergyLocal),
			fmt.Sprintf("%.3f", r.EnergyUAV), fmt.Sprintf("%.3f", r.EnergyFlight),
			fmt.Sprintf("%.3f", r.EnergyTotal),
			fmt.Sprintf("%.3f", r.PathLength), fmt.Sprintf("%.3f", r.MaxVelocity),
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%t", r.Failed),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(results []*SweepResult, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printSummary(results []*SweepResult) {
	fmt.Println("\n=== SWEEP SUMMARY ===")
	fmt.Printf("%-14s %-10s %-8s %-12s %-12s\n", "point", "state", "rounds", "total (J)", "path (m)")
	for _, r := range results {
		if r.Failed {
			fmt.Printf("%-14s %s\n", fmt.Sprintf("%s=%g", r.Param, r.Value), "FAILED")
			continue
		}
		fmt.Printf("%-14s %-10s %-8d %-12.2f %-12.2f\n",
			fmt.Sprintf("%s=%g", r.Param, r.Value), r.State, r.Rounds, r.EnergyTotal, r.PathLength)
	}
}
