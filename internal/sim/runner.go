// Package sim runs batches of independent optimization runs and collects
// metrics for sweep studies.
//
// Each run is fully self-contained (its own instance, trajectory and
// allocation values), so runs parallelize across goroutines with no locking
// beyond the results slice.
package sim

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/elektrokombinacija/uav-mec-research/internal/algo"
	"github.com/elektrokombinacija/uav-mec-research/internal/core"
	"github.com/elektrokombinacija/uav-mec-research/internal/energy"
	"github.com/elektrokombinacija/uav-mec-research/internal/solver"
)

// RunConfig describes one independent optimization run.
type RunConfig struct {
	Label    string
	Instance *core.Instance
}

// Metrics captures the outcome of one run.
type Metrics struct {
	Label         string
	Rounds        int
	OptimalRounds int
	State         algo.State
	Energy        energy.Breakdown
	PathLength    float64
	MaxVelocity   float64
	Wall          time.Duration
	Err           error
}

// Runner executes runs against a shared backend constructor. A fresh backend
// per run keeps runs independent even if a Backend implementation carries
// internal state.
type Runner struct {
	NewBackend func() solver.Backend
	Workers    int
	Log        *slog.Logger
}

// NewRunner returns a runner with the default penalty backend.
func NewRunner(workers int, log *slog.Logger) *Runner {
	return &Runner{
		NewBackend: func() solver.Backend { return solver.NewPenaltyBackend() },
		Workers:    workers,
		Log:        log,
	}
}

// RunOne executes a single optimization run.
func (r *Runner) RunOne(cfg RunConfig) Metrics {
	start := time.Now()
	engine := algo.NewBCD(r.NewBackend())
	res, err := engine.Optimize(cfg.Instance)
	m := Metrics{Label: cfg.Label, Wall: time.Since(start), Err: err}
	if err != nil {
		return m
	}
	m.Rounds = res.Rounds
	m.OptimalRounds = res.OptimalRounds
	m.State = res.State
	m.Energy = res.Energy
	m.PathLength = res.Trajectory.PathLength()
	m.MaxVelocity = res.Trajectory.MaxVelocity(cfg.Instance.Params.Delta())
	return m
}

// RunAll executes every run, fanning out across Workers goroutines. Results
// come back in input order.
func (r *Runner) RunAll(cfgs []RunConfig) []Metrics {
	out := make([]Metrics, len(cfgs))
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = r.RunOne(cfgs[i])
				if r.Log != nil {
					r.logRun(out[i])
				}
			}
		}()
	}
	for i := range cfgs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

func (r *Runner) logRun(m Metrics) {
	if m.Err != nil {
		r.Log.Error("run failed", "label", m.Label, "err", m.Err)
		return
	}
	r.Log.Info("run finished",
		"label", m.Label,
		"state", m.State.String(),
		"rounds", m.Rounds,
		"energy", fmt.Sprintf("%.2f", m.Energy.Total),
		"wall", m.Wall,
	)
}
