package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/engine"
	"github.com/jiankangren/jmetalgo/internal/indicator"
	"github.com/jiankangren/jmetalgo/internal/observe"
	"github.com/jiankangren/jmetalgo/internal/problem"
	"github.com/jiankangren/jmetalgo/internal/runner"
	"github.com/jiankangren/jmetalgo/internal/store"
)

var (
	problemName   string
	algorithmName string
	numVariables  int
	popSize       int
	maxEvals      int
	archiveCap    int
	seed          int64
	workers       int
	runDataDir    string
	traceRun      bool
	logStep       int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run single-shot optimization",
	Long:  `Runs an optimization locally and persists the resulting front.`,
	RunE:  runOptimization,
}

func init() {
	runCmd.Flags().StringVar(&problemName, "problem", "", "Problem: zdt1, sphere, schaffer, onemax (required)")
	runCmd.Flags().StringVar(&algorithmName, "algorithm", "nsgaii", "Algorithm: es, ga, smpso, nsgaii")
	runCmd.Flags().IntVar(&numVariables, "vars", 0, "Number of decision variables (0 = problem default)")
	runCmd.Flags().IntVar(&popSize, "pop", 100, "Population size")
	runCmd.Flags().IntVar(&maxEvals, "evals", 25000, "Max evaluations")
	runCmd.Flags().IntVar(&archiveCap, "archive", 0, "Archive capacity (0 = population size)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Parallel evaluation workers (0 = sequential)")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "./data", "Base directory for run storage")
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "Write a per-generation trace file")
	runCmd.Flags().IntVar(&logStep, "log-step", 10, "Log progress every N generations")

	runCmd.MarkFlagRequired("problem")
	rootCmd.AddCommand(runCmd)
}

func runOptimization(cmd *cobra.Command, args []string) error {
	cfg := store.RunConfig{
		Problem:         problemName,
		Algorithm:       algorithmName,
		NumVariables:    numVariables,
		PopulationSize:  popSize,
		MaxEvaluations:  maxEvals,
		ArchiveCapacity: archiveCap,
		Seed:            seed,
		Workers:         workers,
	}

	p, err := runner.BuildProblem(cfg)
	if err != nil {
		return err
	}

	eng, err := runner.BuildEngine(p, cfg, engine.MaxEvaluations(cfg.MaxEvaluations))
	if err != nil {
		return err
	}

	slog.Info("Starting optimization",
		"problem", p.Name(),
		"algorithm", eng.Name(),
		"pop", cfg.PopulationSize,
		"evals", cfg.MaxEvaluations,
		"seed", cfg.Seed,
	)

	runID := uuid.New().String()
	eng.Observable().Register(observe.NewProgressLogger(logStep))

	runStore, err := store.NewFSStore(runDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	if traceRun {
		tw, err := store.NewTraceWriter(runDataDir, runID, false)
		if err != nil {
			return fmt.Errorf("failed to create trace writer: %w", err)
		}
		defer tw.Close()
		eng.Observable().Register(observe.NewTraceObserver(tw))
	}

	progress := &progressRecorder{}
	eng.Observable().Register(progress)

	start := time.Now()
	if err := eng.Run(); err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}
	elapsed := time.Since(start)

	front, err := runner.Result(eng)
	if err != nil {
		return err
	}

	record := store.NewRunRecord(runID, cfg, front, progress.evaluations, progress.generations, eng.ComputingTime())
	if err := runStore.SaveRun(record); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	slog.Info("Optimization complete",
		"run_id", runID,
		"elapsed", elapsed,
		"evaluations", progress.evaluations,
		"generations", progress.generations,
		"front_size", len(front),
	)

	reportQuality(p, front)

	if len(front) == 1 {
		fmt.Printf("Run %s: best objectives %v (%s)\n", runID, front[0].Objectives, elapsed.Round(time.Millisecond))
	} else {
		fmt.Printf("Run %s: front of %d solutions (%s)\n", runID, len(front), elapsed.Round(time.Millisecond))
	}
	fmt.Printf("Results written to %s/runs/%s\n", runDataDir, runID)

	return nil
}

// progressRecorder keeps the last seen evaluation and generation counters.
type progressRecorder struct {
	evaluations int
	generations int
}

func (r *progressRecorder) Update(e observe.Event) {
	r.evaluations = e.Evaluations
	r.generations = e.Generations
}

// reportQuality logs front quality indicators where a reference is known.
func reportQuality(p problem.Problem, front []*core.Solution) {
	if p.NumObjectives() != 2 || len(front) < 2 {
		return
	}

	objs := make([][]float64, len(front))
	for i, s := range front {
		objs[i] = s.Objectives
	}

	if zdt, ok := p.(*problem.ZDT1); ok {
		igd := indicator.InvertedGenerationalDistance(objs, zdt.TrueParetoFront(1000))
		hv := indicator.Hypervolume2D(objs, []float64{1.1, 1.1})
		slog.Info("Front quality", "igd", igd, "hypervolume", hv, "spread", indicator.Spread(objs))
		return
	}

	slog.Info("Front quality", "spread", indicator.Spread(objs))
}
