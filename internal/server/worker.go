package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/engine"
	"github.com/jiankangren/jmetalgo/internal/observe"
	"github.com/jiankangren/jmetalgo/internal/runner"
	"github.com/jiankangren/jmetalgo/internal/store"
)

// runJob executes an optimization job in the background.
// If runStore is not nil, the final front is persisted as a run record.
func runJob(ctx context.Context, jm *JobManager, runStore store.Store, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		return err
	}

	slog.Info("Starting job",
		"job_id", jobID,
		"problem", job.Config.Problem,
		"algorithm", job.Config.Algorithm,
	)

	p, err := runner.BuildProblem(job.Config)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	// Check for cancellation before starting expensive operation
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	term := engine.WithContext(ctx, engine.MaxEvaluations(job.Config.MaxEvaluations))
	eng, err := runner.BuildEngine(p, job.Config, term)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	// Bridge engine progress events into job updates and SSE broadcasts.
	eng.Observable().Register(&jobObserver{jm: jm, jobID: jobID})

	start := time.Now()
	runErr := eng.Run()
	elapsed := time.Since(start)

	// Cancellation surfaces as normal termination with the context done.
	if ctx.Err() != nil {
		markJobCancelled(jm, jobID)
		return ctx.Err()
	}
	if runErr != nil {
		markJobFailed(jm, jobID, runErr)
		return runErr
	}

	front, err := runner.Result(eng)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	if runStore != nil {
		job, _ = jm.GetJob(jobID)
		record := store.NewRunRecord(jobID, job.Config, front, job.Evaluations, job.Generations, elapsed)
		if err := runStore.SaveRun(record); err != nil {
			slog.Warn("Failed to persist run record", "job_id", jobID, "error", err)
		}
	}

	endTime := time.Now()
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.FrontSize = len(front)
		j.EndTime = &endTime
	})
	if err != nil {
		return err
	}

	job, _ = jm.GetJob(jobID)
	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"evaluations", job.Evaluations,
		"generations", job.Generations,
		"front_size", len(front),
	)

	// Broadcast final completion event
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:       jobID,
		State:       StateCompleted,
		Evaluations: job.Evaluations,
		Generations: job.Generations,
		FrontSize:   len(front),
		Best:        bestObjectives(front),
		Timestamp:   time.Now(),
	})

	return nil
}

// bestObjectives returns the objectives of the best solution in a
// single-objective set, or nil for multi-objective fronts.
func bestObjectives(front []*core.Solution) []float64 {
	if len(front) == 0 || len(front[0].Objectives) != 1 {
		return nil
	}
	best := front[0]
	for _, s := range front[1:] {
		if s.Objectives[0] < best.Objectives[0] {
			best = s
		}
	}
	objs := make([]float64, len(best.Objectives))
	copy(objs, best.Objectives)
	return objs
}

// jobObserver forwards engine progress to the job manager and SSE clients.
type jobObserver struct {
	jm    *JobManager
	jobID string
}

func (o *jobObserver) Update(e observe.Event) {
	o.jm.UpdateJob(o.jobID, func(j *Job) {
		j.Evaluations = e.Evaluations
		j.Generations = e.Generations
		j.FrontSize = len(e.Solutions)
	})

	job, exists := o.jm.GetJob(o.jobID)
	if !exists {
		return
	}

	o.jm.broadcaster.Broadcast(ProgressEvent{
		JobID:       o.jobID,
		State:       job.State,
		Evaluations: e.Evaluations,
		Generations: e.Generations,
		FrontSize:   len(e.Solutions),
		Best:        bestObjectives(e.Solutions),
		Timestamp:   time.Now(),
	})
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
