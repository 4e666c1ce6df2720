package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jiankangren/jmetalgo/internal/store"
)

func TestRunJob_Success(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(quickJobConfig())

	err := runJob(context.Background(), jm, nil, job.ID)
	if err != nil {
		t.Errorf("runJob should succeed: %v", err)
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateCompleted {
		t.Errorf("Job should be completed, got %s", updated.State)
	}

	if updated.Evaluations < updated.Config.MaxEvaluations {
		t.Errorf("Expected at least %d evaluations, got %d",
			updated.Config.MaxEvaluations, updated.Evaluations)
	}

	if updated.FrontSize == 0 {
		t.Error("FrontSize should be set")
	}

	if updated.EndTime == nil {
		t.Error("EndTime should be set")
	}
}

func TestRunJob_PersistsRecord(t *testing.T) {
	runStore, err := store.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	jm := NewJobManager()
	job := jm.CreateJob(quickJobConfig())

	if err := runJob(context.Background(), jm, runStore, job.ID); err != nil {
		t.Fatalf("runJob should succeed: %v", err)
	}

	record, err := runStore.LoadRun(job.ID)
	if err != nil {
		t.Fatalf("Run record should be persisted: %v", err)
	}

	if record.Config.Problem != "schaffer" {
		t.Errorf("Expected schaffer config, got %s", record.Config.Problem)
	}
	if len(record.Objectives) == 0 {
		t.Error("Record should contain objective vectors")
	}
	for _, objs := range record.Objectives {
		if len(objs) != 2 {
			t.Errorf("Expected 2 objectives per solution, got %d", len(objs))
		}
	}
}

func TestRunJob_UnknownProblem(t *testing.T) {
	jm := NewJobManager()
	cfg := quickJobConfig()
	cfg.Problem = "rastrigin"
	job := jm.CreateJob(cfg)

	err := runJob(context.Background(), jm, nil, job.ID)
	if err == nil {
		t.Fatal("runJob should fail for unknown problem")
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateFailed {
		t.Errorf("Job should be failed, got %s", updated.State)
	}
	if updated.Error == "" {
		t.Error("Job error message should be set")
	}
}

func TestRunJob_UnknownAlgorithm(t *testing.T) {
	jm := NewJobManager()
	cfg := quickJobConfig()
	cfg.Algorithm = "annealing"
	job := jm.CreateJob(cfg)

	err := runJob(context.Background(), jm, nil, job.ID)
	if err == nil {
		t.Fatal("runJob should fail for unknown algorithm")
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateFailed {
		t.Errorf("Job should be failed, got %s", updated.State)
	}
}

func TestRunJob_NotFound(t *testing.T) {
	jm := NewJobManager()

	err := runJob(context.Background(), jm, nil, "nonexistent")
	if err == nil {
		t.Error("runJob should fail for unknown job ID")
	}
}

func TestRunJob_Cancellation(t *testing.T) {
	jm := NewJobManager()
	cfg := quickJobConfig()
	cfg.Problem = "zdt1"
	cfg.NumVariables = 30
	cfg.MaxEvaluations = 10000000 // Far more than can finish before the cancel
	job := jm.CreateJob(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	jm.setCancel(job.ID, cancel)

	done := make(chan error, 1)
	go func() {
		done <- runJob(ctx, jm, nil, job.ID)
	}()

	time.Sleep(50 * time.Millisecond)
	if !jm.CancelJob(job.ID) {
		t.Fatal("Running job should be cancellable")
	}

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Job did not stop after cancellation")
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateCancelled {
		t.Errorf("Job should be cancelled, got %s", updated.State)
	}
}

func TestRunJob_AllAlgorithms(t *testing.T) {
	tests := []struct {
		algorithm string
		problem   string
	}{
		{"es", "onemax"},
		{"ga", "sphere"},
		{"smpso", "schaffer"},
		{"nsgaii", "schaffer"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			jm := NewJobManager()
			cfg := quickJobConfig()
			cfg.Algorithm = tt.algorithm
			cfg.Problem = tt.problem
			cfg.NumVariables = 10
			job := jm.CreateJob(cfg)

			if err := runJob(context.Background(), jm, nil, job.ID); err != nil {
				t.Fatalf("runJob should succeed: %v", err)
			}

			updated, _ := jm.GetJob(job.ID)
			if updated.State != StateCompleted {
				t.Errorf("Job should be completed, got %s", updated.State)
			}
		})
	}
}

func TestRunJob_BroadcastsProgress(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(quickJobConfig())

	ch := jm.broadcaster.Subscribe(job.ID)
	defer jm.broadcaster.Unsubscribe(job.ID, ch)

	if err := runJob(context.Background(), jm, nil, job.ID); err != nil {
		t.Fatalf("runJob should succeed: %v", err)
	}

	// At least one event must be buffered; slow consumers only lose
	// intermediate events since the channel holds the most recent ten.
	select {
	case event := <-ch:
		if event.JobID != job.ID {
			t.Errorf("Expected event for job %s, got %s", job.ID, event.JobID)
		}
	default:
		t.Error("Expected at least one broadcast event")
	}
}
