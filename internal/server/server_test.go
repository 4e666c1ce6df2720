package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jiankangren/jmetalgo/internal/store"
)

func quickJobConfig() JobConfig {
	return JobConfig{
		Problem:         "schaffer",
		Algorithm:       "smpso",
		PopulationSize:  20,
		MaxEvaluations:  400,
		ArchiveCapacity: 20,
		Seed:            42,
	}
}

func TestServer_CreateJob(t *testing.T) {
	s := NewServer(":8080", nil)

	body, _ := json.Marshal(quickJobConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var job Job
	if err := json.NewDecoder(w.Body).Decode(&job); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if job.ID == "" {
		t.Error("Job ID should not be empty")
	}

	// State should be pending or running (since worker starts immediately)
	if job.State != StatePending && job.State != StateRunning {
		t.Errorf("Expected pending or running state, got %s", job.State)
	}
}

func TestServer_CreateJob_Validation(t *testing.T) {
	s := NewServer(":8080", nil)

	tests := []struct {
		name   string
		config JobConfig
	}{
		{"missing problem", JobConfig{Algorithm: "smpso"}},
		{"missing algorithm", JobConfig{Problem: "zdt1"}},
		{"unknown problem", JobConfig{Problem: "rastrigin", Algorithm: "smpso"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.config)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
			w := httptest.NewRecorder()

			s.handleCreateJob(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestServer_ListJobs(t *testing.T) {
	s := NewServer(":8080", nil)

	// Create two jobs
	s.jobManager.CreateJob(quickJobConfig())
	s.jobManager.CreateJob(quickJobConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	w := httptest.NewRecorder()

	s.handleListJobs(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var jobs []*Job
	if err := json.NewDecoder(w.Body).Decode(&jobs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(jobs) != 2 {
		t.Errorf("Expected 2 jobs, got %d", len(jobs))
	}
}

func TestServer_GetJobStatus(t *testing.T) {
	s := NewServer(":8080", nil)

	job := s.jobManager.CreateJob(quickJobConfig())

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%s/status", job.ID), nil)
	w := httptest.NewRecorder()

	s.handleGetJobStatus(w, req, job.ID)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["id"] != job.ID {
		t.Error("Response should contain job ID")
	}

	if response["state"] != string(StatePending) {
		t.Errorf("Expected pending state, got %v", response["state"])
	}
}

func TestServer_GetJobStatus_NotFound(t *testing.T) {
	s := NewServer(":8080", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nonexistent/status", nil)
	w := httptest.NewRecorder()

	s.handleGetJobStatus(w, req, "nonexistent")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestServer_GetJobResult(t *testing.T) {
	runStore, err := store.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	s := NewServer(":8080", runStore)

	job := s.jobManager.CreateJob(quickJobConfig())

	// Run job to completion
	if err := runJob(context.Background(), s.jobManager, runStore, job.ID); err != nil {
		t.Fatalf("Job failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%s/result", job.ID), nil)
	w := httptest.NewRecorder()

	s.handleGetJobResult(w, req, job.ID)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var record store.RunRecord
	if err := json.NewDecoder(w.Body).Decode(&record); err != nil {
		t.Fatalf("Failed to decode record: %v", err)
	}

	if record.RunID != job.ID {
		t.Errorf("Expected run ID %s, got %s", job.ID, record.RunID)
	}
	if len(record.Objectives) == 0 {
		t.Error("Record should contain objective vectors")
	}
}

func TestServer_GetJobResult_NotCompleted(t *testing.T) {
	s := NewServer(":8080", nil)

	job := s.jobManager.CreateJob(quickJobConfig())

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%s/result", job.ID), nil)
	w := httptest.NewRecorder()

	s.handleGetJobResult(w, req, job.ID)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestServer_CancelJob(t *testing.T) {
	s := NewServer(":8080", nil)

	job := s.jobManager.CreateJob(quickJobConfig())
	_, cancel := context.WithCancel(context.Background())
	s.jobManager.setCancel(job.ID, cancel)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/cancel", job.ID), nil)
	w := httptest.NewRecorder()

	s.handleCancelJob(w, req, job.ID)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	// Finished jobs are not cancellable
	s.jobManager.UpdateJob(job.ID, func(j *Job) {
		j.State = StateCompleted
	})

	w = httptest.NewRecorder()
	s.handleCancelJob(w, req, job.ID)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestServer_Integration(t *testing.T) {
	// Skip in short mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	runStore, err := store.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	s := NewServer("localhost:0", runStore)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	// Create job
	body, _ := json.Marshal(quickJobConfig())
	resp, err := http.Post(srv.URL+"/api/v1/jobs", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	defer resp.Body.Close()

	var job Job
	json.NewDecoder(resp.Body).Decode(&job)

	// Poll status until completed
	maxAttempts := 50
	for i := 0; i < maxAttempts; i++ {
		resp, err := http.Get(srv.URL + "/api/v1/jobs/" + job.ID + "/status")
		if err != nil {
			t.Fatalf("Failed to get status: %v", err)
		}

		var status map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&status)
		resp.Body.Close()

		if status["state"] == string(StateCompleted) {
			break
		}

		if status["state"] == string(StateFailed) {
			t.Fatalf("Job failed: %v", status["error"])
		}

		if i == maxAttempts-1 {
			t.Fatal("Job did not complete in time")
		}

		time.Sleep(100 * time.Millisecond)
	}

	// Fetch the persisted result
	resp, err = http.Get(srv.URL + "/api/v1/jobs/" + job.ID + "/result")
	if err != nil {
		t.Fatalf("Failed to get result: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	var record store.RunRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("Failed to decode record: %v", err)
	}
	if len(record.Objectives) == 0 {
		t.Error("Record should contain objective vectors")
	}
}

func TestServer_JobStream_SSE(t *testing.T) {
	// Skip in short mode
	if testing.Short() {
		t.Skip("Skipping SSE test in short mode")
	}

	s := NewServer(":8080", nil)

	cfg := quickJobConfig()
	cfg.MaxEvaluations = 4000
	job := s.jobManager.CreateJob(cfg)

	// Start worker in background
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go runJob(ctx, s.jobManager, nil, job.ID)

	// Wait a bit for job to start
	time.Sleep(100 * time.Millisecond)

	// Create SSE request
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%s/stream", job.ID), nil)
	w := httptest.NewRecorder()

	// Run handler in goroutine
	done := make(chan bool)
	go func() {
		s.handleJobStream(w, req, job.ID)
		done <- true
	}()

	// Wait for some data or timeout
	timeout := time.After(3 * time.Second)
	select {
	case <-done:
		// Handler completed
	case <-timeout:
		// Timeout - that's ok, we just want to check we got some events
	}

	// Check headers
	if w.Header().Get("Content-Type") != "text/event-stream" {
		t.Error("Expected text/event-stream content type")
	}

	// Check we got some SSE data
	body := w.Body.String()
	if !containsString(body, "data:") {
		t.Error("Expected SSE data in response")
	}
}

func TestServer_JobStream_NotFound(t *testing.T) {
	s := NewServer(":8080", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nonexistent/stream", nil)
	w := httptest.NewRecorder()

	s.handleJobStream(w, req, "nonexistent")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestEventBroadcaster(t *testing.T) {
	eb := NewEventBroadcaster()

	// Subscribe to events
	ch := eb.Subscribe("job1")
	defer eb.Unsubscribe("job1", ch)

	// Broadcast an event
	event := ProgressEvent{
		JobID:       "job1",
		State:       StateRunning,
		Evaluations: 1000,
		Generations: 10,
		FrontSize:   20,
		Timestamp:   time.Now(),
	}
	eb.Broadcast(event)

	// Receive event
	select {
	case received := <-ch:
		if received.JobID != "job1" {
			t.Errorf("Expected jobID job1, got %s", received.JobID)
		}
		if received.Evaluations != 1000 {
			t.Errorf("Expected 1000 evaluations, got %d", received.Evaluations)
		}
	case <-time.After(1 * time.Second):
		t.Error("Timeout waiting for event")
	}

	// Cleanup
	eb.CleanupJob("job1")
}

func TestEventBroadcaster_LastEventReplay(t *testing.T) {
	eb := NewEventBroadcaster()

	event := ProgressEvent{
		JobID:       "job1",
		State:       StateRunning,
		Evaluations: 500,
		Timestamp:   time.Now(),
	}
	eb.Broadcast(event)

	// A late subscriber receives the last event immediately
	ch := eb.Subscribe("job1")
	defer eb.Unsubscribe("job1", ch)

	select {
	case received := <-ch:
		if received.Evaluations != 500 {
			t.Errorf("Expected replayed event with 500 evaluations, got %d", received.Evaluations)
		}
	case <-time.After(1 * time.Second):
		t.Error("Timeout waiting for replayed event")
	}
}

func TestEventBroadcaster_ConcurrentJobs(t *testing.T) {
	eb := NewEventBroadcaster()

	// Every running job broadcasts from its own goroutine, so lastEvent
	// updates for distinct jobs must be safe to interleave.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			jobID := fmt.Sprintf("job%d", i)
			for evals := 0; evals < 100; evals++ {
				eb.Broadcast(ProgressEvent{
					JobID:       jobID,
					State:       StateRunning,
					Evaluations: evals,
					Timestamp:   time.Now(),
				})
			}
		}(i)
	}
	wg.Wait()

	// Each job's final event must be visible to a late subscriber.
	for i := 0; i < 8; i++ {
		jobID := fmt.Sprintf("job%d", i)
		ch := eb.Subscribe(jobID)
		select {
		case received := <-ch:
			if received.Evaluations != 99 {
				t.Errorf("Expected last event with 99 evaluations for %s, got %d", jobID, received.Evaluations)
			}
		case <-time.After(1 * time.Second):
			t.Errorf("Timeout waiting for replayed event for %s", jobID)
		}
		eb.Unsubscribe(jobID, ch)
	}
}

func containsString(haystack, needle string) bool {
	return bytes.Contains([]byte(haystack), []byte(needle))
}
