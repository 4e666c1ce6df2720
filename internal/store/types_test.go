package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jiankangren/jmetalgo/internal/core"
)

func TestRunRecord_JSONSerialization(t *testing.T) {
	original := createTestRecord("json-run")
	original.Timestamp = time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal record: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshaled JSON is empty")
	}

	var restored RunRecord
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Failed to unmarshal record: %v", err)
	}

	if restored.RunID != original.RunID {
		t.Errorf("RunID mismatch: expected %s, got %s", original.RunID, restored.RunID)
	}
	if !restored.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp mismatch: expected %v, got %v", original.Timestamp, restored.Timestamp)
	}
	if restored.Config.Seed != original.Config.Seed {
		t.Errorf("Config.Seed mismatch: expected %d, got %d", original.Config.Seed, restored.Config.Seed)
	}
	if restored.ComputingTime != original.ComputingTime {
		t.Errorf("ComputingTime mismatch: expected %v, got %v", original.ComputingTime, restored.ComputingTime)
	}
	if len(restored.Objectives) != len(original.Objectives) {
		t.Fatalf("Objectives length mismatch: expected %d, got %d", len(original.Objectives), len(restored.Objectives))
	}
}

func TestNewRunRecord_CopiesObjectives(t *testing.T) {
	s := &core.Solution{Variables: core.RealVars{1}, Objectives: []float64{1, 2}}
	rec := NewRunRecord("copy-run", RunConfig{}, []*core.Solution{s}, 1, 1, 0)

	s.Objectives[0] = 99
	if rec.Objectives[0][0] == 99 {
		t.Error("record should not share objective slices with live solutions")
	}
}

func TestRunRecord_ToInfo(t *testing.T) {
	rec := createTestRecord("info-run")
	info := rec.ToInfo()

	if info.RunID != "info-run" || info.Problem != "ZDT1" || info.Algorithm != "SMPSO" {
		t.Errorf("info mismatch: %+v", info)
	}
	if info.FrontSize != 2 || info.Evaluations != 1000 {
		t.Errorf("info counters mismatch: %+v", info)
	}
}
