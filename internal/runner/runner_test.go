package runner

import (
	"testing"

	"github.com/jiankangren/jmetalgo/internal/engine"
	"github.com/jiankangren/jmetalgo/internal/store"
)

func TestBuildProblem(t *testing.T) {
	tests := []struct {
		name          string
		numVariables  int
		wantVariables int
		wantObjective int
	}{
		{"zdt1", 0, 30, 2},
		{"zdt1", 10, 10, 2},
		{"sphere", 0, 10, 1},
		{"schaffer", 0, 1, 2},
		{"onemax", 64, 64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildProblem(store.RunConfig{Problem: tt.name, NumVariables: tt.numVariables})
			if err != nil {
				t.Fatalf("BuildProblem failed: %v", err)
			}
			if p.NumVariables() != tt.wantVariables {
				t.Errorf("Expected %d variables, got %d", tt.wantVariables, p.NumVariables())
			}
			if p.NumObjectives() != tt.wantObjective {
				t.Errorf("Expected %d objectives, got %d", tt.wantObjective, p.NumObjectives())
			}
		})
	}
}

func TestBuildProblem_Unknown(t *testing.T) {
	_, err := BuildProblem(store.RunConfig{Problem: "rastrigin"})
	if err == nil {
		t.Error("Expected error for unknown problem")
	}
}

func TestBuildEngine(t *testing.T) {
	algorithms := []string{"es", "ga", "nsgaii", "smpso"}

	for _, alg := range algorithms {
		t.Run(alg, func(t *testing.T) {
			cfg := store.RunConfig{
				Problem:        "zdt1",
				Algorithm:      alg,
				PopulationSize: 20,
				MaxEvaluations: 200,
				Seed:           1,
			}

			p, err := BuildProblem(cfg)
			if err != nil {
				t.Fatalf("BuildProblem failed: %v", err)
			}

			eng, err := BuildEngine(p, cfg, engine.MaxEvaluations(cfg.MaxEvaluations))
			if err != nil {
				t.Fatalf("BuildEngine failed: %v", err)
			}
			if eng.State() != engine.StateCreated {
				t.Errorf("New engine should be in created state, got %s", eng.State())
			}
		})
	}
}

func TestBuildEngine_SMPSORequiresBounds(t *testing.T) {
	cfg := store.RunConfig{
		Problem:        "onemax",
		Algorithm:      "smpso",
		NumVariables:   16,
		PopulationSize: 10,
	}

	p, err := BuildProblem(cfg)
	if err != nil {
		t.Fatalf("BuildProblem failed: %v", err)
	}

	if _, err := BuildEngine(p, cfg, engine.MaxEvaluations(100)); err == nil {
		t.Error("SMPSO on a binary problem should be rejected")
	}
}

func TestBuildEngine_Unknown(t *testing.T) {
	cfg := store.RunConfig{Problem: "zdt1", Algorithm: "annealing"}

	p, err := BuildProblem(cfg)
	if err != nil {
		t.Fatalf("BuildProblem failed: %v", err)
	}

	if _, err := BuildEngine(p, cfg, engine.MaxEvaluations(100)); err == nil {
		t.Error("Expected error for unknown algorithm")
	}
}

func TestRunThroughResult(t *testing.T) {
	cfg := store.RunConfig{
		Problem:        "schaffer",
		Algorithm:      "nsgaii",
		PopulationSize: 20,
		MaxEvaluations: 400,
		Seed:           7,
	}

	p, err := BuildProblem(cfg)
	if err != nil {
		t.Fatalf("BuildProblem failed: %v", err)
	}
	eng, err := BuildEngine(p, cfg, engine.MaxEvaluations(cfg.MaxEvaluations))
	if err != nil {
		t.Fatalf("BuildEngine failed: %v", err)
	}

	if err := eng.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	front, err := Result(eng)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if len(front) == 0 {
		t.Error("Result should return a non-empty front")
	}
}
