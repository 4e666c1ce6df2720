package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// RunConfig holds the configuration an optimization run was started with.
// It is embedded in the persisted run record so results stay reproducible.
type RunConfig struct {
	Problem         string `json:"problem"`
	Algorithm       string `json:"algorithm"`
	NumVariables    int    `json:"numVariables"`
	PopulationSize  int    `json:"populationSize"`
	MaxEvaluations  int    `json:"maxEvaluations"`
	ArchiveCapacity int    `json:"archiveCapacity,omitempty"`
	Seed            int64  `json:"seed"`
	Workers         int    `json:"workers,omitempty"`
}

// RunRecord is a completed run's persistable result: the final solution
// set's objective vectors and decision variables plus run diagnostics.
//
// Objectives and Variables are parallel: row i of both describes the same
// solution. Variables are stored pre-rendered as text so the record stays
// independent of the problem's encoding.
type RunRecord struct {
	RunID         string        `json:"runId"`
	Config        RunConfig     `json:"config"`
	Objectives    [][]float64   `json:"objectives"`
	Variables     []string      `json:"variables"`
	Evaluations   int           `json:"evaluations"`
	Generations   int           `json:"generations"`
	ComputingTime time.Duration `json:"computingTime"`
	Timestamp     time.Time     `json:"timestamp"`
}

// RunInfo contains metadata about a stored run without the solution data.
// Used for listing runs efficiently.
type RunInfo struct {
	RunID       string    `json:"runId"`
	Problem     string    `json:"problem"`
	Algorithm   string    `json:"algorithm"`
	FrontSize   int       `json:"frontSize"`
	Evaluations int       `json:"evaluations"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRunRecord builds a run record from a final solution set.
func NewRunRecord(runID string, cfg RunConfig, solutions []*core.Solution, evaluations, generations int, elapsed time.Duration) *RunRecord {
	rec := &RunRecord{
		RunID:         runID,
		Config:        cfg,
		Objectives:    make([][]float64, len(solutions)),
		Variables:     make([]string, len(solutions)),
		Evaluations:   evaluations,
		Generations:   generations,
		ComputingTime: elapsed,
		Timestamp:     time.Now(),
	}
	for i, s := range solutions {
		objs := make([]float64, len(s.Objectives))
		copy(objs, s.Objectives)
		rec.Objectives[i] = objs
		rec.Variables[i] = renderVariables(s.Variables)
	}
	return rec
}

// ToInfo converts a full RunRecord to RunInfo (metadata only).
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:       r.RunID,
		Problem:     r.Config.Problem,
		Algorithm:   r.Config.Algorithm,
		FrontSize:   len(r.Objectives),
		Evaluations: r.Evaluations,
		Timestamp:   r.Timestamp,
	}
}

// Validate checks that the record is internally consistent.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return fmt.Errorf("runId cannot be empty")
	}
	if len(r.Objectives) != len(r.Variables) {
		return fmt.Errorf("objectives (%d) and variables (%d) rows differ",
			len(r.Objectives), len(r.Variables))
	}
	return nil
}

func renderVariables(v core.Variables) string {
	switch vars := v.(type) {
	case core.RealVars:
		parts := make([]string, len(vars))
		for i, x := range vars {
			parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return strings.Join(parts, "\t")
	case core.BinaryVars:
		var b strings.Builder
		for _, bit := range vars {
			if bit {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		return b.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
