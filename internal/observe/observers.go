package observe

import (
	"log/slog"
	"time"

	"github.com/jiankangren/jmetalgo/internal/store"
)

// ProgressLogger logs a structured progress line at most every Step
// evaluations, plus the first and final events.
type ProgressLogger struct {
	Step int

	lastLogged int
}

func NewProgressLogger(step int) *ProgressLogger {
	return &ProgressLogger{Step: step, lastLogged: -1}
}

func (o *ProgressLogger) Update(e Event) {
	final := e.State != "running"
	if !final && o.lastLogged >= 0 && e.Evaluations-o.lastLogged < o.Step {
		return
	}
	o.lastLogged = e.Evaluations

	attrs := []any{
		"algorithm", e.Algorithm,
		"problem", e.Problem,
		"state", e.State,
		"evaluations", e.Evaluations,
		"generations", e.Generations,
		"elapsed", e.ComputingTime,
		"solutions", len(e.Solutions),
	}
	if len(e.Solutions) > 0 && len(e.Solutions[0].Objectives) == 1 {
		best := e.Solutions[0].Objectives[0]
		for _, s := range e.Solutions[1:] {
			if s.Objectives[0] < best {
				best = s.Objectives[0]
			}
		}
		attrs = append(attrs, "best", best)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
		slog.Error("Optimization failed", attrs...)
		return
	}
	slog.Info("Optimization progress", attrs...)
}

// TraceObserver appends one trace entry per notification through a store
// trace writer. Write failures are logged and otherwise ignored; telemetry
// must never stop a run.
type TraceObserver struct {
	writer *store.TraceWriter
}

func NewTraceObserver(writer *store.TraceWriter) *TraceObserver {
	return &TraceObserver{writer: writer}
}

func (o *TraceObserver) Update(e Event) {
	entry := store.TraceEntry{
		Generation:  e.Generations,
		Evaluations: e.Evaluations,
		FrontSize:   len(e.Solutions),
		Timestamp:   time.Now(),
	}
	if len(e.Solutions) > 0 {
		best := e.Solutions[0]
		for _, s := range e.Solutions[1:] {
			if len(s.Objectives) == 1 && s.Objectives[0] < best.Objectives[0] {
				best = s
			}
		}
		entry.Best = append([]float64(nil), best.Objectives...)
	}

	if err := o.writer.Write(entry); err != nil {
		slog.Warn("Failed to write trace entry", "error", err)
	}
}
