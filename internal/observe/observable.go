// Package observe provides the engine's publish/subscribe progress bus.
// Observers register with an Observable and receive immutable state
// snapshots synchronously, in registration order, at each notification
// point of the run.
package observe

import (
	"log/slog"
	"time"

	"github.com/jiankangren/jmetalgo/internal/core"
)

// Event is a snapshot of engine state handed to observers. Observers must
// treat it as read-only; the Solutions slice is shared with the engine.
type Event struct {
	Algorithm     string
	Problem       string
	State         string
	Evaluations   int
	Generations   int
	ComputingTime time.Duration
	Solutions     []*core.Solution

	// Err is set only on failure events.
	Err error
}

// Observer receives engine progress events. Update may block or do slow
// work; the engine pauses until it returns. Registering or unregistering
// observers from inside Update is not supported.
type Observer interface {
	Update(e Event)
}

// Observable fans events out to registered observers. It is owned by a
// single engine goroutine and is not internally synchronized.
type Observable struct {
	observers []Observer
}

func NewObservable() *Observable {
	return &Observable{}
}

// Register subscribes an observer. Registering the same observer twice is a
// no-op.
func (o *Observable) Register(obs Observer) {
	for _, existing := range o.observers {
		if existing == obs {
			return
		}
	}
	o.observers = append(o.observers, obs)
}

// Unregister removes an observer; unknown observers are ignored.
func (o *Observable) Unregister(obs Observer) {
	for i, existing := range o.observers {
		if existing == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered observers.
func (o *Observable) Len() int { return len(o.observers) }

// NotifyAll delivers the event to every observer in registration order. A
// panicking observer is logged and skipped; it never prevents delivery to
// the remaining observers or aborts the engine loop.
func (o *Observable) NotifyAll(e Event) {
	for _, obs := range o.observers {
		notify(obs, e)
	}
}

func notify(obs Observer, e Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Observer panicked during update", "panic", r)
		}
	}()
	obs.Update(e)
}
