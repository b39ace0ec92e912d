// Package notify publishes job submission events to interested listeners.
package notify

import "context"

// EventJobSubmitted is the event name emitted for each submitted job.
const EventJobSubmitted = "job_submitted"

// Event describes one submitted job.
type Event struct {
	RunID      string `json:"run_id"`
	JobName    string `json:"job_name"`
	JobID      string `json:"job_id"`
	ScriptPath string `json:"script_path"`
}

func (e Event) payload() map[string]any {
	return map[string]any{
		"run_id":      e.RunID,
		"job_name":    e.JobName,
		"job_id":      e.JobID,
		"script_path": e.ScriptPath,
	}
}

// Notifier publishes submission events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
