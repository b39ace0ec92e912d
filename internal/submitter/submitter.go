// Package submitter ties rendering, script writing and submission together:
// validate a descriptor, write its script and, when asked, hand it to the
// scheduler.
package submitter

import (
	"context"

	"github.com/vk/qsubmit/internal/ctxlog"
	"github.com/vk/qsubmit/internal/job"
	"github.com/vk/qsubmit/internal/render"
	"github.com/vk/qsubmit/internal/script"
	"github.com/vk/qsubmit/internal/submit"
)

// JobSubmitter submits a written script and returns the scheduler's job id.
type JobSubmitter interface {
	Submit(ctx context.Context, scriptPath string) (string, error)
}

// Result describes a written script. Submitted is false, and JobID empty,
// when the script was written but not handed to the scheduler.
type Result struct {
	ScriptPath string
	JobID      string
	Submitted  bool
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithDialect overrides the dialect used for one queue type.
func WithDialect(q job.QueueType, d render.Dialect) Option {
	return func(s *Submitter) {
		s.dialects[q] = d
	}
}

// Submitter writes and submits job scripts.
type Submitter struct {
	client   JobSubmitter
	dialects map[job.QueueType]render.Dialect
}

// New returns a Submitter that submits through client, or through qsub on the
// PATH when client is nil.
func New(client JobSubmitter, opts ...Option) *Submitter {
	if client == nil {
		client = submit.New("")
	}
	s := &Submitter{
		client:   client,
		dialects: make(map[job.QueueType]render.Dialect),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview renders the complete script, shebang included, without touching
// the filesystem.
func (s *Submitter) Preview(d *job.Descriptor, opts render.Options) ([]string, error) {
	if err := render.Validate(d); err != nil {
		return nil, err
	}
	dialect, err := s.dialect(d.QueueType)
	if err != nil {
		return nil, err
	}
	lines, err := render.RenderDialect(d, dialect, opts)
	if err != nil {
		return nil, err
	}
	return render.Script(lines), nil
}

// WriteScript validates and renders d, writes the script to d.ScriptPath and
// submits it when opts.Submit is set. Nothing is written if validation
// fails. A failed submission is returned as an error, never as an
// unsubmitted Result.
func (s *Submitter) WriteScript(ctx context.Context, d *job.Descriptor, opts render.Options) (*Result, error) {
	lines, err := s.Preview(d, opts)
	if err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx).With("job", d.Name, "queue_type", string(d.QueueType), "script", d.ScriptPath)

	if err := script.Write(d.ScriptPath, lines); err != nil {
		return nil, err
	}
	logger.Debug("Job script written.", "lines", len(lines))

	res := &Result{ScriptPath: d.ScriptPath}
	if !opts.Submit {
		return res, nil
	}

	id, err := s.client.Submit(ctx, d.ScriptPath)
	if err != nil {
		return nil, err
	}
	res.JobID = id
	res.Submitted = true
	logger.Info("Job submitted.", "job_id", id)
	return res, nil
}

func (s *Submitter) dialect(q job.QueueType) (render.Dialect, error) {
	parsed, err := job.ParseQueueType(string(q))
	if err == nil {
		if d, ok := s.dialects[parsed]; ok {
			return d, nil
		}
	}
	return render.DialectFor(q)
}
