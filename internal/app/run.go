package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/qsubmit/internal/config"
	"github.com/vk/qsubmit/internal/ctxlog"
	"github.com/vk/qsubmit/internal/job"
	"github.com/vk/qsubmit/internal/notify"
	"github.com/vk/qsubmit/internal/render"
	"github.com/vk/qsubmit/internal/report"
	"github.com/vk/qsubmit/internal/submitter"
)

// Run loads every job under the configured path, writes (or previews) each
// script in dependency order, submits the ones that ask for it and prints a
// summary. The first failing job stops the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger
	logger.Debug("App.Run method started.", "job_path", a.config.JobPath)

	if _, err := os.Stat(a.config.JobPath); err != nil {
		return fmt.Errorf("job path: %w", err)
	}

	model, err := a.loader.Load(ctx, a.config.JobPath)
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	if len(model.Jobs) == 0 {
		logger.Warn("No jobs found, nothing to do.", "job_path", a.config.JobPath)
		return nil
	}
	logger.Info("Jobs loaded.", "count", len(model.Jobs))

	jobs, err := orderJobs(model.Jobs)
	if err != nil {
		return err
	}

	overrides := make([]override, 0, len(a.config.Overrides))
	for _, s := range a.config.Overrides {
		o, err := parseOverride(s)
		if err != nil {
			return err
		}
		overrides = append(overrides, o)
	}

	notifier := a.openNotifier(ctx)
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("Failed to close notifier.", "error", err)
		}
	}()

	sub := a.submitter()
	results := make(map[string]*submitter.Result, len(jobs))
	rows := make([]report.Row, 0, len(jobs))

	for _, j := range jobs {
		d, opts, err := a.prepare(ctxlog.With(ctx, "job", j.Name), j, overrides, results)
		if err != nil {
			return fmt.Errorf("job %q (%s): %w", j.Name, j.Source, err)
		}

		if a.config.DryRun {
			lines, err := sub.Preview(d, opts)
			if err != nil {
				return fmt.Errorf("job %q (%s): %w", j.Name, j.Source, err)
			}
			if err := a.printPreview(d.ScriptPath, lines); err != nil {
				return err
			}
			rows = append(rows, report.Row{Job: j.Name, QueueType: string(d.QueueType), ScriptPath: d.ScriptPath, Status: report.StatusPreviewed})
			continue
		}

		res, err := a.writeJob(ctx, sub, d, opts)
		if err != nil {
			return fmt.Errorf("job %q (%s): %w", j.Name, j.Source, err)
		}
		results[j.Name] = res

		row := report.Row{Job: j.Name, QueueType: string(d.QueueType), ScriptPath: res.ScriptPath, JobID: res.JobID, Status: report.StatusWritten}
		if res.Submitted {
			row.Status = report.StatusSubmitted
			ev := notify.Event{RunID: a.runID, JobName: j.Name, JobID: res.JobID, ScriptPath: res.ScriptPath}
			if err := notifier.Notify(ctx, ev); err != nil {
				logger.Warn("Failed to publish submission event.", "job", j.Name, "error", err)
			}
		}
		rows = append(rows, row)
	}

	logger.Debug("App.Run method finished.")
	return report.Write(a.outW, rows)
}

// prepare builds the descriptor and render options for one job, applying
// command-line overrides and the scheduler ids of the jobs it runs after.
func (a *App) prepare(ctx context.Context, j *config.Job, overrides []override, results map[string]*submitter.Result) (*job.Descriptor, render.Options, error) {
	logger := ctxlog.FromContext(ctx)

	d, err := buildDescriptor(j)
	if err != nil {
		return nil, render.Options{}, err
	}
	if err := applyOverrides(d, overrides); err != nil {
		return nil, render.Options{}, err
	}

	opts := buildOptions(j)
	if a.config.Submit {
		opts.Submit = true
	}

	for _, dep := range j.After {
		res, ok := results[dep]
		if !ok || !res.Submitted {
			logger.Warn("Upstream job was not submitted, no hold added.", "after", dep)
			continue
		}
		d.AddWait(res.JobID)
		logger.Debug("Holding on upstream job.", "after", dep, "job_id", res.JobID)
	}
	return d, opts, nil
}

func (a *App) writeJob(ctx context.Context, sub *submitter.Submitter, d *job.Descriptor, opts render.Options) (*submitter.Result, error) {
	if a.config.SubmitTimeout > 0 && opts.Submit {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.SubmitTimeout)
		defer cancel()
	}
	return sub.WriteScript(ctx, d, opts)
}

func (a *App) printPreview(path string, lines []string) error {
	if _, err := fmt.Fprintf(a.outW, "==> %s <==\n%s\n", path, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to print preview: %w", err)
	}
	return nil
}

// openNotifier returns the configured notifier, dialing NotifyURL when no
// notifier was injected. A notifier that cannot be reached is logged and
// replaced by a no-op; notifications never fail a run.
func (a *App) openNotifier(ctx context.Context) notify.Notifier {
	if a.notifier != nil {
		return a.notifier
	}
	if a.config.NotifyURL == "" || a.config.DryRun {
		return notify.Nop{}
	}
	n, err := notify.DialSocketIO(ctx, a.config.NotifyURL, a.config.NotifyNamespace, 0)
	if err != nil {
		a.logger.Warn("Notifier unavailable, continuing without notifications.", "url", a.config.NotifyURL, "error", err)
		return notify.Nop{}
	}
	return n
}
