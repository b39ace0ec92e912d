package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/qsubmit/internal/config"
	"github.com/vk/qsubmit/internal/job"
	"github.com/vk/qsubmit/internal/notify"
	"github.com/vk/qsubmit/internal/render"
	"github.com/vk/qsubmit/internal/submit"
	"github.com/vk/qsubmit/internal/submitter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	client   submitter.JobSubmitter
	notifier notify.Notifier
	runID    string
}

// Option customizes an App, mostly for tests.
type Option func(*App)

// WithSubmitClient replaces the qsub-backed submission client.
func WithSubmitClient(c submitter.JobSubmitter) Option {
	return func(a *App) { a.client = c }
}

// WithNotifier replaces the notifier that would be dialed from NotifyURL.
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// NewApp is the constructor for the main application. Script previews and
// the summary go to outW; logs go to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) *App {
	runID := uuid.NewString()
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		loader: loader,
		client: submit.New(appConfig.SubmitBinary),
		runID:  runID,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) submitter() *submitter.Submitter {
	var opts []submitter.Option
	if a.config.LegacyJoin {
		opts = append(opts,
			submitter.WithDialect(job.SGE, render.SGE{}),
			submitter.WithDialect(job.PBS, render.PBS{}),
		)
	}
	return submitter.New(a.client, opts...)
}
