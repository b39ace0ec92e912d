package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vk/qsubmit/internal/app"
	"github.com/vk/qsubmit/internal/job"
	"github.com/vk/qsubmit/internal/submit"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// overrideList collects repeated -set flags.
type overrideList []string

func (o *overrideList) String() string {
	return strings.Join(*o, ",")
}

func (o *overrideList) Set(v string) error {
	*o = append(*o, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("qsubmit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
qsubmit - Write and submit SGE and PBS batch job scripts.

Usage:
  qsubmit [options] JOB_PATH

Arguments:
  JOB_PATH
    Path to a single .hcl/.yaml job file or a directory containing them.

Job attributes accepted by -set:
  %s

Options:
`, strings.Join(job.Keys(), ", "))
		flagSet.PrintDefaults()
	}

	jobsFlag := flagSet.String("jobs", "", "Path to the job file or directory.")
	jFlag := flagSet.String("j", "", "Path to the job file or directory (shorthand).")
	submitFlag := flagSet.Bool("submit", false, "Submit every job after writing its script.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the scripts instead of writing them. Nothing is submitted.")
	binaryFlag := flagSet.String("qsub", submit.DefaultBinary, "Submission command.")
	timeoutFlag := flagSet.Duration("submit-timeout", time.Minute, "Maximum time to wait for one submission. 0 disables the limit.")
	notifyFlag := flagSet.String("notify-url", "", "socket.io server that receives a job_submitted event per submission.")
	namespaceFlag := flagSet.String("notify-namespace", "/", "socket.io namespace for -notify-url.")
	legacyFlag := flagSet.Bool("legacy-join", false, "Join dependency lists without separators.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	var overrides overrideList
	flagSet.Var(&overrides, "set", "Override a job attribute for every job, as key=value. Repeatable.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	switch {
	case *jobsFlag != "":
		path = *jobsFlag
	case *jFlag != "":
		path = *jFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}
	slog.Debug("Job path determined.", "path", path)

	if path == "" {
		slog.Debug("No job path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		JobPath:         path,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Submit:          *submitFlag,
		DryRun:          *dryRunFlag,
		SubmitBinary:    *binaryFlag,
		SubmitTimeout:   *timeoutFlag,
		NotifyURL:       *notifyFlag,
		NotifyNamespace: *namespaceFlag,
		Overrides:       overrides,
		LegacyJoin:      *legacyFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
