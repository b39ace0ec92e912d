package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	JobPath string // .hcl / .yaml job files or a directory of them

	LogFormat string
	LogLevel  string

	// Submit forces submission of every job, regardless of its own render
	// settings.
	Submit bool
	// DryRun prints the rendered scripts instead of writing them. Nothing is
	// submitted.
	DryRun bool

	SubmitBinary  string
	SubmitTimeout time.Duration

	// NotifyURL, when set, receives a socket.io event per submitted job.
	NotifyURL       string
	NotifyNamespace string

	// Overrides are key=value assignments applied to every job.
	Overrides []string

	// LegacyJoin renders dependency lists without separators, matching
	// scripts produced by older tooling.
	LegacyJoin bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.JobPath == "" {
		return nil, errors.New("JobPath is a required configuration field and cannot be empty")
	}
	if cfg.DryRun && cfg.Submit {
		return nil, errors.New("dry-run and submit cannot be used together")
	}
	if cfg.SubmitTimeout < 0 {
		return nil, fmt.Errorf("submit timeout must not be negative, got %s", cfg.SubmitTimeout)
	}
	for _, o := range cfg.Overrides {
		if _, _, err := splitOverride(o); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func splitOverride(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid override %q: expected key=value", s)
	}
	return key, value, nil
}
