package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/qsubmit/internal/config"
	"github.com/vk/qsubmit/internal/ctxlog"
	"github.com/vk/qsubmit/internal/fsutil"
	"github.com/vk/qsubmit/internal/schema"
)

// Extension is the file extension this loader reads.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL job file loader whose `env` variable reflects
// the process environment.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and translates its job blocks.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	evalCtx := newEvalContext(l.environ)
	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.JobFile
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, j := range root.Jobs {
			model.Jobs = append(model.Jobs, translateJob(j, file))
		}
	}

	logger.Debug("HCL loading complete.", "jobs", len(model.Jobs))
	return model, nil
}
