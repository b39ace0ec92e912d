package render

import (
	"strings"

	"github.com/vk/qsubmit/internal/job"
)

// SGE renders grid-engine directives.
type SGE struct {
	// HoldSeparator joins the -hold_jid job list. Grid engine expects a
	// comma; an empty separator reproduces the historical concatenation.
	HoldSeparator string
}

// NewSGE returns an SGE dialect with a comma-separated hold list.
func NewSGE() SGE {
	return SGE{HoldSeparator: ","}
}

func (SGE) Prefix() string { return "#$" }

func (SGE) TaskIDVar() string { return "SGE_TASK_ID" }

// Directives emits the shell, working directory, hold list and resources.
// Array dependencies have no SGE encoding and are not rendered.
func (s SGE) Directives(d *job.Descriptor, opts Options) []string {
	p := s.Prefix()
	out := []string{
		p + " -S /bin/sh",
		p + " -cwd",
	}
	if len(d.WaitFor) > 0 {
		out = append(out, p+" -hold_jid "+strings.Join(d.WaitFor, s.HoldSeparator))
	}
	return append(out, resourceLines(p, d, opts)...)
}
