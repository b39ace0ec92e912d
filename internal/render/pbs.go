package render

import (
	"fmt"
	"strings"

	"github.com/vk/qsubmit/internal/job"
)

// PBS renders PBS/Torque directives.
type PBS struct {
	// ArraySeparator joins afterokarray specs. PBS expects a colon; an empty
	// separator reproduces the historical concatenation.
	ArraySeparator string
}

// NewPBS returns a PBS dialect with colon-separated array dependencies.
func NewPBS() PBS {
	return PBS{ArraySeparator: ":"}
}

func (PBS) Prefix() string { return "#PBS" }

func (PBS) TaskIDVar() string { return "PBS_ARRAYID" }

// Directives emits walltime, node geometry, account, queue, dependencies and
// resources, then changes to the submission directory.
func (b PBS) Directives(d *job.Descriptor, opts Options) []string {
	p := b.Prefix()
	s := resolvePBS(d, opts)
	out := []string{
		p + " -l walltime=" + s.walltime,
		fmt.Sprintf("%s -l nodes=%d:ppn=%d", p, s.nodes, s.ppn),
		p + " -A " + s.account,
		p + " -q " + s.queue,
	}
	if len(d.WaitFor) > 0 {
		out = append(out, p+" -W depend=afterok:"+strings.Join(d.WaitFor, ":"))
	}
	if len(d.WaitForArray) > 0 {
		specs := make([]string, len(d.WaitForArray))
		for i, dep := range d.WaitForArray {
			specs[i] = dep.String()
		}
		out = append(out, p+" -W depend=afterokarray:"+strings.Join(specs, b.ArraySeparator))
	}
	out = append(out, resourceLines(p, d, opts)...)
	return append(out,
		"",
		"# Go to the directory from which the script was called",
		"cd $PBS_O_WORKDIR",
	)
}
