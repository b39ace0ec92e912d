package render

import (
	"fmt"
	"strconv"

	"github.com/vk/qsubmit/internal/job"
)

// Shebang is the first line of every generated script.
const Shebang = "#!/bin/sh"

// Dialect renders the scheduler-specific part of a script.
type Dialect interface {
	// Prefix is the directive marker, e.g. "#$" or "#PBS".
	Prefix() string
	// TaskIDVar names the environment variable holding the array task index.
	TaskIDVar() string
	// Directives returns the dialect's lines between the common header and
	// the command body.
	Directives(d *job.Descriptor, opts Options) []string
}

// DialectFor returns the default Dialect for a queue type.
func DialectFor(q job.QueueType) (Dialect, error) {
	parsed, err := job.ParseQueueType(string(q))
	if err != nil {
		return nil, &UnsupportedDialectError{QueueType: string(q)}
	}
	switch parsed {
	case job.SGE:
		return NewSGE(), nil
	default:
		return NewPBS(), nil
	}
}

// Validate checks the required fields in a fixed order and reports the
// first problem found.
func Validate(d *job.Descriptor) error {
	if d == nil {
		return &MissingFieldError{Field: "queueType"}
	}
	if d.QueueType == "" {
		return &MissingFieldError{Field: "queueType"}
	}
	if _, err := DialectFor(d.QueueType); err != nil {
		return err
	}
	if d.ScriptPath == "" {
		return &MissingFieldError{Field: "scriptPath"}
	}
	if len(d.Commands) == 0 {
		return &MissingFieldError{Field: "commandList"}
	}
	if d.Name == "" {
		return &MissingFieldError{Field: "jobName"}
	}
	return nil
}

// Render validates d and renders it with the default dialect for its queue
// type. The returned lines exclude the shebang.
func Render(d *job.Descriptor, opts Options) ([]string, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	dialect, err := DialectFor(d.QueueType)
	if err != nil {
		return nil, err
	}
	return lines(d, dialect, opts), nil
}

// RenderDialect is Render with an explicit dialect, for callers that need
// non-default separators.
func RenderDialect(d *job.Descriptor, dialect Dialect, opts Options) ([]string, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	return lines(d, dialect, opts), nil
}

// Script prepends the shebang to rendered lines.
func Script(rendered []string) []string {
	return append([]string{Shebang}, rendered...)
}

func lines(d *job.Descriptor, dialect Dialect, opts Options) []string {
	p := dialect.Prefix()
	out := []string{
		p + " -N " + d.Name,
		p + " -o " + d.StdoutPath(),
		p + " -e " + d.StderrPath(),
		p + " -V",
	}

	var groups [][]string
	if opts.Array {
		groups = chunk(d.Commands, opts.Chunks)
		out = append(out, fmt.Sprintf("%s -t 1-%d", p, len(groups)))
	}

	out = append(out, dialect.Directives(d, opts)...)

	if opts.Array {
		out = append(out, arrayBody(dialect.TaskIDVar(), groups)...)
	} else {
		out = append(out, d.Commands...)
	}
	return append(out, "")
}

// resourceLines renders descriptor resources followed by render-time ones,
// one directive per value.
func resourceLines(prefix string, d *job.Descriptor, opts Options) []string {
	var out []string
	for _, res := range []job.Resources{d.Resources, opts.Resources} {
		for _, pair := range res.Pairs() {
			out = append(out, prefix+" "+pair.Key+" "+pair.Value)
		}
	}
	return out
}

// arrayBody dispatches each command group to its array task.
func arrayBody(taskVar string, groups [][]string) []string {
	out := []string{fmt.Sprintf(`case "$%s" in`, taskVar)}
	for i, group := range groups {
		out = append(out, strconv.Itoa(i+1)+")")
		out = append(out, group...)
		out = append(out, ";;")
	}
	return append(out, "esac")
}
