package job

import (
	"fmt"
	"strings"
)

// QueueType selects the scheduler dialect a Descriptor is rendered for.
type QueueType string

const (
	SGE QueueType = "SGE"
	PBS QueueType = "PBS"
)

// ParseQueueType maps a case-insensitive name to a known QueueType.
func ParseQueueType(s string) (QueueType, error) {
	switch QueueType(strings.ToUpper(strings.TrimSpace(s))) {
	case SGE:
		return SGE, nil
	case PBS:
		return PBS, nil
	}
	return "", fmt.Errorf("unknown queue type %q: must be 'SGE' or 'PBS'", s)
}

// Descriptor accumulates everything needed to render one job script.
// It is not safe for concurrent mutation.
type Descriptor struct {
	QueueType  QueueType
	ScriptPath string
	Commands   []string
	Name       string

	// Stdout and Stderr default to ScriptPath + ".out" / ".err" when empty.
	Stdout string
	Stderr string

	WaitFor      []string
	WaitForArray []ArrayDependency
	Resources    Resources

	// PBS-only settings. Zero values fall back to render options and then to
	// the PBS defaults.
	Walltime string
	Nodes    int
	PPN      int
	Account  string
	Queue    string
}

// New returns an empty Descriptor.
func New() *Descriptor {
	return &Descriptor{}
}

// StdoutPath returns the configured stdout path or the script-derived default.
func (d *Descriptor) StdoutPath() string {
	if d.Stdout != "" {
		return d.Stdout
	}
	return d.ScriptPath + ".out"
}

// StderrPath returns the configured stderr path or the script-derived default.
func (d *Descriptor) StderrPath() string {
	if d.Stderr != "" {
		return d.Stderr
	}
	return d.ScriptPath + ".err"
}

// AddWait appends a job identifier this job must wait for. Identifiers are
// opaque; nothing checks that the referenced job exists.
func (d *Descriptor) AddWait(jobID string) {
	d.WaitFor = append(d.WaitFor, jobID)
}

// AddWaitArray appends an array dependency.
func (d *Descriptor) AddWaitArray(dep ArrayDependency) {
	d.WaitForArray = append(d.WaitForArray, dep)
}

// AddResource appends value to the directive list stored under key.
func (d *Descriptor) AddResource(key, value string) {
	d.Resources.Add(key, value)
}
