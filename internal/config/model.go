package config

// Model is the unified, format-agnostic representation of every job found in
// the loaded job files.
type Model struct {
	Jobs []*Job
}

// Job is the format-agnostic representation of a `job` block.
type Job struct {
	Name         string
	QueueType    string
	ScriptPath   string
	Commands     []string
	Stdout       string
	Stderr       string
	WaitFor      []string
	WaitForArray []string
	// After names other jobs of the same run whose scheduler ids this job
	// waits for.
	After []string

	Walltime string
	Nodes    int
	PPN      int
	Account  string
	Queue    string

	Resources []Resource
	Render    *Render

	// Source is the file the job was read from.
	Source string
}

// Resource is one directive key with its values, in file order.
type Resource struct {
	Key    string
	Values []string
}

// Render holds the per-job render-time overrides.
type Render struct {
	Array     bool
	Chunks    int
	Walltime  string
	Nodes     int
	PPN       int
	Account   string
	Queue     string
	Resources []Resource
	Submit    bool
}
