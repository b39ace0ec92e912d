// Package schema holds the HCL decoding structs for job files. Attributes or
// blocks not declared here are rejected by the decoder.
package schema

// ResourceBlock represents a `resource "<key>" { values = [...] }` block.
type ResourceBlock struct {
	Key    string   `hcl:"key,label"`
	Values []string `hcl:"values"`
}

// RenderBlock represents the `render` block of a job: overrides that apply
// only when rendering and submitting.
type RenderBlock struct {
	Array     bool             `hcl:"array,optional"`
	Chunks    int              `hcl:"chunks,optional"`
	Walltime  string           `hcl:"walltime,optional"`
	Nodes     int              `hcl:"nodes,optional"`
	PPN       int              `hcl:"ppn,optional"`
	Account   string           `hcl:"account,optional"`
	Queue     string           `hcl:"queue,optional"`
	Submit    bool             `hcl:"submit,optional"`
	Resources []*ResourceBlock `hcl:"resource,block"`
}

// Job represents a `job "<name>" { ... }` block. Required job fields are
// optional here so that missing values surface as render-time validation
// errors rather than decode errors.
type Job struct {
	Name         string           `hcl:"name,label"`
	QueueType    string           `hcl:"queue_type,optional"`
	ScriptPath   string           `hcl:"script_path,optional"`
	Commands     []string         `hcl:"commands,optional"`
	Stdout       string           `hcl:"out,optional"`
	Stderr       string           `hcl:"err,optional"`
	WaitFor      []string         `hcl:"wait_for,optional"`
	WaitForArray []string         `hcl:"wait_for_array,optional"`
	After        []string         `hcl:"after,optional"`
	Walltime     string           `hcl:"walltime,optional"`
	Nodes        int              `hcl:"nodes,optional"`
	PPN          int              `hcl:"ppn,optional"`
	Account      string           `hcl:"account,optional"`
	Queue        string           `hcl:"queue,optional"`
	Resources    []*ResourceBlock `hcl:"resource,block"`
	Render       *RenderBlock     `hcl:"render,block"`
}

// JobFile represents the top-level structure of a job file.
type JobFile struct {
	Jobs []*Job `hcl:"job,block"`
}
