package app

import (
	"fmt"

	"github.com/vk/qsubmit/internal/config"
	"github.com/vk/qsubmit/internal/dag"
	"github.com/vk/qsubmit/internal/job"
	"github.com/vk/qsubmit/internal/render"
)

// orderJobs returns the jobs so that each one follows every job named in its
// After list. Unrelated jobs keep their file order.
func orderJobs(jobs []*config.Job) ([]*config.Job, error) {
	g := dag.New()
	byName := make(map[string]*config.Job, len(jobs))
	for _, j := range jobs {
		g.AddNode(j.Name)
		byName[j.Name] = j
	}
	for _, j := range jobs {
		for _, dep := range j.After {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("job %q (%s): after references unknown job %q", j.Name, j.Source, dep)
			}
			if err := g.AddEdge(dep, j.Name); err != nil {
				return nil, fmt.Errorf("job %q (%s): %w", j.Name, j.Source, err)
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("failed to order jobs: %w", err)
	}
	names, err := g.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to order jobs: %w", err)
	}
	ordered := make([]*config.Job, len(names))
	for i, name := range names {
		ordered[i] = byName[name]
	}
	return ordered, nil
}

// buildDescriptor translates a loaded job into a descriptor. The job name
// becomes the scheduler job name.
func buildDescriptor(j *config.Job) (*job.Descriptor, error) {
	d := job.New()
	d.QueueType = job.QueueType(j.QueueType)
	d.ScriptPath = j.ScriptPath
	d.Commands = append([]string(nil), j.Commands...)
	d.Name = j.Name
	d.Stdout = j.Stdout
	d.Stderr = j.Stderr
	d.Walltime = j.Walltime
	d.Nodes = j.Nodes
	d.PPN = j.PPN
	d.Account = j.Account
	d.Queue = j.Queue

	for _, id := range j.WaitFor {
		d.AddWait(id)
	}
	for _, spec := range j.WaitForArray {
		dep, err := job.ParseArrayDependency(spec)
		if err != nil {
			return nil, err
		}
		d.AddWaitArray(dep)
	}
	for _, r := range j.Resources {
		for _, v := range r.Values {
			d.AddResource(r.Key, v)
		}
	}
	return d, nil
}

// buildOptions translates a job's render block. A job without one renders
// with zero options.
func buildOptions(j *config.Job) render.Options {
	var opts render.Options
	if j.Render == nil {
		return opts
	}
	r := j.Render
	opts.Array = r.Array
	opts.Chunks = r.Chunks
	opts.Walltime = r.Walltime
	opts.Nodes = r.Nodes
	opts.PPN = r.PPN
	opts.Account = r.Account
	opts.Queue = r.Queue
	opts.Submit = r.Submit
	for _, res := range r.Resources {
		for _, v := range res.Values {
			opts.Resources.Add(res.Key, v)
		}
	}
	return opts
}
