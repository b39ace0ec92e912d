// This file translates HCL schema structs into the format-agnostic
// configuration model defined in the config package.

package hcl

import (
	"github.com/vk/qsubmit/internal/config"
	"github.com/vk/qsubmit/internal/schema"
)

// translateJob converts the HCL-specific job schema into the agnostic model.
func translateJob(s *schema.Job, source string) *config.Job {
	j := &config.Job{
		Name:         s.Name,
		QueueType:    s.QueueType,
		ScriptPath:   s.ScriptPath,
		Commands:     s.Commands,
		Stdout:       s.Stdout,
		Stderr:       s.Stderr,
		WaitFor:      s.WaitFor,
		WaitForArray: s.WaitForArray,
		After:        s.After,
		Walltime:     s.Walltime,
		Nodes:        s.Nodes,
		PPN:          s.PPN,
		Account:      s.Account,
		Queue:        s.Queue,
		Resources:    translateResources(s.Resources),
		Source:       source,
	}
	if r := s.Render; r != nil {
		j.Render = &config.Render{
			Array:     r.Array,
			Chunks:    r.Chunks,
			Walltime:  r.Walltime,
			Nodes:     r.Nodes,
			PPN:       r.PPN,
			Account:   r.Account,
			Queue:     r.Queue,
			Submit:    r.Submit,
			Resources: translateResources(r.Resources),
		}
	}
	return j
}

func translateResources(blocks []*schema.ResourceBlock) []config.Resource {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]config.Resource, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, config.Resource{Key: b.Key, Values: b.Values})
	}
	return out
}
