package render

import "github.com/vk/qsubmit/internal/job"

// PBS fallbacks used when neither Options nor the descriptor set a value.
const (
	DefaultWalltime = "18:00:00"
	DefaultNodes    = 1
	DefaultPPN      = 16
	DefaultAccount  = "yeo-group"
	DefaultQueue    = "home"
)

// Options are render-time overrides. They apply to a single render call and
// are never written back into the descriptor.
type Options struct {
	// Array distributes the command list over a job array, Chunks commands
	// per array task. Chunks below 1 means one command per task. Chunks is
	// ignored when Array is false.
	Array  bool
	Chunks int

	Walltime string
	Nodes    int
	PPN      int
	Account  string
	Queue    string

	// Resources render after the descriptor's own resources.
	Resources job.Resources

	// Submit asks the caller to hand the written script to the scheduler.
	// Rendering itself ignores it.
	Submit bool
}

// pbsSettings is the resolved walltime/nodes/ppn/account/queue for one render.
type pbsSettings struct {
	walltime string
	nodes    int
	ppn      int
	account  string
	queue    string
}

func resolvePBS(d *job.Descriptor, opts Options) pbsSettings {
	return pbsSettings{
		walltime: firstString(opts.Walltime, d.Walltime, DefaultWalltime),
		nodes:    firstInt(opts.Nodes, d.Nodes, DefaultNodes),
		ppn:      firstInt(opts.PPN, d.PPN, DefaultPPN),
		account:  firstString(opts.Account, d.Account, DefaultAccount),
		queue:    firstString(opts.Queue, d.Queue, DefaultQueue),
	}
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// chunk splits commands into consecutive groups of at most size commands.
func chunk(commands []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	groups := make([][]string, 0, (len(commands)+size-1)/size)
	for start := 0; start < len(commands); start += size {
		end := min(start+size, len(commands))
		groups = append(groups, commands[start:end])
	}
	return groups
}
