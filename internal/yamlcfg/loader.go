// Package yamlcfg provides the YAML implementation of the config.Loader
// interface. It mirrors the HCL job file keys; unknown keys are errors.
package yamlcfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/qsubmit/internal/config"
	"github.com/vk/qsubmit/internal/ctxlog"
	"github.com/vk/qsubmit/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions this loader reads.
var Extensions = []string{".yaml", ".yml"}

type resourceDoc struct {
	Key    string   `yaml:"key"`
	Values []string `yaml:"values"`
}

type renderDoc struct {
	Array     bool          `yaml:"array"`
	Chunks    int           `yaml:"chunks"`
	Walltime  string        `yaml:"walltime"`
	Nodes     int           `yaml:"nodes"`
	PPN       int           `yaml:"ppn"`
	Account   string        `yaml:"account"`
	Queue     string        `yaml:"queue"`
	Submit    bool          `yaml:"submit"`
	Resources []resourceDoc `yaml:"resources"`
}

type jobDoc struct {
	Name         string        `yaml:"name"`
	QueueType    string        `yaml:"queue_type"`
	ScriptPath   string        `yaml:"script_path"`
	Commands     []string      `yaml:"commands"`
	Stdout       string        `yaml:"out"`
	Stderr       string        `yaml:"err"`
	WaitFor      []string      `yaml:"wait_for"`
	WaitForArray []string      `yaml:"wait_for_array"`
	After        []string      `yaml:"after"`
	Walltime     string        `yaml:"walltime"`
	Nodes        int           `yaml:"nodes"`
	PPN          int           `yaml:"ppn"`
	Account      string        `yaml:"account"`
	Queue        string        `yaml:"queue"`
	Resources    []resourceDoc `yaml:"resources"`
	Render       *renderDoc    `yaml:"render"`
}

type fileDoc struct {
	Jobs []jobDoc `yaml:"jobs"`
}

// Loader reads YAML job files.
type Loader struct{}

// NewLoader creates a new YAML job file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every YAML file under paths.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		doc, err := readFile(file)
		if err != nil {
			return nil, err
		}
		for i, j := range doc.Jobs {
			if j.Name == "" {
				return nil, fmt.Errorf("job %d in %s has no name", i+1, file)
			}
			model.Jobs = append(model.Jobs, translateJob(j, file))
		}
	}
	logger.Debug("YAML loading complete.", "jobs", len(model.Jobs))
	return model, nil
}

// readFile decodes every document in the file and concatenates their jobs
// in document order.
func readFile(path string) (*fileDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	merged := &fileDoc{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	for n := 1; ; n++ {
		var doc fileDoc
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s (document %d): %w", path, n, err)
		}
		merged.Jobs = append(merged.Jobs, doc.Jobs...)
	}
	return merged, nil
}

func translateJob(d jobDoc, source string) *config.Job {
	j := &config.Job{
		Name:         d.Name,
		QueueType:    d.QueueType,
		ScriptPath:   d.ScriptPath,
		Commands:     d.Commands,
		Stdout:       d.Stdout,
		Stderr:       d.Stderr,
		WaitFor:      d.WaitFor,
		WaitForArray: d.WaitForArray,
		After:        d.After,
		Walltime:     d.Walltime,
		Nodes:        d.Nodes,
		PPN:          d.PPN,
		Account:      d.Account,
		Queue:        d.Queue,
		Resources:    translateResources(d.Resources),
		Source:       source,
	}
	if r := d.Render; r != nil {
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

func translateResources(docs []resourceDoc) []config.Resource {
	if len(docs) == 0 {
		return nil
	}
	out := make([]config.Resource, 0, len(docs))
	for _, d := range docs {
		out = append(out, config.Resource{Key: d.Key, Values: d.Values})
	}
	return out
}
