package provision

import (
	"github.com/arthur-debert/dotrig/pkg/linker"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// StatusEntry is the observed state of one LinkSpec.
type StatusEntry struct {
	Spec         types.LinkSpec         `json:"spec" yaml:"spec"`
	SourceExists bool                   `json:"source_exists" yaml:"source_exists"`
	State        types.DestinationState `json:"state" yaml:"state"`
	Error        string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

// Status inspects every LinkSpec of plan without changing anything.
func Status(plan *Plan, fs types.FS) ([]StatusEntry, error) {
	specs, err := plan.LinkSpecs(fs)
	if err != nil {
		return nil, err
	}
	entries := make([]StatusEntry, 0, len(specs))
	for _, spec := range specs {
		entry := StatusEntry{Spec: spec}
		_, statErr := fs.Stat(spec.Source)
		entry.SourceExists = statErr == nil

		state, err := linker.Inspect(fs, spec)
		if err != nil {
			entry.Error = err.Error()
		}
		entry.State = state
		entries = append(entries, entry)
	}
	return entries, nil
}
