package types

import "fmt"

// LinkKind describes what a LinkSpec source is expected to be.
type LinkKind string

const (
	LinkDirectory LinkKind = "directory"
	LinkFile      LinkKind = "file"
	LinkScript    LinkKind = "script"
)

// LinkSpec declares that Destination should become a symbolic link to Source.
type LinkSpec struct {
	Source      string   `json:"source" yaml:"source"`
	Destination string   `json:"destination" yaml:"destination"`
	Kind        LinkKind `json:"kind" yaml:"kind"`
}

func (s LinkSpec) String() string {
	return fmt.Sprintf("%s -> %s (%s)", s.Destination, s.Source, s.Kind)
}

// DestinationState is the observed state of a LinkSpec destination.
type DestinationState string

const (
	StateAbsent         DestinationState = "absent"
	StateSymlinkCorrect DestinationState = "symlink-correct"
	StateSymlinkStale   DestinationState = "symlink-stale"
	StateRealEntry      DestinationState = "real-file-or-dir"
)

// Outcome is the result class of converging one LinkSpec. There is no
// failure outcome: a failed link is reported as skipped with ReasonFailed.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeSkipped Outcome = "skipped"
)

// Reason refines an Outcome.
type Reason string

const (
	ReasonNoSource       Reason = "no-source"
	ReasonAlreadyCorrect Reason = "already-correct"
	ReasonLinked         Reason = "linked"
	ReasonReplaced       Reason = "replaced"
	ReasonFailed         Reason = "failed"
	ReasonDryRun         Reason = "dry-run"
)

// LinkResult records what converging a LinkSpec did.
type LinkResult struct {
	Spec    LinkSpec         `json:"spec" yaml:"spec"`
	State   DestinationState `json:"state" yaml:"state"`
	Outcome Outcome          `json:"outcome" yaml:"outcome"`
	Reason  Reason           `json:"reason" yaml:"reason"`
	Backup  string           `json:"backup,omitempty" yaml:"backup,omitempty"`
	Err     error            `json:"-" yaml:"-"`
}

// Mutated reports whether the filesystem was changed.
func (r LinkResult) Mutated() bool {
	return r.Outcome == OutcomeApplied
}
