package history

import "time"

// Kind distinguishes what a run produced.
type Kind string

const (
	KindPlan      Kind = "plan"
	KindSubtitles Kind = "subs"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one recorded CLI export.
type Run struct {
	ID            string
	Kind          Kind
	ManifestPath  string
	ProjectID     string
	CutName       string
	Lang          string
	Format        string
	AudioID       string
	AudioSelector string
	SegmentCount  int
	Outputs       []string
	Status        Status
	ErrorMessage  string
	CreatedAt     time.Time
}
