package renderplan

import (
	"encoding/json"

	"shorts/internal/manifest"
)

// DefaultLang is used when Options.Lang is empty.
const DefaultLang = "en"

// FullCutName names the cut synthesized when a manifest declares none.
const FullCutName = "full"

// Options selects the cut and caption language for Build.
type Options struct {
	CutName string
	Lang    string
}

// Plan is the renderer-facing description of one cut.
type Plan struct {
	ManifestVersion string             `json:"manifestVersion"`
	Project         manifest.Project   `json:"project"`
	Cut             Cut                `json:"cut"`
	Lang            string             `json:"lang"`
	VideoSources    []VideoSource      `json:"videoSources"`
	Audio           *Audio             `json:"audio"`
	Captions        []manifest.Caption `json:"captions"`
	Mix             json.RawMessage    `json:"mix"`
	// AudioSelector names the rule that picked Audio; empty when Audio is nil.
	AudioSelector string `json:"audioSelector,omitempty"`
}

// Cut is the resolved time window and output size.
type Cut struct {
	Name  string     `json:"name"`
	Range [2]float64 `json:"range"`
	Size  string     `json:"size"`
}

// Start returns the inclusive lower bound of the cut.
func (c Cut) Start() float64 { return c.Range[0] }

// End returns the exclusive upper bound of the cut.
func (c Cut) End() float64 { return c.Range[1] }

// VideoSource is a video track projected for the renderer. Transform is null
// and Keyframes is [] when the manifest omits them.
type VideoSource struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	In        float64         `json:"in"`
	Out       float64         `json:"out"`
	Transform json.RawMessage `json:"transform"`
	Keyframes json.RawMessage `json:"keyframes"`
}

// Audio is the selected audio track with its segments filtered to the cut.
type Audio struct {
	ID       string    `json:"id"`
	Lang     string    `json:"lang"`
	Source   string    `json:"source"`
	In       float64   `json:"in"`
	Out      float64   `json:"out"`
	Segments []Segment `json:"segments"`
}

// Segment is an audio segment enriched with its caption text. Text is empty
// when the caption is missing under the plan language.
type Segment struct {
	T0     float64 `json:"t0"`
	T1     float64 `json:"t1"`
	CapRef string  `json:"cap_ref"`
	Text   string  `json:"text"`
}

// Segments returns the audio segments, or nil when no audio was selected.
func (p *Plan) Segments() []Segment {
	if p == nil || p.Audio == nil {
		return nil
	}
	return p.Audio.Segments
}
