package manifest

import (
	"encoding/json"
	"strconv"
)

// SupportedVersion is the only manifest version accepted by the validator.
const SupportedVersion = "sora-manifest.v1"

// Manifest is a validated manifest document. It is never mutated after
// construction.
type Manifest struct {
	Version string          `json:"version"`
	Project Project         `json:"project"`
	Tracks  Tracks          `json:"tracks"`
	Export  *Export         `json:"export,omitempty"`
	Mix     json.RawMessage `json:"mix,omitempty"`
}

// Project carries identifying metadata and the output frame geometry.
type Project struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	FPS        float64    `json:"fps"`
	Resolution Resolution `json:"resolution"`
}

// Resolution is a frame size in pixels.
type Resolution struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Size formats the resolution with the WxH grammar used by cuts.
func (r Resolution) Size() string {
	return strconv.Itoa(r.W) + "x" + strconv.Itoa(r.H)
}

// Tracks groups the three parallel track collections.
type Tracks struct {
	Video    []VideoTrack `json:"video"`
	Audio    []AudioTrack `json:"audio"`
	Captions []Caption    `json:"captions"`
}

// VideoTrack is a timed video source. Transform and Keyframes are opaque.
type VideoTrack struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Start     float64         `json:"start"`
	End       float64         `json:"end"`
	Transform json.RawMessage `json:"transform,omitempty"`
	Keyframes json.RawMessage `json:"keyframes,omitempty"`
}

// AudioTrack is a timed audio source whose segments link to captions.
type AudioTrack struct {
	ID       string    `json:"id"`
	Lang     string    `json:"lang"`
	Source   string    `json:"source"`
	Start    float64   `json:"start"`
	End      float64   `json:"end"`
	Role     string    `json:"role,omitempty"`
	Segments []Segment `json:"segments"`
}

// Segment is a [T0, T1) interval of an audio track tied to one caption.
type Segment struct {
	T0     float64 `json:"t0"`
	T1     float64 `json:"t1"`
	CapRef string  `json:"cap_ref"`
}

// Caption is a language-tagged line of text.
type Caption struct {
	ID   string `json:"id"`
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// Export lists the named cuts of the timeline.
type Export struct {
	Cuts []Cut `json:"cuts,omitempty"`
}

// Cut is a named sub-range of the timeline with its own output size.
type Cut struct {
	Name  string     `json:"name"`
	Range [2]float64 `json:"range"`
	Size  string     `json:"size"`
	Audio string     `json:"audio,omitempty"`
}

// Cuts returns the declared cuts, or nil when the manifest has no export block.
func (m *Manifest) Cuts() []Cut {
	if m == nil || m.Export == nil {
		return nil
	}
	return m.Export.Cuts
}

// TimelineEnd returns the largest End across all video and audio tracks,
// never less than zero.
func (m *Manifest) TimelineEnd() float64 {
	var end float64
	if m == nil {
		return end
	}
	for _, track := range m.Tracks.Video {
		end = max(end, track.End)
	}
	for _, track := range m.Tracks.Audio {
		end = max(end, track.End)
	}
	return end
}
