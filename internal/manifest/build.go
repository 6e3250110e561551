package manifest

import (
	"encoding/json"
	"fmt"
)

// FromTree validates doc and, only when it passes, converts it into a typed
// Manifest. A failed report always comes with a nil manifest.
func FromTree(doc any) (*Manifest, Report, error) {
	report := Validate(doc)
	if !report.OK {
		return nil, report, nil
	}
	m, err := convert(doc.(map[string]any))
	if err != nil {
		return nil, report, err
	}
	return m, report, nil
}

// AssertValid returns the typed manifest or a *ValidationError listing every
// problem found.
func AssertValid(doc any) (*Manifest, error) {
	m, report, err := FromTree(doc)
	if err != nil {
		return nil, err
	}
	if !report.OK {
		return nil, &ValidationError{Errors: report.Errors}
	}
	return m, nil
}

// convert assumes root has passed Validate.
func convert(root map[string]any) (*Manifest, error) {
	project, _ := asObject(root["project"])
	resolution, _ := asObject(project["resolution"])
	tracks, _ := asObject(root["tracks"])

	m := &Manifest{
		Version: root["version"].(string),
		Project: Project{
			ID:    project["id"].(string),
			Title: project["title"].(string),
			FPS:   number(project["fps"]),
			Resolution: Resolution{
				W: integer(resolution["w"]),
				H: integer(resolution["h"]),
			},
		},
	}

	video, _ := asArray(tracks["video"])
	m.Tracks.Video = make([]VideoTrack, 0, len(video))
	for index, item := range video {
		track := item.(map[string]any)
		transform, err := opaque(track["transform"])
		if err != nil {
			return nil, fmt.Errorf("tracks.video[%d].transform: %w", index, err)
		}
		keyframes, err := opaque(track["keyframes"])
		if err != nil {
			return nil, fmt.Errorf("tracks.video[%d].keyframes: %w", index, err)
		}
		m.Tracks.Video = append(m.Tracks.Video, VideoTrack{
			ID:        track["id"].(string),
			Source:    track["source"].(string),
			Start:     number(track["start"]),
			End:       number(track["end"]),
			Transform: transform,
			Keyframes: keyframes,
		})
	}

	captions, _ := asArray(tracks["captions"])
	m.Tracks.Captions = make([]Caption, 0, len(captions))
	for _, item := range captions {
		caption := item.(map[string]any)
		m.Tracks.Captions = append(m.Tracks.Captions, Caption{
			ID:   caption["id"].(string),
			Lang: caption["lang"].(string),
			Text: caption["text"].(string),
		})
	}

	audio, _ := asArray(tracks["audio"])
	m.Tracks.Audio = make([]AudioTrack, 0, len(audio))
	for _, item := range audio {
		track := item.(map[string]any)
		role, _ := track["role"].(string)
		rawSegments, _ := asArray(track["segments"])
		segments := make([]Segment, 0, len(rawSegments))
		for _, segItem := range rawSegments {
			segment := segItem.(map[string]any)
			segments = append(segments, Segment{
				T0:     number(segment["t0"]),
				T1:     number(segment["t1"]),
				CapRef: segment["cap_ref"].(string),
			})
		}
		m.Tracks.Audio = append(m.Tracks.Audio, AudioTrack{
			ID:       track["id"].(string),
			Lang:     track["lang"].(string),
			Source:   track["source"].(string),
			Start:    number(track["start"]),
			End:      number(track["end"]),
			Role:     role,
			Segments: segments,
		})
	}

	if export, ok := asObject(root["export"]); ok {
		m.Export = &Export{}
		cuts, _ := asArray(export["cuts"])
		for _, item := range cuts {
			cut := item.(map[string]any)
			bounds := cut["range"].([]any)
			audioRef, _ := cut["audio"].(string)
			m.Export.Cuts = append(m.Export.Cuts, Cut{
				Name:  cut["name"].(string),
				Range: [2]float64{number(bounds[0]), number(bounds[1])},
				Size:  cut["size"].(string),
				Audio: audioRef,
			})
		}
	}

	mix, err := opaque(root["mix"])
	if err != nil {
		return nil, fmt.Errorf("mix: %w", err)
	}
	m.Mix = mix

	return m, nil
}

func number(value any) float64 {
	f, _ := asNumber(value)
	return f
}

func integer(value any) int {
	n, _ := asInteger(value)
	return n
}

// opaque re-encodes a pass-through subtree. Absent and null values stay nil.
func opaque(value any) (json.RawMessage, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
