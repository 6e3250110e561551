package renderplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"shorts/internal/logging"
	"shorts/internal/manifest"
	"shorts/internal/services"
	"shorts/internal/timecode"
)

// ErrCutNotFound is matched by the error Build returns when Options.CutName
// names no declared cut. That error also matches services.ErrNotFound.
var ErrCutNotFound = errors.New("cut not found")

type cutNotFoundError struct {
	name string
}

func (e *cutNotFoundError) Error() string {
	return fmt.Sprintf("cut not found: %s", e.name)
}

func (e *cutNotFoundError) Is(target error) bool {
	return target == ErrCutNotFound || target == services.ErrNotFound
}

var emptyKeyframes = json.RawMessage("[]")

// Build resolves the cut, selects the audio track, and projects the manifest
// into a Plan. It never mutates m.
func Build(m *manifest.Manifest, opts Options) (*Plan, error) {
	return NewBuilder(nil).Build(m, opts)
}

// Builder wraps Build with a logger for selection diagnostics.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder returns a Builder; a nil logger discards output.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logging.NewComponentLogger(logger, "renderplan")}
}

// Build is the logging variant of the package-level Build.
func (b *Builder) Build(m *manifest.Manifest, opts Options) (*Plan, error) {
	if m == nil {
		return nil, services.Wrap(services.ErrValidation, "renderplan", "build", "manifest is required", nil)
	}
	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}

	cut, err := resolveCut(m, opts.CutName)
	if err != nil {
		return nil, err
	}
	window := timecode.Range{Start: cut.Range[0], End: cut.Range[1]}

	captions := make([]manifest.Caption, 0, len(m.Tracks.Captions))
	textByID := make(map[string]string)
	for _, caption := range m.Tracks.Captions {
		if caption.Lang != lang {
			continue
		}
		captions = append(captions, caption)
		if _, seen := textByID[caption.ID]; !seen {
			textByID[caption.ID] = caption.Text
		}
	}

	plan := &Plan{
		ManifestVersion: m.Version,
		Project:         m.Project,
		Cut:             Cut{Name: cut.Name, Range: cut.Range, Size: cut.Size},
		Lang:            lang,
		VideoSources:    make([]VideoSource, 0, len(m.Tracks.Video)),
		Captions:        captions,
		Mix:             cloneRaw(m.Mix),
	}

	for _, track := range m.Tracks.Video {
		source := VideoSource{
			ID:        track.ID,
			Source:    track.Source,
			In:        track.Start,
			Out:       track.End,
			Transform: cloneRaw(track.Transform),
			Keyframes: cloneRaw(track.Keyframes),
		}
		if source.Keyframes == nil {
			source.Keyframes = cloneRaw(emptyKeyframes)
		}
		plan.VideoSources = append(plan.VideoSources, source)
	}

	idx, selector := selectAudio(m.Tracks.Audio, cut, lang)
	if idx >= 0 {
		track := m.Tracks.Audio[idx]
		segments := make([]Segment, 0, len(track.Segments))
		for _, segment := range track.Segments {
			if !window.Overlaps(segment.T0, segment.T1) {
				continue
			}
			segments = append(segments, Segment{
				T0:     segment.T0,
				T1:     segment.T1,
				CapRef: segment.CapRef,
				Text:   textByID[segment.CapRef],
			})
		}
		plan.Audio = &Audio{
			ID:       track.ID,
			Lang:     track.Lang,
			Source:   track.Source,
			In:       track.Start,
			Out:      track.End,
			Segments: segments,
		}
		plan.AudioSelector = selector
	}

	b.logSelection(plan, cut)
	return plan, nil
}

func (b *Builder) logSelection(plan *Plan, cut manifest.Cut) {
	attrs := []logging.Attr{
		logging.String(logging.FieldCut, plan.Cut.Name),
		logging.String(logging.FieldLang, plan.Lang),
		logging.Span("range", plan.Cut.Start(), plan.Cut.End()),
	}
	if plan.Audio == nil {
		logging.WarnWithContext(b.logger, "no audio track available for cut", "audio_missing",
			append(attrs,
				logging.String(logging.FieldErrorHint, "declare an audio track to get segments and subtitles"),
				logging.String(logging.FieldImpact, "plan has no audio and no subtitle segments"),
			)...)
		return
	}
	if cut.Audio != "" && plan.AudioSelector != SelectCutAudio {
		logging.WarnWithContext(b.logger, "cut audio reference did not resolve; fell back", "audio_fallback",
			append(attrs,
				logging.String("requested_audio", cut.Audio),
				logging.String("selector", plan.AudioSelector),
				logging.String(logging.FieldErrorHint, "fix export.cuts[].audio to name a declared audio track"),
			)...)
	}
	b.logger.Debug("render plan built",
		logging.Args(append(attrs,
			logging.String("audio", plan.Audio.ID),
			logging.String("selector", plan.AudioSelector),
			logging.Int("segments", len(plan.Audio.Segments)),
			logging.Int("video_sources", len(plan.VideoSources)),
		)...)...)
}

func resolveCut(m *manifest.Manifest, name string) (manifest.Cut, error) {
	cuts := m.Cuts()
	if name != "" {
		for _, cut := range cuts {
			if cut.Name == name {
				return cut, nil
			}
		}
		return manifest.Cut{}, &cutNotFoundError{name: name}
	}
	if len(cuts) > 0 {
		return cuts[0], nil
	}
	return manifest.Cut{
		Name:  FullCutName,
		Range: [2]float64{0, m.TimelineEnd()},
		Size:  m.Project.Resolution.Size(),
	}, nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
