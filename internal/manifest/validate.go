package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"shorts/internal/services"
)

var sizePattern = regexp.MustCompile(`^\d+x\d+$`)

// Report is the outcome of validating a manifest. Errors are ordered by the
// traversal: version, project, video, captions, audio, export. Warnings never
// affect OK.
type Report struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidationError carries every message of a failed Report.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "\n")
}

func (e *ValidationError) Unwrap() error {
	return services.ErrValidation
}

type validator struct {
	errors   []string
	warnings []string
}

func (v *validator) fail(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) warn(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) report() Report {
	errs := v.errors
	if errs == nil {
		errs = []string{}
	}
	return Report{OK: len(errs) == 0, Errors: errs, Warnings: v.warnings}
}

// Validate checks an untyped manifest tree and returns every structural error
// it finds. It never panics on malformed input.
func Validate(doc any) Report {
	v := &validator{}
	root, ok := asObject(doc)
	if !ok {
		v.fail("manifest must be a JSON object")
		return v.report()
	}

	if version, _ := root["version"].(string); version != SupportedVersion {
		v.fail("version must be %q", SupportedVersion)
	}

	v.project(root["project"])

	tracks, ok := asObject(root["tracks"])
	if !ok {
		v.fail("tracks must be an object with video/audio/captions arrays")
		return v.report()
	}

	v.videoTracks(tracks["video"])
	captionIDs := v.captions(tracks["captions"])
	audioIDs := v.audioTracks(tracks["audio"], captionIDs)
	v.export(root["export"], root["project"], audioIDs)
	v.unreferencedCaptions(tracks, captionIDs)

	return v.report()
}

func (v *validator) project(value any) {
	project, ok := asObject(value)
	if !ok {
		v.fail("project must be an object")
		return
	}
	if _, ok := nonEmptyString(project["id"]); !ok {
		v.fail("project.id must be a non-empty string")
	}
	if _, ok := nonEmptyString(project["title"]); !ok {
		v.fail("project.title must be a non-empty string")
	}
	if fps, ok := asNumber(project["fps"]); !ok || fps <= 0 {
		v.fail("project.fps must be a positive number")
	}
	resolution, ok := asObject(project["resolution"])
	if !ok {
		v.fail("project.resolution must be an object")
		return
	}
	if w, ok := asInteger(resolution["w"]); !ok || w <= 0 {
		v.fail("project.resolution.w must be a positive integer")
	}
	if h, ok := asInteger(resolution["h"]); !ok || h <= 0 {
		v.fail("project.resolution.h must be a positive integer")
	}
}

func (v *validator) videoTracks(value any) {
	tracks, ok := asArray(value)
	if !ok {
		v.fail("tracks.video must be an array")
		return
	}
	seen := make(map[string]struct{}, len(tracks))
	for index, item := range tracks {
		prefix := fmt.Sprintf("tracks.video[%d]", index)
		track, ok := asObject(item)
		if !ok {
			v.fail("%s must be an object", prefix)
			continue
		}
		if id, ok := nonEmptyString(track["id"]); !ok {
			v.fail("%s.id must be a non-empty string", prefix)
		} else if _, dup := seen[id]; dup {
			v.warn("%s.id duplicates an earlier video track (%s)", prefix, id)
		} else {
			seen[id] = struct{}{}
		}
		if _, ok := nonEmptyString(track["source"]); !ok {
			v.fail("%s.source must be a non-empty string", prefix)
		}
		start, startOK := asNumber(track["start"])
		if !startOK {
			v.fail("%s.start must be a number", prefix)
		}
		end, endOK := asNumber(track["end"])
		if !endOK {
			v.fail("%s.end must be a number", prefix)
		}
		if startOK && endOK && end <= start {
			v.fail("%s.end must be greater than .start", prefix)
		}
	}
}

func (v *validator) captions(value any) map[string]struct{} {
	ids := make(map[string]struct{})
	captions, ok := asArray(value)
	if !ok {
		v.fail("tracks.captions must be an array")
		return ids
	}
	for index, item := range captions {
		prefix := fmt.Sprintf("tracks.captions[%d]", index)
		caption, ok := asObject(item)
		if !ok {
			v.fail("%s must be an object", prefix)
			continue
		}
		if id, ok := nonEmptyString(caption["id"]); !ok {
			v.fail("%s.id must be a non-empty string", prefix)
		} else if _, dup := ids[id]; dup {
			v.fail("%s.id must be unique (%s)", prefix, id)
		} else {
			ids[id] = struct{}{}
		}
		if _, ok := nonEmptyString(caption["lang"]); !ok {
			v.fail("%s.lang must be a non-empty string", prefix)
		}
		if _, ok := caption["text"].(string); !ok {
			v.fail("%s.text must be a string", prefix)
		}
	}
	return ids
}

// audioTracks runs after captions so cap_ref can be checked against the
// complete caption-id set. It returns the audio track ids it saw.
func (v *validator) audioTracks(value any, captionIDs map[string]struct{}) map[string]struct{} {
	ids := make(map[string]struct{})
	tracks, ok := asArray(value)
	if !ok {
		v.fail("tracks.audio must be an array")
		return ids
	}
	for index, item := range tracks {
		prefix := fmt.Sprintf("tracks.audio[%d]", index)
		track, ok := asObject(item)
		if !ok {
			v.fail("%s must be an object", prefix)
			continue
		}
		if id, ok := nonEmptyString(track["id"]); !ok {
			v.fail("%s.id must be a non-empty string", prefix)
		} else if _, dup := ids[id]; dup {
			v.warn("%s.id duplicates an earlier audio track (%s)", prefix, id)
		} else {
			ids[id] = struct{}{}
		}
		if _, ok := nonEmptyString(track["lang"]); !ok {
			v.fail("%s.lang must be a non-empty string", prefix)
		}
		if _, ok := nonEmptyString(track["source"]); !ok {
			v.fail("%s.source must be a non-empty string", prefix)
		}
		start, startOK := asNumber(track["start"])
		end, endOK := asNumber(track["end"])
		if !startOK || !endOK {
			v.fail("%s.start and .end must be numbers", prefix)
		} else if end <= start {
			v.fail("%s.end must be greater than .start", prefix)
		}
		if role, present := track["role"]; present && role != nil {
			if _, ok := role.(string); !ok {
				v.fail("%s.role must be a string", prefix)
			}
		}

		segments, ok := asArray(track["segments"])
		if !ok {
			v.fail("%s.segments must be an array", prefix)
			continue
		}
		for segIndex, segItem := range segments {
			v.segment(fmt.Sprintf("%s.segments[%d]", prefix, segIndex), segItem, captionIDs)
		}
	}
	return ids
}

func (v *validator) segment(prefix string, value any, captionIDs map[string]struct{}) {
	segment, ok := asObject(value)
	if !ok {
		v.fail("%s must be an object", prefix)
		return
	}
	t0, t0OK := asNumber(segment["t0"])
	t1, t1OK := asNumber(segment["t1"])
	if !t0OK || !t1OK {
		v.fail("%s.t0 and .t1 must be numbers", prefix)
	} else if t1 <= t0 {
		v.fail("%s.t1 must be greater than .t0", prefix)
	}
	if ref, ok := nonEmptyString(segment["cap_ref"]); !ok {
		v.fail("%s.cap_ref must be a non-empty string", prefix)
	} else if _, exists := captionIDs[ref]; !exists {
		v.fail("%s.cap_ref does not exist in tracks.captions (%s)", prefix, ref)
	}
}

func (v *validator) export(value any, projectValue any, audioIDs map[string]struct{}) {
	if value == nil {
		return
	}
	export, ok := asObject(value)
	if !ok {
		v.fail("export must be an object")
		return
	}
	rawCuts, present := export["cuts"]
	if !present || rawCuts == nil {
		return
	}
	cuts, ok := asArray(rawCuts)
	if !ok {
		v.fail("export.cuts must be an array")
		return
	}
	names := make(map[string]struct{}, len(cuts))
	for index, item := range cuts {
		prefix := fmt.Sprintf("export.cuts[%d]", index)
		cut, ok := asObject(item)
		if !ok {
			v.fail("%s must be an object", prefix)
			continue
		}
		if name, ok := nonEmptyString(cut["name"]); !ok {
			v.fail("%s.name must be a non-empty string", prefix)
		} else if _, dup := names[name]; dup {
			v.warn("%s.name duplicates an earlier cut (%s); lookups resolve to the first", prefix, name)
		} else {
			names[name] = struct{}{}
		}
		bounds, ok := asArray(cut["range"])
		if !ok || len(bounds) != 2 {
			v.fail("%s.range must be [start, end]", prefix)
		} else {
			start, startOK := asNumber(bounds[0])
			end, endOK := asNumber(bounds[1])
			if !startOK || !endOK || end <= start {
				v.fail("%s.range must have numeric end > start", prefix)
			}
		}
		if size, ok := cut["size"].(string); !ok || !sizePattern.MatchString(size) {
			v.fail("%s.size must be a string like %q", prefix, sizeHint(projectValue))
		}
		if audio, present := cut["audio"]; present && audio != nil {
			if id, ok := nonEmptyString(audio); !ok {
				v.fail("%s.audio must be a non-empty string", prefix)
			} else if _, exists := audioIDs[id]; !exists {
				v.warn("%s.audio references unknown audio track (%s); selection falls back by language", prefix, id)
			}
		}
	}
}

func (v *validator) unreferencedCaptions(tracks map[string]any, captionIDs map[string]struct{}) {
	if len(captionIDs) == 0 {
		return
	}
	referenced := make(map[string]struct{}, len(captionIDs))
	spoken := make(map[string]struct{})
	audio, _ := asArray(tracks["audio"])
	for _, item := range audio {
		track, _ := asObject(item)
		if lang, ok := nonEmptyString(track["lang"]); ok {
			spoken[lang] = struct{}{}
		}
		segments, _ := asArray(track["segments"])
		for _, segItem := range segments {
			segment, _ := asObject(segItem)
			if ref, ok := segment["cap_ref"].(string); ok {
				referenced[ref] = struct{}{}
			}
		}
	}
	captions, _ := asArray(tracks["captions"])
	for index, item := range captions {
		caption, _ := asObject(item)
		id, ok := nonEmptyString(caption["id"])
		if !ok {
			continue
		}
		// Captions in a language no audio track speaks are translations kept for later.
		lang, _ := caption["lang"].(string)
		if _, ok := spoken[lang]; !ok {
			continue
		}
		if _, used := referenced[id]; !used {
			v.warn("tracks.captions[%d] is not referenced by any segment (%s)", index, id)
		}
	}
}

func sizeHint(projectValue any) string {
	w, h := "?", "?"
	if project, ok := asObject(projectValue); ok {
		if resolution, ok := asObject(project["resolution"]); ok {
			if n, ok := asInteger(resolution["w"]); ok {
				w = fmt.Sprint(n)
			}
			if n, ok := asInteger(resolution["h"]); ok {
				h = fmt.Sprint(n)
			}
		}
	}
	return w + "x" + h
}
