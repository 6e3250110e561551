package manifest

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"shorts/internal/services"
)

const validManifestJSON = `{
  "version": "sora-manifest.v1",
  "project": {"id": "rice-vs-wheat", "title": "Rice vs Wheat", "fps": 30, "resolution": {"w": 1080, "h": 1920}},
  "tracks": {
    "video": [
      {"id": "v1", "source": "clips/intro.mp4", "start": 0, "end": 30, "transform": {"scale": 1.1}, "keyframes": [{"t": 0, "zoom": 1}]}
    ],
    "audio": [
      {"id": "a1", "lang": "en", "source": "vo/en.wav", "start": 0, "end": 30, "role": "narration",
       "segments": [{"t0": 0, "t1": 5, "cap_ref": "cap1"}, {"t0": 5, "t1": 12, "cap_ref": "cap2"}]}
    ],
    "captions": [
      {"id": "cap1", "lang": "en", "text": "Hello"},
      {"id": "cap2", "lang": "en", "text": "World"}
    ]
  },
  "export": {"cuts": [{"name": "hook", "range": [0, 8], "size": "1080x1920"}]},
  "mix": {"music": {"source": "bed.mp3", "gain_db": -18}}
}`

func validTree(t *testing.T) map[string]any {
	t.Helper()
	doc, err := ParseJSON([]byte(validManifestJSON))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc.(map[string]any)
}

func at(t *testing.T, doc map[string]any, path ...any) map[string]any {
	t.Helper()
	var cur any = doc
	for _, step := range path {
		switch s := step.(type) {
		case string:
			cur = cur.(map[string]any)[s]
		case int:
			cur = cur.([]any)[s]
		}
	}
	obj, ok := cur.(map[string]any)
	if !ok {
		t.Fatalf("path %v is not an object", path)
	}
	return obj
}

func TestValidateAcceptsWellFormedManifest(t *testing.T) {
	report := Validate(validTree(t))
	if !report.OK {
		t.Fatalf("expected valid manifest, got errors: %v", report.Errors)
	}
	if report.Errors == nil || len(report.Errors) != 0 {
		t.Fatalf("expected empty non-nil error list, got %#v", report.Errors)
	}
}

func TestValidateRejectsNonObjectRoot(t *testing.T) {
	for _, doc := range []any{nil, "manifest", []any{}, json.Number("3"), true} {
		report := Validate(doc)
		if report.OK {
			t.Fatalf("expected failure for %#v", doc)
		}
		if len(report.Errors) != 1 || report.Errors[0] != "manifest must be a JSON object" {
			t.Fatalf("unexpected errors for %#v: %v", doc, report.Errors)
		}
	}
}

func TestValidateCollectsIndependentDefects(t *testing.T) {
	doc := validTree(t)
	at(t, doc, "project")["fps"] = json.Number("0")
	at(t, doc, "tracks", "video", 0)["end"] = json.Number("-1")
	at(t, doc, "tracks", "captions", 1)["text"] = json.Number("7")
	at(t, doc, "tracks", "audio", 0, "segments", 1)["cap_ref"] = "missing"
	at(t, doc, "export", "cuts", 0)["size"] = "vertical"

	report := Validate(doc)
	want := []string{
		"project.fps must be a positive number",
		"tracks.video[0].end must be greater than .start",
		"tracks.captions[1].text must be a string",
		"tracks.audio[0].segments[1].cap_ref does not exist in tracks.captions (missing)",
		`export.cuts[0].size must be a string like "1080x1920"`,
	}
	if report.OK {
		t.Fatal("expected failure")
	}
	if len(report.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(report.Errors), report.Errors)
	}
	for i := range want {
		if report.Errors[i] != want[i] {
			t.Errorf("error %d = %q, want %q", i, report.Errors[i], want[i])
		}
	}
}

func TestValidateCapRefIntegrity(t *testing.T) {
	doc := validTree(t)
	at(t, doc, "tracks", "audio", 0, "segments", 0)["cap_ref"] = "cap9"

	report := Validate(doc)
	if report.OK || len(report.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", report.Errors)
	}
	if !strings.HasPrefix(report.Errors[0], "tracks.audio[0].segments[0].cap_ref") {
		t.Fatalf("expected segment path, got %q", report.Errors[0])
	}

	captions := at(t, doc, "tracks")["captions"].([]any)
	at(t, doc, "tracks")["captions"] = append(captions, map[string]any{"id": "cap9", "lang": "en", "text": "Nine"})
	if report := Validate(doc); !report.OK {
		t.Fatalf("expected manifest to validate after adding caption, got %v", report.Errors)
	}
}

func TestValidateDuplicateCaptionID(t *testing.T) {
	doc := validTree(t)
	at(t, doc, "tracks", "captions", 1)["id"] = "cap1"

	report := Validate(doc)
	found := false
	for _, msg := range report.Errors {
		if msg == "tracks.captions[1].id must be unique (cap1)" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate id error, got %v", report.Errors)
	}
}

func TestValidateResolutionIntegers(t *testing.T) {
	tests := []struct {
		value any
		ok    bool
	}{
		{json.Number("1080"), true},
		{json.Number("1080.0"), true},
		{json.Number("1080.5"), false},
		{json.Number("0"), false},
		{json.Number("-720"), false},
		{json.Number("3000000000"), true},
		{json.Number("1e300"), false},
		{"1080", false},
		{1080, true},
		{float64(720), true},
	}
	for _, tt := range tests {
		doc := validTree(t)
		at(t, doc, "project", "resolution")["w"] = tt.value
		report := Validate(doc)
		if report.OK != tt.ok {
			t.Errorf("w=%#v: OK=%v want %v (%v)", tt.value, report.OK, tt.ok, report.Errors)
		}
	}
}

func TestValidateSegmentAndTrackRanges(t *testing.T) {
	doc := validTree(t)
	at(t, doc, "tracks", "audio", 0)["end"] = json.Number("0")
	at(t, doc, "tracks", "audio", 0, "segments", 0)["t1"] = json.Number("0")
	at(t, doc, "tracks", "audio", 0, "segments", 1)["t0"] = "five"

	report := Validate(doc)
	want := []string{
		"tracks.audio[0].end must be greater than .start",
		"tracks.audio[0].segments[0].t1 must be greater than .t0",
		"tracks.audio[0].segments[1].t0 and .t1 must be numbers",
	}
	if strings.Join(report.Errors, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected errors:\n%v\nwant\n%v", report.Errors, want)
	}
}

func TestValidateCutShapes(t *testing.T) {
	tests := []struct {
		name string
		cut  map[string]any
		want string
	}{
		{"range length", map[string]any{"name": "a", "range": []any{json.Number("1")}, "size": "1x1"}, "export.cuts[0].range must be [start, end]"},
		{"range order", map[string]any{"name": "a", "range": []any{json.Number("5"), json.Number("5")}, "size": "1x1"}, "export.cuts[0].range must have numeric end > start"},
		{"size grammar", map[string]any{"name": "a", "range": []any{json.Number("0"), json.Number("5")}, "size": "1080 x 1920"}, `export.cuts[0].size must be a string like "1080x1920"`},
		{"name", map[string]any{"name": " ", "range": []any{json.Number("0"), json.Number("5")}, "size": "1x1"}, "export.cuts[0].name must be a non-empty string"},
		{"audio", map[string]any{"name": "a", "range": []any{json.Number("0"), json.Number("5")}, "size": "1x1", "audio": json.Number("1")}, "export.cuts[0].audio must be a non-empty string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validTree(t)
			at(t, doc, "export")["cuts"] = []any{tt.cut}
			report := Validate(doc)
			if len(report.Errors) != 1 || report.Errors[0] != tt.want {
				t.Fatalf("got %v, want [%s]", report.Errors, tt.want)
			}
		})
	}
}

func TestValidateExportOptional(t *testing.T) {
	doc := validTree(t)
	delete(doc, "export")
	delete(doc, "mix")
	if report := Validate(doc); !report.OK {
		t.Fatalf("expected export to be optional, got %v", report.Errors)
	}
	doc["export"] = "cuts"
	if report := Validate(doc); len(report.Errors) != 1 || report.Errors[0] != "export must be an object" {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
	doc["export"] = map[string]any{"cuts": "hook"}
	if report := Validate(doc); len(report.Errors) != 1 || report.Errors[0] != "export.cuts must be an array" {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
}

func TestValidateMissingTracksKeepsEarlierFindings(t *testing.T) {
	doc := validTree(t)
	doc["version"] = "sora-manifest.v0"
	doc["tracks"] = []any{}

	report := Validate(doc)
	want := []string{
		`version must be "sora-manifest.v1"`,
		"tracks must be an object with video/audio/captions arrays",
	}
	if strings.Join(report.Errors, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
}

func TestValidateCaptionErrorsPrecedeAudioErrors(t *testing.T) {
	doc := validTree(t)
	tracks := at(t, doc, "tracks")
	tracks["captions"] = "none"

	report := Validate(doc)
	want := []string{
		"tracks.captions must be an array",
		"tracks.audio[0].segments[0].cap_ref does not exist in tracks.captions (cap1)",
		"tracks.audio[0].segments[1].cap_ref does not exist in tracks.captions (cap2)",
	}
	if strings.Join(report.Errors, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
}

func TestValidateWarningsDoNotFail(t *testing.T) {
	doc := validTree(t)
	captions := at(t, doc, "tracks")["captions"].([]any)
	at(t, doc, "tracks")["captions"] = append(captions,
		map[string]any{"id": "cap-fr", "lang": "fr", "text": "Bonjour"},
		map[string]any{"id": "cap-extra", "lang": "en", "text": "Unused"},
	)
	at(t, doc, "export", "cuts", 0)["audio"] = "a9"

	report := Validate(doc)
	if !report.OK {
		t.Fatalf("expected OK, got %v", report.Errors)
	}
	if len(report.Warnings) != 2 {
		t.Fatalf("expected two warnings, got %v", report.Warnings)
	}
	if !strings.Contains(report.Warnings[0], "a9") || !strings.Contains(report.Warnings[1], "cap-extra") {
		t.Fatalf("unexpected warnings: %v", report.Warnings)
	}
}

func TestAssertValidReturnsValidationError(t *testing.T) {
	doc := validTree(t)
	at(t, doc, "project")["id"] = ""
	at(t, doc, "project")["title"] = nil

	_, err := AssertValid(doc)
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Fatalf("expected two errors, got %v", verr.Errors)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatal("expected validation marker")
	}
	if err.Error() != "project.id must be a non-empty string\nproject.title must be a non-empty string" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
