package renderplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"shorts/internal/manifest"
	"shorts/internal/services"
)

const hookManifestJSON = `{
  "version": "sora-manifest.v1",
  "project": {"id": "rice-vs-wheat", "title": "Rice vs Wheat", "fps": 30, "resolution": {"w": 1080, "h": 1920}},
  "tracks": {
    "video": [
      {"id": "v1", "source": "clips/intro.mp4", "start": 0, "end": 30},
      {"id": "v2", "source": "clips/broll.mp4", "start": 2, "end": 20, "transform": {"crop": "center"}, "keyframes": [{"t": 1}]}
    ],
    "audio": [
      {"id": "a1", "lang": "en", "source": "vo/en.wav", "start": 0, "end": 30, "role": "narration",
       "segments": [{"t0": 0, "t1": 5, "cap_ref": "cap1"}, {"t0": 5, "t1": 12, "cap_ref": "cap2"}, {"t0": 12, "t1": 18, "cap_ref": "cap3"}]}
    ],
    "captions": [
      {"id": "cap1", "lang": "en", "text": "Hello"},
      {"id": "cap2", "lang": "en", "text": "World"},
      {"id": "cap3", "lang": "en", "text": "Again"},
      {"id": "cap1-de", "lang": "de", "text": "Hallo"}
    ]
  },
  "export": {"cuts": [
    {"name": "hook", "range": [0, 8], "size": "1080x1920"},
    {"name": "tail", "range": [10, 20], "size": "720x1280"}
  ]}
}`

func decodeManifest(t *testing.T, data string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Decode([]byte(data))
	if err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	return m
}

func TestBuildHookCut(t *testing.T) {
	m := decodeManifest(t, hookManifestJSON)

	plan, err := Build(m, Options{CutName: "hook", Lang: "en"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.Cut != (Cut{Name: "hook", Range: [2]float64{0, 8}, Size: "1080x1920"}) {
		t.Fatalf("unexpected cut: %+v", plan.Cut)
	}
	if plan.Audio == nil || plan.Audio.ID != "a1" || plan.AudioSelector != SelectLangNarration {
		t.Fatalf("unexpected audio: %+v selector=%q", plan.Audio, plan.AudioSelector)
	}
	want := []Segment{
		{T0: 0, T1: 5, CapRef: "cap1", Text: "Hello"},
		{T0: 5, T1: 12, CapRef: "cap2", Text: "World"},
	}
	if !reflect.DeepEqual(plan.Audio.Segments, want) {
		t.Fatalf("segments = %+v, want %+v", plan.Audio.Segments, want)
	}
	if len(plan.Captions) != 3 {
		t.Fatalf("expected english captions only, got %+v", plan.Captions)
	}
	if plan.ManifestVersion != manifest.SupportedVersion || plan.Project.Title != "Rice vs Wheat" {
		t.Fatalf("unexpected header: %+v", plan)
	}
}

func TestBuildDefaultsToFirstCutAndEnglish(t *testing.T) {
	m := decodeManifest(t, hookManifestJSON)
	plan, err := Build(m, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.Cut.Name != "hook" || plan.Lang != DefaultLang {
		t.Fatalf("expected hook/en, got %s/%s", plan.Cut.Name, plan.Lang)
	}
}

func TestBuildSynthesizesFullCut(t *testing.T) {
	m := decodeManifest(t, hookManifestJSON)
	m.Export = nil

	plan, err := Build(m, Options{Lang: "en"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.Cut != (Cut{Name: FullCutName, Range: [2]float64{0, 30}, Size: "1080x1920"}) {
		t.Fatalf("unexpected synthesized cut: %+v", plan.Cut)
	}
	if len(plan.Audio.Segments) != 3 {
		t.Fatalf("expected all segments in full cut, got %d", len(plan.Audio.Segments))
	}
}

func TestBuildUnknownCut(t *testing.T) {
	m := decodeManifest(t, hookManifestJSON)
	_, err := Build(m, Options{CutName: "outro"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrCutNotFound) || !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected cut-not-found error, got %v", err)
	}
	if err.Error() != "cut not found: outro" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if services.ExitCode(err) != services.ExitNotFound {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
}

func TestBuildSegmentOverlap(t *testing.T) {
	tests := []struct {
		name    string
		t0, t1  float64
		include bool
	}{
		{"ends at cut start", 5, 10, false},
		{"starts at cut end", 20, 25, false},
		{"straddles start", 9, 11, true},
		{"straddles end", 19, 21, true},
		{"inside", 12, 15, true},
		{"covers cut", 5, 25, true},
		{"before", 0, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &manifest.Manifest{
				Version: manifest.SupportedVersion,
				Project: manifest.Project{ID: "p", Title: "P", FPS: 30, Resolution: manifest.Resolution{W: 1080, H: 1920}},
				Tracks: manifest.Tracks{
					Audio: []manifest.AudioTrack{{
						ID: "a", Lang: "en", Source: "a.wav", Start: 0, End: 30,
						Segments: []manifest.Segment{{T0: tt.t0, T1: tt.t1, CapRef: "c"}},
					}},
					Captions: []manifest.Caption{{ID: "c", Lang: "en", Text: "x"}},
				},
				Export: &manifest.Export{Cuts: []manifest.Cut{{Name: "mid", Range: [2]float64{10, 20}, Size: "1x1"}}},
			}
			plan, err := Build(m, Options{Lang: "en"})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			got := len(plan.Audio.Segments) == 1
			if got != tt.include {
				t.Fatalf("segment [%v,%v) included=%v, want %v", tt.t0, tt.t1, got, tt.include)
			}
			if got && (plan.Audio.Segments[0].T0 != tt.t0 || plan.Audio.Segments[0].T1 != tt.t1) {
				t.Fatalf("segment should not be clipped: %+v", plan.Audio.Segments[0])
			}
		})
	}
}

func fallbackManifest(cutAudio string) *manifest.Manifest {
	return &manifest.Manifest{
		Version: manifest.SupportedVersion,
		Project: manifest.Project{ID: "p", Title: "P", FPS: 30, Resolution: manifest.Resolution{W: 1080, H: 1920}},
		Tracks: manifest.Tracks{
			Audio: []manifest.AudioTrack{
				{ID: "music", Lang: "und", Source: "bed.mp3", Start: 0, End: 10, Role: "music"},
				{ID: "en-room", Lang: "en", Source: "room.wav", Start: 0, End: 10},
				{ID: "en-vo", Lang: "en", Source: "en.wav", Start: 0, End: 10, Role: "narration"},
				{ID: "de-vo", Lang: "de", Source: "de.wav", Start: 0, End: 10},
			},
		},
		Export: &manifest.Export{Cuts: []manifest.Cut{{Name: "c", Range: [2]float64{0, 10}, Size: "1x1", Audio: cutAudio}}},
	}
}

func TestBuildAudioFallbackOrder(t *testing.T) {
	tests := []struct {
		name     string
		cutAudio string
		lang     string
		wantID   string
		selector string
	}{
		{"cut reference wins", "de-vo", "en", "de-vo", SelectCutAudio},
		{"english narration", "", "en", "en-vo", SelectLangNarration},
		{"german any role", "", "de", "de-vo", SelectLangAny},
		{"unknown language", "", "fr", "music", SelectFirstDeclared},
		{"dangling cut reference", "nope", "en", "en-vo", SelectLangNarration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Build(fallbackManifest(tt.cutAudio), Options{Lang: tt.lang})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if plan.Audio == nil || plan.Audio.ID != tt.wantID || plan.AudioSelector != tt.selector {
				t.Fatalf("got %+v via %q, want %s via %s", plan.Audio, plan.AudioSelector, tt.wantID, tt.selector)
			}
		})
	}
}

func TestBuildWithoutAudio(t *testing.T) {
	m := fallbackManifest("")
	m.Tracks.Audio = nil
	plan, err := Build(m, Options{Lang: "en"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.Audio != nil || plan.AudioSelector != "" || plan.Segments() != nil {
		t.Fatalf("expected no audio, got %+v", plan.Audio)
	}
	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"audio":null`) || strings.Contains(string(data), "audioSelector") {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestBuildCaptionTextFollowsLanguage(t *testing.T) {
	m := decodeManifest(t, hookManifestJSON)
	plan, err := Build(m, Options{CutName: "hook", Lang: "de"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if plan.Audio == nil || plan.Audio.ID != "a1" || plan.AudioSelector != SelectFirstDeclared {
		t.Fatalf("unexpected audio %+v via %q", plan.Audio, plan.AudioSelector)
	}
	for _, segment := range plan.Audio.Segments {
		if segment.Text != "" {
			t.Fatalf("expected unresolved text under de, got %+v", segment)
		}
	}
	if len(plan.Captions) != 1 || plan.Captions[0].ID != "cap1-de" {
		t.Fatalf("unexpected captions: %+v", plan.Captions)
	}
}

func TestBuildIsDeterministicAndDoesNotMutate(t *testing.T) {
	m := decodeManifest(t, hookManifestJSON)
	pristine := decodeManifest(t, hookManifestJSON)

	first, err := Build(m, Options{CutName: "tail", Lang: "en"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := Build(m, Options{CutName: "tail", Lang: "en"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ:\n%+v\n%+v", first, second)
	}
	first.VideoSources[1].Transform[0] = '['
	first.Captions[0].Text = "changed"
	if !reflect.DeepEqual(m, pristine) {
		t.Fatal("manifest was mutated through the plan")
	}
}

func TestPlanJSONShape(t *testing.T) {
	m := decodeManifest(t, hookManifestJSON)
	plan, err := Build(m, Options{CutName: "tail", Lang: "en"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"manifestVersion", "project", "cut", "lang", "videoSources", "audio", "captions", "mix"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if decoded["mix"] != nil {
		t.Errorf("expected null mix, got %v", decoded["mix"])
	}
	sources := decoded["videoSources"].([]any)
	first := sources[0].(map[string]any)
	if first["transform"] != nil {
		t.Errorf("expected null transform, got %v", first["transform"])
	}
	if keyframes, ok := first["keyframes"].([]any); !ok || len(keyframes) != 0 {
		t.Errorf("expected empty keyframes, got %v", first["keyframes"])
	}
	second := sources[1].(map[string]any)
	if second["in"] != float64(2) || second["out"] != float64(20) {
		t.Errorf("unexpected in/out: %v", second)
	}
	if !strings.Contains(string(data), `"cap_ref":"cap2"`) {
		t.Errorf("expected cap_ref key in segments: %s", data)
	}
	if !strings.Contains(string(data), `"resolution":{"w":1080,"h":1920}`) {
		t.Errorf("unexpected project resolution: %s", data)
	}
}

func TestBuilderLogsDanglingCutAudio(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := NewBuilder(logger).Build(fallbackManifest("nope"), Options{Lang: "en"}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"event_type":"audio_fallback"`, `"requested_audio":"nope"`, `"component":"renderplan"`, `"msg":"render plan built"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestSelectorsOrder(t *testing.T) {
	want := []string{SelectCutAudio, SelectLangNarration, SelectLangAny, SelectFirstDeclared}
	if got := Selectors(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Selectors() = %v", got)
	}
}
