package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// HookManifest is a small valid manifest with one English narration track
// and a "hook" cut covering its first two segments.
const HookManifest = `{
  "version": "sora-manifest.v1",
  "project": {"id": "rice-vs-wheat", "title": "Rice vs Wheat", "fps": 30, "resolution": {"w": 1080, "h": 1920}},
  "tracks": {
    "video": [{"id": "v1", "source": "clips/intro.mp4", "start": 0, "end": 30}],
    "audio": [
      {"id": "a1", "lang": "en", "source": "vo/en.wav", "start": 0, "end": 30, "role": "narration",
       "segments": [
         {"t0": 0, "t1": 5, "cap_ref": "cap1"},
         {"t0": 5, "t1": 12, "cap_ref": "cap2"},
         {"t0": 20, "t1": 26, "cap_ref": "cap3"}
       ]}
    ],
    "captions": [
      {"id": "cap1", "lang": "en", "text": "Hello"},
      {"id": "cap2", "lang": "en", "text": "World"},
      {"id": "cap3", "lang": "en", "text": "Later"}
    ]
  },
  "export": {"cuts": [
    {"name": "hook", "range": [0, 8], "size": "1080x1920"},
    {"name": "silent", "range": [14, 18], "size": "1080x1920"}
  ]}
}
`

// BrokenManifest fails validation with exactly two errors.
const BrokenManifest = `{
  "version": "sora-manifest.v0",
  "project": {"id": "p", "title": "P", "fps": 30, "resolution": {"w": 1080, "h": 1920}},
  "tracks": {
    "video": [],
    "audio": [{"id": "a1", "lang": "en", "source": "a.wav", "start": 0, "end": 5,
               "segments": [{"t0": 0, "t1": 1, "cap_ref": "ghost"}]}],
    "captions": []
  }
}
`

// WriteManifest writes content to name inside a fresh temp directory and
// returns the file path.
func WriteManifest(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest %s: %v", path, err)
	}
	return path
}
