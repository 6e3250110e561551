package renderplan

import "shorts/internal/manifest"

// Selector names, in evaluation order.
const (
	SelectCutAudio      = "cut-audio"
	SelectLangNarration = "lang-narration"
	SelectLangAny       = "lang-any"
	SelectFirstDeclared = "first-declared"
)

const narrationRole = "narration"

type audioSelector struct {
	name  string
	match func(tracks []manifest.AudioTrack, cut manifest.Cut, lang string) (int, bool)
}

var audioSelectors = []audioSelector{
	{SelectCutAudio, func(tracks []manifest.AudioTrack, cut manifest.Cut, _ string) (int, bool) {
		if cut.Audio == "" {
			return 0, false
		}
		return findTrack(tracks, func(t manifest.AudioTrack) bool { return t.ID == cut.Audio })
	}},
	{SelectLangNarration, func(tracks []manifest.AudioTrack, _ manifest.Cut, lang string) (int, bool) {
		return findTrack(tracks, func(t manifest.AudioTrack) bool { return t.Lang == lang && t.Role == narrationRole })
	}},
	{SelectLangAny, func(tracks []manifest.AudioTrack, _ manifest.Cut, lang string) (int, bool) {
		return findTrack(tracks, func(t manifest.AudioTrack) bool { return t.Lang == lang })
	}},
	{SelectFirstDeclared, func(tracks []manifest.AudioTrack, _ manifest.Cut, _ string) (int, bool) {
		return 0, len(tracks) > 0
	}},
}

// Selectors lists the audio selection rules in the order Build applies them.
func Selectors() []string {
	names := make([]string, len(audioSelectors))
	for i, s := range audioSelectors {
		names[i] = s.name
	}
	return names
}

// selectAudio returns the index of the chosen track and the selector that
// matched, or -1 when there is no audio at all.
func selectAudio(tracks []manifest.AudioTrack, cut manifest.Cut, lang string) (int, string) {
	for _, s := range audioSelectors {
		if idx, ok := s.match(tracks, cut, lang); ok {
			return idx, s.name
		}
	}
	return -1, ""
}

func findTrack(tracks []manifest.AudioTrack, pred func(manifest.AudioTrack) bool) (int, bool) {
	for i, t := range tracks {
		if pred(t) {
			return i, true
		}
	}
	return 0, false
}
