package tracks

import (
	"errors"
	"strings"
)

// Track describes one complete caption stream for a language/kind pair.
type Track struct {
	// LanguageCode is the code the source tags the track with ("en", "en-US").
	LanguageCode string
	// Name is the human-readable track label when the source provides one.
	Name string
	// Generated marks machine-transcribed (auto) captions; manual tracks
	// are human-authored.
	Generated bool
	// BaseURL is the provider-specific fetch location for the payload.
	BaseURL string
}

// ErrNoTracks indicates the video advertises no caption tracks at all.
var ErrNoTracks = errors.New("no caption tracks available")

// Options tunes selection within a single language.
type Options struct {
	// PreferGenerated inverts the manual-over-auto preference inside each
	// language tier. The across-language order is unchanged.
	PreferGenerated bool
}

// Select picks exactly one track for the given ordered language preference
// list. The policy degrades in tiers: exact language match (manual beating
// generated unless opts inverts that), then any track whose code starts
// with "en", then the first track in catalog order. Selection is
// deterministic for a fixed catalog and preference list; only an empty
// catalog fails.
func Select(catalog []Track, preferred []string, opts Options) (Track, error) {
	if len(catalog) == 0 {
		return Track{}, ErrNoTracks
	}

	for _, lang := range preferred {
		if track, ok := matchLanguage(catalog, lang, opts.PreferGenerated); ok {
			return track, nil
		}
	}

	// English-family fallback covers regional variants like en-US and en-GB.
	for _, track := range catalog {
		if strings.HasPrefix(strings.ToLower(track.LanguageCode), "en") {
			return track, nil
		}
	}

	return catalog[0], nil
}

func matchLanguage(catalog []Track, lang string, preferGenerated bool) (Track, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	var fallback *Track
	for i := range catalog {
		track := catalog[i]
		if strings.ToLower(track.LanguageCode) != lang {
			continue
		}
		if track.Generated == preferGenerated {
			return track, true
		}
		if fallback == nil {
			fallback = &track
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Track{}, false
}

// Kind renders the manual/generated flag for display and storage.
func (t Track) Kind() string {
	if t.Generated {
		return "auto"
	}
	return "manual"
}
