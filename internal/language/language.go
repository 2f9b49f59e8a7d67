package language

import "strings"

type entry struct {
	code    string   // ISO 639-1 (2-letter)
	alt     []string // ISO 639-2 forms
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var catalog = []entry{
	{"en", []string{"eng"}, "English", []string{"english"}},
	{"id", []string{"ind"}, "Indonesian", []string{"indonesian"}},
	{"es", []string{"spa"}, "Spanish", []string{"spanish"}},
	{"fr", []string{"fra", "fre"}, "French", []string{"french"}},
	{"de", []string{"deu", "ger"}, "German", []string{"german"}},
	{"it", []string{"ita"}, "Italian", []string{"italian"}},
	{"pt", []string{"por"}, "Portuguese", []string{"portuguese"}},
	{"ja", []string{"jpn"}, "Japanese", []string{"japanese"}},
	{"ko", []string{"kor"}, "Korean", []string{"korean"}},
	{"zh", []string{"zho", "chi"}, "Chinese", []string{"chinese"}},
	{"ru", []string{"rus"}, "Russian", []string{"russian"}},
	{"ar", []string{"ara"}, "Arabic", []string{"arabic"}},
	{"hi", []string{"hin"}, "Hindi", []string{"hindi"}},
	{"nl", []string{"nld", "dut"}, "Dutch", []string{"dutch"}},
	{"pl", []string{"pol"}, "Polish", []string{"polish"}},
	{"sv", []string{"swe"}, "Swedish", []string{"swedish"}},
	{"vi", []string{"vie"}, "Vietnamese", []string{"vietnamese"}},
	{"th", []string{"tha"}, "Thai", []string{"thai"}},
}

var (
	byCode map[string]*entry
	byAlt  map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(catalog))
	byAlt = make(map[string]*entry, len(catalog)*2)
	byWord = make(map[string]*entry, len(catalog))
	for i := range catalog {
		e := &catalog[i]
		byCode[e.code] = e
		for _, a := range e.alt {
			byAlt[a] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(value string) *entry {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil
	}
	if e, ok := byCode[value]; ok {
		return e
	}
	if e, ok := byAlt[value]; ok {
		return e
	}
	if e, ok := byWord[value]; ok {
		return e
	}
	return nil
}

// Normalize converts any recognized language identifier to its short code.
// Unrecognized values pass through lowercased so regional tags like "en-US"
// or codes outside the catalog still reach the track selector untouched.
func Normalize(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return ""
	}
	if e := lookup(trimmed); e != nil {
		return e.code
	}
	return trimmed
}

// DisplayName returns a human-readable name for a language code, or the
// uppercased code when the catalog does not know it.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeList normalizes and deduplicates a preference list while
// preserving the caller's order. Order is meaningful: earlier entries win
// during track selection.
func NormalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		code := Normalize(value)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		normalized = append(normalized, code)
	}
	return normalized
}
