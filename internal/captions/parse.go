package captions

import (
	"regexp"
	"strconv"
	"strings"
)

// Format identifies a timed-caption wire format.
type Format string

const (
	// FormatVTT is WebVTT, the format YouTube serves by default.
	FormatVTT Format = "vtt"
	// FormatSRT is SubRip, the format the timedtext endpoint emits on request.
	FormatSRT Format = "srt"
	// FormatAuto asks the parser to detect the format from content.
	FormatAuto Format = ""
)

// Cue is one timing-bounded caption unit. Lines holds the markup-stripped
// text lines that shared the cue's timing window; a closed cue always has
// at least one line.
type Cue struct {
	Lines []string
}

// inlineTagRe matches styling tags like <c>, </c.colorE5E5E5>, <i>, and the
// timestamp tags auto-generated VTT interleaves with words.
var inlineTagRe = regexp.MustCompile(`<[^>]*>`)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// DetectFormat inspects raw caption text and reports its format. Presence
// of a WEBVTT marker anywhere selects VTT; everything else is treated as SRT.
func DetectFormat(raw string) Format {
	if strings.Contains(raw, "WEBVTT") {
		return FormatVTT
	}
	return FormatSRT
}

// Parse scans raw caption text into ordered cues. Cue boundaries are timing
// lines (containing "-->") and blank lines; sequence numbers, WEBVTT
// headers, and NOTE/STYLE metadata never count as cue text. Malformed input
// is not an error: it yields however many cues could be recovered, possibly
// none.
func Parse(raw string, format Format) []Cue {
	if format == FormatAuto {
		format = DetectFormat(raw)
	}
	_ = format // both formats share one scanner; the hint only skips detection

	var cues []Cue
	var buffer []string

	flush := func() {
		if len(buffer) > 0 {
			cues = append(cues, Cue{Lines: buffer})
			buffer = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			// Some generators omit the next timing line before a blank
			// separator, so a blank line also closes the cue.
			flush()
		case strings.Contains(trimmed, "-->"):
			flush()
		case isMetadataLine(trimmed):
		case isSequenceNumber(trimmed):
		default:
			text := strings.TrimSpace(entityReplacer.Replace(inlineTagRe.ReplaceAllString(trimmed, "")))
			if text != "" {
				buffer = append(buffer, text)
			}
		}
	}
	flush()
	return cues
}

func isMetadataLine(line string) bool {
	for _, prefix := range []string{"WEBVTT", "NOTE", "STYLE", "Kind:", "Language:"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isSequenceNumber(line string) bool {
	_, err := strconv.Atoi(line)
	return err == nil
}
