package captions

import "strings"

// Merge collapses cues into logical text lines. Each cue's lines are joined
// with a single space and whitespace runs are squeezed; a line identical to
// the previously emitted one is dropped, which undoes the rolling-caption
// artifact where auto-generated tracks repeat the tail of one cue at the
// head of the next.
func Merge(cues []Cue) []string {
	lines := make([]string, 0, len(cues))
	previous := ""
	for _, cue := range cues {
		text := strings.Join(strings.Fields(strings.Join(cue.Lines, " ")), " ")
		if text == "" || text == previous {
			continue
		}
		lines = append(lines, text)
		previous = text
	}
	return lines
}
