package captions

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// shortLineRunes guards against short interjections ("Yeah.", "Okay,")
// opening a new paragraph.
const shortLineRunes = 10

// Reconstruct infers paragraph structure for merged caption lines. Timed
// captions carry no paragraph information, so this is a heuristic: a break
// goes between adjacent lines when the first ends a sentence and the second
// starts with an uppercase letter and is long enough to read as a new
// thought. The result honors the Document invariants: no leading, trailing,
// or doubled breaks.
func Reconstruct(lines []string) Document {
	doc := Document{Lines: make([]string, 0, len(lines))}
	for i, line := range lines {
		doc.Lines = append(doc.Lines, line)
		if i+1 < len(lines) && breakBetween(line, lines[i+1]) {
			doc.Lines = append(doc.Lines, "")
		}
	}
	return doc
}

// Pipeline runs parse, merge, and reconstruct as one pure transformation
// from raw caption text to a transcript document.
func Pipeline(raw string, format Format) Document {
	return Reconstruct(Merge(Parse(raw, format)))
}

func breakBetween(current, next string) bool {
	if !endsSentence(current) {
		return false
	}
	next = strings.TrimSpace(next)
	if utf8.RuneCountInString(next) <= shortLineRunes {
		return false
	}
	first, _ := utf8.DecodeRuneInString(next)
	return unicode.IsUpper(first)
}

func endsSentence(line string) bool {
	return strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") || strings.HasSuffix(line, "?")
}
