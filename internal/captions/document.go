package captions

import "strings"

// Document is the final transcript artifact. Lines is an ordered sequence
// of text lines in which an empty string marks a paragraph break; it never
// begins or ends with a break and never holds two breaks in a row. The
// header fields are attached by callers, not by the pipeline.
type Document struct {
	Lines    []string
	Title    string
	VideoID  string
	WatchURL string
}

// IsEmpty reports whether the document carries no transcript text.
func (d Document) IsEmpty() bool {
	return len(d.Lines) == 0
}

// Render produces the plain-text form of the document: optional header
// lines, a blank separator, then the transcript with paragraph breaks as
// blank lines. The output always ends with a newline.
func (d Document) Render() string {
	var b strings.Builder
	if d.Title != "" {
		b.WriteString("Title: " + d.Title + "\n")
	}
	if d.VideoID != "" {
		b.WriteString("Video ID: " + d.VideoID + "\n")
	}
	if d.WatchURL != "" {
		b.WriteString("URL: " + d.WatchURL + "\n")
	}
	if b.Len() > 0 && len(d.Lines) > 0 {
		b.WriteString("\n")
	}
	for _, line := range d.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
