package sink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/logging"
)

// fileNameReplacer neutralizes filesystem-unsafe characters in titles.
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	"*", "_",
	"?", "_",
	":", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SafeFileName replaces filesystem-unsafe characters in a title with
// underscores and trims surrounding whitespace.
func SafeFileName(name string) string {
	return strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(name)))
}

// DeriveTitle builds a human-readable title from an identifier slug.
// Used when no real title could be resolved for a video.
func DeriveTitle(slug string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range slug {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Transcript"
	}
	return cases.Title(language.Und).String(title)
}

// Writer persists transcript documents as text files under a base
// directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the base output directory.
func (w *Writer) Dir() string { return w.dir }

// FileName computes the output file name for a document:
// "<safe-title>_<videoID>.txt", or "<videoID>.txt" when no title is
// known.
func FileName(doc captions.Document) string {
	title := SafeFileName(doc.Title)
	if title == "" {
		return doc.VideoID + ".txt"
	}
	return fmt.Sprintf("%s_%s.txt", title, doc.VideoID)
}

// Write renders the document and writes it under the base directory,
// optionally inside subdir. It returns the full path of the written
// file.
func (w *Writer) Write(doc captions.Document, subdir string) (string, error) {
	dir := w.dir
	if subdir != "" {
		dir = filepath.Join(dir, SafeFileName(subdir))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure output dir: %w", err)
	}

	path := filepath.Join(dir, FileName(doc))
	if err := os.WriteFile(path, []byte(doc.Render()), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	w.logger.Info("transcript written",
		logging.String("video_id", doc.VideoID),
		logging.String("path", path))
	return path, nil
}
