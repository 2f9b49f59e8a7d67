package sink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/logging"
)

// BatchFile collects every transcript of a run into one text file.
// Start truncates the target so reruns never append onto stale
// content; each transcript is then appended in turn.
type BatchFile struct {
	path   string
	logger *slog.Logger
}

// NewBatchFile creates a BatchFile targeting path.
func NewBatchFile(path string, logger *slog.Logger) *BatchFile {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BatchFile{path: path, logger: logger}
}

// Path returns the target file path.
func (b *BatchFile) Path() string { return b.path }

// Start truncates the target file and writes the header line when one
// is given. It must be called once before the first Append.
func (b *BatchFile) Start(header string) error {
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure output dir: %w", err)
		}
	}
	content := ""
	if header != "" {
		content = header + "\n\n"
	}
	if err := os.WriteFile(b.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("create batch file: %w", err)
	}
	b.logger.Info("batch file created", logging.String("path", b.path))
	return nil
}

// Append renders the document and appends it to the target file.
func (b *BatchFile) Append(doc captions.Document) error {
	file, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(doc.Render() + "\n"); err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	b.logger.Info("transcript appended",
		logging.String("video_id", doc.VideoID),
		logging.String("path", b.path))
	return nil
}
