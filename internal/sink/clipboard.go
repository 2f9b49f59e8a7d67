package sink

import "github.com/atotto/clipboard"

// Clipboard copies text to a clipboard destination. The system
// clipboard is the only real implementation; tests substitute fakes.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// Copy places text on the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard backend exists on this system.
func Available() bool {
	return !clipboard.Unsupported
}
