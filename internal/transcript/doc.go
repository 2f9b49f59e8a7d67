// Package transcript orchestrates transcript acquisition: it selects a
// caption track, fetches the raw payload under a bounded retry policy with
// a single alternate-provider degrade, and runs the captions pipeline to
// produce the final document.
package transcript
