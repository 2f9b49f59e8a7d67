// Package sink delivers rendered transcripts to their destinations:
// text files named after the video, and optionally the system
// clipboard.
package sink
