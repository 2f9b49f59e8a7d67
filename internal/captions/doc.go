// Package captions turns raw timed-caption payloads (WebVTT or SRT) into
// readable plain-text transcripts. Parsing produces ordered cues, merging
// collapses the rolling duplicates auto-generated tracks emit, and
// paragraph reconstruction inserts breaks where sentence-final punctuation
// meets a capitalized continuation.
package captions
