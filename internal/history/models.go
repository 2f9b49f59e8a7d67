package history

import "time"

// Status describes the outcome of an acquisition attempt.
type Status string

const (
	// StatusFetched marks a transcript that was written successfully.
	StatusFetched Status = "fetched"
	// StatusFailed marks an attempt that ended in an error.
	StatusFailed Status = "failed"
	// StatusSkipped marks a video skipped because it was fetched before.
	StatusSkipped Status = "skipped"
)

// Entry is one recorded acquisition attempt.
type Entry struct {
	ID           int64
	VideoID      string
	Title        string
	Language     string
	Generated    bool
	OutputPath   string
	RunID        string
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
}

// Stats summarizes the history table.
type Stats struct {
	Total   int64
	Fetched int64
	Failed  int64
	Skipped int64
}
