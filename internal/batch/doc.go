// Package batch runs transcript acquisition over a list of videos with
// a bounded worker pool, records every outcome in history, and applies
// per-batch side effects such as the final clipboard copy.
package batch
