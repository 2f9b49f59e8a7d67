// Package timedtext fetches caption tracks straight from YouTube: it reads
// the caption catalog out of the player response embedded in the watch
// page, then downloads the selected track from the timedtext endpoint.
package timedtext
