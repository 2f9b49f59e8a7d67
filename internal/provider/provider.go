package provider

import (
	"context"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/tracks"
)

// Payload is a raw caption document fetched from a source, tagged with the
// wire format the source claims it is in.
type Payload struct {
	Raw    string
	Format captions.Format
}

// Source enumerates and fetches caption tracks for one video. Both calls
// are the pipeline's only I/O boundary; everything downstream is pure.
type Source interface {
	// Name identifies the backend in logs and history rows.
	Name() string
	// ListTracks enumerates the caption tracks a video advertises.
	ListTracks(ctx context.Context, videoID string) ([]tracks.Track, error)
	// FetchRaw retrieves the raw timed-caption payload for one track.
	FetchRaw(ctx context.Context, videoID string, track tracks.Track) (Payload, error)
}
