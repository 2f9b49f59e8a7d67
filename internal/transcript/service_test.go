package transcript

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/provider"
	"github.com/robertrahardja/ytpy/internal/tracks"
)

const cleanSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello world.\n\n2\n00:00:02,000 --> 00:00:03,000\nThis Is New.\n"

type fakeSource struct {
	name       string
	catalog    []tracks.Track
	listErr    error
	payload    provider.Payload
	fetchErrs  []error // consumed one per FetchRaw call; nil entry means success
	fetchCalls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) ListTracks(ctx context.Context, videoID string) ([]tracks.Track, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.catalog, nil
}

func (f *fakeSource) FetchRaw(ctx context.Context, videoID string, track tracks.Track) (provider.Payload, error) {
	call := f.fetchCalls
	f.fetchCalls++
	if call < len(f.fetchErrs) && f.fetchErrs[call] != nil {
		return provider.Payload{}, f.fetchErrs[call]
	}
	return f.payload, nil
}

func englishCatalog() []tracks.Track {
	return []tracks.Track{{LanguageCode: "en", Generated: true}}
}

func newFake(name string) *fakeSource {
	return &fakeSource{
		name:    name,
		catalog: englishCatalog(),
		payload: provider.Payload{Raw: cleanSRT, Format: captions.FormatSRT},
	}
}

func fastRetry() Option {
	return WithRetryPolicy(RetryPolicy{MaxAttempts: 3, Backoff: 0})
}

func TestAcquireHappyPath(t *testing.T) {
	service := NewService(newFake("primary"), fastRetry())
	doc, err := service.Acquire(context.Background(), "vid1", []string{"en"})
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	want := []string{"Hello world.", "", "This Is New."}
	if !reflect.DeepEqual(doc.Lines, want) {
		t.Fatalf("Lines = %v, want %v", doc.Lines, want)
	}
	if doc.VideoID != "vid1" {
		t.Errorf("VideoID = %q", doc.VideoID)
	}
}

func TestAcquireRetriesTransientThenSucceeds(t *testing.T) {
	transient := provider.Wrap(provider.ErrTransient, "fake", "fetch", errors.New("flaky"))
	source := newFake("primary")
	source.fetchErrs = []error{transient, transient, nil}

	service := NewService(source, fastRetry())
	doc, err := service.Acquire(context.Background(), "vid1", []string{"en"})
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if source.fetchCalls != 3 {
		t.Fatalf("fetchCalls = %d, want 3", source.fetchCalls)
	}
	if doc.IsEmpty() {
		t.Fatal("expected non-empty document")
	}
}

func TestAcquirePermanentFailsImmediately(t *testing.T) {
	source := newFake("primary")
	source.fetchErrs = []error{provider.Wrap(provider.ErrNotFound, "fake", "fetch", nil)}

	service := NewService(source, fastRetry())
	_, err := service.Acquire(context.Background(), "vid1", []string{"en"})
	if !errors.Is(err, provider.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if source.fetchCalls != 1 {
		t.Fatalf("permanent failure should not retry, fetchCalls = %d", source.fetchCalls)
	}
}

func TestAcquireNoTracksFailsWithoutFetch(t *testing.T) {
	source := newFake("primary")
	source.catalog = nil

	service := NewService(source, fastRetry())
	_, err := service.Acquire(context.Background(), "vid1", []string{"en"})
	if !errors.Is(err, tracks.ErrNoTracks) {
		t.Fatalf("expected ErrNoTracks, got %v", err)
	}
	if source.fetchCalls != 0 {
		t.Fatalf("no fetch expected, got %d calls", source.fetchCalls)
	}
}

func TestAcquireFallsBackAfterExhaustion(t *testing.T) {
	transient := provider.Wrap(provider.ErrTransient, "fake", "fetch", errors.New("flaky"))
	primary := newFake("primary")
	primary.fetchErrs = []error{transient, transient, transient}
	fallback := newFake("fallback")

	service := NewService(primary, fastRetry(), WithFallback(fallback))
	doc, err := service.Acquire(context.Background(), "vid1", []string{"en"})
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if primary.fetchCalls != 3 {
		t.Errorf("primary fetchCalls = %d, want 3", primary.fetchCalls)
	}
	if fallback.fetchCalls != 1 {
		t.Errorf("fallback fetchCalls = %d, want 1", fallback.fetchCalls)
	}
	if doc.IsEmpty() {
		t.Fatal("expected document from fallback")
	}
}

func TestAcquireNoFallbackForPermanentFailure(t *testing.T) {
	primary := newFake("primary")
	primary.listErr = provider.Wrap(provider.ErrNoCaptions, "fake", "list", nil)
	fallback := newFake("fallback")

	service := NewService(primary, fastRetry(), WithFallback(fallback))
	_, err := service.Acquire(context.Background(), "vid1", []string{"en"})
	if !errors.Is(err, provider.ErrNoCaptions) {
		t.Fatalf("expected ErrNoCaptions, got %v", err)
	}
	if fallback.fetchCalls != 0 {
		t.Fatalf("fallback should not run for permanent failures")
	}
}

func TestAcquireEmptyTranscript(t *testing.T) {
	source := newFake("primary")
	source.payload = provider.Payload{Raw: "WEBVTT\nKind: captions\n\n", Format: captions.FormatVTT}

	service := NewService(source, fastRetry())
	_, err := service.Acquire(context.Background(), "vid1", []string{"en"})
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}
}

func TestAcquirePreferGenerated(t *testing.T) {
	source := newFake("primary")
	source.catalog = []tracks.Track{
		{LanguageCode: "en", Generated: false, BaseURL: "manual"},
		{LanguageCode: "en", Generated: true, BaseURL: "auto"},
	}

	var picked tracks.Track
	source.payload = provider.Payload{Raw: cleanSRT, Format: captions.FormatSRT}
	service := NewService(&pickRecorder{fakeSource: source, picked: &picked}, fastRetry(), WithPreferGenerated(true))
	if _, err := service.Acquire(context.Background(), "vid1", []string{"en"}); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if !picked.Generated {
		t.Fatalf("expected generated track to be picked, got %+v", picked)
	}
}

type pickRecorder struct {
	*fakeSource
	picked *tracks.Track
}

func (p *pickRecorder) FetchRaw(ctx context.Context, videoID string, track tracks.Track) (provider.Payload, error) {
	*p.picked = track
	return p.fakeSource.FetchRaw(ctx, videoID, track)
}

func TestRetryPolicyNormalized(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 0, Backoff: -1}.normalized()
	if policy.MaxAttempts != 1 || policy.Backoff != 0 {
		t.Fatalf("normalized = %+v", policy)
	}
}
