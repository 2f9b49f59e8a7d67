package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/logging"
	"github.com/robertrahardja/ytpy/internal/provider"
	"github.com/robertrahardja/ytpy/internal/tracks"
)

// ErrEmptyTranscript indicates the payload parsed cleanly but produced no
// text at all. Parsing itself never fails; this is the boundary upgrade.
var ErrEmptyTranscript = errors.New("transcript contains no text")

// Service acquires transcripts through an injected provider, degrading to
// an optional fallback provider when the primary exhausts its retries.
type Service struct {
	primary         provider.Source
	fallback        provider.Source
	retry           RetryPolicy
	preferGenerated bool
	logger          *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithFallback installs the single alternate acquisition path tried after
// the primary provider exhausts its retries.
func WithFallback(source provider.Source) Option {
	return func(s *Service) { s.fallback = source }
}

// WithRetryPolicy overrides the default fetch retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(s *Service) { s.retry = policy.normalized() }
}

// WithPreferGenerated inverts the manual-over-auto preference during track
// selection.
func WithPreferGenerated(prefer bool) Option {
	return func(s *Service) { s.preferGenerated = prefer }
}

// WithLogger attaches a logger; without one the service stays silent.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a Service around the primary provider.
func NewService(primary provider.Source, opts ...Option) *Service {
	s := &Service{
		primary: primary,
		retry:   DefaultRetryPolicy(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Acquire obtains the transcript for one video: list tracks, select one,
// fetch the payload with retries, then run the pure captions pipeline.
// Permanent provider failures surface immediately; only the fetch step
// retries, and only on transient failures.
func (s *Service) Acquire(ctx context.Context, videoID string, preferred []string) (captions.Document, error) {
	doc, err := s.acquireFrom(ctx, s.primary, videoID, preferred)
	if err == nil {
		return doc, nil
	}
	if s.fallback == nil || !provider.IsTransient(err) {
		return captions.Document{}, err
	}

	s.logger.Warn("primary provider exhausted, trying fallback",
		logging.String("video_id", videoID),
		logging.String("primary", s.primary.Name()),
		logging.String("fallback", s.fallback.Name()),
		logging.Error(err),
	)
	doc, fallbackErr := s.acquireFrom(ctx, s.fallback, videoID, preferred)
	if fallbackErr != nil {
		return captions.Document{}, fmt.Errorf("fallback %s: %w (primary: %v)", s.fallback.Name(), fallbackErr, err)
	}
	return doc, nil
}

func (s *Service) acquireFrom(ctx context.Context, source provider.Source, videoID string, preferred []string) (captions.Document, error) {
	catalog, err := source.ListTracks(ctx, videoID)
	if err != nil {
		return captions.Document{}, err
	}

	track, err := tracks.Select(catalog, preferred, tracks.Options{PreferGenerated: s.preferGenerated})
	if err != nil {
		return captions.Document{}, err
	}
	s.logger.Debug("caption track selected",
		logging.String("video_id", videoID),
		logging.String("language", track.LanguageCode),
		logging.String("kind", track.Kind()),
		logging.String("backend", source.Name()),
	)

	payload, err := s.fetchWithRetry(ctx, source, videoID, track)
	if err != nil {
		return captions.Document{}, err
	}

	doc := captions.Pipeline(payload.Raw, payload.Format)
	if doc.IsEmpty() {
		return captions.Document{}, fmt.Errorf("%w: video %s", ErrEmptyTranscript, videoID)
	}
	doc.VideoID = videoID
	return doc, nil
}

func (s *Service) fetchWithRetry(ctx context.Context, source provider.Source, videoID string, track tracks.Track) (provider.Payload, error) {
	policy := s.retry.normalized()
	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		payload, err := source.FetchRaw(ctx, videoID, track)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if !provider.IsTransient(err) {
			return provider.Payload{}, err
		}
		if attempt == policy.MaxAttempts {
			break
		}
		s.logger.Warn("caption fetch failed, retrying",
			logging.String("video_id", videoID),
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", policy.MaxAttempts),
			logging.Duration("backoff", policy.Backoff),
			logging.Error(err),
		)
		if err := sleepWithContext(ctx, policy.Backoff); err != nil {
			return provider.Payload{}, err
		}
	}
	return provider.Payload{}, lastErr
}
