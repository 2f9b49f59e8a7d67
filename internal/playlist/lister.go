package playlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/robertrahardja/ytpy/internal/logging"
)

const defaultBaseURL = "https://www.youtube.com"

// ErrNoAPIKey indicates an operation that requires the Data API was
// attempted without a configured key.
var ErrNoAPIKey = errors.New("youtube api key not configured")

// ErrEmptyPlaylist indicates the playlist resolved to zero videos.
var ErrEmptyPlaylist = errors.New("playlist contains no videos")

var videoIDPattern = regexp.MustCompile(`"videoId":"([^"]+)"`)

// Lister resolves playlist contents and video titles.
type Lister struct {
	api     *youtube.Service
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// Option configures a Lister.
type Option func(*Lister)

// WithHTTPClient overrides the HTTP client used for page scraping.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Lister) {
		if client != nil {
			l.http = client
		}
	}
}

// WithBaseURL overrides the site base URL used for page scraping.
func WithBaseURL(base string) Option {
	return func(l *Lister) {
		if base != "" {
			l.baseURL = base
		}
	}
}

// WithService injects a pre-built Data API service (for testing).
func WithService(svc *youtube.Service) Option {
	return func(l *Lister) {
		l.api = svc
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lister) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New constructs a Lister. An empty apiKey disables the Data API path
// and every lookup goes through page scraping.
func New(ctx context.Context, apiKey string, opts ...Option) (*Lister, error) {
	lister := &Lister{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(lister)
	}
	if lister.api == nil && apiKey != "" {
		svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("create youtube service: %w", err)
		}
		lister.api = svc
	}
	return lister, nil
}

// Videos returns the ordered video IDs of a playlist.
func (l *Lister) Videos(ctx context.Context, playlistID string) ([]string, error) {
	if playlistID == "" {
		return nil, errors.New("playlist id required")
	}
	if l.api != nil {
		ids, err := l.videosFromAPI(ctx, playlistID)
		if err == nil {
			return ids, nil
		}
		l.logger.Warn("playlist api lookup failed, falling back to page scrape",
			logging.String("playlist_id", playlistID),
			logging.Error(err))
	}
	return l.videosFromPage(ctx, playlistID)
}

func (l *Lister) videosFromAPI(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	pageToken := ""
	for {
		call := l.api.PlaylistItems.
			List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(50).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list playlist items: %w", err)
		}
		for _, item := range resp.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				ids = append(ids, item.ContentDetails.VideoId)
			}
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	if len(ids) == 0 {
		return nil, ErrEmptyPlaylist
	}
	return ids, nil
}

func (l *Lister) videosFromPage(ctx context.Context, playlistID string) ([]string, error) {
	url := fmt.Sprintf("%s/playlist?list=%s", l.baseURL, playlistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create playlist request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch playlist page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("playlist page returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read playlist page: %w", err)
	}

	matches := videoIDPattern.FindAllStringSubmatch(string(body), -1)
	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		id := match[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrEmptyPlaylist
	}
	return ids, nil
}

// VideoTitle resolves a video title via the Data API. Callers without
// an API key should fall back to scraping the watch page instead.
func (l *Lister) VideoTitle(ctx context.Context, videoID string) (string, error) {
	if l.api == nil {
		return "", ErrNoAPIKey
	}
	resp, err := l.api.Videos.
		List([]string{"snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("lookup video snippet: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", fmt.Errorf("video %s not found", videoID)
	}
	return resp.Items[0].Snippet.Title, nil
}
