package timedtext

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/logging"
	"github.com/robertrahardja/ytpy/internal/provider"
	"github.com/robertrahardja/ytpy/internal/tracks"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	defaultTimeout = 30 * time.Second

	// A desktop browser user agent keeps the watch page serving the full
	// player response instead of a consent interstitial.
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	backendName = "timedtext"
)

// Client scrapes caption availability from watch pages and downloads
// caption payloads. It implements provider.Source.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

// Option customizes a client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithBaseURL overrides the default base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithLogger attaches a logger for debug-level request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a timedtext client.
func New(opts ...Option) *Client {
	client := &Client{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: defaultTimeout},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Name identifies the backend in logs and history rows.
func (c *Client) Name() string { return backendName }

// captionTrackJSON mirrors one entry of the player response captionTracks
// array. Kind is "asr" for auto-generated tracks.
type captionTrackJSON struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// ListTracks fetches the watch page and extracts the caption catalog from
// the embedded player response.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]tracks.Track, error) {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return nil, provider.Wrap(provider.ErrTransient, backendName, "fetch watch page", err)
	}

	if strings.Contains(page, `"status":"ERROR"`) || strings.Contains(page, `"status":"LOGIN_REQUIRED"`) {
		return nil, provider.Wrap(provider.ErrNotFound, backendName, "video unavailable or private", nil)
	}

	catalog, err := parseCaptionTracks(page)
	if err != nil {
		return nil, provider.Wrap(provider.ErrTransient, backendName, "parse player response", err)
	}
	if len(catalog) == 0 {
		return nil, provider.Wrap(provider.ErrNoCaptions, backendName, "no caption tracks advertised", nil)
	}

	c.logger.Debug("caption tracks listed",
		logging.String("video_id", videoID),
		logging.Int("track_count", len(catalog)),
	)
	return catalog, nil
}

// FetchRaw downloads the caption payload for a previously listed track,
// requesting the VTT rendition.
func (c *Client) FetchRaw(ctx context.Context, videoID string, track tracks.Track) (provider.Payload, error) {
	if strings.TrimSpace(track.BaseURL) == "" {
		return provider.Payload{}, provider.Wrap(provider.ErrTransient, backendName, "track has no fetch url", nil)
	}

	url := track.BaseURL
	if !strings.Contains(url, "fmt=") {
		separator := "?"
		if strings.Contains(url, "?") {
			separator = "&"
		}
		url += separator + "fmt=vtt"
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return provider.Payload{}, provider.Wrap(provider.ErrTransient, backendName, "fetch captions", err)
	}
	// YouTube intermittently answers caption requests with an empty 200
	// body; treat that as retryable rather than an empty transcript.
	if strings.TrimSpace(body) == "" {
		return provider.Payload{}, provider.Wrap(provider.ErrTransient, backendName, "empty caption response", nil)
	}

	c.logger.Debug("caption payload fetched",
		logging.String("video_id", videoID),
		logging.String("language", track.LanguageCode),
		logging.Int("bytes", len(body)),
	)
	return provider.Payload{Raw: body, Format: captions.FormatVTT}, nil
}

// Title scrapes the video title from the watch page, falling back to the
// video ID when the page does not carry one.
func (c *Client) Title(ctx context.Context, videoID string) string {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return videoID
	}
	if title := extractTitle(page); title != "" {
		return title
	}
	return videoID
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// parseCaptionTracks locates the captionTracks array inside the watch page
// and decodes it. The page embeds the player response as one JSON blob, so
// a streaming decoder pointed just past the key reads exactly the array.
func parseCaptionTracks(page string) ([]tracks.Track, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(page, marker)
	if idx < 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(strings.NewReader(page[idx+len(marker):]))
	var raw []captionTrackJSON
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w", err)
	}

	catalog := make([]tracks.Track, 0, len(raw))
	for _, entry := range raw {
		if strings.TrimSpace(entry.LanguageCode) == "" {
			continue
		}
		name := entry.Name.SimpleText
		if name == "" && len(entry.Name.Runs) > 0 {
			name = entry.Name.Runs[0].Text
		}
		catalog = append(catalog, tracks.Track{
			LanguageCode: entry.LanguageCode,
			Name:         name,
			Generated:    entry.Kind == "asr",
			BaseURL:      entry.BaseURL,
		})
	}
	return catalog, nil
}

func extractTitle(page string) string {
	const openTag, closeTag = "<title>", "</title>"
	start := strings.Index(page, openTag)
	if start < 0 {
		return ""
	}
	rest := page[start+len(openTag):]
	end := strings.Index(rest, closeTag)
	if end < 0 {
		return ""
	}
	title := strings.TrimSuffix(strings.TrimSpace(rest[:end]), " - YouTube")
	return htmlTitleReplacer.Replace(title)
}

var htmlTitleReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&#39;", "'",
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
)

var _ provider.Source = (*Client)(nil)
