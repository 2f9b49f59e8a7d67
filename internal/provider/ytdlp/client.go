package ytdlp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/logging"
	"github.com/robertrahardja/ytpy/internal/provider"
	"github.com/robertrahardja/ytpy/internal/tracks"
	"github.com/robertrahardja/ytpy/internal/videoid"
)

const (
	backendName = "yt-dlp"

	// DefaultBinary is the yt-dlp executable resolved from PATH.
	DefaultBinary = "yt-dlp"
)

// CommandRunner executes an external command. Tests inject a fake to
// avoid spawning real processes.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Client downloads subtitles by invoking yt-dlp with --skip-download.
type Client struct {
	binary    string
	workDir   string
	languages []string
	runner    CommandRunner
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the yt-dlp executable path.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithWorkDir sets the directory used for temporary subtitle downloads.
func WithWorkDir(dir string) Option {
	return func(c *Client) {
		if dir != "" {
			c.workDir = dir
		}
	}
}

// WithLanguages sets the subtitle languages the client advertises.
func WithLanguages(langs []string) Option {
	return func(c *Client) {
		if len(langs) > 0 {
			c.languages = langs
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func WithCommandRunner(runner CommandRunner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithLogger attaches a logger for subprocess diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a yt-dlp backed caption source.
func New(opts ...Option) *Client {
	client := &Client{
		binary:    DefaultBinary,
		workDir:   os.TempDir(),
		languages: []string{"en"},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Name identifies the backend in logs and errors.
func (c *Client) Name() string { return backendName }

// ListTracks synthesizes a catalog from the configured languages.
// yt-dlp resolves the actual track at download time, so the client
// advertises one automatic and one manual track per language and lets
// FetchRaw fall through between the two.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]tracks.Track, error) {
	if videoID == "" {
		return nil, provider.Wrap(provider.ErrNotFound, backendName, "list tracks", fmt.Errorf("video id required"))
	}
	catalog := make([]tracks.Track, 0, len(c.languages)*2)
	for _, lang := range c.languages {
		catalog = append(catalog,
			tracks.Track{LanguageCode: lang, Generated: true},
			tracks.Track{LanguageCode: lang, Generated: false},
		)
	}
	return catalog, nil
}

// FetchRaw downloads the subtitle file for a track. When the requested
// kind yields no file the other kind is tried once before giving up,
// mirroring how uploaded and automatic subtitles shadow each other.
func (c *Client) FetchRaw(ctx context.Context, videoID string, track tracks.Track) (provider.Payload, error) {
	dir, err := os.MkdirTemp(c.workDir, "ytpy-subs-")
	if err != nil {
		return provider.Payload{}, provider.Wrap(provider.ErrTransient, backendName, "fetch", err)
	}
	defer os.RemoveAll(dir)

	raw, err := c.download(ctx, dir, videoID, track.LanguageCode, track.Generated)
	if err != nil {
		c.logger.Warn("subtitle download failed, retrying with other kind",
			logging.String("video_id", videoID),
			logging.Bool("generated", track.Generated),
			logging.Error(err))
		raw, err = c.download(ctx, dir, videoID, track.LanguageCode, !track.Generated)
	}
	if err != nil {
		return provider.Payload{}, err
	}
	return provider.Payload{Raw: raw, Format: captions.FormatVTT}, nil
}

func (c *Client) download(ctx context.Context, dir, videoID, lang string, generated bool) (string, error) {
	args := buildArgs(dir, videoID, lang, generated)
	if err := c.run(ctx, c.binary, args...); err != nil {
		return "", provider.Wrap(provider.ErrTransient, backendName, "download", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil {
		return "", provider.Wrap(provider.ErrTransient, backendName, "download", err)
	}
	if len(matches) == 0 {
		return "", provider.Wrap(provider.ErrNoCaptions, backendName, "download", fmt.Errorf("no subtitle file produced for %s", videoID))
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", provider.Wrap(provider.ErrTransient, backendName, "download", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", provider.Wrap(provider.ErrNoCaptions, backendName, "download", fmt.Errorf("empty subtitle file for %s", videoID))
	}
	return string(data), nil
}

func (c *Client) run(ctx context.Context, name string, args ...string) error {
	if c.runner != nil {
		return c.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the yt-dlp invocation for a subtitle download.
func buildArgs(dir, videoID, lang string, generated bool) []string {
	args := make([]string, 0, 12)
	if generated {
		args = append(args, "--write-auto-subs")
	} else {
		args = append(args, "--write-subs")
	}
	args = append(args,
		"--sub-lang", lang,
		"--sub-format", "vtt",
		"--skip-download",
		"--output", filepath.Join(dir, "%(id)s.%(ext)s"),
		videoid.WatchURL(videoID),
	)
	return args
}

var _ provider.Source = (*Client)(nil)
