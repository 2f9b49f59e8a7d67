package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/robertrahardja/ytpy/internal/batch"
	"github.com/robertrahardja/ytpy/internal/history"
	"github.com/robertrahardja/ytpy/internal/language"
	"github.com/robertrahardja/ytpy/internal/playlist"
	"github.com/robertrahardja/ytpy/internal/provider"
	"github.com/robertrahardja/ytpy/internal/provider/timedtext"
	"github.com/robertrahardja/ytpy/internal/provider/ytdlp"
	"github.com/robertrahardja/ytpy/internal/sink"
	"github.com/robertrahardja/ytpy/internal/transcript"
)

func newFetchCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		inputFile    string
		outputDir    string
		singleFile   string
		languages    []string
		workers      int
		useClipboard bool
		force        bool
		generated    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [url|video-id|playlist-url]...",
		Short: "Download transcripts for videos or playlists",
		Long: `Fetch downloads the caption track of each video, strips cue timing
and markup, reconstructs paragraphs, and writes one text file per
video. Playlist URLs are expanded to their member videos.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger()
			if err != nil {
				return err
			}

			inputs := args
			if inputFile != "" {
				fromFile, err := readInputFile(inputFile)
				if err != nil {
					return err
				}
				inputs = append(inputs, fromFile...)
			}
			targets, err := parseInputs(inputs)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			langs := cfg.YouTube.Languages
			if len(languages) > 0 {
				langs = language.NormalizeList(languages)
			}

			lister, err := playlist.New(ctx, cfg.YouTube.APIKey, playlist.WithLogger(logger))
			if err != nil {
				return err
			}

			videoIDs, playlistID, err := expandTargets(ctx, lister, targets)
			if err != nil {
				return err
			}
			subdir := ""
			if playlistID != "" {
				subdir = "playlist_" + playlistID
			}

			primary := timedtext.New(timedtext.WithLogger(logger))
			var fallback provider.Source
			if cfg.Fetch.YtDlpEnabled {
				fallback = ytdlp.New(
					ytdlp.WithBinary(cfg.Fetch.YtDlpBinary),
					ytdlp.WithWorkDir(cfg.Paths.WorkDir),
					ytdlp.WithLanguages(langs),
					ytdlp.WithLogger(logger),
				)
			}
			service := transcript.NewService(primary,
				transcript.WithFallback(fallback),
				transcript.WithRetryPolicy(transcript.RetryPolicy{
					MaxAttempts: cfg.Fetch.RetryAttempts,
					Backoff:     secondsDuration(cfg.Fetch.RetryDelaySeconds),
				}),
				transcript.WithPreferGenerated(generated || cfg.YouTube.PreferGenerated),
				transcript.WithLogger(logger),
			)

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			outDir := cfg.Paths.OutputDir
			if outputDir != "" {
				outDir = outputDir
			}

			var clip sink.Clipboard
			if useClipboard || cfg.Fetch.Clipboard {
				if sink.Available() {
					clip = sink.SystemClipboard{}
				} else {
					logger.Warn("clipboard requested but unsupported on this system")
				}
			}

			var batchFile *sink.BatchFile
			if singleFile != "" {
				batchFile = sink.NewBatchFile(singleFile, logger)
				header := ""
				if playlistID != "" {
					header = "=== TRANSCRIPTS FOR PLAYLIST: " + playlistID + " ==="
				}
				if err := batchFile.Start(header); err != nil {
					return err
				}
			}

			runner := batch.NewRunner(batch.Params{
				Service:   service,
				Writer:    sink.NewWriter(outDir, logger),
				Batch:     batchFile,
				Store:     store,
				Titles:    titleResolver(lister, primary),
				Clipboard: clip,
				Logger:    logger,
				Languages: langs,
				Workers:   pickWorkers(workers, cfg.Fetch.Workers),
				// The single file is truncated up front, so every
				// requested transcript must be re-acquired.
				Force:     force || batchFile != nil,
				CopyLast:  clip != nil,
				Subdir:    subdir,
			})

			results := runner.Run(ctx, videoIDs)
			return reportResults(cmd, results)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "File with one video or playlist per line")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringVar(&singleFile, "single-file", "", "Append all transcripts into one file instead of per-video files")
	cmd.Flags().StringSliceVarP(&languages, "languages", "l", nil, "Preferred subtitle languages, in order")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent downloads (overrides config)")
	cmd.Flags().BoolVarP(&useClipboard, "clipboard", "c", false, "Copy the last transcript to the clipboard")
	cmd.Flags().BoolVar(&force, "force", false, "Refetch videos already in history")
	cmd.Flags().BoolVar(&generated, "generated", false, "Prefer auto-generated captions")

	return cmd
}

// expandTargets flattens playlist targets into video IDs. The playlist
// ID comes back only when the whole batch is a single playlist; it
// drives the output subdirectory and the single-file header.
func expandTargets(ctx context.Context, lister *playlist.Lister, targets []inputTarget) ([]string, string, error) {
	var videoIDs []string
	playlistID := ""
	for _, target := range targets {
		if target.videoID != "" {
			videoIDs = append(videoIDs, target.videoID)
			continue
		}
		ids, err := lister.Videos(ctx, target.playlistID)
		if err != nil {
			return nil, "", fmt.Errorf("expand playlist %s: %w", target.playlistID, err)
		}
		videoIDs = append(videoIDs, ids...)
		if len(targets) == 1 {
			playlistID = target.playlistID
		}
	}
	return videoIDs, playlistID, nil
}

// titleResolver prefers the Data API and falls back to scraping the
// watch page.
func titleResolver(lister *playlist.Lister, scraper *timedtext.Client) batch.TitleFunc {
	return func(ctx context.Context, videoID string) (string, error) {
		if title, err := lister.VideoTitle(ctx, videoID); err == nil {
			return title, nil
		}
		if title := scraper.Title(ctx, videoID); title != "" {
			return title, nil
		}
		return "", fmt.Errorf("no title found for %s", videoID)
	}
}

func secondsDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

func pickWorkers(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func reportResults(cmd *cobra.Command, results []batch.Result) error {
	out := cmd.OutOrStdout()
	fetched, skipped, failed := 0, 0, 0
	for _, result := range results {
		switch {
		case result.Err != nil:
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", result.VideoID, result.Err)
		case result.Skipped:
			skipped++
			fmt.Fprintf(out, "SKIP  %s (already fetched)\n", result.VideoID)
		default:
			fetched++
			fmt.Fprintf(out, "OK    %s -> %s\n", result.VideoID, result.OutputPath)
		}
	}
	fmt.Fprintf(out, "%d fetched, %d skipped, %d failed\n", fetched, skipped, failed)
	if failed > 0 && fetched == 0 && skipped == 0 {
		return fmt.Errorf("all %d videos failed", failed)
	}
	return nil
}
