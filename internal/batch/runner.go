package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/history"
	"github.com/robertrahardja/ytpy/internal/logging"
	"github.com/robertrahardja/ytpy/internal/sink"
	"github.com/robertrahardja/ytpy/internal/transcript"
	"github.com/robertrahardja/ytpy/internal/videoid"
)

// TitleFunc resolves a human-readable title for a video. Failures are
// tolerated; the transcript is then filed under the bare video ID.
type TitleFunc func(ctx context.Context, videoID string) (string, error)

// Result is the outcome for one video in a batch, positioned at the
// same index as its input.
type Result struct {
	Index      int
	VideoID    string
	Title      string
	OutputPath string
	Document   captions.Document
	Skipped    bool
	Err        error
}

// Params carries the collaborators and settings for a Runner. When
// Batch is set, transcripts are appended to its single file in input
// order instead of being written as per-video files.
type Params struct {
	Service   *transcript.Service
	Writer    *sink.Writer
	Batch     *sink.BatchFile // optional
	Store     *history.Store  // optional
	Titles    TitleFunc       // optional
	Clipboard sink.Clipboard  // optional
	Logger    *slog.Logger

	Languages []string
	Workers   int
	Force     bool
	CopyLast  bool
	Subdir    string
}

// Runner executes acquisition batches.
type Runner struct {
	params Params
	logger *slog.Logger
}

// NewRunner validates params and builds a Runner.
func NewRunner(params Params) *Runner {
	if params.Workers <= 0 {
		params.Workers = 1
	}
	logger := params.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{params: params, logger: logger}
}

// Run acquires transcripts for the given video IDs. Results come back
// in input order; one failing video never aborts the rest. The last
// transcript of the batch is copied to the clipboard when requested.
func (r *Runner) Run(ctx context.Context, videoIDs []string) []Result {
	runID := uuid.NewString()
	results := make([]Result, len(videoIDs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.params.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.process(ctx, videoIDs[idx], idx, runID)
			}
		}()
	}
	for idx := range videoIDs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	if r.params.Batch != nil {
		r.appendBatch(ctx, results, runID)
	}
	r.copyLast(results)
	return results
}

func (r *Runner) process(ctx context.Context, id string, index int, runID string) Result {
	result := Result{Index: index, VideoID: id}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if !r.params.Force && r.params.Store != nil {
		prior, err := r.params.Store.LastFetched(ctx, id)
		if err != nil {
			r.logger.Warn("history lookup failed", logging.String("video_id", id), logging.Error(err))
		} else if prior != nil {
			r.logger.Info("already fetched, skipping",
				logging.String("video_id", id),
				logging.String("path", prior.OutputPath))
			result.Skipped = true
			result.Title = prior.Title
			result.OutputPath = prior.OutputPath
			r.record(ctx, history.Entry{
				VideoID:    id,
				Title:      prior.Title,
				OutputPath: prior.OutputPath,
				RunID:      runID,
				Status:     history.StatusSkipped,
			})
			return result
		}
	}

	doc, err := r.params.Service.Acquire(ctx, id, r.params.Languages)
	if err != nil {
		result.Err = err
		r.logger.Error("acquisition failed", logging.String("video_id", id), logging.Error(err))
		r.record(ctx, history.Entry{
			VideoID:      id,
			RunID:        runID,
			Status:       history.StatusFailed,
			ErrorMessage: err.Error(),
		})
		return result
	}

	if r.params.Titles != nil {
		if title, titleErr := r.params.Titles(ctx, id); titleErr == nil {
			doc.Title = title
		} else {
			r.logger.Warn("title lookup failed", logging.String("video_id", id), logging.Error(titleErr))
		}
	}
	doc.WatchURL = videoid.WatchURL(id)

	result.Title = doc.Title
	result.Document = doc

	if r.params.Batch != nil {
		// Appended after all workers finish so documents land in
		// input order; history is recorded there too.
		return result
	}

	path, err := r.params.Writer.Write(doc, r.params.Subdir)
	if err != nil {
		result.Err = err
		r.record(ctx, history.Entry{
			VideoID:      id,
			Title:        doc.Title,
			RunID:        runID,
			Status:       history.StatusFailed,
			ErrorMessage: err.Error(),
		})
		return result
	}

	result.OutputPath = path
	r.record(ctx, history.Entry{
		VideoID:    id,
		Title:      doc.Title,
		OutputPath: path,
		RunID:      runID,
		Status:     history.StatusFetched,
	})
	return result
}

// appendBatch flushes acquired documents to the single batch file in
// input order and records the history entries deferred by process.
func (r *Runner) appendBatch(ctx context.Context, results []Result, runID string) {
	for i := range results {
		result := &results[i]
		if result.Err != nil || result.Skipped || result.Document.IsEmpty() {
			continue
		}
		if err := r.params.Batch.Append(result.Document); err != nil {
			result.Err = err
			r.logger.Error("batch file append failed",
				logging.String("video_id", result.VideoID), logging.Error(err))
			r.record(ctx, history.Entry{
				VideoID:      result.VideoID,
				Title:        result.Title,
				RunID:        runID,
				Status:       history.StatusFailed,
				ErrorMessage: err.Error(),
			})
			continue
		}
		result.OutputPath = r.params.Batch.Path()
		r.record(ctx, history.Entry{
			VideoID:    result.VideoID,
			Title:      result.Title,
			OutputPath: result.OutputPath,
			RunID:      runID,
			Status:     history.StatusFetched,
		})
	}
}

func (r *Runner) record(ctx context.Context, entry history.Entry) {
	if r.params.Store == nil {
		return
	}
	if _, err := r.params.Store.Record(ctx, entry); err != nil {
		r.logger.Warn("history record failed", logging.String("video_id", entry.VideoID), logging.Error(err))
	}
}

// copyLast puts the final successful transcript of the batch on the
// clipboard. Only the last input qualifies; clipboard failures are
// logged and never fail the batch.
func (r *Runner) copyLast(results []Result) {
	if !r.params.CopyLast || r.params.Clipboard == nil || len(results) == 0 {
		return
	}
	last := results[len(results)-1]
	if last.Err != nil || last.Skipped || last.Document.IsEmpty() {
		return
	}
	if err := r.params.Clipboard.Copy(last.Document.Render()); err != nil {
		r.logger.Warn("clipboard copy failed", logging.String("video_id", last.VideoID), logging.Error(err))
		return
	}
	r.logger.Info("transcript copied to clipboard", logging.String("video_id", last.VideoID))
}
