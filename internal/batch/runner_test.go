package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/robertrahardja/ytpy/internal/captions"
	"github.com/robertrahardja/ytpy/internal/history"
	"github.com/robertrahardja/ytpy/internal/provider"
	"github.com/robertrahardja/ytpy/internal/sink"
	"github.com/robertrahardja/ytpy/internal/tracks"
	"github.com/robertrahardja/ytpy/internal/transcript"
)

const goodSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello world.\n"

// scriptedSource serves captions for every video except those listed in
// failing.
type scriptedSource struct {
	mu      sync.Mutex
	failing map[string]error
	fetched []string
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) ListTracks(ctx context.Context, videoID string) ([]tracks.Track, error) {
	return []tracks.Track{{LanguageCode: "en", Generated: true}}, nil
}

func (s *scriptedSource) FetchRaw(ctx context.Context, videoID string, track tracks.Track) (provider.Payload, error) {
	s.mu.Lock()
	s.fetched = append(s.fetched, videoID)
	s.mu.Unlock()
	if err, ok := s.failing[videoID]; ok {
		return provider.Payload{}, err
	}
	return provider.Payload{Raw: goodSRT, Format: captions.FormatSRT}, nil
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

func newRunner(t *testing.T, params Params, source provider.Source) *Runner {
	t.Helper()
	params.Service = transcript.NewService(source,
		transcript.WithRetryPolicy(transcript.RetryPolicy{MaxAttempts: 1}))
	if params.Writer == nil {
		params.Writer = sink.NewWriter(t.TempDir(), nil)
	}
	if len(params.Languages) == 0 {
		params.Languages = []string{"en"}
	}
	return NewRunner(params)
}

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunKeepsInputOrder(t *testing.T) {
	runner := newRunner(t, Params{Workers: 3}, &scriptedSource{})
	ids := []string{"vid-aaa-1111", "vid-bbb-2222", "vid-ccc-3333"}

	results := runner.Run(context.Background(), ids)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d", len(results))
	}
	for i, result := range results {
		if result.VideoID != ids[i] {
			t.Errorf("results[%d].VideoID = %q, want %q", i, result.VideoID, ids[i])
		}
		if result.Err != nil {
			t.Errorf("results[%d] failed: %v", i, result.Err)
		}
		if result.OutputPath == "" {
			t.Errorf("results[%d] missing output path", i)
		}
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	source := &scriptedSource{failing: map[string]error{
		"vid-bbb-2222": provider.Wrap(provider.ErrNoCaptions, "scripted", "fetch", nil),
	}}
	runner := newRunner(t, Params{Workers: 1}, source)

	results := runner.Run(context.Background(), []string{"vid-aaa-1111", "vid-bbb-2222", "vid-ccc-3333"})
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("healthy videos failed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, provider.ErrNoCaptions) {
		t.Fatalf("results[1].Err = %v", results[1].Err)
	}
}

func TestRunSkipsAlreadyFetched(t *testing.T) {
	store := openStore(t)
	if _, err := store.Record(context.Background(), history.Entry{
		VideoID:    "vid-aaa-1111",
		Title:      "Earlier",
		OutputPath: "/tmp/earlier.txt",
		Status:     history.StatusFetched,
	}); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	source := &scriptedSource{}
	runner := newRunner(t, Params{Workers: 1, Store: store}, source)

	results := runner.Run(context.Background(), []string{"vid-aaa-1111"})
	if !results[0].Skipped {
		t.Fatal("expected skip for previously fetched video")
	}
	if results[0].OutputPath != "/tmp/earlier.txt" {
		t.Errorf("OutputPath = %q", results[0].OutputPath)
	}
	if len(source.fetched) != 0 {
		t.Fatalf("fetch should not run for skipped video, got %v", source.fetched)
	}
}

func TestRunForceRefetches(t *testing.T) {
	store := openStore(t)
	if _, err := store.Record(context.Background(), history.Entry{
		VideoID: "vid-aaa-1111",
		Status:  history.StatusFetched,
	}); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	source := &scriptedSource{}
	runner := newRunner(t, Params{Workers: 1, Store: store, Force: true}, source)

	results := runner.Run(context.Background(), []string{"vid-aaa-1111"})
	if results[0].Skipped || results[0].Err != nil {
		t.Fatalf("force run should refetch: %+v", results[0])
	}
	if len(source.fetched) != 1 {
		t.Fatalf("expected one fetch, got %v", source.fetched)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	store := openStore(t)
	source := &scriptedSource{failing: map[string]error{
		"vid-bbb-2222": provider.Wrap(provider.ErrNoCaptions, "scripted", "fetch", nil),
	}}
	runner := newRunner(t, Params{Workers: 1, Store: store}, source)

	runner.Run(context.Background(), []string{"vid-aaa-1111", "vid-bbb-2222"})

	stats, err := store.Summarize(context.Background())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if stats.Fetched != 1 || stats.Failed != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	runID := entries[0].RunID
	if runID == "" {
		t.Fatal("expected run id")
	}
	for _, entry := range entries {
		if entry.RunID != runID {
			t.Errorf("mixed run ids: %q vs %q", entry.RunID, runID)
		}
	}
}

func TestRunCopiesOnlyLastToClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	runner := newRunner(t, Params{Workers: 1, Clipboard: clip, CopyLast: true}, &scriptedSource{})

	runner.Run(context.Background(), []string{"vid-aaa-1111", "vid-bbb-2222"})
	if len(clip.copied) != 1 {
		t.Fatalf("clipboard copies = %d, want 1", len(clip.copied))
	}
	if !strings.Contains(clip.copied[0], "Hello world.") {
		t.Errorf("clipboard content = %q", clip.copied[0])
	}
	if !strings.Contains(clip.copied[0], "vid-bbb-2222") {
		t.Errorf("clipboard should carry the last video, got %q", clip.copied[0])
	}
}

func TestRunClipboardFailureDoesNotFailBatch(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	runner := newRunner(t, Params{Workers: 1, Clipboard: clip, CopyLast: true}, &scriptedSource{})

	results := runner.Run(context.Background(), []string{"vid-aaa-1111"})
	if results[0].Err != nil {
		t.Fatalf("clipboard failure leaked into result: %v", results[0].Err)
	}
}

func TestRunSingleFileAppendsInOrder(t *testing.T) {
	writerDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "playlist.txt")
	batch := sink.NewBatchFile(path, nil)
	if err := batch.Start("=== TRANSCRIPTS FOR PLAYLIST: PL123 ==="); err != nil {
		t.Fatalf("start batch file: %v", err)
	}

	source := &scriptedSource{failing: map[string]error{
		"vid-bbb-2222": provider.Wrap(provider.ErrNoCaptions, "scripted", "fetch", nil),
	}}
	runner := newRunner(t, Params{
		Workers: 3,
		Writer:  sink.NewWriter(writerDir, nil),
		Batch:   batch,
	}, source)

	results := runner.Run(context.Background(), []string{"vid-aaa-1111", "vid-bbb-2222", "vid-ccc-3333"})
	for _, i := range []int{0, 2} {
		if results[i].Err != nil {
			t.Fatalf("results[%d] failed: %v", i, results[i].Err)
		}
		if results[i].OutputPath != path {
			t.Errorf("results[%d].OutputPath = %q, want %q", i, results[i].OutputPath, path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read batch file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "=== TRANSCRIPTS FOR PLAYLIST: PL123 ===\n\n") {
		t.Errorf("header missing: %q", content)
	}
	firstAt := strings.Index(content, "vid-aaa-1111")
	thirdAt := strings.Index(content, "vid-ccc-3333")
	if firstAt < 0 || thirdAt < 0 || firstAt > thirdAt {
		t.Errorf("transcripts missing or out of order: %q", content)
	}
	if strings.Contains(content, "vid-bbb-2222") {
		t.Errorf("failed video leaked into batch file: %q", content)
	}

	perVideo, err := os.ReadDir(writerDir)
	if err != nil {
		t.Fatalf("read writer dir: %v", err)
	}
	if len(perVideo) != 0 {
		t.Errorf("per-video files written in single-file mode: %v", perVideo)
	}
}

func TestRunSingleFileRecordsHistory(t *testing.T) {
	store := openStore(t)
	path := filepath.Join(t.TempDir(), "all.txt")
	batch := sink.NewBatchFile(path, nil)
	if err := batch.Start(""); err != nil {
		t.Fatalf("start batch file: %v", err)
	}

	runner := newRunner(t, Params{Workers: 1, Store: store, Batch: batch}, &scriptedSource{})
	runner.Run(context.Background(), []string{"vid-aaa-1111"})

	entry, err := store.LastFetched(context.Background(), "vid-aaa-1111")
	if err != nil {
		t.Fatalf("last fetched: %v", err)
	}
	if entry == nil {
		t.Fatal("expected fetched history entry")
	}
	if entry.OutputPath != path {
		t.Errorf("OutputPath = %q, want %q", entry.OutputPath, path)
	}
}

func TestRunTitleResolver(t *testing.T) {
	titles := func(ctx context.Context, videoID string) (string, error) {
		return "Resolved Title", nil
	}
	dir := t.TempDir()
	runner := newRunner(t, Params{
		Workers: 1,
		Titles:  titles,
		Writer:  sink.NewWriter(dir, nil),
	}, &scriptedSource{})

	results := runner.Run(context.Background(), []string{"vid-aaa-1111"})
	if results[0].Title != "Resolved Title" {
		t.Fatalf("Title = %q", results[0].Title)
	}
	want := filepath.Join(dir, "Resolved Title_vid-aaa-1111.txt")
	if results[0].OutputPath != want {
		t.Fatalf("OutputPath = %q, want %q", results[0].OutputPath, want)
	}
}
